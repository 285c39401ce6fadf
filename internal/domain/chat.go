package domain

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	Response  string         `json:"response"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ResponsesMessage is one entry of a responses-API conversation.
type ResponsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponsesRequest is the body of POST /responses.
type ResponsesRequest struct {
	Messages       []ResponsesMessage `json:"messages"`
	ConversationID string             `json:"conversation_id,omitempty"`
	Stream         bool               `json:"stream,omitempty"`
	Model          string             `json:"model,omitempty"`
}

// LastUserMessage returns the content of the most recent user message.
func (r ResponsesRequest) LastUserMessage() (string, bool) {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" && r.Messages[i].Content != "" {
			return r.Messages[i].Content, true
		}
	}
	return "", false
}

// ResponsesChoice is one completion choice.
type ResponsesChoice struct {
	Index   int              `json:"index"`
	Message ResponsesMessage `json:"message"`
}

// ResponsesResponse mirrors the hosted-agent responses protocol.
type ResponsesResponse struct {
	ID             string            `json:"id"`
	Object         string            `json:"object"`
	Choices        []ResponsesChoice `json:"choices"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
}

// BatchRequest is the body of POST /api/v1/recommendations/batch.
type BatchRequest struct {
	ZipCodes []string `json:"zip_codes"`
}

// BatchResult is the outcome for a single zip code in a batch.
type BatchResult struct {
	ZipCode        string                  `json:"zip_code"`
	Recommendation *ClothingRecommendation `json:"recommendation,omitempty"`
	Error          *WeatherAPIError        `json:"error,omitempty"`
}
