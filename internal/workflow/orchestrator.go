package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/clothingadvisor/backend/internal/domain"
)

// Fallback replies for failed runs.
const (
	MsgNoZipCode     = "I couldn't find a valid zip code in your message. Please provide a 5-digit US zip code."
	MsgTimeout       = "The weather service is taking too long to respond. Please try again in a moment."
	MsgNetworkError  = "I'm having trouble connecting to the weather service. Please check your connection and try again."
	MsgGenericFailed = "I encountered an error processing your request. Please try again."
)

// ErrNoZipCode is returned by parse_user_input when the message has no zip code.
var ErrNoZipCode = errors.New("no zip code found in user message")

var zipPattern = regexp.MustCompile(`\b\d{5}\b`)

// ExtractZipCode returns the first standalone 5-digit sequence in message.
func ExtractZipCode(message string) (string, bool) {
	zip := zipPattern.FindString(message)
	return zip, zip != ""
}

// Advisor is the part of the advisor service the workflow needs.
type Advisor interface {
	GetWeather(ctx context.Context, zipCode string) (domain.WeatherData, error)
	RecommendFor(weather domain.WeatherData) domain.ClothingRecommendation
}

// Orchestrator executes a Definition against an Advisor.
type Orchestrator struct {
	def       *Definition
	advisor   Advisor
	logger    *slog.Logger
	threshold time.Duration
	now       func() time.Time
	newID     func() string
}

// New creates an orchestrator. threshold is the slow-run warning limit.
func New(def *Definition, advisor Advisor, logger *slog.Logger, threshold time.Duration) *Orchestrator {
	return &Orchestrator{
		def:       def,
		advisor:   advisor,
		logger:    logger,
		threshold: threshold,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

type run struct {
	message        string
	zipCode        string
	weather        domain.WeatherData
	recommendation domain.ClothingRecommendation
	response       string
}

type stepFunc func(ctx context.Context, r *run) error

func (o *Orchestrator) handlers() map[string]stepFunc {
	return map[string]stepFunc{
		StepParseUserInput: func(_ context.Context, r *run) error {
			zip, ok := ExtractZipCode(r.message)
			if !ok {
				return ErrNoZipCode
			}
			r.zipCode = zip
			return nil
		},
		StepGetWeatherData: func(ctx context.Context, r *run) error {
			w, err := o.advisor.GetWeather(ctx, r.zipCode)
			if err != nil {
				return err
			}
			r.weather = w
			return nil
		},
		StepGenerateRecommendations: func(_ context.Context, r *run) error {
			r.recommendation = o.advisor.RecommendFor(r.weather)
			return nil
		},
		StepFormatResponse: func(_ context.Context, r *run) error {
			r.response = FormatResponse(r.recommendation)
			return nil
		},
	}
}

// Execute runs every step in order. It never fails: errors become a
// fallback reply with error details in the metadata.
func (o *Orchestrator) Execute(ctx context.Context, message, sessionID string) domain.ChatResponse {
	start := o.now()
	if sessionID == "" {
		sessionID = o.newID()
	}
	workflowID := o.newID()
	logger := o.logger.With("workflow_id", workflowID)
	logger.Info("starting workflow", "workflow", o.def.Name)

	handlers := o.handlers()
	r := &run{message: message}
	succeeded := make(map[string]bool, len(o.def.Steps))
	durations := make(map[string]float64, len(o.def.Steps))

	for _, step := range o.def.Steps {
		stepStart := o.now()
		logger.Debug("executing step", "step", step.ID, "type", step.Type)

		var err error
		if step.DependsOn != "" && !succeeded[step.DependsOn] {
			err = fmt.Errorf("dependency step %s failed or not found", step.DependsOn)
		} else {
			err = handlers[step.ID](ctx, r)
		}
		durations[step.ID] = o.now().Sub(stepStart).Seconds()

		if err != nil {
			logger.Error("step failed", "step", step.ID, "error", err)
			return domain.ChatResponse{
				Response:  fallbackResponse(err),
				SessionID: sessionID,
				Metadata: map[string]any{
					"workflow_id": workflowID,
					"error":       err.Error(),
					"failed_step": step.ID,
				},
			}
		}
		succeeded[step.ID] = true
	}

	elapsed := o.now().Sub(start)
	within := elapsed <= o.threshold
	if !within {
		logger.Warn("workflow exceeded response time threshold", "elapsed", elapsed, "threshold", o.threshold)
	}
	logger.Info("workflow completed", "elapsed", elapsed, "zip_code", r.zipCode)

	return domain.ChatResponse{
		Response:  r.response,
		SessionID: sessionID,
		Metadata: map[string]any{
			"workflow_id":       workflowID,
			"workflow_duration": elapsed.Seconds(),
			"steps_executed":    len(o.def.Steps),
			"within_threshold":  within,
			"step_durations":    durations,
			"zip_code":          r.zipCode,
		},
	}
}

func fallbackResponse(err error) string {
	if errors.Is(err, ErrNoZipCode) {
		return MsgNoZipCode
	}

	if !errors.Is(err, domain.ErrWeatherUnavailable) {
		return MsgGenericFailed
	}
	switch domain.WeatherErrorCode(err) {
	case domain.ErrCodeInvalidZip:
		return MsgNoZipCode
	case domain.ErrCodeTimeout:
		return MsgTimeout
	case domain.ErrCodeNetworkError:
		return MsgNetworkError
	case domain.ErrCodeRateLimit:
		return domain.AsWeatherAPIError(err).Message
	default:
		return MsgGenericFailed
	}
}
