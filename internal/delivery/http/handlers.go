package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/clothingadvisor/backend/internal/domain"
	"github.com/clothingadvisor/backend/internal/service"
	"github.com/clothingadvisor/backend/internal/workflow"
)

// Handler contains all HTTP handlers
type Handler struct {
	advisorSvc   *service.AdvisorService
	orchestrator *workflow.Orchestrator
}

// NewHandler creates a new handler
func NewHandler(advisorSvc *service.AdvisorService, orchestrator *workflow.Orchestrator) *Handler {
	return &Handler{
		advisorSvc:   advisorSvc,
		orchestrator: orchestrator,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx := c.UserContext()
	status, code := "ok", fiber.StatusOK

	repoStatus := "ok"
	if err := h.advisorSvc.Health(ctx); err != nil {
		status, code, repoStatus = "degraded", fiber.StatusServiceUnavailable, err.Error()
	}
	weatherStatus := "ok"
	if err := h.advisorSvc.WeatherHealth(ctx); err != nil {
		status, code, weatherStatus = "degraded", fiber.StatusServiceUnavailable, err.Error()
	}

	return c.Status(code).JSON(fiber.Map{
		"status":      status,
		"service":     "clothing-advisor",
		"version":     "1.0.0",
		"repository":  repoStatus,
		"weather_api": weatherStatus,
	})
}

// GetWeather returns current weather data for ?zip_code=
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	weather, err := h.advisorSvc.GetWeather(c.UserContext(), strings.TrimSpace(c.Query("zip_code")))
	if err != nil {
		return weatherError(c, err)
	}

	return c.JSON(domain.WeatherResponse{
		Data:    weather,
		Success: true,
	})
}

// GetRecommendation fetches weather for ?zip_code= and recommends clothing
func (h *Handler) GetRecommendation(c *fiber.Ctx) error {
	rec, err := h.advisorSvc.Recommend(c.UserContext(), strings.TrimSpace(c.Query("zip_code")))
	if err != nil {
		return weatherError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rec,
	})
}

// CreateRecommendation recommends clothing for weather supplied in the body
func (h *Handler) CreateRecommendation(c *fiber.Ctx) error {
	var weather domain.WeatherData
	if err := c.BodyParser(&weather); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	switch weather.PrecipitationType {
	case domain.PrecipitationNone, domain.PrecipitationRain, domain.PrecipitationSnow:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "precipitation_type must be rain, snow or empty")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.advisorSvc.RecommendFor(weather),
	})
}

// BatchRecommendations recommends for several zip codes at once
func (h *Handler) BatchRecommendations(c *fiber.Ctx) error {
	var req domain.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.ZipCodes) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "zip_codes is required")
	}

	results, err := h.advisorSvc.RecommendBatch(c.UserContext(), req.ZipCodes)
	if errors.Is(err, service.ErrBatchTooLarge) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate recommendations")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    results,
		"count":   len(results),
	})
}

// GetHistory returns recommendations made within ?hours= (default 24)
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	data, err := h.advisorSvc.History(c.UserContext(), hours)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch recommendation history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// Chat runs the conversational workflow for one message
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req domain.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	return c.JSON(h.orchestrator.Execute(c.UserContext(), req.Message, req.SessionID))
}

// Responses serves the responses-protocol shape used by hosted agents
func (h *Handler) Responses(c *fiber.Ctx) error {
	var req domain.ResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return responsesError(c, "Invalid request body")
	}

	message, ok := req.LastUserMessage()
	if !ok {
		return responsesError(c, "No user message found in request")
	}

	result := h.orchestrator.Execute(c.UserContext(), message, req.ConversationID)

	return c.JSON(domain.ResponsesResponse{
		ID:     "resp_" + uuid.NewString(),
		Object: "response",
		Choices: []domain.ResponsesChoice{{
			Index:   0,
			Message: domain.ResponsesMessage{Role: "assistant", Content: result.Response},
		}},
		ConversationID: result.SessionID,
		Metadata:       result.Metadata,
	})
}

func responsesError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "invalid_request",
			"message": message,
		},
	})
}
