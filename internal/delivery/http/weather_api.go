package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clothingadvisor/backend/internal/domain"
	"github.com/clothingadvisor/backend/internal/service"
	"github.com/clothingadvisor/backend/pkg/utils"
)

// WeatherAPIHandler serves the standalone weather-api.
type WeatherAPIHandler struct {
	provider service.WeatherProvider
}

// NewWeatherAPIHandler creates a new weather-api handler
func NewWeatherAPIHandler(provider service.WeatherProvider) *WeatherAPIHandler {
	return &WeatherAPIHandler{provider: provider}
}

// HealthCheck returns service health status
func (h *WeatherAPIHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "weather-api",
		"version": "1.0.0",
	})
}

// GetWeather returns current weather for ?zip_code= as a bare WeatherData
func (h *WeatherAPIHandler) GetWeather(c *fiber.Ctx) error {
	zip := strings.TrimSpace(c.Query("zip_code"))
	if !utils.IsZipCode(zip) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": domain.NewWeatherAPIError(domain.ErrCodeInvalidZip, "zip_code must be 5 digits"),
		})
	}

	weather, err := h.provider.CurrentWeather(c.UserContext(), zip)
	if err != nil {
		apiErr := domain.AsWeatherAPIError(err)
		return c.Status(weatherErrorStatus(apiErr.Code)).JSON(fiber.Map{
			"error": apiErr,
		})
	}

	return c.JSON(weather)
}
