package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clothingadvisor/backend/internal/domain"
)

// ErrorHandler renders errors as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// weatherErrorStatus maps a weather error code to an HTTP status.
func weatherErrorStatus(code string) int {
	switch code {
	case domain.ErrCodeInvalidZip:
		return fiber.StatusBadRequest
	case domain.ErrCodeRateLimit:
		return fiber.StatusTooManyRequests
	case domain.ErrCodeTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}

// weatherError renders a failed weather lookup on the advisor API.
func weatherError(c *fiber.Ctx, err error) error {
	apiErr := domain.AsWeatherAPIError(err)
	return c.Status(weatherErrorStatus(apiErr.Code)).JSON(fiber.Map{
		"error":      true,
		"message":    apiErr.Message,
		"error_code": apiErr.Code,
	})
}
