package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clothingadvisor/backend/internal/service"
	"github.com/clothingadvisor/backend/internal/workflow"
)

// SetupRoutes configures all advisor HTTP routes
func SetupRoutes(app *fiber.App, advisorSvc *service.AdvisorService, orchestrator *workflow.Orchestrator) {
	handler := NewHandler(advisorSvc, orchestrator)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Conversational endpoints
	app.Post("/chat", handler.Chat)
	app.Post("/responses", handler.Responses)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/weather", handler.GetWeather)

		api.Get("/recommendations", handler.GetRecommendation)
		api.Post("/recommendations", handler.CreateRecommendation)
		api.Post("/recommendations/batch", handler.BatchRecommendations)

		api.Get("/history", handler.GetHistory)
	}
}

// SetupWeatherAPIRoutes configures the weather-api routes
func SetupWeatherAPIRoutes(app *fiber.App, provider service.WeatherProvider) {
	handler := NewWeatherAPIHandler(provider)

	app.Get("/health", handler.HealthCheck)
	app.Get("/api/weather", handler.GetWeather)
}
