package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/clothingadvisor/backend/internal/config"
	"github.com/clothingadvisor/backend/internal/delivery/http"
	"github.com/clothingadvisor/backend/internal/logging"
	"github.com/clothingadvisor/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logging.New(cfg, "weather-api")

	if cfg.OpenWeatherAPIKey == "" {
		lg.Warn("OPENWEATHERMAP_API_KEY not set, serving mock weather")
	}
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.WeatherTimeout, lg)

	app := fiber.New(fiber.Config{
		AppName:      "Weather API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	http.SetupWeatherAPIRoutes(app, weatherSvc)

	go func() {
		lg.Info("weather api starting", "port", cfg.WeatherAPIPort)
		if err := app.Listen(":" + cfg.WeatherAPIPort); err != nil {
			lg.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		lg.Warn("server forced to shutdown", "error", err)
	}
	lg.Info("weather api exited")
}
