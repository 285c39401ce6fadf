package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/clothingadvisor/backend/internal/advisor"
	"github.com/clothingadvisor/backend/internal/config"
	"github.com/clothingadvisor/backend/internal/delivery/http"
	"github.com/clothingadvisor/backend/internal/events"
	"github.com/clothingadvisor/backend/internal/logging"
	"github.com/clothingadvisor/backend/internal/repository/postgres"
	"github.com/clothingadvisor/backend/internal/repository/sqlite"
	"github.com/clothingadvisor/backend/internal/service"
	"github.com/clothingadvisor/backend/internal/workflow"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logging.New(cfg, "clothing-advisor")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Dependency Injection: Repositories
	repo, closeRepo := openRepository(ctx, cfg, lg)
	defer closeRepo()

	// Dependency Injection: Services
	var weather service.WeatherProvider
	if cfg.WeatherAPIURL != "" {
		weather = service.NewWeatherAPIBridge(cfg.WeatherAPIURL, cfg.WeatherTimeout)
		lg.Info("using weather-api service", "url", cfg.WeatherAPIURL)
	} else {
		if cfg.OpenWeatherAPIKey == "" {
			lg.Warn("OPENWEATHERMAP_API_KEY not set, serving mock weather")
		}
		weather = service.NewWeatherService(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.WeatherTimeout, lg)
	}

	publisher, closePublisher := openPublisher(ctx, cfg, lg)
	defer closePublisher()

	advisorSvc := service.NewAdvisorService(weather, advisor.New(), repo, publisher, lg, service.Options{
		ResponseTimeThreshold: cfg.ResponseTimeThreshold,
		BatchConcurrency:      cfg.BatchConcurrency,
	})

	def, err := workflow.LoadDefinition(cfg.WorkflowFile)
	if err != nil {
		lg.Error("failed to load workflow definition", "error", err)
		os.Exit(1)
	}
	orchestrator := workflow.New(def, advisorSvc, lg, cfg.ResponseTimeThreshold)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Clothing Advisor API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, advisorSvc, orchestrator)

	// Graceful shutdown
	go func() {
		lg.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		lg.Warn("server forced to shutdown", "error", err)
	}
	advisorSvc.WaitBackground()
	lg.Info("server exited gracefully")
}

// openRepository picks Postgres, then SQLite, then the in-memory mock.
func openRepository(ctx context.Context, cfg *config.Config, lg *slog.Logger) (service.RecommendationRepository, func()) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err == nil {
			repo := postgres.NewPostgresRepository(pool)
			if err = repo.EnsureSchema(ctx); err == nil {
				lg.Info("connected to PostgreSQL")
				return repo, repo.Close
			}
		}
		if pool != nil {
			pool.Close()
		}
		lg.Warn("could not connect to database, falling back", "error", err)
	}

	if cfg.SQLitePath != "" {
		repo, err := sqlite.New(ctx, cfg.SQLitePath)
		if err == nil {
			lg.Info("using SQLite history store", "path", cfg.SQLitePath)
			return repo, func() {
				if err := repo.Close(); err != nil {
					lg.Warn("failed to close sqlite", "error", err)
				}
			}
		}
		lg.Warn("could not open SQLite store, falling back", "error", err)
	}

	lg.Info("running with in-memory history only")
	return postgres.NewMockRepository(), func() {}
}

// openPublisher connects to MQTT when a broker is configured.
func openPublisher(ctx context.Context, cfg *config.Config, lg *slog.Logger) (service.EventPublisher, func()) {
	if cfg.MQTTBroker == "" {
		return events.NopPublisher{}, func() {}
	}

	pub := events.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix, lg)
	if err := pub.Connect(ctx); err != nil {
		// the client keeps retrying in the background
		lg.Warn("mqtt broker not reachable yet", "broker", cfg.MQTTBroker, "error", err)
	}
	return pub, pub.Close
}
