package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process configuration read from the environment.
type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	// WeatherAPIPort is the listen port of cmd/weather-api.
	WeatherAPIPort string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	// WeatherAPIURL points the advisor at a standalone weather-api service.
	// When empty the advisor calls OpenWeatherMap directly.
	WeatherAPIURL  string
	WeatherTimeout time.Duration

	DatabaseURL string
	SQLitePath  string

	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	WorkflowFile          string
	ResponseTimeThreshold time.Duration
	BatchConcurrency      int
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	appEnv := getEnv("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("config: invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "3s")
	if err != nil {
		return nil, err
	}

	threshold, err := parseDuration("RESPONSE_TIME_THRESHOLD", "5s")
	if err != nil {
		return nil, err
	}

	concurrency, err := strconv.Atoi(getEnv("BATCH_CONCURRENCY", "4"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("config: invalid BATCH_CONCURRENCY %q", os.Getenv("BATCH_CONCURRENCY"))
	}

	return &Config{
		AppEnv:                appEnv,
		LogLevel:              level,
		Port:                  getEnv("PORT", "8080"),
		WeatherAPIPort:        getEnv("WEATHER_API_PORT", "8081"),
		OpenWeatherAPIKey:     getEnv("OPENWEATHERMAP_API_KEY", ""),
		OpenWeatherBaseURL:    getEnv("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherAPIURL:         strings.TrimRight(getEnv("WEATHER_API_URL", ""), "/"),
		WeatherTimeout:        weatherTimeout,
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		SQLitePath:            getEnv("SQLITE_PATH", ""),
		MQTTBroker:            getEnv("MQTT_BROKER", ""),
		MQTTClientID:          getEnv("MQTT_CLIENT_ID", "clothing-advisor"),
		MQTTTopicPrefix:       getEnv("MQTT_TOPIC_PREFIX", "advisor"),
		WorkflowFile:          getEnv("WORKFLOW_FILE", ""),
		ResponseTimeThreshold: threshold,
		BatchConcurrency:      concurrency,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %q", key, raw)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
