package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "WEATHER_TIMEOUT", "RESPONSE_TIME_THRESHOLD",
		"BATCH_CONCURRENCY", "WEATHER_API_URL", "OPENWEATHERMAP_BASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q; want dev", cfg.AppEnv)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v; want info", cfg.LogLevel)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q; want 8080", cfg.Port)
	}
	if cfg.WeatherTimeout != 3*time.Second {
		t.Errorf("WeatherTimeout = %v; want 3s", cfg.WeatherTimeout)
	}
	if cfg.ResponseTimeThreshold != 5*time.Second {
		t.Errorf("ResponseTimeThreshold = %v; want 5s", cfg.ResponseTimeThreshold)
	}
	if cfg.BatchConcurrency != 4 {
		t.Errorf("BatchConcurrency = %d; want 4", cfg.BatchConcurrency)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WEATHER_API_URL", "http://weather:8081/")
	t.Setenv("WEATHER_TIMEOUT", "1500ms")
	t.Setenv("BATCH_CONCURRENCY", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppEnv != "prod" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("AppEnv/LogLevel = %q/%v", cfg.AppEnv, cfg.LogLevel)
	}
	if cfg.WeatherAPIURL != "http://weather:8081" {
		t.Errorf("WeatherAPIURL = %q; want trailing slash trimmed", cfg.WeatherAPIURL)
	}
	if cfg.WeatherTimeout != 1500*time.Millisecond {
		t.Errorf("WeatherTimeout = %v", cfg.WeatherTimeout)
	}
	if cfg.BatchConcurrency != 2 {
		t.Errorf("BatchConcurrency = %d", cfg.BatchConcurrency)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"APP_ENV", "staging"},
		{"LOG_LEVEL", "verbose"},
		{"WEATHER_TIMEOUT", "soon"},
		{"RESPONSE_TIME_THRESHOLD", "-1s"},
		{"BATCH_CONCURRENCY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
