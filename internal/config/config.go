// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// Environment is the deployment environment name.
	Environment string

	// WeatherbitAPIKey authenticates against the recent-observation API.
	WeatherbitAPIKey string

	// VisualCrossingAPIKey authenticates against the forecast API.
	VisualCrossingAPIKey string

	// GismeteoBaseURL overrides the archive provider base URL (optional).
	GismeteoBaseURL string

	// RedisAddr is the cache store address. Empty means the in-memory
	// store is used instead.
	RedisAddr string

	// RedisPassword is the cache store password (optional).
	RedisPassword string

	// OTLPEndpoint receives traces and metrics when telemetry is on.
	OTLPEndpoint string

	// TelemetryEnabled turns OTLP export on.
	TelemetryEnabled bool
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getenvDefault("APP_PORT", "8080"),
		Environment:          getenvDefault("APP_ENV", "development"),
		WeatherbitAPIKey:     os.Getenv("WEATHERBIT_API_KEY"),
		VisualCrossingAPIKey: os.Getenv("VISUALCROSSING_API_KEY"),
		GismeteoBaseURL:      os.Getenv("GISMETEO_BASE_URL"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		OTLPEndpoint:         getenvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:     os.Getenv("OTEL_ENABLED") == "true",
	}

	if cfg.WeatherbitAPIKey == "" {
		return nil, fmt.Errorf("WEATHERBIT_API_KEY is required")
	}
	if cfg.VisualCrossingAPIKey == "" {
		return nil, fmt.Errorf("VISUALCROSSING_API_KEY is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
