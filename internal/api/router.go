// Package api provides the HTTP API for the weather service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/laiito/weatherApi/internal/api/handler"
	"github.com/laiito/weatherApi/internal/api/middleware"
	"github.com/laiito/weatherApi/internal/city"
	"github.com/laiito/weatherApi/internal/upstream"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger
	Weather   handler.WeatherService
	Cities    *city.Registry
	Cache     handler.CachePinger
	Providers *upstream.Registry
}

// NewRouter creates a chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)

	weatherHandler := handler.NewWeatherHandler(cfg.Weather)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Cache, cfg.Providers)
	metadataHandler := handler.NewMetadataHandler(cfg.Cities)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/weather", weatherHandler.GetWeather)

		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.Get("/metadata/cities", metadataHandler.ListCities)
	})

	return r
}
