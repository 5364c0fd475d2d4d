// Package main provides the entrypoint for the weather API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/laiito/weatherApi/internal/api"
	"github.com/laiito/weatherApi/internal/cache"
	"github.com/laiito/weatherApi/internal/city"
	"github.com/laiito/weatherApi/internal/config"
	"github.com/laiito/weatherApi/internal/telemetry"
	"github.com/laiito/weatherApi/internal/upstream"
	"github.com/laiito/weatherApi/internal/weather"
	"github.com/laiito/weatherApi/internal/weather/gismeteo"
	"github.com/laiito/weatherApi/internal/weather/visualcrossing"
	"github.com/laiito/weatherApi/internal/weather/weatherbit"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "weather-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Environment).
		Msg("starting weather API")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// Answer cache: Redis when configured, in-memory otherwise.
	var store cache.Store
	var redisStore *cache.RedisStore
	if cfg.RedisAddr != "" {
		redisStore = cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisStore.Close()
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable at startup")
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
		}
		store = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDR not set - using in-memory cache")
		store = cache.NewMemoryStore()
	}

	cities, err := city.NewRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load city registry")
	}
	log.Info().Int("cities", cities.Len()).Msg("city registry loaded")

	// One resilient client per provider, tracked for the status endpoint.
	providers := upstream.NewRegistry()

	gismeteoHTTP := upstream.NewClient(upstream.DefaultClientConfig(gismeteo.ProviderName))
	providers.Register(gismeteo.ProviderName, gismeteoHTTP)
	archiveClient := gismeteo.NewClient(gismeteo.ClientConfig{
		BaseURL:    cfg.GismeteoBaseURL,
		HTTPClient: gismeteoHTTP,
		Logger:     log,
	})

	weatherbitHTTP := upstream.NewClient(upstream.DefaultClientConfig(weatherbit.ProviderName))
	providers.Register(weatherbit.ProviderName, weatherbitHTTP)
	recentClient := weatherbit.NewClient(weatherbit.ClientConfig{
		APIKey:     cfg.WeatherbitAPIKey,
		HTTPClient: weatherbitHTTP,
		Logger:     log,
	})

	visualcrossingHTTP := upstream.NewClient(upstream.DefaultClientConfig(visualcrossing.ProviderName))
	providers.Register(visualcrossing.ProviderName, visualcrossingHTTP)
	forecastClient := visualcrossing.NewClient(visualcrossing.ClientConfig{
		APIKey:     cfg.VisualCrossingAPIKey,
		HTTPClient: visualcrossingHTTP,
		Logger:     log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Archive:  archiveClient,
		Recent:   recentClient,
		Forecast: forecastClient,
		Cache:    store,
		Cities:   cities,
		Logger:   log,
	})
	log.Info().Msg("weather service initialized")

	routerCfg := api.RouterConfig{
		Version:   Version,
		BuildTime: BuildTime,
		Logger:    log,
		Weather:   weatherService,
		Cities:    cities,
		Providers: providers,
	}
	if redisStore != nil {
		routerCfg.Cache = redisStore
	}
	router := api.NewRouter(routerCfg)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
