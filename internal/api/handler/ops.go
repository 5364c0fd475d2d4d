package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/laiito/weatherApi/internal/api/response"
	"github.com/laiito/weatherApi/internal/upstream"
)

// CachePinger checks connectivity to the answer cache.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	cache     CachePinger
	providers *upstream.Registry
}

// NewOpsHandler creates a new OpsHandler. cache may be nil when the
// in-memory store is in use.
func NewOpsHandler(version, buildTime string, cache CachePinger, providers *upstream.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		cache:     cache,
		providers: providers,
	}
}

type healthBody struct {
	Status    string    `json:"status"`
	Time      time.Time `json:"time"`
	Version   string    `json:"version,omitempty"`
	BuildTime string    `json:"build_time,omitempty"`
}

type providerStatus struct {
	Provider string `json:"provider"`
	Circuit  string `json:"circuit"`
	Healthy  bool   `json:"healthy"`
}

type statusBody struct {
	Status    string           `json:"status"`
	Time      time.Time        `json:"time"`
	Cache     string           `json:"cache"`
	Providers []providerStatus `json:"providers"`
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, healthBody{
		Status:    "ok",
		Time:      time.Now().UTC(),
		Version:   h.version,
		BuildTime: h.buildTime,
	})
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Reports failure when the cache store is unreachable.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			response.JSON(w, r, http.StatusServiceUnavailable, healthBody{
				Status: "unavailable",
				Time:   time.Now().UTC(),
			})
			return
		}
	}
	response.JSON(w, r, http.StatusOK, healthBody{
		Status: "ok",
		Time:   time.Now().UTC(),
	})
}

// SystemStatus handles GET /v1/ops/status - cache and provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "ok"
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			cacheStatus = "unavailable"
		}
	}

	var providers []providerStatus
	if h.providers != nil {
		for _, p := range h.providers.Health() {
			providers = append(providers, providerStatus{
				Provider: p.Name,
				Circuit:  p.CircuitState.String(),
				Healthy:  p.Healthy(),
			})
		}
	}

	response.JSON(w, r, http.StatusOK, statusBody{
		Status:    "ok",
		Time:      time.Now().UTC(),
		Cache:     cacheStatus,
		Providers: providers,
	})
}
