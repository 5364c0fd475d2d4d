// Package handler provides HTTP handlers for the weather API.
package handler

import (
	"context"
	"net/http"

	"github.com/laiito/weatherApi/internal/api/response"
)

// WeatherService answers a weather query as a serialized JSON body.
type WeatherService interface {
	Answer(ctx context.Context, cityName, rawDate string) string
}

// WeatherHandler handles the weather query endpoint.
type WeatherHandler struct {
	service WeatherService
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetWeather handles GET /v1/weather?city=&date=.
// The response is always 200 with a JSON body; error outcomes are carried
// in the body's status field, not the HTTP status line.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	date := r.URL.Query().Get("date")

	body := h.service.Answer(r.Context(), city, date)
	response.Body(w, r, body)
}
