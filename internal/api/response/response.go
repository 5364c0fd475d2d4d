// Package response provides utilities for HTTP response handling.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/laiito/weatherApi/internal/api/middleware"
)

// contentType is the Content-Type of every API response.
const contentType = "application/json; charset=UTF-8"

// JSON writes data as a JSON response with the given status code.
// Includes X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	setHeaders(w, r)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Body writes an already-serialized JSON body with status 200. The weather
// answer is cached in serialized form, so it is passed through verbatim.
func Body(w http.ResponseWriter, r *http.Request, body string) {
	setHeaders(w, r)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func setHeaders(w http.ResponseWriter, r *http.Request) {
	if requestID := middleware.GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", contentType)
}
