package visualcrossing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiito/weatherApi/internal/weather"
	"github.com/laiito/weatherApi/internal/weather/visualcrossing"
)

func TestClient_Daily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/VisualCrossingWebServices/rest/services/timeline/Москва/2023-06-18", r.URL.Path)
		assert.Equal(t, "days", r.URL.Query().Get("include"))
		assert.Equal(t, "metric", r.URL.Query().Get("unitGroup"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"days":[{"tempmax":24.8,"tempmin":15.1,"pressure":1013.2,"cloudcover":12.5}]}`))
	}))
	defer server.Close()

	client := visualcrossing.NewClient(visualcrossing.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	date := time.Date(2023, time.June, 18, 0, 0, 0, 0, time.UTC)
	obs, err := client.Daily(context.Background(), "Москва", date)
	require.NoError(t, err)

	assert.Equal(t, 25, obs.TempMax)
	assert.Equal(t, 15, obs.TempMin)
	// 1013.2 mb * 0.75 = 759.9 -> 760 mmHg
	assert.Equal(t, 760, obs.Pressure)
	assert.Equal(t, 12.5, obs.Clouds)
}

func TestClient_Daily_MissingDayEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"days":[]}`))
	}))
	defer server.Close()

	client := visualcrossing.NewClient(visualcrossing.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	date := time.Date(2023, time.June, 18, 0, 0, 0, 0, time.UTC)
	_, err := client.Daily(context.Background(), "Москва", date)
	assert.ErrorIs(t, err, weather.ErrNoData)
}

func TestClient_Daily_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := visualcrossing.NewClient(visualcrossing.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	date := time.Date(2023, time.June, 18, 0, 0, 0, 0, time.UTC)
	_, err := client.Daily(context.Background(), "Москва", date)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
