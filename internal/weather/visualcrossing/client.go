// Package visualcrossing provides a client for the Visual Crossing timeline
// API, the source for forecast dates.
package visualcrossing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/laiito/weatherApi/internal/upstream"
	"github.com/laiito/weatherApi/internal/weather"
)

const (
	// DefaultBaseURL is the Visual Crossing API base URL.
	DefaultBaseURL = "https://weather.visualcrossing.com"

	// ProviderName identifies this provider.
	ProviderName = "visualcrossing"
)

// timelinePath is the REST path of the timeline service.
const timelinePath = "/VisualCrossingWebServices/rest/services/timeline"

// mbToMmHg converts the metric-unit-group pressure (millibar) to mmHg.
const mbToMmHg = 0.75

// ClientConfig holds configuration for the Visual Crossing client.
type ClientConfig struct {
	// APIKey is the Visual Crossing API key (required).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with defaults is created.
	HTTPClient upstream.Doer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Visual Crossing timeline client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient upstream.Doer
	logger     zerolog.Logger
}

// NewClient creates a new Visual Crossing client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = upstream.NewClient(upstream.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// timelineResponse is the Visual Crossing timeline payload.
type timelineResponse struct {
	Days []struct {
		TempMax    float64 `json:"tempmax"`
		TempMin    float64 `json:"tempmin"`
		Pressure   float64 `json:"pressure"`
		CloudCover float64 `json:"cloudcover"`
	} `json:"days"`
}

// Daily returns the forecast for the target date. A response without a day
// entry yields weather.ErrNoData.
func (c *Client) Daily(ctx context.Context, cityName string, date time.Time) (*weather.Observation, error) {
	reqURL := fmt.Sprintf("%s%s/%s/%s?include=days&unitGroup=metric&key=%s",
		c.baseURL, timelinePath, url.PathEscape(cityName), date.Format(weather.DateLayout), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var timeline timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&timeline); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(timeline.Days) == 0 {
		return nil, weather.ErrNoData
	}

	day := timeline.Days[0]
	return &weather.Observation{
		TempMax:  int(math.Round(day.TempMax)),
		TempMin:  int(math.Round(day.TempMin)),
		Pressure: int(math.Round(day.Pressure * mbToMmHg)),
		Clouds:   day.CloudCover,
	}, nil
}
