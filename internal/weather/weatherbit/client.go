// Package weatherbit provides a client for the Weatherbit daily history
// API, the source for yesterday's and today's observations.
package weatherbit

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
	// DefaultBaseURL is the Weatherbit API base URL.
	DefaultBaseURL = "https://api.weatherbit.io"

	// ProviderName identifies this provider.
	ProviderName = "weatherbit"
)

// country is fixed: the city registry only covers Russian cities.
const country = "Russia"

// mbToMmHg converts Weatherbit's millibar pressure to mmHg.
const mbToMmHg = 0.75

// ClientConfig holds configuration for the Weatherbit client.
type ClientConfig struct {
	// APIKey is the Weatherbit API key (required).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with defaults is created.
	HTTPClient upstream.Doer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Weatherbit daily history client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient upstream.Doer
	logger     zerolog.Logger
}

// NewClient creates a new Weatherbit client.
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

// historyResponse is the Weatherbit daily history payload.
type historyResponse struct {
	Data []struct {
		MaxTemp float64 `json:"max_temp"`
		MinTemp float64 `json:"min_temp"`
		Pres    float64 `json:"pres"`
		Clouds  float64 `json:"clouds"`
	} `json:"data"`
}

// Daily returns the observation for the single day [date, date+1).
// An empty day list yields weather.ErrNoData.
func (c *Client) Daily(ctx context.Context, cityName string, date time.Time) (*weather.Observation, error) {
	endDate := date.AddDate(0, 0, 1)
	reqURL := fmt.Sprintf("%s/v2.0/history/daily?city=%s&country=%s&start_date=%s:00&end_date=%s:00&key=%s",
		c.baseURL, url.QueryEscape(cityName), country,
		date.Format(weather.DateLayout), endDate.Format(weather.DateLayout), c.apiKey)

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

	var history historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(history.Data) == 0 {
		return nil, weather.ErrNoData
	}

	day := history.Data[0]
	return &weather.Observation{
		TempMax:  int(math.Round(day.MaxTemp)),
		TempMin:  int(math.Round(day.MinTemp)),
		Pressure: int(math.Round(day.Pres * mbToMmHg)),
		Clouds:   day.Clouds,
	}, nil
}
