// Package gismeteo provides a client for the Gismeteo weather diary, the
// historical archive source. The diary is an HTML page with one table row
// per day of the month; it has no API, so the client scrapes it.
package gismeteo

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/laiito/weatherApi/internal/upstream"
	"github.com/laiito/weatherApi/internal/weather"
)

const (
	// DefaultBaseURL is the base URL of the Gismeteo diary pages.
	DefaultBaseURL = "http://www.gismeteo.ru"

	// ProviderName identifies this provider.
	ProviderName = "gismeteo"
)

// Diary table layout: fixed 0-indexed column positions within a day row.
const (
	colDay      = 0
	colTempMax  = 1
	colPressure = 2
	colClouds   = 3
	colTempMin  = 6
)

// cloudIcons maps the cloud-cover icon filename embedded in a day row to a
// cover percentage. An icon outside this table makes the whole row
// unusable: we refuse to guess and report no data instead.
var cloudIcons = map[string]float64{
	"sun.png":   0,
	"sunc.png":  25,
	"suncl.png": 50,
	"dull.png":  100,
}

// ClientConfig holds configuration for the Gismeteo client.
type ClientConfig struct {
	// BaseURL is the diary base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a resilient client
	// with defaults is created.
	HTTPClient upstream.Doer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches archived daily weather from the Gismeteo diary.
type Client struct {
	baseURL    string
	httpClient upstream.Doer
	logger     zerolog.Logger
}

// NewClient creates a new Gismeteo client.
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
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Daily returns the archived observation for one day. The diary page covers
// the whole month, so the row for the requested day has to be located
// inside it; a page without a table body, a missing day row, or a row that
// cannot be parsed all yield weather.ErrNoData.
func (c *Client) Daily(ctx context.Context, cityCode int, date time.Time) (*weather.Observation, error) {
	url := fmt.Sprintf("%s/diary/%d/%04d/%02d/", c.baseURL, cityCode, date.Year(), int(date.Month()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
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

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing diary page: %w", err)
	}

	row, err := findDayRow(doc, date.Day())
	if err != nil {
		return nil, err
	}

	return parseDayRow(row)
}

// findDayRow locates the <tr> for the requested day inside the first
// <tbody> of the page. Rows are nominally one per day in order, but days
// can be missing, so index day-1 is only a fast-path guess; on a mismatch
// every row is scanned for a first cell equal to the day number.
func findDayRow(doc *html.Node, day int) (*html.Node, error) {
	tbody := findFirst(doc, "tbody")
	if tbody == nil {
		return nil, weather.ErrNoData
	}

	rows := childElements(tbody, "tr")
	want := strconv.Itoa(day)

	if idx := day - 1; idx < len(rows) {
		if cells := childElements(rows[idx], "td"); len(cells) > colDay && cellText(cells[colDay]) == want {
			return rows[idx], nil
		}
	}

	for _, row := range rows {
		if cells := childElements(row, "td"); len(cells) > colDay && cellText(cells[colDay]) == want {
			return row, nil
		}
	}

	return nil, weather.ErrNoData
}

// parseDayRow extracts the normalized observation from a located day row.
func parseDayRow(row *html.Node) (*weather.Observation, error) {
	cells := childElements(row, "td")
	if len(cells) <= colTempMin {
		return nil, weather.ErrNoData
	}

	tempMax, err := parseTemp(cellText(cells[colTempMax]))
	if err != nil {
		return nil, weather.ErrNoData
	}
	pressure, err := strconv.Atoi(cellText(cells[colPressure]))
	if err != nil {
		return nil, weather.ErrNoData
	}
	tempMin, err := parseTemp(cellText(cells[colTempMin]))
	if err != nil {
		return nil, weather.ErrNoData
	}

	clouds, err := parseCloudIcon(cells[colClouds])
	if err != nil {
		return nil, err
	}

	return &weather.Observation{
		TempMax:  tempMax,
		TempMin:  tempMin,
		Pressure: pressure,
		Clouds:   clouds,
	}, nil
}

// parseCloudIcon resolves the cloud-cover percentage from the icon image
// inside the clouds cell.
func parseCloudIcon(cell *html.Node) (float64, error) {
	img := findFirst(cell, "img")
	if img == nil {
		return 0, weather.ErrNoData
	}

	src := attr(img, "src")
	clouds, ok := cloudIcons[path.Base(src)]
	if !ok {
		return 0, weather.ErrNoData
	}
	return clouds, nil
}

// parseTemp parses a diary temperature cell. The diary prefixes positive
// values with "+" and uses U+2212 for the minus sign on some pages.
func parseTemp(s string) (int, error) {
	s = strings.ReplaceAll(s, "−", "-")
	return strconv.Atoi(strings.TrimPrefix(s, "+"))
}

// findFirst returns the first element with the given tag in depth-first
// document order, or nil.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// childElements returns the direct child elements of n with the given tag.
func childElements(n *html.Node, tag string) []*html.Node {
	var elems []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			elems = append(elems, child)
		}
	}
	return elems
}

// cellText returns the concatenated text content of n, trimmed.
func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// attr returns the value of the named attribute of n, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
