package gismeteo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiito/weatherApi/internal/weather"
	"github.com/laiito/weatherApi/internal/weather/gismeteo"
)

// diaryRow is one day entry of a fixture diary page.
type diaryRow struct {
	day      int
	tempMax  string
	pressure string
	icon     string
	tempMin  string
}

// diaryPage renders a diary fixture with the real column layout: day,
// day temperature, day pressure, clouds icon, precipitation, wind,
// evening temperature.
func diaryPage(rows []diaryRow) string {
	var sb strings.Builder
	sb.WriteString("<html><body><table><tbody>")
	for _, r := range rows {
		fmt.Fprintf(&sb,
			"<tr><td>%d</td><td>%s</td><td>%s</td>"+
				"<td><img src=\"https://st.gismeteo.st/assets/%s\"/></td>"+
				"<td></td><td></td><td>%s</td><td></td><td></td></tr>",
			r.day, r.tempMax, r.pressure, r.icon, r.tempMin)
	}
	sb.WriteString("</tbody></table></body></html>")
	return sb.String()
}

func newTestClient(t *testing.T, body string, status int) (*gismeteo.Client, *string) {
	t.Helper()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return gismeteo.NewClient(gismeteo.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	}), &requestedPath
}

func TestClient_Daily(t *testing.T) {
	page := diaryPage([]diaryRow{
		{day: 9, tempMax: "-5", pressure: "748", icon: "sun.png", tempMin: "-12"},
		{day: 10, tempMax: "-3", pressure: "745", icon: "suncl.png", tempMin: "-9"},
		{day: 11, tempMax: "0", pressure: "739", icon: "dull.png", tempMin: "-4"},
	})

	client, requestedPath := newTestClient(t, page, http.StatusOK)

	date := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)
	obs, err := client.Daily(context.Background(), 4368, date)
	require.NoError(t, err)

	assert.Equal(t, "/diary/4368/2023/01/", *requestedPath)
	assert.Equal(t, -3, obs.TempMax)
	assert.Equal(t, -9, obs.TempMin)
	assert.Equal(t, 745, obs.Pressure)
	assert.Equal(t, 50.0, obs.Clouds)
}

func TestClient_Daily_FastPathRowMatches(t *testing.T) {
	// Full month, no gaps: row index day-1 is the right row.
	var rows []diaryRow
	for day := 1; day <= 31; day++ {
		rows = append(rows, diaryRow{day: day, tempMax: "+2", pressure: "751", icon: "sunc.png", tempMin: "-1"})
	}
	client, _ := newTestClient(t, diaryPage(rows), http.StatusOK)

	date := time.Date(2022, time.March, 17, 0, 0, 0, 0, time.UTC)
	obs, err := client.Daily(context.Background(), 4079, date)
	require.NoError(t, err)

	assert.Equal(t, 2, obs.TempMax)
	assert.Equal(t, 25.0, obs.Clouds)
}

func TestClient_Daily_GappedMonthFallsBackToScan(t *testing.T) {
	// Days 2 and 3 are missing, so row index day-1 points at the wrong
	// day and the client must locate the row by its day-number cell.
	page := diaryPage([]diaryRow{
		{day: 1, tempMax: "10", pressure: "755", icon: "sun.png", tempMin: "4"},
		{day: 4, tempMax: "12", pressure: "753", icon: "sunc.png", tempMin: "5"},
		{day: 5, tempMax: "14", pressure: "750", icon: "dull.png", tempMin: "7"},
	})
	client, _ := newTestClient(t, page, http.StatusOK)

	date := time.Date(2021, time.May, 5, 0, 0, 0, 0, time.UTC)
	obs, err := client.Daily(context.Background(), 4501, date)
	require.NoError(t, err)

	assert.Equal(t, 14, obs.TempMax)
	assert.Equal(t, 7, obs.TempMin)
	assert.Equal(t, 750, obs.Pressure)
	assert.Equal(t, 100.0, obs.Clouds)
}

func TestClient_Daily_DayAbsent(t *testing.T) {
	page := diaryPage([]diaryRow{
		{day: 1, tempMax: "10", pressure: "755", icon: "sun.png", tempMin: "4"},
		{day: 2, tempMax: "11", pressure: "754", icon: "sun.png", tempMin: "5"},
	})
	client, _ := newTestClient(t, page, http.StatusOK)

	date := time.Date(2021, time.May, 20, 0, 0, 0, 0, time.UTC)
	_, err := client.Daily(context.Background(), 4501, date)
	assert.ErrorIs(t, err, weather.ErrNoData)
}

func TestClient_Daily_NoTableBody(t *testing.T) {
	client, _ := newTestClient(t, "<html><body><p>нет данных</p></body></html>", http.StatusOK)

	date := time.Date(2021, time.May, 5, 0, 0, 0, 0, time.UTC)
	_, err := client.Daily(context.Background(), 4501, date)
	assert.ErrorIs(t, err, weather.ErrNoData)
}

func TestClient_Daily_UnknownCloudIcon(t *testing.T) {
	// An icon outside the fixed lookup table must not default silently;
	// the whole record is rejected as no data.
	page := diaryPage([]diaryRow{
		{day: 5, tempMax: "14", pressure: "750", icon: "storm.png", tempMin: "7"},
	})
	client, _ := newTestClient(t, page, http.StatusOK)

	date := time.Date(2021, time.May, 5, 0, 0, 0, 0, time.UTC)
	_, err := client.Daily(context.Background(), 4501, date)
	assert.ErrorIs(t, err, weather.ErrNoData)
}

func TestClient_Daily_UpstreamError(t *testing.T) {
	client, _ := newTestClient(t, "", http.StatusBadGateway)

	date := time.Date(2021, time.May, 5, 0, 0, 0, 0, time.UTC)
	_, err := client.Daily(context.Background(), 4501, date)
	require.Error(t, err)
	assert.NotErrorIs(t, err, weather.ErrNoData)
}
