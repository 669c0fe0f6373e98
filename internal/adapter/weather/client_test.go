package weather

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
)

const currentBody = `{
	"main": {"temp": 38.1, "feels_like": 34.0, "humidity": 72},
	"weather": [{"description": "clear sky"}],
	"wind": {"speed": 6.2},
	"visibility": 16093
}`

const forecastBody = `{"list": [
	{"dt": 1735387200, "main": {"temp_max": 42, "temp_min": 30, "humidity": 70}, "weather": [{"description": "clear sky"}], "wind": {"speed": 6}, "pop": 0},
	{"dt": 1735398000, "main": {"temp_max": 44, "temp_min": 28, "humidity": 74}, "weather": [{"description": "light rain"}], "wind": {"speed": 9}, "pop": 0.6},
	{"dt": 1735473600, "main": {"temp_max": 46, "temp_min": 31, "humidity": 68}, "weather": [{"description": "few clouds"}], "wind": {"speed": 8}, "pop": 0.1}
]}`

const alertsBody = `{"features": [
	{"properties": {
		"id": "urn:oid:2.49.0.1",
		"event": "Flood Warning",
		"description": "The Buffalo River near Ponca is rising.",
		"severity": "Severe",
		"urgency": "Expected",
		"certainty": "Likely",
		"expires": "2024-12-29T06:00:00-06:00"
	}}
]}`

func newTestClient(t *testing.T, apiKey string, owHandler, nwsHandler http.HandlerFunc) *Client {
	t.Helper()
	ow := httptest.NewServer(owHandler)
	nws := httptest.NewServer(nwsHandler)
	t.Cleanup(ow.Close)
	t.Cleanup(nws.Close)
	return NewClient(apiKey, ow.URL, nws.URL, 2*time.Second, slog.Default())
}

func serveWeather(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			assert.Equal(t, "imperial", r.URL.Query().Get("units"))
			w.Write([]byte(currentBody))
		case "/forecast":
			w.Write([]byte(forecastBody))
		default:
			http.NotFound(w, r)
		}
	}
}

func TestFetch_CombinedSnapshot(t *testing.T) {
	client := newTestClient(t, "test-key", serveWeather(t), func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("point"))
		w.Write([]byte(alertsBody))
	})

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 38.1, snap.Current.TempF)
	assert.Equal(t, domain.ConditionClear, snap.Current.Condition)
	assert.Equal(t, 72, snap.Current.Humidity)
	assert.InDelta(t, 10.0, snap.Current.VisibilityM, 0.01)

	require.Len(t, snap.Forecast, 2, "entries collapse by day")
	assert.Equal(t, "Today", snap.Forecast[0].Day)
	assert.Equal(t, 44.0, snap.Forecast[0].HighF, "daily high is the max across entries")
	assert.Equal(t, 28.0, snap.Forecast[0].LowF)
	assert.Equal(t, 60, snap.Forecast[0].RainChance)
	assert.Equal(t, domain.ConditionRain, snap.Forecast[0].Condition, "condition follows the rainiest entry")
	assert.Equal(t, "Tomorrow", snap.Forecast[1].Day)

	require.Len(t, snap.Alerts, 1)
	alert := snap.Alerts[0]
	assert.Equal(t, "Flood Warning", alert.Title)
	assert.Equal(t, domain.SeveritySevere, alert.Severity)
	assert.Equal(t, "expected", alert.Urgency)
	assert.Equal(t, "likely", alert.Certainty)
	assert.False(t, alert.Expires.IsZero())
}

func TestFetch_NoAPIKeyIsUnavailable(t *testing.T) {
	client := NewClient("", "http://unused", "http://unused", time.Second, slog.Default())
	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_CurrentFailureFailsSnapshot(t *testing.T) {
	client := newTestClient(t, "test-key",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(alertsBody)) },
	)
	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_AlertFailureDegradesToEmpty(t *testing.T) {
	client := newTestClient(t, "test-key", serveWeather(t),
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
	)

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err, "alert failures never fail the snapshot")
	assert.Empty(t, snap.Alerts)
	assert.NotZero(t, snap.Current.TempF)
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, domain.SeverityExtreme, mapSeverity("Extreme"))
	assert.Equal(t, domain.SeveritySevere, mapSeverity("severe"))
	assert.Equal(t, domain.SeverityModerate, mapSeverity("Moderate"))
	assert.Equal(t, domain.SeverityMinor, mapSeverity("Minor"))
	assert.Equal(t, domain.SeverityMinor, mapSeverity("Unknown"))
}
