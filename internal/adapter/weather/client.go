// Package weather combines OpenWeather conditions with NWS alerts into a
// single snapshot for the Buffalo River area.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
)

// Approximate center of the Buffalo National River corridor.
const (
	riverLat = 35.9342
	riverLon = -93.2021
)

// ErrUnavailable marks a snapshot that could not be fetched; callers
// substitute the baked-in fallback and never surface this to the user.
var ErrUnavailable = errors.New("weather: snapshot unavailable")

// Client reads the weather snapshot. A missing API key disables the
// OpenWeather calls entirely and every Fetch returns ErrUnavailable.
type Client struct {
	apiKey     string
	baseURL    string
	alertsURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a weather client. baseURL and alertsURL are overridable
// for tests.
func NewClient(apiKey, baseURL, alertsURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		alertsURL:  alertsURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch returns the combined current/forecast/alerts snapshot. Alert fetch
// failures degrade to an empty alert list; current-conditions failures fail
// the whole snapshot so the caller can fall back.
func (c *Client) Fetch(ctx context.Context) (domain.WeatherSnapshot, error) {
	if c.apiKey == "" {
		return domain.WeatherSnapshot{}, ErrUnavailable
	}

	current, err := c.fetchCurrent(ctx)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	forecast, err := c.fetchForecast(ctx)
	if err != nil {
		c.logger.Warn("forecast fetch failed, omitting", "error", err)
		forecast = nil
	}

	alerts, err := c.fetchAlerts(ctx)
	if err != nil {
		c.logger.Warn("NWS alerts fetch failed, omitting", "error", err)
		alerts = nil
	}

	return domain.WeatherSnapshot{Current: current, Forecast: forecast, Alerts: alerts}, nil
}

func (c *Client) fetchCurrent(ctx context.Context) (domain.CurrentWeather, error) {
	var resp owCurrentResponse
	if err := c.getJSON(ctx, c.openWeatherURL("/weather"), &resp); err != nil {
		return domain.CurrentWeather{}, err
	}

	description := ""
	if len(resp.Weather) > 0 {
		description = resp.Weather[0].Description
	}
	return domain.CurrentWeather{
		TempF:       resp.Main.Temp,
		Condition:   domain.ConditionFromDescription(description),
		Description: description,
		Humidity:    resp.Main.Humidity,
		WindMPH:     resp.Wind.Speed,
		FeelsLikeF:  resp.Main.FeelsLike,
		VisibilityM: float64(resp.Visibility) / 1609.34,
	}, nil
}

func (c *Client) fetchForecast(ctx context.Context) ([]domain.ForecastDay, error) {
	var resp owForecastResponse
	if err := c.getJSON(ctx, c.openWeatherURL("/forecast"), &resp); err != nil {
		return nil, err
	}
	return collapseForecast(resp.List), nil
}

func (c *Client) fetchAlerts(ctx context.Context) ([]domain.WeatherAlert, error) {
	u := c.alertsURL + "?" + url.Values{
		"point": {fmt.Sprintf("%.4f,%.4f", riverLat, riverLon)},
	}.Encode()

	var resp nwsAlertsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	alerts := make([]domain.WeatherAlert, 0, len(resp.Features))
	for _, f := range resp.Features {
		p := f.Properties
		alerts = append(alerts, domain.WeatherAlert{
			ID:          p.ID,
			Title:       p.Event,
			Description: p.Description,
			Severity:    mapSeverity(p.Severity),
			Urgency:     strings.ToLower(p.Urgency),
			Certainty:   strings.ToLower(p.Certainty),
			Expires:     parseNWSTime(p.Expires),
		})
	}
	return alerts, nil
}

func (c *Client) openWeatherURL(path string) string {
	return c.baseURL + path + "?" + url.Values{
		"lat":   {fmt.Sprintf("%.4f", riverLat)},
		"lon":   {fmt.Sprintf("%.4f", riverLon)},
		"appid": {c.apiKey},
		"units": {"imperial"},
	}.Encode()
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// collapseForecast folds 3-hourly entries into at most three daily
// summaries labeled the way the dashboard presents them.
func collapseForecast(entries []owForecastEntry) []domain.ForecastDay {
	labels := []string{"Today", "Tomorrow", "Day 3"}

	var days []domain.ForecastDay
	var currentDate string
	for _, e := range entries {
		ts := time.Unix(e.Dt, 0).UTC()
		date := ts.Format("2006-01-02")

		description := ""
		if len(e.Weather) > 0 {
			description = e.Weather[0].Description
		}
		rain := int(e.Pop * 100)

		if date != currentDate {
			if len(days) == len(labels) {
				break
			}
			currentDate = date
			days = append(days, domain.ForecastDay{
				Day:         labels[len(days)],
				HighF:       e.Main.TempMax,
				LowF:        e.Main.TempMin,
				Condition:   domain.ConditionFromDescription(description),
				Description: description,
				RainChance:  rain,
				WindMPH:     e.Wind.Speed,
				Humidity:    e.Main.Humidity,
			})
			continue
		}

		day := &days[len(days)-1]
		if e.Main.TempMax > day.HighF {
			day.HighF = e.Main.TempMax
		}
		if e.Main.TempMin < day.LowF {
			day.LowF = e.Main.TempMin
		}
		if rain > day.RainChance {
			day.RainChance = rain
			day.Condition = domain.ConditionFromDescription(description)
			day.Description = description
		}
		if e.Wind.Speed > day.WindMPH {
			day.WindMPH = e.Wind.Speed
		}
	}
	return days
}

func mapSeverity(s string) domain.AlertSeverity {
	switch strings.ToLower(s) {
	case "extreme":
		return domain.SeverityExtreme
	case "severe":
		return domain.SeveritySevere
	case "moderate":
		return domain.SeverityModerate
	default:
		return domain.SeverityMinor
	}
}

func parseNWSTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Provider response types, trimmed to the fields used.

type owCurrentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int `json:"visibility"` // meters
}

type owForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		TempMax  float64 `json:"temp_max"`
		TempMin  float64 `json:"temp_min"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"` // probability of precipitation, 0–1
}

type owForecastResponse struct {
	List []owForecastEntry `json:"list"`
}

type nwsAlertsResponse struct {
	Features []struct {
		Properties struct {
			ID          string `json:"id"`
			Event       string `json:"event"`
			Description string `json:"description"`
			Severity    string `json:"severity"`
			Urgency     string `json:"urgency"`
			Certainty   string `json:"certainty"`
			Expires     string `json:"expires"`
		} `json:"properties"`
	} `json:"features"`
}
