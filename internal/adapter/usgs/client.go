// Package usgs fetches Buffalo River gauge readings from the USGS
// Instantaneous Values web service.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
)

// gageHeightCode is the USGS parameter code for gage height in feet.
const gageHeightCode = "00065"

// ErrNoData marks a fetch that completed but carried no usable level value.
// Callers treat it as "keep the cached reading", distinct from a transport
// failure.
var ErrNoData = domain.ErrNoData

// Client queries the USGS Instantaneous Values API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a USGS client. baseURL is overridable for tests.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// FetchReading returns the most recent gage-height observation for a site.
// Returns ErrNoData when the site reports no usable value.
func (c *Client) FetchReading(ctx context.Context, siteID string) (domain.Reading, error) {
	params := url.Values{
		"format":      {"json"},
		"sites":       {siteID},
		"parameterCd": {gageHeightCode},
		"siteStatus":  {"active"},
		"period":      {"P1D"},
	}

	var resp response
	if err := c.doRequest(ctx, params, &resp); err != nil {
		return domain.Reading{}, err
	}

	samples := resp.samples()
	if len(samples) == 0 {
		return domain.Reading{}, ErrNoData
	}

	latest := samples[len(samples)-1]
	value, err := strconv.ParseFloat(latest.Value, 64)
	if err != nil {
		return domain.Reading{}, ErrNoData
	}

	reading := domain.Reading{
		SiteID:     siteID,
		Value:      value,
		Timestamp:  parseUSGSTime(latest.DateTime),
		Qualifiers: firstOrEmpty(latest.Qualifiers),
	}
	if !reading.Usable() {
		return domain.Reading{}, ErrNoData
	}
	return reading, nil
}

// FetchHistory returns the daily-averaged series for a site over the given
// day window, chronological order, at most domain.HistoryWindow points. An
// empty series means "use the fallback for this gauge".
func (c *Client) FetchHistory(ctx context.Context, siteID string, days int) ([]domain.HistoricalPoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := url.Values{
		"format":      {"json"},
		"sites":       {siteID},
		"parameterCd": {gageHeightCode},
		"startDT":     {start.Format("2006-01-02")},
		"endDT":       {end.Format("2006-01-02")},
	}

	var resp response
	if err := c.doRequest(ctx, params, &resp); err != nil {
		return nil, err
	}

	return dailyAverages(resp.samples()), nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values, out *response) error {
	fullURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("usgs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// dailyAverages groups samples by calendar day and averages each day,
// keeping first-seen day order and the last domain.HistoryWindow days.
func dailyAverages(samples []sample) []domain.HistoricalPoint {
	type bucket struct {
		sum   float64
		count int
		first time.Time
	}
	var order []string
	buckets := make(map[string]*bucket)

	for _, s := range samples {
		value, err := strconv.ParseFloat(s.Value, 64)
		if err != nil || !(domain.Reading{Value: value}).Usable() {
			continue
		}
		ts := parseUSGSTime(s.DateTime)
		key := fmt.Sprintf("%d/%d", ts.Month(), ts.Day())
		b, ok := buckets[key]
		if !ok {
			b = &bucket{first: ts}
			buckets[key] = b
			order = append(order, key)
		}
		b.sum += value
		b.count++
	}

	points := make([]domain.HistoricalPoint, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		points = append(points, domain.HistoricalPoint{
			Date:      key,
			Level:     b.sum / float64(b.count),
			Timestamp: b.first,
		})
	}
	if len(points) > domain.HistoryWindow {
		points = points[len(points)-domain.HistoryWindow:]
	}
	return points
}

func parseUSGSTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func firstOrEmpty(qualifiers []string) string {
	if len(qualifiers) == 0 {
		return ""
	}
	return qualifiers[0]
}

// USGS waterservices response types, trimmed to the fields used.

type response struct {
	Value struct {
		TimeSeries []struct {
			Values []struct {
				Value []sample `json:"value"`
			} `json:"values"`
		} `json:"timeSeries"`
	} `json:"value"`
}

type sample struct {
	Value      string   `json:"value"`
	DateTime   string   `json:"dateTime"`
	Qualifiers []string `json:"qualifiers"`
}

// samples flattens the deeply nested USGS envelope into a single list.
func (r *response) samples() []sample {
	if len(r.Value.TimeSeries) == 0 || len(r.Value.TimeSeries[0].Values) == 0 {
		return nil
	}
	return r.Value.TimeSeries[0].Values[0].Value
}
