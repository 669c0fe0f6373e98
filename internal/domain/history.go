package domain

import (
	"math"
	"time"
)

// HistoryWindow is the number of daily samples kept for the level chart.
const HistoryWindow = 14

// HistoricalPoint is one daily averaged level sample, chronological order.
type HistoricalPoint struct {
	Date      string    `json:"date"` // display label, e.g. "12/15"
	Level     float64   `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// baseFallbackLevels is the reference 14-day trend used to synthesize
// offline chart data. Per-gauge offsets keep the gauges visually distinct
// while staying inside the chart's fixed 3.5–7.0 range.
var baseFallbackLevels = [HistoryWindow]float64{
	4.2, 4.5, 4.8, 5.1, 5.4, 5.8, 6.2, 6.0, 5.7, 5.4, 5.2, 5.0, 4.9, 5.2,
}

var fallbackOffsets = map[string]float64{
	"pruitt":       0,
	"gilbert":      -0.1,
	"rush":         0.1,
	"carver":       -0.2,
	"buffalo_city": -0.3,
}

// FallbackHistory returns the deterministic 14-day series for a gauge, dated
// backward from the current day. Unknown gauge IDs get the pruitt trend. The
// final point is pinned to the gauge's seed level so the chart agrees with
// the cached current reading.
func FallbackHistory(gaugeID string) []HistoricalPoint {
	offset, ok := fallbackOffsets[gaugeID]
	if !ok {
		gaugeID = "pruitt"
		offset = 0
	}

	seed := math.NaN()
	for _, g := range DefaultGauges() {
		if g.ID == gaugeID {
			seed = g.Level
			break
		}
	}

	now := clock.Now()
	points := make([]HistoricalPoint, HistoryWindow)
	for i := range points {
		day := now.AddDate(0, 0, i-(HistoryWindow-1))
		level := math.Round((baseFallbackLevels[i]+offset)*10) / 10
		if i == HistoryWindow-1 && !math.IsNaN(seed) {
			level = seed
		}
		points[i] = HistoricalPoint{
			Date:      day.Format("1/2"),
			Level:     level,
			Timestamp: day,
		}
	}
	return points
}
