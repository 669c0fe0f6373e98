// Package catalog holds the current dashboard state: gauge levels, the
// weather snapshot, and the history series for the selected gauge. The
// refresh loop writes; the HTTP API reads.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
)

// Catalog is the single source of truth for current levels. Derived status
// is recomputed on every write so it can never disagree with the level.
type Catalog struct {
	mu          sync.RWMutex
	gauges      map[string]domain.Gauge
	order       []string
	selected    string
	history     []domain.HistoricalPoint
	weather     domain.WeatherSnapshot
	lastUpdated time.Time
	advisory    string
}

// Snapshot is a consistent read of the whole catalog.
type Snapshot struct {
	Gauges      []domain.Gauge           `json:"gauges"`
	Selected    string                   `json:"selectedGauge"`
	History     []domain.HistoricalPoint `json:"history"`
	Weather     domain.WeatherSnapshot   `json:"weather"`
	LastUpdated time.Time                `json:"lastUpdated"`
	Advisory    string                   `json:"advisory,omitempty"`
}

// New seeds a catalog with the given gauges and selects selectedID. The
// seeds double as the cached values shown while live data is unavailable.
func New(gauges []domain.Gauge, selectedID string) (*Catalog, error) {
	c := &Catalog{
		gauges:  make(map[string]domain.Gauge, len(gauges)),
		weather: domain.FallbackWeather(),
	}
	for _, g := range gauges {
		g.Status = domain.DeriveStatus(g.Level)
		c.gauges[g.ID] = g
		c.order = append(c.order, g.ID)
	}
	if _, ok := c.gauges[selectedID]; !ok {
		return nil, fmt.Errorf("unknown gauge %q", selectedID)
	}
	c.selected = selectedID
	c.history = domain.FallbackHistory(selectedID)
	return c, nil
}

// Gauges returns the gauges in their configured order.
func (c *Catalog) Gauges() []domain.Gauge {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Gauge, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.gauges[id])
	}
	return out
}

// Levels returns the current level per gauge ID.
func (c *Catalog) Levels() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	levels := make(map[string]float64, len(c.gauges))
	for id, g := range c.gauges {
		levels[id] = g.Level
	}
	return levels
}

// ApplyReading stores a new level for a gauge and recomputes its status.
// Unknown gauge IDs are ignored.
func (c *Catalog) ApplyReading(gaugeID string, level float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.gauges[gaugeID]
	if !ok {
		return
	}
	g.Level = level
	g.Status = domain.DeriveStatus(level)
	c.gauges[gaugeID] = g
}

// Selected returns the currently selected gauge.
func (c *Catalog) Selected() domain.Gauge {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gauges[c.selected]
}

// Select switches the selected gauge. Returns false for unknown IDs.
func (c *Catalog) Select(gaugeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.gauges[gaugeID]; !ok {
		return false
	}
	c.selected = gaugeID
	return true
}

// SetHistory replaces the history series for the selected gauge.
func (c *Catalog) SetHistory(points []domain.HistoricalPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = points
}

// SetWeather replaces the weather snapshot.
func (c *Catalog) SetWeather(snap domain.WeatherSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.weather = snap
}

// SetAdvisory records the soft advisory message shown with cached data.
// Empty clears it.
func (c *Catalog) SetAdvisory(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advisory = msg
}

// MarkUpdated records the completion time of a refresh cycle.
func (c *Catalog) MarkUpdated(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUpdated = t
}

// Snapshot returns a consistent copy of the catalog for rendering.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gauges := make([]domain.Gauge, 0, len(c.order))
	for _, id := range c.order {
		gauges = append(gauges, c.gauges[id])
	}
	history := make([]domain.HistoricalPoint, len(c.history))
	copy(history, c.history)

	return Snapshot{
		Gauges:      gauges,
		Selected:    c.selected,
		History:     history,
		Weather:     c.weather,
		LastUpdated: c.lastUpdated,
		Advisory:    c.advisory,
	}
}
