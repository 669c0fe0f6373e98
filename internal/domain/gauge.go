package domain

import (
	"errors"
	"math"
	"time"
)

// ErrNoData marks a gauge fetch that completed but carried no usable level.
// Distinct from a transport failure; callers keep the cached reading either
// way but classify the outage differently.
var ErrNoData = errors.New("gauge reading unavailable")

// Floatable level bounds in feet. Shared by status derivation and the
// default alert subscription range.
const (
	MinFloatable = 4.8
	MaxFloatable = 6.6
)

// GaugeStatus classifies a level relative to the floatable range.
type GaugeStatus string

const (
	StatusFloatable GaugeStatus = "floatable"
	StatusLow       GaugeStatus = "low"
	StatusHigh      GaugeStatus = "high"
)

// DeriveStatus maps a gauge level to its floatability status.
func DeriveStatus(level float64) GaugeStatus {
	switch {
	case level >= MinFloatable && level <= MaxFloatable:
		return StatusFloatable
	case level > MaxFloatable:
		return StatusHigh
	default:
		return StatusLow
	}
}

// Gauge is a named river monitoring point. Level and Status describe the
// latest observation; Status is always recomputed from Level.
type Gauge struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	SiteID    string      `json:"siteId"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Level     float64     `json:"level"`
	Status    GaugeStatus `json:"status"`
}

// Reading is a single observation returned by the gauge data source.
type Reading struct {
	SiteID     string
	Value      float64
	Timestamp  time.Time
	Qualifiers string
}

// Usable reports whether the reading carries a finite level value. The USGS
// service marks missing samples with NaN or large negative sentinels.
func (r Reading) Usable() bool {
	return !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) && r.Value > -9999
}

// DefaultGauges returns the five Buffalo River gauges with their seed levels,
// used as the catalog's starting state before the first live refresh.
func DefaultGauges() []Gauge {
	return []Gauge{
		{ID: "pruitt", Name: "Pruitt", SiteID: "07055875", Latitude: 35.9342, Longitude: -93.2021, Level: 5.2, Status: StatusFloatable},
		{ID: "gilbert", Name: "Gilbert", SiteID: "07056000", Latitude: 35.8876, Longitude: -92.9943, Level: 4.9, Status: StatusFloatable},
		{ID: "rush", Name: "Rush", SiteID: "07055646", Latitude: 36.1187, Longitude: -93.1065, Level: 6.1, Status: StatusFloatable},
		{ID: "carver", Name: "Carver", SiteID: "07055660", Latitude: 36.0876, Longitude: -93.0432, Level: 5.8, Status: StatusFloatable},
		{ID: "buffalo_city", Name: "Buffalo City", SiteID: "07056700", Latitude: 35.8234, Longitude: -92.8765, Level: 4.3, Status: StatusLow},
	}
}
