package domain

import "time"

// AlertSubscription is a user's saved alert preference for one gauge and
// level range. ID and CreatedAt are assigned by the store at creation.
type AlertSubscription struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	GaugeID       string    `json:"gaugeId"`
	MinLevel      float64   `json:"minLevel"`
	MaxLevel      float64   `json:"maxLevel"`
	WeatherAlerts bool      `json:"weatherAlerts"`
	Enabled       bool      `json:"enabled"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InRange reports whether a level falls inside the subscription's preferred
// range, bounds inclusive.
func (s AlertSubscription) InRange(level float64) bool {
	return level >= s.MinLevel && level <= s.MaxLevel
}
