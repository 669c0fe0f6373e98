package domain

import (
	"strings"
	"time"
)

// ConditionCode is a symbolic weather condition. Display glyphs are resolved
// at the presentation boundary; the data model never carries icons.
type ConditionCode string

const (
	ConditionClear   ConditionCode = "clear"
	ConditionClouds  ConditionCode = "clouds"
	ConditionRain    ConditionCode = "rain"
	ConditionSnow    ConditionCode = "snow"
	ConditionThunder ConditionCode = "thunder"
)

// ConditionFromDescription maps a free-text provider description to a
// condition code. Unrecognized descriptions default to clear.
func ConditionFromDescription(description string) ConditionCode {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "thunder") || strings.Contains(d, "storm"):
		return ConditionThunder
	case strings.Contains(d, "snow"):
		return ConditionSnow
	case strings.Contains(d, "rain") || strings.Contains(d, "drizzle"):
		return ConditionRain
	case strings.Contains(d, "cloud"):
		return ConditionClouds
	default:
		return ConditionClear
	}
}

// AlertSeverity follows the NWS CAP severity scale.
type AlertSeverity string

const (
	SeverityMinor    AlertSeverity = "minor"
	SeverityModerate AlertSeverity = "moderate"
	SeveritySevere   AlertSeverity = "severe"
	SeverityExtreme  AlertSeverity = "extreme"
)

// CurrentWeather is the present observation for the river area.
type CurrentWeather struct {
	TempF       float64       `json:"temp"`
	Condition   ConditionCode `json:"condition"`
	Description string        `json:"description"`
	Humidity    int           `json:"humidity"`
	WindMPH     float64       `json:"windSpeed"`
	FeelsLikeF  float64       `json:"feelsLike"`
	VisibilityM float64       `json:"visibility"` // miles
}

// ForecastDay is one day of the short forecast.
type ForecastDay struct {
	Day         string        `json:"day"`
	HighF       float64       `json:"high"`
	LowF        float64       `json:"low"`
	Condition   ConditionCode `json:"condition"`
	Description string        `json:"description"`
	RainChance  int           `json:"rain"` // percent
	WindMPH     float64       `json:"windSpeed"`
	Humidity    int           `json:"humidity"`
}

// WeatherAlert is an active NWS alert for the river region. Read-only,
// externally sourced.
type WeatherAlert struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    AlertSeverity `json:"severity"`
	Urgency     string        `json:"urgency"`
	Certainty   string        `json:"certainty"`
	Expires     time.Time     `json:"expires"`
}

// WeatherSnapshot bundles everything the weather endpoint returns in one
// read.
type WeatherSnapshot struct {
	Current  CurrentWeather `json:"current"`
	Forecast []ForecastDay  `json:"forecast"`
	Alerts   []WeatherAlert `json:"alerts"`
}

// FallbackWeather returns the baked-in snapshot shown when the weather
// service is unreachable. Values approximate Arkansas winter conditions.
func FallbackWeather() WeatherSnapshot {
	return WeatherSnapshot{
		Current: CurrentWeather{
			TempF:       38,
			Condition:   ConditionClear,
			Description: "Clear Sky",
			Humidity:    72,
			WindMPH:     6,
			FeelsLikeF:  34,
			VisibilityM: 10,
		},
		Forecast: []ForecastDay{
			{Day: "Today", HighF: 42, LowF: 28, Condition: ConditionClear, Description: "Clear Sky", RainChance: 0, WindMPH: 6, Humidity: 72},
			{Day: "Tomorrow", HighF: 46, LowF: 31, Condition: ConditionClouds, Description: "Partly Cloudy", RainChance: 10, WindMPH: 8, Humidity: 68},
			{Day: "Day 3", HighF: 39, LowF: 25, Condition: ConditionRain, Description: "Light Rain", RainChance: 60, WindMPH: 12, Humidity: 85},
		},
	}
}
