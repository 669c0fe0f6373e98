package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionFromDescription(t *testing.T) {
	cases := map[string]ConditionCode{
		"Clear Sky":          ConditionClear,
		"Partly Cloudy":      ConditionClouds,
		"Light Rain":         ConditionRain,
		"heavy drizzle":      ConditionRain,
		"Snow Showers":       ConditionSnow,
		"Thunderstorm":       ConditionThunder,
		"severe storm cells": ConditionThunder,
		"":                   ConditionClear,
	}
	for description, want := range cases {
		assert.Equal(t, want, ConditionFromDescription(description), "description %q", description)
	}
}

func TestFallbackWeather(t *testing.T) {
	snap := FallbackWeather()
	assert.Equal(t, 38.0, snap.Current.TempF)
	assert.Equal(t, ConditionClear, snap.Current.Condition)
	assert.Len(t, snap.Forecast, 3)
	assert.Empty(t, snap.Alerts, "fallback never fabricates alerts")
}
