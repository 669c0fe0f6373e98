package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusFloatable, DeriveStatus(4.8), "lower bound inclusive")
	assert.Equal(t, StatusFloatable, DeriveStatus(6.6), "upper bound inclusive")
	assert.Equal(t, StatusFloatable, DeriveStatus(5.5))
	assert.Equal(t, StatusLow, DeriveStatus(4.7))
	assert.Equal(t, StatusHigh, DeriveStatus(6.7))
}

func TestReading_Usable(t *testing.T) {
	assert.True(t, Reading{Value: 5.2}.Usable())
	assert.True(t, Reading{Value: 0}.Usable())
	assert.False(t, Reading{Value: math.NaN()}.Usable())
	assert.False(t, Reading{Value: math.Inf(1)}.Usable())
	assert.False(t, Reading{Value: -999999}.Usable(), "USGS missing-value sentinel")
}

func TestDefaultGauges_StatusConsistentWithLevel(t *testing.T) {
	gauges := DefaultGauges()
	assert.Len(t, gauges, 5)
	for _, g := range gauges {
		assert.Equal(t, DeriveStatus(g.Level), g.Status, "gauge %s", g.ID)
		assert.NotEmpty(t, g.SiteID, "gauge %s", g.ID)
	}
}
