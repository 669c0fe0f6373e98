package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func section(distance, minLevel, maxLevel float64) RiverSection {
	return RiverSection{Name: "test section", Distance: distance, MinLevel: minLevel, MaxLevel: maxLevel}
}

func TestEstimateTrip_ReferenceExample(t *testing.T) {
	// 12 miles at 5.2 ft, beginner group of 4:
	// 4.8 base hours * 1.0 level * 1.3 experience * 1.0 group = 6.24 → 6.2
	s := section(12, 4.5, 7.0)
	calc := EstimateTrip(s, 5.2, ExperienceBeginner, 4)

	assert.Equal(t, 6.2, calc.EstimatedTime)
	assert.Equal(t, 2, calc.Canoes)
	assert.Equal(t, 90.0, calc.EstimatedCost)
	assert.Equal(t, 15.0, calc.ShuttleCost)
	assert.Equal(t, "9:00 AM", calc.LaunchTime)
	assert.True(t, calc.IsRecommended)
}

func TestEstimateTrip_LevelMultipliers(t *testing.T) {
	s := section(10, 4.8, 6.6)

	t.Run("high water is faster", func(t *testing.T) {
		calc := EstimateTrip(s, 6.0, ExperienceIntermediate, 4)
		assert.Equal(t, 3.2, calc.EstimatedTime) // 4.0 * 0.8
	})

	t.Run("low water is slower", func(t *testing.T) {
		calc := EstimateTrip(s, 4.2, ExperienceIntermediate, 4)
		assert.Equal(t, 5.2, calc.EstimatedTime) // 4.0 * 1.3
	})

	t.Run("normal range is unchanged", func(t *testing.T) {
		calc := EstimateTrip(s, 5.3, ExperienceIntermediate, 4)
		assert.Equal(t, 4.0, calc.EstimatedTime)
	})
}

func TestEstimateTrip_GroupAdjustments(t *testing.T) {
	s := section(10, 4.8, 6.6)

	t.Run("large group", func(t *testing.T) {
		calc := EstimateTrip(s, 5.3, ExperienceIntermediate, 8)
		assert.Equal(t, 4.8, calc.EstimatedTime) // 4.0 * 1.2
		assert.Equal(t, 4, calc.Canoes)
		assert.Equal(t, 25.0, calc.ShuttleCost)
		assert.Equal(t, "8:00 AM", calc.LaunchTime)
	})

	t.Run("small group", func(t *testing.T) {
		calc := EstimateTrip(s, 5.3, ExperienceIntermediate, 2)
		assert.Equal(t, 3.6, calc.EstimatedTime) // 4.0 * 0.9
		assert.Equal(t, 1, calc.Canoes)
	})

	t.Run("odd group needs extra canoe", func(t *testing.T) {
		for g := 1; g <= 9; g++ {
			calc := EstimateTrip(s, 5.3, ExperienceIntermediate, g)
			want := (g + 1) / 2
			assert.Equal(t, want, calc.Canoes, "group of %d", g)
			assert.Equal(t, float64(want*45), calc.EstimatedCost, "group of %d", g)
		}
	})
}

func TestEstimateTrip_UnknownExperienceDefaultsToIntermediate(t *testing.T) {
	s := section(10, 4.8, 6.6)
	calc := EstimateTrip(s, 5.3, ExperienceLevel("expert"), 4)
	assert.Equal(t, 4.0, calc.EstimatedTime)
	assert.Equal(t, "8:00 AM", calc.LaunchTime)
}

func TestEstimateTrip_Recommendation(t *testing.T) {
	s := section(10, 5.0, 6.5)

	assert.True(t, EstimateTrip(s, 5.0, ExperienceBeginner, 4).IsRecommended, "lower bound inclusive")
	assert.True(t, EstimateTrip(s, 6.5, ExperienceBeginner, 4).IsRecommended, "upper bound inclusive")
	assert.False(t, EstimateTrip(s, 4.9, ExperienceBeginner, 4).IsRecommended)
	assert.False(t, EstimateTrip(s, 6.6, ExperienceBeginner, 4).IsRecommended)
}

func TestEstimateTrip_TimeAlwaysPositiveAndRounded(t *testing.T) {
	for _, s := range Sections() {
		for _, level := range []float64{3.5, 4.9, 5.2, 5.8, 7.2} {
			calc := EstimateTrip(s, level, ExperienceAdvanced, 7)
			require.Positive(t, calc.EstimatedTime, "%s at %.1f ft", s.Name, level)
			// one decimal place
			scaled := calc.EstimatedTime * 10
			assert.InDelta(t, scaled, float64(int(scaled+0.5)), 1e-9)
		}
	}
}
