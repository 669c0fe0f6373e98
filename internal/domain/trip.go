package domain

import "math"

// ExperienceLevel adjusts paddling pace expectations.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Outfitter pricing and pace constants.
const (
	hoursPerMile    = 0.4
	canoeRentalUSD  = 45
	shuttleSmallUSD = 15
	shuttleLargeUSD = 25
)

// TripCalculation is the estimated plan for one float trip. Purely derived
// from its inputs; recompute rather than store.
type TripCalculation struct {
	Canoes        int     `json:"canoes"`
	EstimatedCost float64 `json:"estimatedCost"`
	EstimatedTime float64 `json:"estimatedTime"` // hours, one decimal
	ShuttleCost   float64 `json:"shuttleCost"`
	LaunchTime    string  `json:"launchTime"`
	IsRecommended bool    `json:"isRecommended"`
}

// EstimateTrip computes a float plan for a section at the current level.
// Deterministic and side-effect free; unknown experience levels behave as
// intermediate (multiplier 1.0).
func EstimateTrip(section RiverSection, currentLevel float64, experience ExperienceLevel, groupSize int) TripCalculation {
	baseTime := section.Distance * hoursPerMile

	levelMultiplier := 1.0
	switch {
	case currentLevel > 5.5:
		levelMultiplier = 0.8 // faster in higher water
	case currentLevel < 5.0:
		levelMultiplier = 1.3 // slower in low water
	}

	experienceMultiplier := 1.0
	switch experience {
	case ExperienceBeginner:
		experienceMultiplier = 1.3
	case ExperienceAdvanced:
		experienceMultiplier = 0.8
	}

	groupMultiplier := 1.0
	switch {
	case groupSize > 6:
		groupMultiplier = 1.2
	case groupSize < 3:
		groupMultiplier = 0.9
	}

	totalTime := baseTime * levelMultiplier * experienceMultiplier * groupMultiplier

	canoes := (groupSize + 1) / 2
	launchTime := "8:00 AM"
	if experience == ExperienceBeginner {
		launchTime = "9:00 AM"
	}
	shuttleCost := float64(shuttleSmallUSD)
	if groupSize > 6 {
		shuttleCost = shuttleLargeUSD
	}

	return TripCalculation{
		Canoes:        canoes,
		EstimatedCost: float64(canoes * canoeRentalUSD),
		EstimatedTime: math.Round(totalTime*10) / 10,
		ShuttleCost:   shuttleCost,
		LaunchTime:    launchTime,
		IsRecommended: currentLevel >= section.MinLevel && currentLevel <= section.MaxLevel,
	}
}
