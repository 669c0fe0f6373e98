package domain

// Difficulty grades a river section for paddlers.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// RiverSection is a named stretch of river between two landmarks. Immutable
// reference data; Name is the unique key.
type RiverSection struct {
	Name        string     `json:"name"`
	Distance    float64    `json:"distance"` // miles
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	MinLevel    float64    `json:"minLevel"`
	MaxLevel    float64    `json:"maxLevel"`
}

// Sections returns the floatable stretches of the Buffalo River, upstream
// to downstream.
func Sections() []RiverSection {
	return []RiverSection{
		{
			Name:        "Boxley to Ponca",
			Distance:    12,
			Difficulty:  DifficultyBeginner,
			Description: "Scenic family-friendly float with gentle rapids",
			MinLevel:    4.5,
			MaxLevel:    7.0,
		},
		{
			Name:        "Ponca to Kyles Landing",
			Distance:    11,
			Difficulty:  DifficultyBeginner,
			Description: "Popular section with beautiful bluffs",
			MinLevel:    4.8,
			MaxLevel:    6.8,
		},
		{
			Name:        "Kyles Landing to Pruitt",
			Distance:    15,
			Difficulty:  DifficultyIntermediate,
			Description: "Longer float with varied scenery",
			MinLevel:    5.0,
			MaxLevel:    6.5,
		},
		{
			Name:        "Pruitt to Gilbert",
			Distance:    18,
			Difficulty:  DifficultyIntermediate,
			Description: "Full day adventure with remote wilderness",
			MinLevel:    5.2,
			MaxLevel:    6.2,
		},
	}
}

// SectionByName looks up a section by its unique name.
func SectionByName(name string) (RiverSection, bool) {
	for _, s := range Sections() {
		if s.Name == name {
			return s, true
		}
	}
	return RiverSection{}, false
}
