package engine

import (
	"selfcare/internal/storage"
)

// ExperiencePerLevel is the experience needed to advance one level. Every
// level computation, including display progress, uses it.
const ExperiencePerLevel = 1000

// Progression is the outcome of applying experience to a character.
type Progression struct {
	Character storage.Character
	LeveledUp bool
}

// LevelForTotalExperience returns floor(total / ExperiencePerLevel) + 1.
func LevelForTotalExperience(total int) int {
	if total <= 0 {
		return 1
	}
	return total/ExperiencePerLevel + 1
}

// ExperienceIntoLevel is the progress made inside the current level.
func ExperienceIntoLevel(total int) int {
	if total <= 0 {
		return 0
	}
	return total % ExperiencePerLevel
}

// LevelProgress returns the fraction of the current level completed, in [0, 1).
func LevelProgress(total int) float64 {
	return float64(ExperienceIntoLevel(total)) / float64(ExperiencePerLevel)
}

// ApplyExperience adds delta to c. A negative delta is rejected and c is
// returned unchanged.
func ApplyExperience(c storage.Character, delta int) (Progression, error) {
	if delta < 0 {
		return Progression{Character: c}, ValidationError{Field: "experience", Reason: "delta must not be negative"}
	}

	total := c.TotalExperience + delta
	level := LevelForTotalExperience(total)

	next := c
	next.TotalExperience = total
	next.Level = level
	next.Experience = ExperienceIntoLevel(total)

	return Progression{
		Character: next,
		LeveledUp: level > c.Level,
	}, nil
}

// Normalize re-derives level and within-level experience from the total.
func Normalize(c storage.Character) storage.Character {
	if c.TotalExperience < 0 {
		c.TotalExperience = 0
	}
	c.Level = LevelForTotalExperience(c.TotalExperience)
	c.Experience = ExperienceIntoLevel(c.TotalExperience)
	return c
}
