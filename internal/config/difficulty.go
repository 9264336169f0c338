package config

import "github.com/notefall/notefall/internal/engine"

// Difficulty names a chart tier within a song. Song libraries may use
// arbitrary names; the presets below get gameplay scaling.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns the preset tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// scrollMultiplierFor returns the speed scaling for a preset tier.
// Unknown tiers play at normal speed.
func scrollMultiplierFor(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return 0.85
	case DifficultyHard:
		return 1.2
	default:
		return 1.0
	}
}

// missDamageFor scales miss punishment for a preset tier.
func missDamageFor(d Difficulty, base int) int {
	switch d {
	case DifficultyEasy:
		return base / 2
	case DifficultyHard:
		return base * 3 / 2
	default:
		return base
	}
}

// ApplyDifficulty adjusts the tuning for a tier: harder tiers scroll
// faster and drain more health per miss. Timing windows stay fixed so
// judgement feels the same across tiers.
func ApplyDifficulty(t *engine.Tuning, d Difficulty) {
	t.SpeedMultiplier *= scrollMultiplierFor(d)
	t.MissDamage = missDamageFor(d, t.MissDamage)
}
