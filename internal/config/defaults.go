package config

import (
	_ "embed"
)

//go:embed defaults/notefall.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the default Notefall configuration.
func DefaultConfig() Config {
	return Config{
		Gameplay: GameplayConfig{
			Lanes:           6,
			ScrollRows:      20,
			RowsPerSecond:   14,
			SpeedMultiplier: 1.0,
			RetireGrace:     1.0,
		},
		Judgement: JudgementConfig{
			PerfectWindow: 0.08,
			GreatWindow:   0.15,
		},
		Scoring: ScoringConfig{
			PerfectScore: 100,
			GreatScore:   50,
		},
		Health: HealthConfig{
			Max:         100,
			MissDamage:  10,
			PerfectHeal: 2,
			GreatHeal:   1,
		},
		Audio: AudioConfig{
			Offset: 0.0,
			LeadIn: 2.0,
			Volume: 0.0,
		},
		Keys: KeysConfig{
			Lanes: "sdfjkl",
		},
	}
}

// DefaultYAML returns the embedded default configuration file, for the
// config init command to write out as a starting point.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
