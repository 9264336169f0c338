// Package config provides YAML-based configuration loading for the
// gameplay, judgement, audio, and key binding settings.
package config

import (
	"fmt"

	"github.com/notefall/notefall/internal/engine"
)

// Config is the full Notefall configuration.
type Config struct {
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Judgement JudgementConfig `yaml:"judgement"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Health    HealthConfig    `yaml:"health"`
	Audio     AudioConfig     `yaml:"audio"`
	Keys      KeysConfig      `yaml:"keys"`
}

// GameplayConfig defines the playfield and scroll behaviour.
type GameplayConfig struct {
	Lanes           int     `yaml:"lanes"`
	ScrollRows      int     `yaml:"scroll_rows"`
	RowsPerSecond   float64 `yaml:"rows_per_second"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	RetireGrace     float64 `yaml:"retire_grace"`
}

// JudgementConfig defines the timing windows, in seconds either side of
// a note's scheduled time.
type JudgementConfig struct {
	PerfectWindow float64 `yaml:"perfect_window"`
	GreatWindow   float64 `yaml:"great_window"`
}

// ScoringConfig defines points per judgement.
type ScoringConfig struct {
	PerfectScore int `yaml:"perfect_score"`
	GreatScore   int `yaml:"great_score"`
}

// HealthConfig defines the health gauge.
type HealthConfig struct {
	Max         int `yaml:"max"`
	MissDamage  int `yaml:"miss_damage"`
	PerfectHeal int `yaml:"perfect_heal"`
	GreatHeal   int `yaml:"great_heal"`
}

// AudioConfig defines playback adjustments. Offset shifts judgement
// time relative to the stream position to compensate output latency.
type AudioConfig struct {
	Offset float64 `yaml:"offset"`
	LeadIn float64 `yaml:"lead_in"`
	Volume float64 `yaml:"volume"`
}

// KeysConfig binds keyboard keys to lanes. Lanes is one character per
// lane, left to right.
type KeysConfig struct {
	Lanes string `yaml:"lanes"`
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c Config) Validate() error {
	if c.Gameplay.Lanes < 1 {
		return fmt.Errorf("gameplay.lanes must be at least 1, got %d", c.Gameplay.Lanes)
	}
	if got := len([]rune(c.Keys.Lanes)); got != c.Gameplay.Lanes {
		return fmt.Errorf("keys.lanes binds %d keys for %d lanes", got, c.Gameplay.Lanes)
	}
	if c.Judgement.PerfectWindow <= 0 || c.Judgement.GreatWindow <= 0 {
		return fmt.Errorf("judgement windows must be positive")
	}
	if c.Judgement.PerfectWindow >= c.Judgement.GreatWindow {
		return fmt.Errorf("judgement.perfect_window (%v) must be narrower than great_window (%v)",
			c.Judgement.PerfectWindow, c.Judgement.GreatWindow)
	}
	if c.Gameplay.ScrollRows < 1 || c.Gameplay.RowsPerSecond <= 0 || c.Gameplay.SpeedMultiplier <= 0 {
		return fmt.Errorf("scroll settings must be positive")
	}
	if c.Health.Max < 1 || c.Health.MissDamage < 0 {
		return fmt.Errorf("health.max must be positive and miss_damage non-negative")
	}
	if c.Scoring.PerfectScore < c.Scoring.GreatScore {
		return fmt.Errorf("scoring.perfect_score (%d) must be at least great_score (%d)",
			c.Scoring.PerfectScore, c.Scoring.GreatScore)
	}
	return nil
}

// Tuning converts the configuration into the engine's gameplay
// constants.
func (c Config) Tuning() engine.Tuning {
	return engine.Tuning{
		PerfectWindow:   c.Judgement.PerfectWindow,
		GreatWindow:     c.Judgement.GreatWindow,
		PerfectScore:    c.Scoring.PerfectScore,
		GreatScore:      c.Scoring.GreatScore,
		MaxHealth:       c.Health.Max,
		MissDamage:      c.Health.MissDamage,
		PerfectHeal:     c.Health.PerfectHeal,
		GreatHeal:       c.Health.GreatHeal,
		ScrollRows:      c.Gameplay.ScrollRows,
		RowsPerSecond:   c.Gameplay.RowsPerSecond,
		SpeedMultiplier: c.Gameplay.SpeedMultiplier,
		RetireGrace:     c.Gameplay.RetireGrace,
	}
}

// LaneKeys returns the per-lane key runes, left to right.
func (c Config) LaneKeys() []rune {
	return []rune(c.Keys.Lanes)
}
