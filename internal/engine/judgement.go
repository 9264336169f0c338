// Package engine implements the run state machine for a rhythm game
// session: per-frame note scheduling, press judgment, combo/health/score
// accounting, and end-of-run outcome computation. The engine is pure
// logic with no external dependencies; the platform owns timing, audio,
// and rendering.
package engine

// Judgement classifies a resolved note.
type Judgement int8

const (
	JudgementNone Judgement = iota
	JudgementPerfect
	JudgementGreat
	JudgementMiss
)

// String returns a human-readable name for the judgement.
func (j Judgement) String() string {
	switch j {
	case JudgementNone:
		return "None"
	case JudgementPerfect:
		return "Perfect"
	case JudgementGreat:
		return "Great"
	case JudgementMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Event reports a note resolution to the presentation layer (judgement
// flash, tap sound). Offset is the signed timing error in seconds for
// hits (press time minus target time); it is zero for deadline misses.
type Event struct {
	Lane      int
	Judgement Judgement
	Offset    float64
}

// Tuning holds the per-run constants: judgement windows, score and
// health effects, and scroll geometry. Fixed for the duration of a run.
type Tuning struct {
	// Judgement windows in seconds. Perfect < Great; both boundaries
	// are exclusive on the outer edge.
	PerfectWindow float64
	GreatWindow   float64

	PerfectScore int
	GreatScore   int

	MaxHealth   int
	PerfectHeal int
	GreatHeal   int
	MissDamage  int

	// ScrollRows is the distance from spawn to the judgement line in
	// rows; RowsPerSecond is the base scroll speed scaled by the
	// player's SpeedMultiplier.
	ScrollRows      int
	RowsPerSecond   float64
	SpeedMultiplier float64

	// RetireGrace is how long a resolved note stays in the active set
	// past its target time, so presentation can still reference it.
	RetireGrace float64
}

// DefaultTuning returns the stock gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		PerfectWindow:   0.08,
		GreatWindow:     0.15,
		PerfectScore:    100,
		GreatScore:      50,
		MaxHealth:       100,
		PerfectHeal:     2,
		GreatHeal:       1,
		MissDamage:      10,
		ScrollRows:      20,
		RowsPerSecond:   14,
		SpeedMultiplier: 1.0,
		RetireGrace:     1.0,
	}
}

// FallDuration returns how many seconds a note is visible before it
// reaches the judgement line. Notes spawn this far ahead of their
// target time.
func (t Tuning) FallDuration() float64 {
	return float64(t.ScrollRows) / (t.RowsPerSecond * t.SpeedMultiplier)
}
