package engine

import (
	"github.com/notefall/notefall/internal/chart"
)

// Phase is the run lifecycle state. Idle is the freshly-initialized
// pre-run state; Active is entered when playback starts; Completed and
// Failed are terminal. A retry constructs a brand-new Run.
type Phase int8

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
	PhaseFailed
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseActive:
		return "Active"
	case PhaseCompleted:
		return "Completed"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ActiveNote is a chart note inside its visible/judgeable window,
// together with its resolution state.
type ActiveNote struct {
	chart.Note
	Resolved bool
	Result   Judgement
}

// Run is the mutable session record for one play-through of a chart.
// It is exclusively owned by the frame loop: presses are judged first,
// then Advance runs, so a press always gets first chance at a note
// before the same frame's deadline-miss pass.
type Run struct {
	chart *chart.Chart
	tun   Tuning

	phase    Phase
	score    int
	combo    int
	maxCombo int
	health   int
	perfects int
	greats   int
	misses   int

	// cursor indexes the next chart note not yet promoted to active.
	// It only ever moves forward within a run.
	cursor int
	active []*ActiveNote
}

// NewRun creates an Idle run over the given chart with zeroed counters
// and full health.
func NewRun(c *chart.Chart, tun Tuning) *Run {
	return &Run{
		chart:  c,
		tun:    tun,
		phase:  PhaseIdle,
		health: tun.MaxHealth,
	}
}

// Start moves the run from Idle to Active. Any other phase is a no-op.
func (r *Run) Start() {
	if r.phase == PhaseIdle {
		r.phase = PhaseActive
	}
}

// Phase returns the current lifecycle state.
func (r *Run) Phase() Phase { return r.phase }

// Done reports whether the run reached a terminal phase.
func (r *Run) Done() bool {
	return r.phase == PhaseCompleted || r.phase == PhaseFailed
}

// Score returns the current score.
func (r *Run) Score() int { return r.score }

// Combo returns the current streak of consecutive non-miss judgements.
func (r *Run) Combo() int { return r.combo }

// MaxCombo returns the highest combo reached so far.
func (r *Run) MaxCombo() int { return r.maxCombo }

// Health returns the current health, in [0, MaxHealth].
func (r *Run) Health() int { return r.health }

// Counts returns the perfect, great, and miss tallies.
func (r *Run) Counts() (perfects, greats, misses int) {
	return r.perfects, r.greats, r.misses
}

// Active returns the live note window. Callers must treat it as
// read-only; it is reused between frames.
func (r *Run) Active() []*ActiveNote { return r.active }

// Chart returns the chart this run plays.
func (r *Run) Chart() *chart.Chart { return r.chart }

// Tuning returns the run's gameplay constants.
func (r *Run) Tuning() Tuning { return r.tun }

// Snapshot captures the run state for determinism tests.
type Snapshot struct {
	Phase    Phase
	Score    int
	Combo    int
	MaxCombo int
	Health   int
	Perfects int
	Greats   int
	Misses   int
	Cursor   int
	Active   int
}

// Snapshot returns the current state capture.
func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		Phase:    r.phase,
		Score:    r.score,
		Combo:    r.combo,
		MaxCombo: r.maxCombo,
		Health:   r.health,
		Perfects: r.perfects,
		Greats:   r.greats,
		Misses:   r.misses,
		Cursor:   r.cursor,
		Active:   len(r.active),
	}
}
