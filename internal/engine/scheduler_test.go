package engine

import (
	"testing"

	"github.com/notefall/notefall/internal/chart"
)

// testTuning uses the stock windows with a 1.5s fall time so spawn
// moments are easy to reason about.
func testTuning() Tuning {
	tun := DefaultTuning()
	tun.ScrollRows = 15
	tun.RowsPerSecond = 10
	tun.SpeedMultiplier = 1.0
	return tun
}

func chartOf(notes ...chart.Note) *chart.Chart {
	return &chart.Chart{Notes: notes, Lanes: 6}
}

func activeRun(c *chart.Chart, tun Tuning) *Run {
	r := NewRun(c, tun)
	r.Start()
	return r
}

func TestNewRunInitialState(t *testing.T) {
	r := NewRun(chartOf(chart.Note{Lane: 0, Time: 5.0}), testTuning())

	if r.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want Idle", r.Phase())
	}
	if r.Health() != 100 {
		t.Errorf("health = %d, want 100", r.Health())
	}
	if r.Score() != 0 || r.Combo() != 0 || r.MaxCombo() != 0 {
		t.Error("counters not zeroed")
	}
	if len(r.Active()) != 0 {
		t.Error("active set not empty")
	}
}

func TestStartOnlyFromIdle(t *testing.T) {
	r := NewRun(chartOf(chart.Note{Lane: 0, Time: 5.0}), testTuning())
	r.Start()
	if r.Phase() != PhaseActive {
		t.Fatalf("phase = %v, want Active", r.Phase())
	}

	r.phase = PhaseFailed
	r.Start()
	if r.Phase() != PhaseFailed {
		t.Errorf("Start revived a terminal run: %v", r.Phase())
	}
}

func TestAdvanceSpawnsInsideFallWindow(t *testing.T) {
	r := activeRun(chartOf(chart.Note{Lane: 2, Time: 5.0}), testTuning())

	r.Advance(3.0, false) // horizon 4.5, note not visible yet
	if len(r.Active()) != 0 {
		t.Fatal("note spawned too early")
	}

	r.Advance(3.6, false) // horizon 5.1
	if len(r.Active()) != 1 {
		t.Fatal("note not spawned inside fall window")
	}
	if r.Active()[0].Lane != 2 || r.Active()[0].Resolved {
		t.Error("spawned note wrong or pre-resolved")
	}
}

func TestAdvanceDeadlineMiss(t *testing.T) {
	r := activeRun(chartOf(chart.Note{Lane: 1, Time: 5.0}), testTuning())
	r.Advance(5.0, false)

	// Still inside the great window: no miss yet.
	if events := r.Advance(5.14, false); len(events) != 0 {
		t.Fatalf("missed inside great window: %v", events)
	}

	events := r.Advance(5.36, false) // 5.0 - 5.36 < -0.15
	if len(events) != 1 || events[0].Judgement != JudgementMiss || events[0].Lane != 1 {
		t.Fatalf("events = %v, want one miss on lane 1", events)
	}
	if _, _, misses := r.Counts(); misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
	if r.Combo() != 0 {
		t.Errorf("combo = %d, want 0", r.Combo())
	}
	if r.Health() != 90 {
		t.Errorf("health = %d, want 90", r.Health())
	}
}

func TestAdvanceRetiresAfterGrace(t *testing.T) {
	r := activeRun(chartOf(chart.Note{Lane: 0, Time: 5.0}), testTuning())
	r.Advance(5.36, false) // spawn + miss

	if len(r.Active()) != 1 {
		t.Fatal("resolved note retired before grace elapsed")
	}

	r.Advance(5.9, false) // 5.0 < 5.9 - 1.0 is false, still kept
	if len(r.Active()) != 1 {
		t.Fatal("note retired early")
	}

	r.Advance(6.1, false)
	if len(r.Active()) != 0 {
		t.Fatal("note not retired after grace")
	}
}

// Rewinding the clock must not re-spawn, re-miss, or otherwise disturb
// already-resolved state.
func TestAdvanceIdempotentUnderRewind(t *testing.T) {
	r := activeRun(chartOf(
		chart.Note{Lane: 0, Time: 1.0},
		chart.Note{Lane: 1, Time: 5.0},
	), testTuning())

	r.Advance(2.0, false) // first note spawned and missed
	snap := r.Snapshot()

	for _, now := range []float64{2.0, 1.5, 0.0, 2.0} {
		if events := r.Advance(now, false); len(events) != 0 {
			t.Fatalf("Advance(%v) produced events on rewind: %v", now, events)
		}
	}
	if got := r.Snapshot(); got != snap {
		t.Errorf("state changed under rewind: %+v -> %+v", snap, got)
	}
}

func TestAdvanceWhileIdleIsNoop(t *testing.T) {
	r := NewRun(chartOf(chart.Note{Lane: 0, Time: 0.1}), testTuning())

	if events := r.Advance(10.0, true); events != nil {
		t.Fatalf("idle Advance produced events: %v", events)
	}
	if len(r.Active()) != 0 || r.Snapshot().Cursor != 0 {
		t.Error("idle Advance mutated state")
	}
}

func TestThreeMissesNoFailure(t *testing.T) {
	r := activeRun(chartOf(
		chart.Note{Lane: 0, Time: 1.0},
		chart.Note{Lane: 1, Time: 2.0},
		chart.Note{Lane: 2, Time: 3.0},
	), testTuning())

	r.Advance(4.0, false)
	if r.Health() != 70 {
		t.Errorf("health = %d, want 70", r.Health())
	}
	if r.Phase() != PhaseActive {
		t.Errorf("phase = %v, want Active", r.Phase())
	}
}

func TestFailureStopsSchedulingAndJudging(t *testing.T) {
	tun := testTuning()
	tun.MissDamage = 40

	r := activeRun(chartOf(
		chart.Note{Lane: 0, Time: 1.0},
		chart.Note{Lane: 0, Time: 1.1},
		chart.Note{Lane: 0, Time: 1.2},
		chart.Note{Lane: 0, Time: 9.0},
	), tun)

	r.Advance(2.0, false)
	if r.Phase() != PhaseFailed {
		t.Fatalf("phase = %v, want Failed", r.Phase())
	}
	if r.Health() != 0 {
		t.Errorf("health = %d, want clamp to 0", r.Health())
	}

	snap := r.Snapshot()
	if events := r.Advance(9.0, false); len(events) != 0 {
		t.Error("failed run kept scheduling")
	}
	if _, ok := r.HandlePress(0, 9.0); ok {
		t.Error("failed run accepted a press")
	}
	if got := r.Snapshot(); got != snap {
		t.Errorf("terminal state mutated: %+v -> %+v", snap, got)
	}
}

func TestCompletionAfterPlaybackEnds(t *testing.T) {
	r := activeRun(chartOf(chart.Note{Lane: 3, Time: 1.0}), testTuning())

	r.Advance(1.0, false)
	if _, ok := r.HandlePress(3, 1.01); !ok {
		t.Fatal("press not judged")
	}

	// Playing but notes remain active: not complete yet.
	r.Advance(1.5, false)
	if r.Phase() != PhaseActive {
		t.Fatalf("phase = %v, want Active", r.Phase())
	}

	r.Advance(3.0, true)
	if r.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want Completed", r.Phase())
	}

	perfects, greats, misses := r.Counts()
	if perfects+greats+misses != r.Chart().NoteCount() {
		t.Errorf("terminal counters %d+%d+%d != %d notes", perfects, greats, misses, r.Chart().NoteCount())
	}
}

// Audio shorter than the chart: stopping drains the remaining notes as
// misses so the terminal counters still account for every chart note.
func TestCompletionDrainsPendingNotes(t *testing.T) {
	r := activeRun(chartOf(
		chart.Note{Lane: 0, Time: 1.0},
		chart.Note{Lane: 1, Time: 20.0},
		chart.Note{Lane: 2, Time: 30.0},
	), testTuning())

	r.Advance(1.0, false)
	r.HandlePress(0, 1.0)

	events := r.Advance(2.5, true)
	if len(events) != 2 {
		t.Fatalf("drain produced %d events, want 2 misses", len(events))
	}
	if r.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want Completed", r.Phase())
	}

	perfects, _, misses := r.Counts()
	if perfects != 1 || misses != 2 {
		t.Errorf("counts = %d perfect / %d miss, want 1/2", perfects, misses)
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := func(r *Run) {
		r.Advance(0.5, false)
		r.HandlePress(0, 0.98)
		r.Advance(1.5, false)
		r.Advance(2.4, false)
		r.HandlePress(1, 2.05)
		r.Advance(4.0, true)
	}

	notes := []chart.Note{
		{Lane: 0, Time: 1.0},
		{Lane: 1, Time: 2.0},
	}

	r1 := activeRun(chartOf(notes...), testTuning())
	r2 := activeRun(chartOf(notes...), testTuning())
	script(r1)
	script(r2)

	if r1.Snapshot() != r2.Snapshot() {
		t.Errorf("replay diverged: %+v vs %+v", r1.Snapshot(), r2.Snapshot())
	}
}
