package engine

// Advance moves the run forward to the given audio time. now is the
// transport's playback position (offset-corrected, seconds), monotonic
// while playing; stopped reports whether playback has ended. Advance
// spawns upcoming notes into the active window, auto-misses notes whose
// deadline passed, retires resolved notes after the grace period, and
// handles the Failed/Completed transitions. It returns the deadline
// misses produced this frame.
//
// Advance is total over valid state: outside the Active phase it does
// nothing, and repeated calls with non-increasing time never re-spawn
// or re-miss a note.
func (r *Run) Advance(now float64, stopped bool) []Event {
	if r.phase != PhaseActive {
		return nil
	}

	var events []Event

	// Spawn: promote chart notes that would become visible this frame.
	// When playback has ended nothing else can judge the remainder, so
	// promote it all and let the deadline pass below miss it; terminal
	// counters then always sum to the chart's note count.
	horizon := now + r.tun.FallDuration()
	notes := r.chart.Notes
	for r.cursor < len(notes) && (notes[r.cursor].Time < horizon || stopped) {
		r.active = append(r.active, &ActiveNote{Note: notes[r.cursor]})
		r.cursor++
	}

	// Deadline miss: the only path that resolves a note without input.
	for _, n := range r.active {
		if n.Resolved {
			continue
		}
		if n.Time-now < -r.tun.GreatWindow || stopped {
			n.Resolved = true
			n.Result = JudgementMiss
			r.combo = 0
			r.misses++
			r.health -= r.tun.MissDamage
			events = append(events, Event{Lane: n.Lane, Judgement: JudgementMiss})
		}
	}

	// Retire: drop resolved notes once presentation had its grace
	// period. In-place filter keeps note order.
	kept := r.active[:0]
	for _, n := range r.active {
		if n.Resolved && (n.Time < now-r.tun.RetireGrace || stopped) {
			continue
		}
		kept = append(kept, n)
	}
	for i := len(kept); i < len(r.active); i++ {
		r.active[i] = nil
	}
	r.active = kept

	if r.health <= 0 {
		r.health = 0
		r.phase = PhaseFailed
		return events
	}

	if stopped && len(r.active) == 0 && r.cursor >= len(notes) {
		r.phase = PhaseCompleted
	}

	return events
}
