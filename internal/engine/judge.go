package engine

import "math"

// HandlePress judges a lane press against the active note window. now
// is the offset-corrected audio time of the press. The scan is strict
// FIFO in chart order: the first unresolved note in the lane decides.
// Inside the perfect window the press scores a Perfect, inside the
// great window a Great; outside both the press is ignored entirely and
// the note stays judgeable (it will be hit later or missed by the
// scheduler). At most one note resolves per press.
//
// The returned bool reports whether a judgement was produced. Presses
// on unknown lanes, or while the run is not Active, are no-ops.
func (r *Run) HandlePress(lane int, now float64) (Event, bool) {
	if r.phase != PhaseActive || lane < 0 || lane >= r.chart.Lanes {
		return Event{}, false
	}

	for _, n := range r.active {
		if n.Resolved || n.Lane != lane {
			continue
		}

		diff := math.Abs(now - n.Time)
		var result Judgement
		switch {
		case diff < r.tun.PerfectWindow:
			result = JudgementPerfect
			r.score += r.tun.PerfectScore
			r.perfects++
			r.health += r.tun.PerfectHeal
		case diff < r.tun.GreatWindow:
			result = JudgementGreat
			r.score += r.tun.GreatScore
			r.greats++
			r.health += r.tun.GreatHeal
		default:
			// Outside both windows: the press neither resolves nor
			// consumes the note.
			return Event{}, false
		}

		r.combo++
		if r.combo > r.maxCombo {
			r.maxCombo = r.combo
		}
		if r.health > r.tun.MaxHealth {
			r.health = r.tun.MaxHealth
		}

		n.Resolved = true
		n.Result = result
		return Event{Lane: lane, Judgement: result, Offset: now - n.Time}, true
	}

	return Event{}, false
}
