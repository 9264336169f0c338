package engine

// Rank grades a finished run by its score ratio.
type Rank int8

const (
	RankD Rank = iota
	RankC
	RankB
	RankA
	RankS
)

// String returns the rank letter.
func (rk Rank) String() string {
	switch rk {
	case RankS:
		return "S"
	case RankA:
		return "A"
	case RankB:
		return "B"
	case RankC:
		return "C"
	default:
		return "D"
	}
}

// rankFor maps a score ratio in [0, 1] to a rank. Thresholds descend,
// so every ratio lands in exactly one tier.
func rankFor(ratio float64) Rank {
	switch {
	case ratio >= 0.95:
		return RankS
	case ratio >= 0.90:
		return RankA
	case ratio >= 0.80:
		return RankB
	case ratio >= 0.70:
		return RankC
	default:
		return RankD
	}
}

// Outcome is the read-only result of a finished run.
type Outcome struct {
	Score     int
	MaxCombo  int
	Perfects  int
	Greats    int
	Misses    int
	Ratio     float64
	Rank      Rank
	Failed    bool
	NewRecord bool
}

// Outcome computes the final result from a terminal run. prevBest is
// the stored high score for this chart; a run beats it strictly. The
// engine performs no I/O: the caller hands a new record back to the
// score store. Calling Outcome before the run is Completed or Failed
// returns the zero Outcome.
func (r *Run) Outcome(prevBest int) Outcome {
	if !r.Done() {
		return Outcome{}
	}

	ratio := 0.0
	// Guard the degenerate zero-note chart.
	if max := r.chart.NoteCount() * r.tun.PerfectScore; max > 0 {
		ratio = float64(r.score) / float64(max)
	}

	return Outcome{
		Score:     r.score,
		MaxCombo:  r.maxCombo,
		Perfects:  r.perfects,
		Greats:    r.greats,
		Misses:    r.misses,
		Ratio:     ratio,
		Rank:      rankFor(ratio),
		Failed:    r.phase == PhaseFailed,
		NewRecord: r.score > prevBest,
	}
}
