// Package chart converts Standard MIDI Files into playable note charts.
// A chart is the immutable, time-ordered list of notes a run is judged
// against; loading happens once, before the run state machine starts.
package chart

// Note is a single chart entry. Time is the moment the note should be
// struck, in seconds from the start of the song.
type Note struct {
	Lane int     // 0 <= Lane < Chart.Lanes
	Key  uint8   // original MIDI key number, kept for inspection tooling
	Time float64 // target time in seconds, tempo changes already resolved
}

// TempoSegment describes one span of constant tempo in the source file.
type TempoSegment struct {
	Tick uint32  // absolute tick the segment starts at
	Time float64 // absolute time in seconds the segment starts at
	BPM  float64
}

// Chart is an immutable, ordered sequence of notes. Notes are sorted by
// Time, non-decreasing; equal times (chords) keep source order.
type Chart struct {
	Notes  []Note
	Lanes  int
	Tempos []TempoSegment
}

// NoteCount returns the number of notes in the chart.
func (c *Chart) NoteCount() int {
	return len(c.Notes)
}

// Duration returns the target time of the last note, in seconds.
// A chart with no notes has duration 0.
func (c *Chart) Duration() float64 {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].Time
}

// LaneCounts returns how many notes fall into each lane.
func (c *Chart) LaneCounts() []int {
	counts := make([]int, c.Lanes)
	for _, n := range c.Notes {
		counts[n.Lane]++
	}
	return counts
}
