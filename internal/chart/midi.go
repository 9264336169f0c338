package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultBPM is assumed until the first tempo event, per the SMF spec.
const DefaultBPM = 120.0

// ErrNoNotes is returned when a file parses cleanly but contains no
// note-on events. A zero-note chart is not playable.
var ErrNoNotes = errors.New("chart: no notes in file")

// LoadFile reads an SMF chart from disk and maps its note-on events onto
// the given number of lanes.
func LoadFile(path string, lanes int) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chart: cannot open %s: %w", path, err)
	}
	defer f.Close()

	c, err := Read(f, lanes)
	if err != nil {
		return nil, fmt.Errorf("chart: %s: %w", path, err)
	}
	return c, nil
}

// Read parses an SMF stream into a Chart. Every note-on with a non-zero
// velocity, on any track, becomes one note at lane = key mod lanes.
// Tick positions convert to seconds through the full tempo map, so a note
// after N tempo changes lands at the integrated time, not at a flat-tempo
// approximation. All other MIDI events are ignored.
func Read(r io.Reader, lanes int) (*Chart, error) {
	if lanes <= 0 {
		return nil, fmt.Errorf("chart: invalid lane count %d", lanes)
	}

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse midi: %w", err)
	}

	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}

	tempos := tempoMap(s)
	resolveTimes(tempos, ticks)

	var notes []Note
	for _, tr := range s.Tracks {
		var abs uint32
		for _, ev := range tr {
			abs += ev.Delta
			var ch, key, vel uint8
			if !ev.Message.GetNoteStart(&ch, &key, &vel) {
				continue
			}
			notes = append(notes, Note{
				Lane: int(key) % lanes,
				Key:  key,
				Time: tickToSeconds(tempos, ticks, abs),
			})
		}
	}

	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	// Stable keeps chord notes in source order, so ties stay deterministic.
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})

	return &Chart{Notes: notes, Lanes: lanes, Tempos: tempos}, nil
}

// tempoMap collects tempo events from every track, ordered by absolute
// tick. The map always starts with a segment at tick 0.
func tempoMap(s *smf.SMF) []TempoSegment {
	var segs []TempoSegment
	for _, tr := range s.Tracks {
		var abs uint32
		for _, ev := range tr {
			abs += ev.Delta
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				segs = append(segs, TempoSegment{Tick: abs, BPM: bpm})
			}
		}
	}

	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Tick < segs[j].Tick
	})

	if len(segs) == 0 || segs[0].Tick != 0 {
		segs = append([]TempoSegment{{Tick: 0, BPM: DefaultBPM}}, segs...)
	}
	return segs
}

// resolveTimes fills in each segment's absolute start time by integrating
// the preceding segments.
func resolveTimes(segs []TempoSegment, ticks smf.MetricTicks) {
	for i := 1; i < len(segs); i++ {
		prev := segs[i-1]
		delta := segs[i].Tick - prev.Tick
		segs[i].Time = prev.Time + ticks.Duration(prev.BPM, delta).Seconds()
	}
}

// tickToSeconds converts an absolute tick position to seconds using the
// resolved tempo map.
func tickToSeconds(segs []TempoSegment, ticks smf.MetricTicks, tick uint32) float64 {
	seg := segs[0]
	for _, s := range segs[1:] {
		if s.Tick > tick {
			break
		}
		seg = s
	}
	return seg.Time + ticks.Duration(seg.BPM, tick-seg.Tick).Seconds()
}
