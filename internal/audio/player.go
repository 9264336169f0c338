// Package audio wraps beep playback behind a small transport the game
// loop drives. The transport owns the playback clock: gameplay time is
// the stream position, so judgement stays in sync even when frames lag.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// Transport is the playback surface the play loop needs. Position and
// Stopped are safe to call every frame.
type Transport interface {
	Play()
	Pause()
	Resume()
	Restart() error
	Position() float64
	Stopped() bool
	SetVolume(delta float64)
	Close() error
}

// Player plays one song file through the speaker. It is not safe for
// concurrent use; the TUI model owns it.
type Player struct {
	f        *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	gain     float64
	finished bool
	playing  bool
}

// Open decodes the song at path, picking the decoder from the file
// extension, and initializes the speaker at the song's sample rate.
func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open song: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	return &Player{f: f, streamer: streamer, format: format}, nil
}

// Play starts playback from the current stream position.
func (p *Player) Play() {
	p.ctrl = &beep.Ctrl{Streamer: p.streamer}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: p.gain, Silent: p.gain < -4}
	p.playing = true
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine while it holds the lock.
		p.finished = true
	})))
}

// Pause freezes playback; Position holds still while paused.
func (p *Player) Pause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Resume continues a paused stream.
func (p *Player) Resume() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

// Restart rewinds to the start of the song and plays again.
func (p *Player) Restart() error {
	speaker.Clear()
	if err := p.streamer.Seek(0); err != nil {
		return fmt.Errorf("rewind song: %w", err)
	}
	p.finished = false
	p.Play()
	return nil
}

// Position returns the playback position in seconds.
func (p *Player) Position() float64 {
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos).Seconds()
}

// Stopped reports whether the stream has been fully consumed.
func (p *Player) Stopped() bool {
	if !p.playing {
		return false
	}
	speaker.Lock()
	done := p.finished
	speaker.Unlock()
	return done
}

// SetVolume nudges the gain by delta in base-2 volume units. The gain
// survives restarts, and adjustments made before playback starts take
// effect when it does.
func (p *Player) SetVolume(delta float64) {
	if delta == 0 {
		return
	}
	p.gain += delta
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Volume = p.gain
	p.volume.Silent = p.gain < -4
	speaker.Unlock()
}

// Close stops playback and releases the stream and file.
func (p *Player) Close() error {
	speaker.Clear()
	err := p.streamer.Close()
	// Some decoders close the source reader, some do not.
	p.f.Close()
	return err
}
