package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/notefall/notefall/internal/audio"
	"github.com/notefall/notefall/internal/config"
	"github.com/notefall/notefall/internal/core"
	"github.com/notefall/notefall/internal/engine"
	"github.com/notefall/notefall/internal/storage"
)

// flashFrames is how many frames a judgement label stays on screen.
const flashFrames = 30

// PlayModel is the Bubble Tea model for one play session. The audio
// transport owns the clock: every tick reads the stream position and
// feeds it to the run, so a dropped frame delays rendering but never
// desyncs judgement.
type PlayModel struct {
	run       *engine.Run
	transport audio.Transport
	store     *storage.Store
	cfg       config.Config
	runtime   core.RuntimeConfig
	keys      *KeyMapper
	screen    *core.Screen
	songKey   string
	best      int

	frame     core.InputFrame
	now       float64
	wallStart time.Time
	started   bool
	paused    bool
	saved     bool
	outcome   engine.Outcome

	lastEvent engine.Event
	flashAge  int

	goingBack bool
	quitting  bool
}

// NewPlayModel creates the play session model. The run must be fresh;
// the model starts it and drives it to a terminal phase.
func NewPlayModel(run *engine.Run, transport audio.Transport, store *storage.Store,
	cfg config.Config, rt core.RuntimeConfig, songKey string, best int) PlayModel {

	run.Start()

	return PlayModel{
		run:       run,
		transport: transport,
		store:     store,
		cfg:       cfg,
		runtime:   rt,
		keys:      NewKeyMapper(cfg.LaneKeys()),
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		songKey:   songKey,
		best:      best,
		frame:     core.NewInputFrame(),
		wallStart: time.Now(),
		flashAge:  flashFrames,
	}
}

// Init starts the frame loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.MapKeyToFrame(msg, &m.frame) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick advances the session by one frame: clock, input,
// judgement, scheduling, persistence.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	if m.frame.Has(core.ActionBack) {
		m.goingBack = true
		m.frame.Clear()
		return m, tea.Quit
	}
	if m.frame.Has(core.ActionRestart) {
		m = m.restart()
		m.frame.Clear()
		return m, tickCmd(m.runtime.TickRate)
	}

	if m.paused {
		if m.frame.Has(core.ActionPause) {
			m.transport.Resume()
			m.paused = false
		}
		m.frame.Clear()
		return m, tickCmd(m.runtime.TickRate)
	}

	if m.frame.Has(core.ActionPause) && m.started && !m.run.Done() {
		m.transport.Pause()
		m.paused = true
		m.frame.Clear()
		return m, tickCmd(m.runtime.TickRate)
	}
	if m.frame.Has(core.ActionVolumeUp) {
		m.transport.SetVolume(0.25)
	}
	if m.frame.Has(core.ActionVolumeDown) {
		m.transport.SetVolume(-0.25)
	}

	m.advanceClock()

	// Presses are judged before the scheduler's deadline pass, so a
	// frame-late hit still beats the auto-miss.
	for _, lane := range m.frame.Lanes {
		if ev, ok := m.run.HandlePress(lane, m.now); ok {
			m.lastEvent = ev
			m.flashAge = 0
		}
	}

	events := m.run.Advance(m.now, m.started && m.transport.Stopped())
	if len(events) > 0 {
		m.lastEvent = events[len(events)-1]
		m.flashAge = 0
	}
	if m.flashAge < flashFrames {
		m.flashAge++
	}

	if m.run.Done() && !m.saved {
		m.outcome = m.run.Outcome(m.best)
		if m.run.Phase() == engine.PhaseFailed {
			m.transport.Pause()
		}
		if m.store != nil {
			if _, err := m.store.SaveResult(m.songKey, m.outcome); err != nil {
				log.Warn("could not save score", "song", m.songKey, "err", err)
			}
		}
		m.saved = true
	}

	m.frame.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// advanceClock updates the judgement clock. Before the song starts the
// clock runs on wall time through the negative lead-in; once it crosses
// zero, playback starts and the stream position takes over.
func (m *PlayModel) advanceClock() {
	if !m.started {
		elapsed := time.Since(m.wallStart).Seconds() - m.cfg.Audio.LeadIn
		if elapsed < 0 {
			m.now = elapsed + m.cfg.Audio.Offset
			return
		}
		m.transport.Play()
		m.started = true
	}
	m.now = m.transport.Position() + m.cfg.Audio.Offset
}

// restart abandons the current run and starts the song over.
func (m PlayModel) restart() PlayModel {
	fresh := engine.NewRun(m.run.Chart(), m.run.Tuning())
	fresh.Start()
	m.run = fresh

	if m.outcome.NewRecord {
		m.best = m.outcome.Score
	}
	m.outcome = engine.Outcome{}
	m.saved = false
	m.paused = false
	m.flashAge = flashFrames
	m.now = 0

	if m.started {
		if err := m.transport.Restart(); err != nil {
			log.Warn("could not restart playback", "err", err)
			m.started = false
			m.wallStart = time.Now()
		}
	} else {
		m.wallStart = time.Now()
	}
	return m
}

// View renders the current frame.
func (m PlayModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.screen.Clear()
	field := playfield(m.screen, m.run, m.now, m.cfg.LaneKeys())
	hud(m.screen, m.run, m.best, field)

	if m.flashAge < flashFrames && !m.run.Done() {
		judgementFlash(m.screen, m.lastEvent, field)
	}
	if m.paused {
		pauseOverlay(m.screen, field)
	}
	if m.run.Done() {
		resultsOverlay(m.screen, m.outcome, field)
	}

	return RenderScreen(m.screen)
}

// GoingBack reports whether the player left for the song picker rather
// than quitting.
func (m PlayModel) GoingBack() bool {
	return m.goingBack
}

// RunPlay runs a play session to completion. Returns true if the
// player wants to go back to the song picker.
func RunPlay(run *engine.Run, transport audio.Transport, store *storage.Store,
	cfg config.Config, rt core.RuntimeConfig, songKey string, best int) (goBack bool, err error) {

	model := NewPlayModel(run, transport, store, cfg, rt, songKey, best)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(PlayModel)
	if !ok {
		return false, nil
	}
	return m.GoingBack(), nil
}
