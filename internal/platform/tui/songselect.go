package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notefall/notefall/internal/core"
	"github.com/notefall/notefall/internal/songs"
	"github.com/notefall/notefall/internal/storage"
)

// pickerStage tracks which list the picker is showing.
type pickerStage int

const (
	stageSongs pickerStage = iota
	stageDifficulty
)

// Selection is a chosen song and difficulty tier.
type Selection struct {
	Song  songs.Song
	Chart songs.ChartRef
}

// PickerModel is the Bubble Tea model for the song and difficulty
// picker.
type PickerModel struct {
	library        *songs.Library
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	stage          pickerStage
	songCursor     int
	diffCursor     int
	width          int
	height         int
	quitting       bool
	selected       *Selection
	openScoreboard bool // True if user pressed Tab for the scoreboard
}

// NewPickerModel creates a new picker over the loaded library.
func NewPickerModel(lib *songs.Library, store *storage.Store, cfg core.RuntimeConfig) PickerModel {
	return PickerModel{
		library:   lib,
		store:     store,
		config:    cfg,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(nil),
	}
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "tab" {
			m.openScoreboard = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for picker navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.stage == stageSongs && m.songCursor > 0 {
			m.songCursor--
		} else if m.stage == stageDifficulty && m.diffCursor > 0 {
			m.diffCursor--
		}

	case MenuActionDown:
		if m.stage == stageSongs && m.songCursor < len(m.library.Songs)-1 {
			m.songCursor++
		} else if m.stage == stageDifficulty && m.diffCursor < len(m.currentSong().Charts)-1 {
			m.diffCursor++
		}

	case MenuActionSelect:
		if len(m.library.Songs) == 0 {
			return m, nil
		}
		if m.stage == stageSongs {
			m.stage = stageDifficulty
			m.diffCursor = 0
			return m, nil
		}
		song := m.currentSong()
		m.selected = &Selection{Song: song, Chart: song.Charts[m.diffCursor]}
		return m, tea.Quit

	case MenuActionBack:
		if m.stage == stageDifficulty {
			m.stage = stageSongs
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m PickerModel) currentSong() songs.Song {
	return m.library.Songs[m.songCursor]
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "  N O T E F A L L  "
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	if m.stage == stageSongs {
		m.renderSongList(&b)
	} else {
		m.renderDifficultyList(&b)
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m PickerModel) renderSongList(b *strings.Builder) {
	b.WriteString(centerText("Select a song", m.width))
	b.WriteString("\n\n")

	if len(m.library.Songs) == 0 {
		b.WriteString(centerText("No songs in the library.", m.width))
		b.WriteString("\n")
		return
	}

	for i, song := range m.library.Songs {
		cursor := "  "
		if i == m.songCursor {
			cursor = "> "
		}
		line := cursor + song.Title
		if song.Artist != "" {
			line += " — " + song.Artist
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
}

func (m PickerModel) renderDifficultyList(b *strings.Builder) {
	song := m.currentSong()
	b.WriteString(centerText(song.Title, m.width))
	b.WriteString("\n\n")

	for i, c := range song.Charts {
		cursor := "  "
		if i == m.diffCursor {
			cursor = "> "
		}
		line := cursor + c.Difficulty
		if m.store != nil {
			if best, err := m.store.Best(songs.ScoreKey(song.Title, c.Difficulty)); err == nil && best > 0 {
				line += fmt.Sprintf("  (best %d)", best)
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
}

// Selected returns the chosen song, or nil if none.
func (m PickerModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m PickerModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m PickerModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// PickerResult holds the result of running the picker.
type PickerResult struct {
	Selection       *Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunPicker runs the song picker and returns the selection result.
func RunPicker(lib *songs.Library, store *storage.Store, cfg core.RuntimeConfig) (PickerResult, error) {
	model := NewPickerModel(lib, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{Config: cfg}, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return PickerResult{Config: cfg, Quit: true}, nil
	}

	result := PickerResult{Config: m.Config()}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}
	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}
	if m.Selected() != nil {
		result.Selection = m.Selected()
	} else {
		result.Quit = true
	}

	return result, nil
}
