package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/notefall/notefall/internal/audio"
	"github.com/notefall/notefall/internal/chart"
	"github.com/notefall/notefall/internal/config"
	"github.com/notefall/notefall/internal/core"
	"github.com/notefall/notefall/internal/engine"
	"github.com/notefall/notefall/internal/platform/tui"
	"github.com/notefall/notefall/internal/songs"
	"github.com/notefall/notefall/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [title]",
	Short: "Play a song",
	Long: `Start a play session. Without arguments an interactive picker
shows the song library; with a title the song starts directly.

Controls:
  Lane keys   - Hit notes (default: s d f j k l)
  P           - Pause
  R           - Retry (after the track ends)
  +/-         - Volume
  Esc         - Back to the picker
  Q/Ctrl+C    - Quit

Difficulty presets scale scroll speed and miss damage:
  easy   - Slower scroll, misses hurt half as much
  normal - The chart as written
  hard   - Faster scroll, misses hurt half again as much

Examples:
  notefall play
  notefall play "Moonlight Sonata"
  notefall play "Moonlight Sonata" --difficulty hard
  notefall play --config ./my-notefall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty tier (with a title argument)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lib, err := songs.Load(flagSongsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "err", err)
		// Continue without storage - the session still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Direct play: title on the command line skips the picker.
	if len(args) == 1 {
		sel, selErr := directSelection(lib, args[0], flagDifficulty)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			fmt.Fprintln(os.Stderr, "Run 'notefall songs' to see the library.")
			os.Exit(1)
		}
		if _, playErr := playSelection(lib, store, cfg, rt, sel); playErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", playErr)
			os.Exit(1)
		}
		return
	}

	// Picker loop
	for {
		result, pickErr := tui.RunPicker(lib, store, rt)
		if pickErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
			break
		}

		// Carry any size changes forward
		rt = result.Config

		if result.Quit {
			break
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(lib, store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if result.Selection == nil {
			break
		}

		goBack, playErr := playSelection(lib, store, cfg, rt, *result.Selection)
		if playErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", playErr)
			continue
		}
		if !goBack {
			break
		}
	}
}

// directSelection resolves a title and difficulty given on the command
// line against the library.
func directSelection(lib *songs.Library, title, difficulty string) (tui.Selection, error) {
	song, ok := lib.Find(title)
	if !ok {
		return tui.Selection{}, fmt.Errorf("unknown song %q", title)
	}
	if difficulty == "" {
		// Default to the first chart listed for the song.
		return tui.Selection{Song: song, Chart: song.Charts[0]}, nil
	}
	ref, ok := song.Chart(difficulty)
	if !ok {
		return tui.Selection{}, fmt.Errorf("song %q has no %q chart (has: %v)",
			title, difficulty, song.Difficulties())
	}
	return tui.Selection{Song: song, Chart: ref}, nil
}

// playSelection loads the chart and audio for a selection and runs one
// play session. Returns true if the player wants to go back to the
// picker rather than quit.
func playSelection(lib *songs.Library, store *storage.Store,
	cfg config.Config, rt core.RuntimeConfig, sel tui.Selection) (goBack bool, err error) {

	tun := cfg.Tuning()
	config.ApplyDifficulty(&tun, config.Difficulty(sel.Chart.Difficulty))

	ch, err := chart.LoadFile(lib.ChartPath(sel.Chart), cfg.Gameplay.Lanes)
	if err != nil {
		return false, fmt.Errorf("loading chart: %w", err)
	}

	transport, err := audio.Open(lib.AudioPath(sel.Song))
	if err != nil {
		return false, fmt.Errorf("opening audio: %w", err)
	}
	defer transport.Close()
	transport.SetVolume(cfg.Audio.Volume)

	songKey := songs.ScoreKey(sel.Song.Title, sel.Chart.Difficulty)

	best := 0
	if store != nil {
		if b, bestErr := store.Best(songKey); bestErr == nil {
			best = b
		}
	}

	run := engine.NewRun(ch, tun)
	return tui.RunPlay(run, transport, store, cfg, rt, songKey, best)
}
