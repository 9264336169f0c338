// notefall is a terminal rhythm game driven by MIDI note charts.
//
// Usage:
//
//	notefall play              - Pick a song interactively and play
//	notefall play <title>      - Play a song from the library directly
//	notefall songs             - List the songs in the library
//	notefall chart <file>      - Inspect a MIDI chart file
//	notefall scores            - Show play statistics and high scores
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--db <path>      - Set database path (default: ~/.notefall/scores.db)
//	--songs <dir>    - Set song library directory (default: ./songs)
//	--config <path>  - Path to a custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagSongsDir string
	flagConfig   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "notefall",
	Short: "Notefall - A MIDI rhythm game in your terminal",
	Long: `Notefall turns Standard MIDI Files into falling-note charts and
judges your key presses against the music in real time.

Available commands:
  play     - Pick a song and play (or name one directly)
  songs    - List the song library
  chart    - Inspect a MIDI chart file
  scores   - View high scores and play statistics

Examples:
  notefall play
  notefall play "Moonlight Sonata" --difficulty hard
  notefall songs
  notefall chart songs/moonlight/hard.mid
  notefall scores "Moonlight Sonata" hard`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.notefall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagSongsDir, "songs", "./songs", "Path to the song library directory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(songsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(scoresCmd)
}
