package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notefall/notefall/internal/chart"
	"github.com/notefall/notefall/internal/config"
)

var flagLanes int

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Inspect a MIDI chart file",
	Long: `Load a MIDI file the way a play session would and print what
the chart loader made of it: note count, duration, the spread of notes
across lanes, and the tempo map.

Examples:
  notefall chart songs/moonlight/hard.mid
  notefall chart songs/moonlight/hard.mid --lanes 4`,
	Args: cobra.ExactArgs(1),
	Run:  runChart,
}

func init() {
	chartCmd.Flags().IntVar(&flagLanes, "lanes", 0, "Lane count (default: from config)")
}

func runChart(cmd *cobra.Command, args []string) {
	lanes := flagLanes
	if lanes == 0 {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		lanes = cfg.Gameplay.Lanes
	}

	ch, err := chart.LoadFile(args[0], lanes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chart: %s\n", args[0])
	fmt.Println()
	fmt.Printf("  Notes:    %d\n", ch.NoteCount())
	fmt.Printf("  Duration: %.2fs\n", ch.Duration())
	fmt.Printf("  Lanes:    %d\n", ch.Lanes)

	fmt.Println()
	fmt.Println("  Notes per lane:")
	for lane, count := range ch.LaneCounts() {
		fmt.Printf("    %d: %d\n", lane, count)
	}

	if len(ch.Tempos) > 0 {
		fmt.Println()
		fmt.Println("  Tempo map:")
		for _, seg := range ch.Tempos {
			fmt.Printf("    %8.2fs  %.1f BPM\n", seg.Time, seg.BPM)
		}
	}
}
