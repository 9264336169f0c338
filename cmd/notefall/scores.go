package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/notefall/notefall/internal/songs"
	"github.com/notefall/notefall/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [title] [difficulty]",
	Short: "Show high scores and play statistics",
	Long: `Without arguments, shows play statistics for every chart ever
played. With a title and difficulty, shows the top 10 results for that
chart.

Examples:
  notefall scores
  notefall scores "Moonlight Sonata" hard
  notefall scores "Moonlight Sonata" hard --clear`,
	Args: cobra.RangeArgs(0, 2),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored results for the chart")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a title and difficulty.")
			os.Exit(1)
		}
		printAllStats(store)
		return
	}

	if len(args) == 1 {
		fmt.Fprintln(os.Stderr, "Error: give both a title and a difficulty.")
		fmt.Fprintln(os.Stderr, "Run 'notefall songs' to see the library.")
		os.Exit(1)
	}

	songKey := songs.ScoreKey(args[0], args[1])

	if flagClear {
		if err := store.ClearScores(songKey); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared results for %s.\n", songKey)
		return
	}

	printChartScores(store, songKey)
}

func printAllStats(store *storage.Store) {
	stats, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Run 'notefall play' to set the first score!")
		return
	}

	keys := make([]string, 0, len(stats))
	maxKeyLen := 5
	for k := range stats {
		keys = append(keys, k)
		if len(k) > maxKeyLen {
			maxKeyLen = len(k)
		}
	}
	sort.Strings(keys)

	fmt.Println("Play statistics:")
	fmt.Println()
	fmt.Printf("  %-*s  %6s  %6s  %8s  %s\n", maxKeyLen, "Chart", "Plays", "Clears", "Best", "Last played")
	fmt.Printf("  %-*s  %6s  %6s  %8s  %s\n", maxKeyLen, "-----", "-----", "------", "----", "-----------")

	for _, k := range keys {
		st := stats[k]
		fmt.Printf("  %-*s  %6d  %6d  %8d  %s\n",
			maxKeyLen, k, st.Plays, st.Clears, st.Best,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printChartScores(store *storage.Store, songKey string) {
	scores, err := store.TopScores(songKey, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", songKey)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No results recorded yet for this chart.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-8s  %s\n",
		"Rank", "Score", "Combo", "Grade", "P/G/M", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-8s  %s\n",
		"----", "-----", "-----", "-----", "-----", "----")

	for i, entry := range scores {
		grade := entry.Rank
		if entry.Failed {
			grade = "F"
		}
		counts := fmt.Sprintf("%d/%d/%d", entry.Perfects, entry.Greats, entry.Misses)
		fmt.Printf("  %-4d  %-8d  %-6d  %-5s  %-8s  %s\n",
			i+1, entry.Score, entry.MaxCombo, grade, counts,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, statErr := store.Stats(songKey); statErr == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Plays: %d   Clears: %d   Best: %d\n", stats.Plays, stats.Clears, stats.Best)
	}
}
