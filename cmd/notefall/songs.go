package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notefall/notefall/internal/songs"
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List the songs in the library",
	Long: `Shows every song the library catalog declares, with its artist
and available difficulty tiers.

Examples:
  notefall songs
  notefall songs --songs ./my-library`,
	Run: runSongs,
}

func runSongs(cmd *cobra.Command, args []string) {
	lib, err := songs.Load(flagSongsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(lib.Songs) == 0 {
		fmt.Println("The library is empty.")
		fmt.Printf("Add songs to %s to get started.\n", flagSongsDir)
		return
	}

	fmt.Printf("Song library (%s):\n", lib.Dir)
	fmt.Println()

	// Calculate column widths
	maxTitleLen := 5 // "Title" header
	maxArtistLen := 6
	for _, s := range lib.Songs {
		if len(s.Title) > maxTitleLen {
			maxTitleLen = len(s.Title)
		}
		if len(s.Artist) > maxArtistLen {
			maxArtistLen = len(s.Artist)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxTitleLen, "Title", maxArtistLen, "Artist", "Charts")
	fmt.Printf("  %-*s  %-*s  %s\n", maxTitleLen, "-----", maxArtistLen, "------", "------")

	for _, s := range lib.Songs {
		fmt.Printf("  %-*s  %-*s  %s\n",
			maxTitleLen, s.Title, maxArtistLen, s.Artist,
			strings.Join(s.Difficulties(), ", "))
	}

	fmt.Println()
	fmt.Println("Run 'notefall play <title>' to play a song.")
}
