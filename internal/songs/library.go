// Package songs loads the song library: the catalog of playable songs,
// each pairing an audio file with one or more MIDI charts.
package songs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LibraryFile is the catalog filename expected inside a songs
// directory.
const LibraryFile = "songs.yaml"

// ChartRef points at one difficulty tier of a song.
type ChartRef struct {
	Difficulty string `yaml:"difficulty"`
	File       string `yaml:"file"`
}

// Song is one catalog entry. Audio and chart paths are relative to the
// library directory.
type Song struct {
	Title  string     `yaml:"title"`
	Artist string     `yaml:"artist"`
	Audio  string     `yaml:"audio"`
	Charts []ChartRef `yaml:"charts"`
}

// Chart returns the chart for a difficulty tier.
func (s Song) Chart(difficulty string) (ChartRef, bool) {
	for _, c := range s.Charts {
		if c.Difficulty == difficulty {
			return c, true
		}
	}
	return ChartRef{}, false
}

// Difficulties lists the song's tiers in catalog order.
func (s Song) Difficulties() []string {
	out := make([]string, len(s.Charts))
	for i, c := range s.Charts {
		out[i] = c.Difficulty
	}
	return out
}

// Library is a loaded song catalog.
type Library struct {
	Dir   string
	Songs []Song
}

// Load reads the catalog from dir/songs.yaml and validates every
// entry.
func Load(dir string) (*Library, error) {
	path := filepath.Join(dir, LibraryFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read song library %s: %w", path, err)
	}

	var lib Library
	if err := yaml.Unmarshal(data, &lib.Songs); err != nil {
		return nil, fmt.Errorf("failed to parse song library %s: %w", path, err)
	}
	lib.Dir = dir

	for i, s := range lib.Songs {
		if s.Title == "" {
			return nil, fmt.Errorf("song %d in %s has no title", i, path)
		}
		if s.Audio == "" {
			return nil, fmt.Errorf("song %q has no audio file", s.Title)
		}
		if len(s.Charts) == 0 {
			return nil, fmt.Errorf("song %q has no charts", s.Title)
		}
		seen := make(map[string]bool, len(s.Charts))
		for _, c := range s.Charts {
			if c.Difficulty == "" || c.File == "" {
				return nil, fmt.Errorf("song %q has an incomplete chart entry", s.Title)
			}
			if seen[c.Difficulty] {
				return nil, fmt.Errorf("song %q lists difficulty %q twice", s.Title, c.Difficulty)
			}
			seen[c.Difficulty] = true
		}
	}

	return &lib, nil
}

// Find returns the song with the given title.
func (l *Library) Find(title string) (Song, bool) {
	for _, s := range l.Songs {
		if s.Title == title {
			return s, true
		}
	}
	return Song{}, false
}

// AudioPath resolves a song's audio file against the library
// directory.
func (l *Library) AudioPath(s Song) string {
	return filepath.Join(l.Dir, s.Audio)
}

// ChartPath resolves a chart file against the library directory.
func (l *Library) ChartPath(c ChartRef) string {
	return filepath.Join(l.Dir, c.File)
}

// ScoreKey identifies a song/difficulty pair in the score store.
func ScoreKey(title, difficulty string) string {
	return title + "-" + difficulty
}
