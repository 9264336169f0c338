package songs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLibrary(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LibraryFile), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const sampleLibrary = `
- title: Neon Rain
  artist: Test Artist
  audio: neon-rain/song.mp3
  charts:
    - difficulty: easy
      file: neon-rain/easy.mid
    - difficulty: hard
      file: neon-rain/hard.mid
- title: Gravity Well
  audio: gravity-well/song.ogg
  charts:
    - difficulty: normal
      file: gravity-well/normal.mid
`

func TestLoadLibrary(t *testing.T) {
	dir := writeLibrary(t, sampleLibrary)

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lib.Songs) != 2 {
		t.Fatalf("songs = %d, want 2", len(lib.Songs))
	}

	song, ok := lib.Find("Neon Rain")
	if !ok {
		t.Fatal("Find missed a catalog entry")
	}
	if song.Artist != "Test Artist" {
		t.Errorf("artist = %q", song.Artist)
	}
	if got := song.Difficulties(); len(got) != 2 || got[0] != "easy" || got[1] != "hard" {
		t.Errorf("difficulties = %v", got)
	}

	c, ok := song.Chart("hard")
	if !ok {
		t.Fatal("Chart missed a difficulty")
	}
	if want := filepath.Join(dir, "neon-rain", "hard.mid"); lib.ChartPath(c) != want {
		t.Errorf("chart path = %q, want %q", lib.ChartPath(c), want)
	}
	if want := filepath.Join(dir, "neon-rain", "song.mp3"); lib.AudioPath(song) != want {
		t.Errorf("audio path = %q, want %q", lib.AudioPath(song), want)
	}

	if _, ok := song.Chart("extreme"); ok {
		t.Error("Chart returned a tier the song does not have")
	}
	if _, ok := lib.Find("No Such Song"); ok {
		t.Error("Find returned a song not in the catalog")
	}
}

func TestLoadLibraryRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing title", "- audio: a.mp3\n  charts:\n    - {difficulty: easy, file: a.mid}\n"},
		{"missing audio", "- title: X\n  charts:\n    - {difficulty: easy, file: a.mid}\n"},
		{"no charts", "- title: X\n  audio: a.mp3\n"},
		{"incomplete chart", "- title: X\n  audio: a.mp3\n  charts:\n    - {difficulty: easy}\n"},
		{"duplicate difficulty", "- title: X\n  audio: a.mp3\n  charts:\n    - {difficulty: easy, file: a.mid}\n    - {difficulty: easy, file: b.mid}\n"},
		{"malformed yaml", "title: [unclosed\n"},
	}
	for _, tc := range cases {
		dir := writeLibrary(t, tc.body)
		if _, err := Load(dir); err == nil {
			t.Errorf("%s: Load accepted invalid catalog", tc.name)
		}
	}
}

func TestLoadLibraryMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), LibraryFile) {
		t.Errorf("err = %v, want mention of %s", err, LibraryFile)
	}
}

func TestScoreKey(t *testing.T) {
	if got := ScoreKey("Neon Rain", "hard"); got != "Neon Rain-hard" {
		t.Errorf("ScoreKey = %q", got)
	}
}
