// Package storage provides SQLite-based persistence for play results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/notefall/notefall/internal/engine"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one recorded play of a song/difficulty pair. SongKey
// is songs.ScoreKey's "title-difficulty" form.
type ScoreEntry struct {
	ID        int64
	SongKey   string
	Score     int
	MaxCombo  int
	Perfects  int
	Greats    int
	Misses    int
	Rank      string
	Failed    bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			song_key TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_combo INTEGER NOT NULL DEFAULT 0,
			perfects INTEGER NOT NULL DEFAULT 0,
			greats INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			rank TEXT NOT NULL DEFAULT 'D',
			failed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_song_key ON scores(song_key);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(song_key, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished run for the given song key.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(songKey string, out engine.Outcome) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (song_key, score, max_combo, perfects, greats, misses, rank, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		songKey, out.Score, out.MaxCombo, out.Perfects, out.Greats, out.Misses,
		out.Rank.String(), out.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const scoreColumns = `id, song_key, score, max_combo, perfects, greats, misses, rank, failed, created_at`

// scanEntry reads one scores row.
func scanEntry(rows *sql.Rows) (ScoreEntry, error) {
	var e ScoreEntry
	var createdAt any
	if err := rows.Scan(&e.ID, &e.SongKey, &e.Score, &e.MaxCombo,
		&e.Perfects, &e.Greats, &e.Misses, &e.Rank, &e.Failed, &createdAt); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.CreatedAt = parseCreatedAt(createdAt)
	return e, nil
}

// parseCreatedAt handles both time.Time and string datetimes, which
// vary by driver configuration.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// TopScores retrieves the top N plays for the given song key.
// Results are ordered by score descending.
func (s *Store) TopScores(songKey string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE song_key = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		songKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Best returns the highest score for the given song key.
// Returns 0 if no plays exist.
func (s *Store) Best(songKey string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE song_key = ?",
		songKey,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all plays for the given song key.
func (s *Store) ClearScores(songKey string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE song_key = ?", songKey)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SongStats contains aggregated play statistics for one song key.
type SongStats struct {
	SongKey    string
	Plays      int
	Best       int
	AvgScore   float64
	Clears     int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a song key.
func (s *Store) Stats(songKey string) (*SongStats, error) {
	stats := &SongStats{SongKey: songKey}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(CASE WHEN failed = 0 THEN 1 ELSE 0 END), 0)
		 FROM scores WHERE song_key = ?`,
		songKey,
	).Scan(&stats.Plays, &stats.Best, &stats.AvgScore, &stats.Clears)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get song stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE song_key = ? ORDER BY created_at DESC LIMIT 1`,
		songKey,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// AllStats retrieves statistics for every song key with at least one
// recorded play.
func (s *Store) AllStats() (map[string]*SongStats, error) {
	rows, err := s.db.Query(
		`SELECT song_key, COUNT(*), MAX(score), AVG(score),
		        SUM(CASE WHEN failed = 0 THEN 1 ELSE 0 END), MAX(created_at)
		 FROM scores
		 GROUP BY song_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all song stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SongStats)
	for rows.Next() {
		var st SongStats
		var lastPlayed any
		if err := rows.Scan(&st.SongKey, &st.Plays, &st.Best, &st.AvgScore, &st.Clears, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseCreatedAt(lastPlayed)
		stats[st.SongKey] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
