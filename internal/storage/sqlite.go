// Package storage provides SQLite-based persistence for catch attempts and
// finished runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/campus-dex/internal/dex"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for records.
type Store struct {
	db *sql.DB
}

// Attempt is one opened puzzle and how it ended.
type Attempt struct {
	ID        int64
	RunID     string
	Player    string
	Game      dex.ID
	Success   bool
	Reason    string
	Duration  time.Duration
	CreatedAt time.Time
}

// Run is a playthrough that caught every creature.
type Run struct {
	ID        string
	Player    string
	Caught    int
	Attempts  int
	Duration  time.Duration
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for one puzzle.
type GameStats struct {
	Game       dex.ID
	Attempts   int
	Successes  int
	Abandoned  int
	Fastest    time.Duration // quickest successful attempt, 0 if none
	LastPlayed time.Time
}

// SuccessRate returns successes / attempts, or 0 with no attempts.
func (g GameStats) SuccessRate() float64 {
	if g.Attempts == 0 {
		return 0
	}
	return float64(g.Successes) / float64(g.Attempts)
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
		CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			game_id INTEGER NOT NULL,
			success INTEGER NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_game_id ON attempts(game_id);
		CREATE INDEX IF NOT EXISTS idx_attempts_run_id ON attempts(run_id);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			caught INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_fastest ON runs(duration_ms ASC);
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

// SaveAttempt records one puzzle attempt and returns its row id.
func (s *Store) SaveAttempt(a Attempt) (int64, error) {
	if !a.Game.Valid() {
		return 0, fmt.Errorf("storage: invalid game id %d", a.Game)
	}
	result, err := s.db.Exec(
		`INSERT INTO attempts (run_id, player, game_id, success, reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.RunID, a.Player, int(a.Game), a.Success, a.Reason, a.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveRun records a finished run. Saving the same run id twice is an error.
func (s *Store) SaveRun(r Run) error {
	if r.ID == "" {
		return errors.New("storage: run id is required")
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (id, player, caught, duration_ms) VALUES (?, ?, ?, ?)",
		r.ID, r.Player, r.Caught, r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// RecentAttempts returns the latest attempts, newest first.
func (s *Store) RecentAttempts(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, game_id, success, reason, duration_ms, created_at
		 FROM attempts
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var game int
		var ms int64
		var createdAt any
		if err := rows.Scan(&a.ID, &a.RunID, &a.Player, &game, &a.Success, &a.Reason, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.Game = dex.ID(game)
		a.Duration = time.Duration(ms) * time.Millisecond
		a.CreatedAt = parseTime(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return attempts, nil
}

// FastestRuns returns finished runs ordered by duration ascending.
func (s *Store) FastestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.player, r.caught, r.duration_ms, r.created_at,
		        (SELECT COUNT(*) FROM attempts a WHERE a.run_id = r.id)
		 FROM runs r
		 ORDER BY r.duration_ms ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Caught, &ms, &createdAt, &r.Attempts); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// GetAllGameStats returns statistics for every puzzle that has been played.
func (s *Store) GetAllGameStats() (map[dex.ID]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id,
		        COUNT(*),
		        COALESCE(SUM(success), 0),
		        COALESCE(SUM(CASE WHEN reason = 'abandoned' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN success = 1 THEN duration_ms END), 0),
		        MAX(created_at)
		 FROM attempts
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[dex.ID]*GameStats)
	for rows.Next() {
		var g GameStats
		var game int
		var fastest int64
		var lastPlayed any
		if err := rows.Scan(&game, &g.Attempts, &g.Successes, &g.Abandoned, &fastest, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.Game = dex.ID(game)
		g.Fastest = time.Duration(fastest) * time.Millisecond
		g.LastPlayed = parseTime(lastPlayed)
		stats[g.Game] = &g
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRecords deletes every attempt and run.
func (s *Store) ClearRecords() error {
	if _, err := s.db.Exec("DELETE FROM attempts; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
