// Package storage provides SQLite-based persistence for session summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only counters are stored. Simulation state is never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/glyphball/internal/core"
)

// Store manages the SQLite database connection for session summaries.
type Store struct {
	db *sql.DB
}

// SessionEntry is a recorded session summary.
type SessionEntry struct {
	ID       int64
	WidgetID string
	User     string // SSH user, or empty for local sessions
	Seed     int64
	core.SessionStats
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			widget_id TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			cells_cleared INTEGER NOT NULL DEFAULT 0,
			regenerations INTEGER NOT NULL DEFAULT 0,
			paddle_hits INTEGER NOT NULL DEFAULT 0,
			respawns INTEGER NOT NULL DEFAULT 0,
			flattens INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_widget_id ON sessions(widget_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(widget_id, cells_cleared DESC);
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

// SaveSession records a session summary.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(e SessionEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (widget_id, username, seed, frames, cells_cleared, regenerations, paddle_hits, respawns, flattens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.WidgetID, e.User, e.Seed,
		e.Frames, e.CellsCleared, e.Regenerations, e.PaddleHits, e.Respawns, e.Flattens,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectSessions = `SELECT id, widget_id, username, seed, frames, cells_cleared,
	regenerations, paddle_hits, respawns, flattens, created_at
	FROM sessions`

// TopSessions retrieves the N sessions with the most cleared cells.
func (s *Store) TopSessions(widgetID string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(selectSessions+`
		 WHERE widget_id = ?
		 ORDER BY cells_cleared DESC, id ASC
		 LIMIT ?`,
		widgetID, limit,
	)
}

// RecentSessions retrieves the N most recently recorded sessions of any widget.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(selectSessions+`
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) query(q string, args ...any) ([]SessionEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.WidgetID, &e.User, &e.Seed,
			&e.Frames, &e.CellsCleared, &e.Regenerations, &e.PaddleHits, &e.Respawns, &e.Flattens,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Totals sums the counters of every session recorded for the widget.
func (s *Store) Totals(widgetID string) (core.SessionStats, int, error) {
	var t core.SessionStats
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0), COALESCE(SUM(cells_cleared), 0),
		        COALESCE(SUM(regenerations), 0), COALESCE(SUM(paddle_hits), 0),
		        COALESCE(SUM(respawns), 0), COALESCE(SUM(flattens), 0)
		 FROM sessions WHERE widget_id = ?`,
		widgetID,
	).Scan(&n, &t.Frames, &t.CellsCleared, &t.Regenerations, &t.PaddleHits, &t.Respawns, &t.Flattens)
	if err != nil {
		return t, 0, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	return t, n, nil
}

// ClearSessions deletes all sessions for the given widget.
func (s *Store) ClearSessions(widgetID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE widget_id = ?", widgetID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
