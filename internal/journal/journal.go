// Package journal keeps a history of search invocations in SQLite.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Journal wraps the SQLite connection.
type Journal struct {
	conn *sql.DB
	path string
}

// Open opens or creates the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure journal: %w", err)
	}

	j := &Journal{conn: conn, path: path}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return j, nil
}

func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) migrate() error {
	_, err := j.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var version int
	if err := j.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return err
	}

	migrations := []string{
		migrationV1,
	}
	for i := version; i < len(migrations); i++ {
		if _, err := j.conn.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := j.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			return err
		}
	}
	return nil
}

const migrationV1 = `
CREATE TABLE IF NOT EXISTS searches (
	id TEXT PRIMARY KEY,
	at INTEGER NOT NULL,
	mode TEXT NOT NULL,
	key TEXT NOT NULL,
	matches INTEGER NOT NULL,
	bound_var TEXT,
	bound_device TEXT,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_searches_at ON searches(at);
`

// Entry is one recorded search invocation.
type Entry struct {
	ID          string
	At          time.Time
	Mode        string
	Key         string
	Matches     int
	BoundVar    string
	BoundDevice string
	Duration    time.Duration
}

// Record inserts one invocation. A missing ID or timestamp is filled in.
func (j *Journal) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	_, err := j.conn.Exec(`
		INSERT INTO searches (id, at, mode, key, matches, bound_var, bound_device, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.At.Unix(), e.Mode, e.Key, e.Matches, e.BoundVar, e.BoundDevice, e.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.conn.Query(`
		SELECT id, at, mode, key, matches, COALESCE(bound_var, ''), COALESCE(bound_device, ''), duration_ms
		FROM searches
		ORDER BY at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at, durMS int64
		if err := rows.Scan(&e.ID, &at, &e.Mode, &e.Key, &e.Matches, &e.BoundVar, &e.BoundDevice, &durMS); err != nil {
			return nil, err
		}
		e.At = time.Unix(at, 0)
		e.Duration = time.Duration(durMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
