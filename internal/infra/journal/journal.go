// Package journal provides the SQLite-backed event history.
// The journal is append-only: every applied XP event is recorded once
// (the event id is the primary key), backing `ducktyper log` and the
// history API. Uses WAL mode for crash-safe writes.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/quackverse/ducktyper/internal/domain"
)

// DB wraps the journal's SQLite connection.
type DB struct {
	db *sql.DB
}

// Open creates or opens the journal database at dir/journal.db.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS xp_events (
			id         TEXT PRIMARY KEY,
			label      TEXT NOT NULL,
			points     INTEGER NOT NULL,
			applied_at INTEGER NOT NULL,
			metadata   TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_xp_events_applied ON xp_events(applied_at)`,
	}
	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Append records an applied event. Re-appending the same event id is a
// no-op, mirroring the engine's idempotence.
func (d *DB) Append(event domain.XPEvent, at time.Time) error {
	meta := "{}"
	if len(event.Metadata) > 0 {
		b, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		meta = string(b)
	}

	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO xp_events (id, label, points, applied_at, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.Label, event.Points, at.Unix(), meta,
	)
	return err
}

// Recent returns the most recently applied events, newest first.
func (d *DB) Recent(limit int) ([]domain.JournalEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, label, points, applied_at FROM xp_events
		 ORDER BY applied_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var appliedAt int64
		if err := rows.Scan(&e.EventID, &e.Label, &e.Points, &appliedAt); err != nil {
			return nil, err
		}
		e.AppliedAt = time.Unix(appliedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of journaled events.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM xp_events`).Scan(&n)
	return n, err
}
