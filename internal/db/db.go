// Package db provides SQLite database access for Sclera.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB handle with migration support.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at the given path.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db := &DB{DB: handle}
	if err := db.configure(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

// OpenInMemory opens a fresh in-memory database, used by tests.
func OpenInMemory() (*DB, error) {
	handle, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	// A single connection keeps every statement on the same in-memory DB.
	handle.SetMaxOpenConns(1)
	db := &DB{DB: handle}
	if err := db.configure(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) configure() error {
	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	return nil
}

// migrations are applied in order; each entry runs at most once.
var migrations = []string{
	`CREATE TABLE users (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		account_type   TEXT NOT NULL,
		class_ids_json TEXT,
		timezone       TEXT,
		created_at     TEXT NOT NULL
	)`,
	`CREATE TABLE exam_results (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id),
		subject     TEXT,
		percentage  REAL NOT NULL DEFAULT 0,
		recorded_at TEXT NOT NULL
	)`,
	`CREATE TABLE study_sessions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id),
		subject          TEXT,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		started_at       TEXT NOT NULL
	)`,
	`CREATE TABLE class_summary (
		class_id          TEXT PRIMARY KEY,
		total_assessments INTEGER NOT NULL DEFAULT 0,
		total_score_sum   REAL NOT NULL DEFAULT 0,
		last_updated      TEXT NOT NULL
	)`,
	`CREATE TABLE prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE tour_events (
		id          TEXT PRIMARY KEY,
		type        TEXT NOT NULL,
		user_id     TEXT,
		reported_at TEXT NOT NULL
	)`,
	`CREATE INDEX idx_exam_results_user ON exam_results(user_id)`,
	`CREATE INDEX idx_study_sessions_user ON study_sessions(user_id)`,
}

// MigrateUp applies any pending migrations and returns how many ran.
func (db *DB) MigrateUp(ctx context.Context) (int, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	row := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err := row.Scan(&current); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	applied := 0
	for i := current; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, i+1); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %d: %w", i+1, err)
		}
		applied++
	}

	return applied, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
