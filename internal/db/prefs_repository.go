package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Prefs repository errors.
var (
	ErrPrefNotFound = errors.New("preference not found")
	ErrInvalidPref  = errors.New("invalid preference")
)

// Preference keys written by the guided tour. Values are "true" or absent.
const (
	PrefVisited           = "sclera_visited"
	PrefTutorialCompleted = "sclera_tutorial_completed"
	PrefTutorialSkipped   = "sclera_tutorial_skipped"
)

// PrefsRepository handles the string key-value preference store.
type PrefsRepository struct {
	db *DB
}

// NewPrefsRepository creates a new PrefsRepository.
func NewPrefsRepository(db *DB) *PrefsRepository {
	return &PrefsRepository{db: db}
}

// Get returns the value for key, or ErrPrefNotFound.
func (r *PrefsRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidPref
	}
	var value string
	row := r.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPrefNotFound
		}
		return "", fmt.Errorf("read pref %s: %w", key, err)
	}
	return value, nil
}

// Set stores key=value, replacing any existing value.
func (r *PrefsRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidPref
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("write pref %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (r *PrefsRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidPref
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete pref %s: %w", key, err)
	}
	return nil
}

// IsTrue reports whether key is set to "true". Absent keys are false.
func (r *PrefsRepository) IsTrue(ctx context.Context, key string) (bool, error) {
	value, err := r.Get(ctx, key)
	if errors.Is(err, ErrPrefNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}
