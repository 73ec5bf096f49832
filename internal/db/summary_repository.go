package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sclera-app/sclera/internal/models"
)

// Summary repository errors.
var (
	ErrSummaryNotFound = errors.New("class summary not found")
	ErrInvalidSummary  = errors.New("invalid class summary")
)

// SummaryRepository maintains the per-class running aggregates.
type SummaryRepository struct {
	db *DB
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Increment adds one assessment with the given percentage to the class
// summary, creating the row if needed. The whole operation is a single
// atomic upsert; the counters are never read back first.
func (r *SummaryRepository) Increment(ctx context.Context, classID string, percentage float64) error {
	if classID == "" {
		return ErrInvalidSummary
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO class_summary (class_id, total_assessments, total_score_sum, last_updated)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(class_id) DO UPDATE SET
			total_assessments = total_assessments + 1,
			total_score_sum = total_score_sum + excluded.total_score_sum,
			last_updated = excluded.last_updated
	`, classID, percentage, now)
	if err != nil {
		return fmt.Errorf("failed to increment class summary %s: %w", classID, err)
	}
	return nil
}

// Get retrieves the summary for a class.
func (r *SummaryRepository) Get(ctx context.Context, classID string) (*models.ClassSummary, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT class_id, total_assessments, total_score_sum, last_updated
		FROM class_summary WHERE class_id = ?
	`, classID)

	var (
		summary     models.ClassSummary
		lastUpdated string
	)
	if err := row.Scan(&summary.ClassID, &summary.TotalAssessments, &summary.TotalScoreSum, &lastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to read class summary: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last_updated: %w", err)
	}
	summary.LastUpdated = ts

	return &summary, nil
}
