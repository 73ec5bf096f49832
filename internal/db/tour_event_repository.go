package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sclera-app/sclera/internal/models"
)

// Tour event repository errors.
var (
	ErrInvalidTourEvent = errors.New("invalid tour event")
)

// TourEventRepository appends tour lifecycle events reported to the API.
type TourEventRepository struct {
	db *DB
}

// NewTourEventRepository creates a new TourEventRepository.
func NewTourEventRepository(db *DB) *TourEventRepository {
	return &TourEventRepository{db: db}
}

// Create appends a new tour event.
func (r *TourEventRepository) Create(ctx context.Context, event *models.TourEvent) error {
	if event.Type == "" {
		return ErrInvalidTourEvent
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.ReportedAt.IsZero() {
		event.ReportedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tour_events (id, type, user_id, reported_at)
		VALUES (?, ?, ?, ?)
	`,
		event.ID,
		string(event.Type),
		nullString(event.UserID),
		event.ReportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tour event: %w", err)
	}
	return nil
}

// CountByType returns how many events of the given type were recorded.
func (r *TourEventRepository) CountByType(ctx context.Context, eventType models.TourEventType) (int64, error) {
	var count int64
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tour_events WHERE type = ?`, string(eventType))
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tour events: %w", err)
	}
	return count, nil
}
