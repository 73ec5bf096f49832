package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sclera-app/sclera/internal/db"
	"github.com/sclera-app/sclera/internal/logging"
	"github.com/sclera-app/sclera/internal/models"
)

// UserSource is the minimal read interface the result handler needs.
// *db.UserRepository satisfies it.
type UserSource interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// SummaryStore is the increment-only write interface for class summaries.
// *db.SummaryRepository satisfies it.
type SummaryStore interface {
	Increment(ctx context.Context, classID string, percentage float64) error
}

// ClassSummaryUpdater increments each of the owning user's class summaries
// when an exam result is created. It never reads the counters back, so
// concurrent increments commute; it is not idempotent, so a redelivered
// trigger double-counts. That risk is accepted, not mitigated here.
type ClassSummaryUpdater struct {
	users     UserSource
	summaries SummaryStore
	logger    zerolog.Logger
}

// NewClassSummaryUpdater creates the result-created handler.
func NewClassSummaryUpdater(users UserSource, summaries SummaryStore) *ClassSummaryUpdater {
	return &ClassSummaryUpdater{
		users:     users,
		summaries: summaries,
		logger:    logging.Component("class-summary"),
	}
}

// HandleResultCreated increments every enrolled class's summary by one
// assessment and the result's percentage. A missing user or empty class
// list aborts the invocation with no write and no error.
func (h *ClassSummaryUpdater) HandleResultCreated(ctx context.Context, result *models.ExamResult) error {
	user, err := h.users.GetUser(ctx, result.UserID)
	if errors.Is(err, db.ErrUserNotFound) {
		h.logger.Warn().Str("user_id", result.UserID).Str("result_id", result.ID).
			Msg("result for unknown user, skipping aggregation")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user %s: %w", result.UserID, err)
	}
	if len(user.ClassIDs) == 0 {
		return nil
	}

	for _, classID := range user.ClassIDs {
		if err := h.summaries.Increment(ctx, classID, result.Percentage); err != nil {
			return fmt.Errorf("increment class %s: %w", classID, err)
		}
	}

	h.logger.Debug().Str("result_id", result.ID).Int("classes", len(user.ClassIDs)).
		Float64("percentage", result.Percentage).Msg("class summaries updated")
	return nil
}
