// Package aggregate implements the record-trigger handlers that maintain
// per-class running summaries.
package aggregate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sclera-app/sclera/internal/logging"
	"github.com/sclera-app/sclera/internal/models"
)

// ResultHandler reacts to newly created exam results.
type ResultHandler interface {
	HandleResultCreated(ctx context.Context, result *models.ExamResult) error
}

// SessionHandler reacts to study-session creates and updates.
type SessionHandler interface {
	HandleSessionWritten(ctx context.Context, session *models.StudySession) error
}

// Dispatcher fans record writes out to the registered handlers. It runs
// handlers synchronously, once per write; delivery is at-least-once from
// the caller's perspective, and handler errors are logged, never surfaced
// to the writer.
type Dispatcher struct {
	results  []ResultHandler
	sessions []SessionHandler
	logger   zerolog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{logger: logging.Component("aggregate")}
}

// OnResultCreated registers a handler for exam-result creation.
func (d *Dispatcher) OnResultCreated(h ResultHandler) {
	d.results = append(d.results, h)
}

// OnSessionWritten registers a handler for study-session writes.
func (d *Dispatcher) OnSessionWritten(h SessionHandler) {
	d.sessions = append(d.sessions, h)
}

// ResultCreated invokes the result handlers for a new exam result.
func (d *Dispatcher) ResultCreated(ctx context.Context, result *models.ExamResult) {
	for _, h := range d.results {
		if err := h.HandleResultCreated(ctx, result); err != nil {
			d.logger.Error().Err(err).Str("result_id", result.ID).Msg("result handler failed")
		}
	}
}

// SessionWritten invokes the session handlers for a created or updated
// study session.
func (d *Dispatcher) SessionWritten(ctx context.Context, session *models.StudySession) {
	for _, h := range d.sessions {
		if err := h.HandleSessionWritten(ctx, session); err != nil {
			d.logger.Error().Err(err).Str("session_id", session.ID).Msg("session handler failed")
		}
	}
}
