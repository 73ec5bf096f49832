package aggregate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sclera-app/sclera/internal/logging"
	"github.com/sclera-app/sclera/internal/models"
)

// DefaultTimezone is used for users without a timezone of their own.
const DefaultTimezone = "Asia/Kolkata"

// SessionBucketer is the study-session write handler. It computes the
// user-local date/hour bucket for the session but persists nothing yet;
// hourly study aggregation is planned but not built.
type SessionBucketer struct {
	users    UserSource
	timezone string
	logger   zerolog.Logger
}

// NewSessionBucketer creates the study-session handler. An empty timezone
// falls back to DefaultTimezone.
func NewSessionBucketer(users UserSource, timezone string) *SessionBucketer {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return &SessionBucketer{
		users:    users,
		timezone: timezone,
		logger:   logging.Component("session-bucket"),
	}
}

// HandleSessionWritten computes and logs the bucket key. No persisted
// side effect.
func (h *SessionBucketer) HandleSessionWritten(ctx context.Context, session *models.StudySession) error {
	tz := h.timezone
	if user, err := h.users.GetUser(ctx, session.UserID); err == nil && user.Timezone != "" {
		tz = user.Timezone
	}

	key := SessionBucketKey(session.StartedAt, tz)
	h.logger.Debug().Str("session_id", session.ID).Str("bucket", key).Msg("study session bucketed")
	return nil
}

// SessionBucketKey returns the date/hour bucket for a session start time in
// the given IANA timezone, e.g. "2026-08-31T14". Unknown timezones fall
// back to UTC.
func SessionBucketKey(startedAt time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return startedAt.In(loc).Format("2006-01-02T15")
}
