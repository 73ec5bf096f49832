package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/sclera-app/sclera/internal/models"
)

// User repository errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUser     = errors.New("invalid user")
	ErrResultNotFound  = errors.New("exam result not found")
	ErrInvalidResult   = errors.New("invalid exam result")
	ErrSessionNotFound = errors.New("study session not found")
	ErrInvalidSession  = errors.New("invalid study session")
)

// UserRepository handles users and their exam results and study sessions.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Name == "" {
		return ErrInvalidUser
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.AccountType == "" {
		user.AccountType = models.AccountTypeStudent
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	var classIDsJSON *string
	if len(user.ClassIDs) > 0 {
		data, err := json.Marshal(user.ClassIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal class ids: %w", err)
		}
		s := string(data)
		classIDsJSON = &s
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, account_type, class_ids_json, timezone, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		user.ID,
		user.Name,
		string(user.AccountType),
		classIDsJSON,
		nullString(user.Timezone),
		user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, account_type, class_ids_json, timezone, created_at
		FROM users WHERE id = ?
	`, id)

	var (
		user         models.User
		accountType  string
		classIDsJSON sql.NullString
		timezone     sql.NullString
		createdAt    string
	)
	if err := row.Scan(&user.ID, &user.Name, &accountType, &classIDsJSON, &timezone, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	user.AccountType = models.AccountType(accountType)
	if classIDsJSON.Valid && classIDsJSON.String != "" {
		if err := json.Unmarshal([]byte(classIDsJSON.String), &user.ClassIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal class ids: %w", err)
		}
	}
	if timezone.Valid {
		user.Timezone = timezone.String
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	user.CreatedAt = ts

	return &user, nil
}

// CreateExamResult inserts a new exam result for a user.
func (r *UserRepository) CreateExamResult(ctx context.Context, result *models.ExamResult) error {
	if result.UserID == "" {
		return ErrInvalidResult
	}
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.RecordedAt.IsZero() {
		result.RecordedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exam_results (id, user_id, subject, percentage, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		result.ID,
		result.UserID,
		nullString(result.Subject),
		result.Percentage,
		result.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert exam result: %w", err)
	}
	return nil
}

// GetExamResult retrieves an exam result by ID.
func (r *UserRepository) GetExamResult(ctx context.Context, id string) (*models.ExamResult, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, subject, percentage, recorded_at
		FROM exam_results WHERE id = ?
	`, id)

	var (
		result     models.ExamResult
		subject    sql.NullString
		recordedAt string
	)
	if err := row.Scan(&result.ID, &result.UserID, &subject, &result.Percentage, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read exam result: %w", err)
	}
	if subject.Valid {
		result.Subject = subject.String
	}
	ts, err := time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
	}
	result.RecordedAt = ts

	return &result, nil
}

// UpsertStudySession inserts or updates a study session.
func (r *UserRepository) UpsertStudySession(ctx context.Context, session *models.StudySession) error {
	if session.UserID == "" {
		return ErrInvalidSession
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO study_sessions (id, user_id, subject, duration_minutes, started_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			duration_minutes = excluded.duration_minutes,
			started_at = excluded.started_at
	`,
		session.ID,
		session.UserID,
		nullString(session.Subject),
		session.DurationMinutes,
		session.StartedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert study session: %w", err)
	}
	return nil
}

// GetStudySession retrieves a study session by ID.
func (r *UserRepository) GetStudySession(ctx context.Context, id string) (*models.StudySession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, subject, duration_minutes, started_at
		FROM study_sessions WHERE id = ?
	`, id)

	var (
		session   models.StudySession
		subject   sql.NullString
		startedAt string
	)
	if err := row.Scan(&session.ID, &session.UserID, &subject, &session.DurationMinutes, &startedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read study session: %w", err)
	}
	if subject.Valid {
		session.Subject = subject.String
	}
	ts, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	session.StartedAt = ts

	return &session, nil
}
