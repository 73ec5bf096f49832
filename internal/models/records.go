// Package models defines the record types shared across Sclera's storage,
// aggregation, and API layers.
package models

import (
	"time"
)

// AccountType tags a user with the study track they signed up for.
// It selects which guided-tour catalog they see.
type AccountType string

const (
	AccountTypeStudent  AccountType = "student"
	AccountTypeExamPrep AccountType = "exam_prep"
)

// User represents a platform user.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`

	// Name is the user's display name.
	Name string `json:"name"`

	// AccountType is the user's study track (e.g. "student").
	AccountType AccountType `json:"account_type"`

	// ClassIDs lists the classes the user is enrolled in.
	ClassIDs []string `json:"class_ids"`

	// Timezone is the IANA timezone name for the user, empty for the
	// platform default.
	Timezone string `json:"timezone,omitempty"`

	// CreatedAt is when the user record was created.
	CreatedAt time.Time `json:"created_at"`
}

// ExamResult represents a single graded assessment for a user.
type ExamResult struct {
	// ID is the unique identifier for the result.
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Subject is the assessed subject (e.g. "Mathematics").
	Subject string `json:"subject"`

	// Percentage is the score as a percentage, 0-100.
	Percentage float64 `json:"percentage"`

	// RecordedAt is when the result was recorded.
	RecordedAt time.Time `json:"recorded_at"`
}

// StudySession represents a timed study block logged by a user.
type StudySession struct {
	// ID is the unique identifier for the session.
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Subject is what the session covered.
	Subject string `json:"subject,omitempty"`

	// DurationMinutes is the logged length of the session.
	DurationMinutes int64 `json:"duration_minutes"`

	// StartedAt is when the session began.
	StartedAt time.Time `json:"started_at"`
}

// ClassSummary is the per-class running aggregate maintained by the
// result-created handler. Counters only ever increment.
type ClassSummary struct {
	// ClassID is the class this summary belongs to.
	ClassID string `json:"class_id"`

	// TotalAssessments is the number of results counted so far.
	TotalAssessments int64 `json:"total_assessments"`

	// TotalScoreSum is the sum of result percentages counted so far.
	TotalScoreSum float64 `json:"total_score_sum"`

	// LastUpdated is the server-side timestamp of the latest increment.
	LastUpdated time.Time `json:"last_updated"`
}

// AverageScore returns the mean percentage across counted assessments,
// or 0 when nothing has been counted yet.
func (s *ClassSummary) AverageScore() float64 {
	if s.TotalAssessments == 0 {
		return 0
	}
	return s.TotalScoreSum / float64(s.TotalAssessments)
}
