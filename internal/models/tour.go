package models

import (
	"time"
)

// TourEventType categorizes guided-tour lifecycle events reported to the API.
type TourEventType string

const (
	TourEventCompleted TourEventType = "tour.completed"
)

// TourEvent is an append-only record of a tour lifecycle event.
type TourEvent struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Type is the event category.
	Type TourEventType `json:"type"`

	// UserID is the reporting user, empty for anonymous clients.
	UserID string `json:"user_id,omitempty"`

	// ReportedAt is when the API received the event.
	ReportedAt time.Time `json:"reported_at"`
}
