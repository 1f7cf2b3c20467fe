package domain

import (
	"context"
	"time"
)

// Event represents a conference event
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Timezone  string    `json:"timezone"`
	UseTracks bool      `json:"use_tracks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, slug, timezone string, useTracks bool, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Slug:      slug,
		Timezone:  timezone,
		UseTracks: useTracks,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
}

// EventService defines the business logic for events and their schedule
// versions. Creating an event also creates its first draft version, so the
// one-draft-per-event invariant holds from the start.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) (*ScheduleVersion, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	GetDraft(ctx context.Context, eventID string) (*ScheduleVersion, error)
	ListReleased(ctx context.Context, eventID string) ([]*ScheduleVersion, error)
}
