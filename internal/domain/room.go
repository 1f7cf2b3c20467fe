package domain

import (
	"context"
	"time"
)

// Room represents a physical room at the event
type Room struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRoom returns a new Room with the given fields. ID is typically set by the repository on create.
func NewRoom(eventID, name string, capacity int, createdAt, updatedAt time.Time) *Room {
	return &Room{
		EventID:   eventID,
		Name:      name,
		Capacity:  capacity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RoomRepository defines the interface for room storage
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Room, error)
}

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the window overlaps the half-open interval
// [start, end).
func (w TimeWindow) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && start.Before(w.End)
}

// Contains reports whether [start, end) lies entirely within the window.
func (w TimeWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// AvailabilityProvider supplies room availability and speaker unavailability
// windows. Windows are read-only to this core.
//
// RoomAvailability must return every window the room has: a room with no
// windows at all is always available, while a room whose windows all miss a
// placement is unavailable for it, so the caller cannot tell the two apart
// from a range-filtered result. SpeakerUnavailability may be narrowed to
// [from, to) because only windows overlapping a placement matter there.
type AvailabilityProvider interface {
	RoomAvailability(ctx context.Context, roomID string) ([]TimeWindow, error)
	SpeakerUnavailability(ctx context.Context, speakerID string, from, to time.Time) ([]TimeWindow, error)
}
