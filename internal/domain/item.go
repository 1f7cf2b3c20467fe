package domain

import (
	"context"
	"time"
)

// ItemState is the lifecycle state of a schedulable item, owned by the item
// registry. The registry's visibility predicate decides which states appear
// on public schedules.
type ItemState string

const (
	StateSubmitted ItemState = "submitted"
	StateAccepted  ItemState = "accepted"
	StateConfirmed ItemState = "confirmed"
	StateRejected  ItemState = "rejected"
	StateWithdrawn ItemState = "withdrawn"
	StateCanceled  ItemState = "canceled"
)

// LocalizedString maps a language code to its translation.
type LocalizedString map[string]string

// In returns the translation for lang, falling back to English and then to
// any available translation.
func (l LocalizedString) In(lang string) string {
	if v, ok := l[lang]; ok && v != "" {
		return v
	}
	if v, ok := l["en"]; ok && v != "" {
		return v
	}
	for _, v := range l {
		if v != "" {
			return v
		}
	}
	return ""
}

// Schedulable is the closed set of things that can be placed on a schedule:
// sessions and breaks. Both expose identity, speakers (empty for breaks),
// state, and whether a public detail page exists for them.
type Schedulable interface {
	ItemID() string
	ItemEventID() string
	DisplayTitle(lang string) string
	SpeakerIDs() []string
	State() ItemState
	TrackID() string
	HasDetailPage() bool
}

// Session represents a conference session or talk, owned by the external item
// registry. This core reads it; it never mutates session content or state.
type Session struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	Title           string    `json:"title"`
	Abstract        string    `json:"abstract"`
	Speakers        []string  `json:"speakers"`
	ItemState       ItemState `json:"state"`
	Track           string    `json:"track"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *Session) ItemID() string                 { return s.ID }
func (s *Session) ItemEventID() string            { return s.EventID }
func (s *Session) DisplayTitle(lang string) string { return s.Title }
func (s *Session) SpeakerIDs() []string           { return s.Speakers }
func (s *Session) State() ItemState               { return s.ItemState }
func (s *Session) TrackID() string                { return s.Track }
func (s *Session) HasDetailPage() bool            { return true }

// Break is a schedulable item with no speakers and no detail page. Breaks are
// owned by this core. A break copied into other rooms yields independent
// breaks that share only a copy-origin reference; editing one does not affect
// the others.
type Break struct {
	ID              string          `json:"id"`
	EventID         string          `json:"event_id"`
	Title           LocalizedString `json:"title"`
	Description     LocalizedString `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	CopyOf          string          `json:"copy_of,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewBreak returns a new Break with the given fields. ID is set by the caller
// (breaks are identified by UUIDs generated in the service layer).
func NewBreak(id, eventID string, title, description LocalizedString, durationMinutes int, createdAt, updatedAt time.Time) *Break {
	return &Break{
		ID:              id,
		EventID:         eventID,
		Title:           title,
		Description:     description,
		DurationMinutes: durationMinutes,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

func (b *Break) ItemID() string                 { return b.ID }
func (b *Break) ItemEventID() string            { return b.EventID }
func (b *Break) DisplayTitle(lang string) string { return b.Title.In(lang) }
func (b *Break) SpeakerIDs() []string           { return nil }
func (b *Break) State() ItemState               { return StateConfirmed }
func (b *Break) TrackID() string                { return "" }
func (b *Break) HasDetailPage() bool            { return false }

// ItemRegistry is the read-only registry of schedulable items. Sessions come
// from the surrounding application; breaks are stored by this core. The
// registry also owns the public-visibility predicate, which is re-evaluated
// against live item state on every read and never cached in a snapshot.
type ItemRegistry interface {
	GetItem(ctx context.Context, itemID string) (Schedulable, error)
	ListItemsByEventID(ctx context.Context, eventID string) ([]Schedulable, error)
	IsPubliclyVisible(state ItemState) bool
}

// BreakRepository defines storage for breaks.
type BreakRepository interface {
	Create(ctx context.Context, b *Break) error
	Update(ctx context.Context, b *Break) error
	GetByID(ctx context.Context, id string) (*Break, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Break, error)
}

// BreakService defines the business logic for managing breaks.
type BreakService interface {
	CreateBreak(ctx context.Context, eventID string, title, description LocalizedString, durationMinutes int) (*Break, error)
	UpdateBreak(ctx context.Context, b *Break) error
	// CopyBreak duplicates a break as an independent item and places the copy
	// in the given room at the same start time within the same draft version.
	CopyBreak(ctx context.Context, versionID, breakID, roomID string) (*Break, error)
}
