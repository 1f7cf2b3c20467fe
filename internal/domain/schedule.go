package domain

import (
	"context"
	"time"
)

// ScheduleVersion is one arrangement of items into rooms and timeslots for an
// event. Exactly one version per event is the draft; released versions are
// append-only and never mutated after creation.
type ScheduleVersion struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	IsDraft       bool       `json:"is_draft"`
	ReleaseLabel  *string    `json:"release_label,omitempty"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
	ChangeSummary string     `json:"change_summary,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SlotPlacement assigns one schedulable item to a (room, start, duration)
// slot within one schedule version. A given item appears at most once per
// version. Placements are owned by their version and copied, never aliased,
// across versions.
type SlotPlacement struct {
	ID              string    `json:"id"`
	VersionID       string    `json:"version_id"`
	ItemID          string    `json:"item_id"`
	RoomID          string    `json:"room_id"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
}

// End returns the exclusive end of the placement's interval.
func (p *SlotPlacement) End() time.Time {
	return p.Start.Add(time.Duration(p.DurationMinutes) * time.Minute)
}

// SameGeometry reports whether two placements occupy the same room and
// timeslot. Used by the diff engine to distinguish unchanged items from moves.
func (p *SlotPlacement) SameGeometry(o *SlotPlacement) bool {
	return p.RoomID == o.RoomID && p.Start.Equal(o.Start) && p.DurationMinutes == o.DurationMinutes
}

// Overlaps reports whether two placements' half-open intervals overlap.
func (p *SlotPlacement) Overlaps(o *SlotPlacement) bool {
	return p.Start.Before(o.End()) && o.Start.Before(p.End())
}

// ScheduleRepository defines storage for schedule versions and their
// placements. Release and ResetDraft are the two transactional operations:
// both lock the draft row for the duration of the transaction so concurrent
// release/reset attempts serialize, and both leave the database unchanged on
// failure.
type ScheduleRepository interface {
	CreateVersion(ctx context.Context, v *ScheduleVersion) error
	GetVersionByID(ctx context.Context, id string) (*ScheduleVersion, error)
	GetDraftByEventID(ctx context.Context, eventID string) (*ScheduleVersion, error)
	// ListReleasedByEventID returns released versions ordered by ReleasedAt ascending.
	ListReleasedByEventID(ctx context.Context, eventID string) ([]*ScheduleVersion, error)

	// UpsertPlacement inserts the placement or, if the item is already placed
	// in the version, overwrites that placement in place.
	UpsertPlacement(ctx context.Context, p *SlotPlacement) error
	DeletePlacement(ctx context.Context, versionID, itemID string) error
	ListPlacements(ctx context.Context, versionID string) ([]*SlotPlacement, error)

	// Release atomically retires the draft row in place as the released
	// version (same ID, same placements) and seeds a fresh draft with a copy
	// of the released placements. Returns ErrConcurrentModification if the
	// draft row was already released by another request, ErrDuplicateLabel on
	// a label collision, ErrNotFound if draftID never existed.
	Release(ctx context.Context, draftID, label, summary string, releasedAt time.Time) (released, newDraft *ScheduleVersion, err error)

	// ResetDraft replaces all of the draft's placements with a copy of the
	// target released version's placements. Returns ErrNotFound if the target
	// is not a released version of the same event.
	ResetDraft(ctx context.Context, draftID, targetVersionID string) error
}

// SlotService is the slot store: placement mutation and read paths for a
// single schedule version. It performs no conflict checking, so organizers
// can save intentionally-conflicting drafts while working.
type SlotService interface {
	Place(ctx context.Context, versionID, itemID, roomID string, start time.Time, durationMinutes int) (*SlotPlacement, error)
	Unplace(ctx context.Context, versionID, itemID string) error
	ListPlacements(ctx context.Context, versionID string) ([]*SlotPlacement, error)
	// PublicPlacements filters ListPlacements to items that are publicly
	// visible right now. Visibility is evaluated against live item state, so
	// an item withdrawn after a release disappears from the released
	// version's public read path while its geometry stays in the snapshot.
	PublicPlacements(ctx context.Context, versionID string) ([]*SlotPlacement, error)
}

// SnapshotService is the draft/released state machine.
type SnapshotService interface {
	// Release freezes the draft into an immutable released version and starts
	// a fresh draft seeded from it. When notify is true, the resulting diff is
	// planned into per-speaker notifications and handed to the mail service.
	Release(ctx context.Context, draftID, label, summary string, notify bool) (*ScheduleVersion, error)
	// Reset discards all draft placements in favor of a copy of an earlier
	// released version. Destructive and irreversible for unreleased edits;
	// callers must warn before invoking.
	Reset(ctx context.Context, draftID, targetVersionID string) error
}
