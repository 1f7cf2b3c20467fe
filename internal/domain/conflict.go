package domain

import (
	"context"
	"time"
)

// ConflictKind classifies a scheduling conflict.
type ConflictKind string

const (
	RoomDoubleBooked     ConflictKind = "room_double_booked"
	SpeakerDoubleBooked  ConflictKind = "speaker_double_booked"
	SpeakerUnavailable   ConflictKind = "speaker_unavailable"
	RoomUnavailable      ConflictKind = "room_unavailable"
	MissingRequiredField ConflictKind = "missing_required_field"
	UnscheduledConfirmed ConflictKind = "unscheduled_confirmed"
	UnconfirmedVisible   ConflictKind = "unconfirmed_visible"
)

// Severity distinguishes warnings from purely informational findings. All
// conflicts are advisory; none block a release on their own.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Conflict is one finding about a version's placements. PlacementIDs holds
// both placements for double bookings and the single placement otherwise;
// availability and missing-field findings also carry the resource involved.
type Conflict struct {
	Kind         ConflictKind `json:"kind"`
	Severity     Severity     `json:"severity"`
	PlacementIDs []string     `json:"placement_ids,omitempty"`
	ItemID       string       `json:"item_id,omitempty"`
	RoomID       string       `json:"room_id,omitempty"`
	SpeakerID    string       `json:"speaker_id,omitempty"`
	Detail       string       `json:"detail"`
}

// ConflictReport is the computed result of conflict detection for one
// version. It is never persisted.
type ConflictReport struct {
	VersionID   string     `json:"version_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Conflicts   []Conflict `json:"conflicts"`
}

// ByKind returns the conflicts of the given kind.
func (r *ConflictReport) ByKind(kind ConflictKind) []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// ConflictService computes conflict reports. Detection is a pure read: it
// never mutates state and always succeeds, even when the report is non-empty.
// The decision to block a release on conflicts belongs to the caller.
type ConflictService interface {
	Detect(ctx context.Context, versionID string) (*ConflictReport, error)
}

// ReleasePolicy lets the caller decide whether a conflict report should block
// a release. A nil policy never blocks.
type ReleasePolicy func(report *ConflictReport) error
