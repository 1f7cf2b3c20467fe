package domain

import "context"

// ChangeKind classifies one entry of a schedule diff.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeMoved     ChangeKind = "moved"
	ChangeCancelled ChangeKind = "cancelled"
)

// ChangeEntry describes how one item changed between two schedule versions.
// Previous is nil for Added, New is nil for Cancelled.
type ChangeEntry struct {
	Kind     ChangeKind     `json:"kind"`
	ItemID   string         `json:"item_id"`
	Previous *SlotPlacement `json:"previous,omitempty"`
	New      *SlotPlacement `json:"new,omitempty"`
}

// ChangelogEntry is one released version together with its visibility-filtered
// diff against the immediately preceding release.
type ChangelogEntry struct {
	Version *ScheduleVersion `json:"version"`
	Changes []ChangeEntry    `json:"changes"`
}

// DiffService compares schedule versions. The raw diff is visibility-agnostic
// so the notification planner can still reason about newly-invisible items;
// the changelog read path applies the public-visibility filter.
type DiffService interface {
	// Diff compares two versions by item identity. oldVersionID may be empty
	// (first-ever release), in which case every placement in the new version
	// is Added. Items with unchanged geometry emit nothing.
	Diff(ctx context.Context, oldVersionID, newVersionID string) ([]ChangeEntry, error)
	// Changelog returns all released versions of the event ordered by
	// ReleasedAt ascending, each with its diff against the predecessor,
	// filtered to publicly visible items.
	Changelog(ctx context.Context, eventID string) ([]ChangelogEntry, error)
}
