package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"confsched/internal/domain"
)

type diffService struct {
	scheduleRepo   domain.ScheduleRepository
	registry       domain.ItemRegistry
	contextTimeout time.Duration
}

func NewDiffService(scheduleRepo domain.ScheduleRepository, registry domain.ItemRegistry, timeout time.Duration) domain.DiffService {
	return &diffService{
		scheduleRepo:   scheduleRepo,
		registry:       registry,
		contextTimeout: timeout,
	}
}

// Diff compares two versions by item identity. The raw diff ignores
// visibility so downstream consumers can still reason about newly-invisible
// items. Entries are ordered by item ID so the result is deterministic
// regardless of placement order in either version.
func (s *diffService) Diff(ctx context.Context, oldVersionID, newVersionID string) ([]domain.ChangeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.diff(ctx, oldVersionID, newVersionID)
}

func (s *diffService) diff(ctx context.Context, oldVersionID, newVersionID string) ([]domain.ChangeEntry, error) {
	if _, err := s.scheduleRepo.GetVersionByID(ctx, newVersionID); err != nil {
		return nil, fmt.Errorf("get new version: %w", err)
	}
	newPlacements, err := s.scheduleRepo.ListPlacements(ctx, newVersionID)
	if err != nil {
		return nil, fmt.Errorf("list new placements: %w", err)
	}

	oldByItem := make(map[string]*domain.SlotPlacement)
	if oldVersionID != "" {
		if _, err := s.scheduleRepo.GetVersionByID(ctx, oldVersionID); err != nil {
			return nil, fmt.Errorf("get old version: %w", err)
		}
		oldPlacements, err := s.scheduleRepo.ListPlacements(ctx, oldVersionID)
		if err != nil {
			return nil, fmt.Errorf("list old placements: %w", err)
		}
		for _, p := range oldPlacements {
			oldByItem[p.ItemID] = p
		}
	}

	newByItem := make(map[string]*domain.SlotPlacement, len(newPlacements))
	for _, p := range newPlacements {
		newByItem[p.ItemID] = p
	}

	var changes []domain.ChangeEntry
	for _, p := range newPlacements {
		prev, existed := oldByItem[p.ItemID]
		switch {
		case !existed:
			changes = append(changes, domain.ChangeEntry{Kind: domain.ChangeAdded, ItemID: p.ItemID, New: p})
		case !prev.SameGeometry(p):
			changes = append(changes, domain.ChangeEntry{Kind: domain.ChangeMoved, ItemID: p.ItemID, Previous: prev, New: p})
		}
	}
	for itemID, prev := range oldByItem {
		if _, stillPlaced := newByItem[itemID]; !stillPlaced {
			changes = append(changes, domain.ChangeEntry{Kind: domain.ChangeCancelled, ItemID: itemID, Previous: prev})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].ItemID < changes[j].ItemID })
	return changes, nil
}

// Changelog returns all released versions of the event in release order, each
// with its diff against the immediate predecessor filtered to publicly
// visible items. Visibility is evaluated against live item state, so a talk
// withdrawn after a release disappears from the changelog too.
func (s *diffService) Changelog(ctx context.Context, eventID string) ([]domain.ChangelogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	versions, err := s.scheduleRepo.ListReleasedByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list released versions: %w", err)
	}
	items, err := s.registry.ListItemsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	visible := make(map[string]bool, len(items))
	for _, item := range items {
		visible[item.ItemID()] = s.registry.IsPubliclyVisible(item.State())
	}

	entries := make([]domain.ChangelogEntry, 0, len(versions))
	prevID := ""
	for _, v := range versions {
		changes, err := s.diff(ctx, prevID, v.ID)
		if err != nil {
			return nil, err
		}
		filtered := []domain.ChangeEntry{}
		for _, ch := range changes {
			if visible[ch.ItemID] {
				filtered = append(filtered, ch)
			}
		}
		entries = append(entries, domain.ChangelogEntry{Version: v, Changes: filtered})
		prevID = v.ID
	}
	return entries, nil
}
