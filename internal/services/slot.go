package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confsched/internal/domain"
)

type slotService struct {
	scheduleRepo   domain.ScheduleRepository
	roomRepo       domain.RoomRepository
	registry       domain.ItemRegistry
	contextTimeout time.Duration
}

func NewSlotService(scheduleRepo domain.ScheduleRepository, roomRepo domain.RoomRepository, registry domain.ItemRegistry, timeout time.Duration) domain.SlotService {
	return &slotService{
		scheduleRepo:   scheduleRepo,
		roomRepo:       roomRepo,
		registry:       registry,
		contextTimeout: timeout,
	}
}

// Place puts an item into a slot on the draft. Re-placing an already placed
// item overwrites the existing placement. Conflicts are not checked here;
// organizers may save intentionally-conflicting drafts and run detection as a
// separate read.
func (s *slotService) Place(ctx context.Context, versionID, itemID, roomID string, start time.Time, durationMinutes int) (*domain.SlotPlacement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if durationMinutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	version, err := s.scheduleRepo.GetVersionByID(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	if !version.IsDraft {
		return nil, domain.ErrImmutableVersion
	}

	item, err := s.registry.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item.ItemEventID() != version.EventID {
		return nil, fmt.Errorf("%w: item belongs to another event", domain.ErrInvalidInput)
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room.EventID != version.EventID {
		return nil, fmt.Errorf("%w: room belongs to another event", domain.ErrInvalidInput)
	}

	p := &domain.SlotPlacement{
		VersionID:       versionID,
		ItemID:          itemID,
		RoomID:          roomID,
		Start:           start.UTC(),
		DurationMinutes: durationMinutes,
	}
	if err := s.scheduleRepo.UpsertPlacement(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert placement: %w", err)
	}
	return p, nil
}

func (s *slotService) Unplace(ctx context.Context, versionID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	version, err := s.scheduleRepo.GetVersionByID(ctx, versionID)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	if !version.IsDraft {
		return domain.ErrImmutableVersion
	}
	return s.scheduleRepo.DeletePlacement(ctx, versionID, itemID)
}

func (s *slotService) ListPlacements(ctx context.Context, versionID string) ([]*domain.SlotPlacement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.scheduleRepo.GetVersionByID(ctx, versionID); err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	placements, err := s.scheduleRepo.ListPlacements(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	if placements == nil {
		placements = []*domain.SlotPlacement{}
	}
	return placements, nil
}

// PublicPlacements is the public read path: placements whose item is publicly
// visible right now. Visibility is evaluated against live item state on every
// call, so released geometry stays frozen while visibility can still change.
func (s *slotService) PublicPlacements(ctx context.Context, versionID string) ([]*domain.SlotPlacement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	version, err := s.scheduleRepo.GetVersionByID(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	placements, err := s.scheduleRepo.ListPlacements(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}

	items, err := s.registry.ListItemsByEventID(ctx, version.EventID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	byID := make(map[string]domain.Schedulable, len(items))
	for _, item := range items {
		byID[item.ItemID()] = item
	}

	visible := []*domain.SlotPlacement{}
	for _, p := range placements {
		item, ok := byID[p.ItemID]
		if !ok {
			continue
		}
		if s.registry.IsPubliclyVisible(item.State()) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}
