package services

import (
	"context"
	"fmt"
	"time"

	"confsched/internal/domain"
)

type plannerService struct {
	scheduleRepo   domain.ScheduleRepository
	roomRepo       domain.RoomRepository
	registry       domain.ItemRegistry
	contextTimeout time.Duration
}

func NewPlannerService(scheduleRepo domain.ScheduleRepository, roomRepo domain.RoomRepository, registry domain.ItemRegistry, timeout time.Duration) domain.PlannerService {
	return &plannerService{
		scheduleRepo:   scheduleRepo,
		roomRepo:       roomRepo,
		registry:       registry,
		contextTimeout: timeout,
	}
}

// Plan turns a diff into per-speaker change facts. Only Added and Moved
// entries for items publicly visible in the new version are included, and
// every speaker gets exactly one consolidated fact list however many of their
// sessions changed. The computation is pure, so re-running it for the same
// release produces the same plan.
func (s *plannerService) Plan(ctx context.Context, changes []domain.ChangeEntry, newVersionID string) (domain.NotificationPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	version, err := s.scheduleRepo.GetVersionByID(ctx, newVersionID)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	items, err := s.registry.ListItemsByEventID(ctx, version.EventID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	itemsByID := make(map[string]domain.Schedulable, len(items))
	for _, item := range items {
		itemsByID[item.ItemID()] = item
	}
	rooms, err := s.roomRepo.ListByEventID(ctx, version.EventID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	roomNames := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomNames[room.ID] = room.Name
	}

	plan := domain.NotificationPlan{}
	for _, ch := range changes {
		if ch.Kind != domain.ChangeAdded && ch.Kind != domain.ChangeMoved {
			continue
		}
		item, ok := itemsByID[ch.ItemID]
		if !ok {
			continue
		}
		if !s.registry.IsPubliclyVisible(item.State()) {
			continue
		}
		start := ch.New.Start
		fact := domain.ChangeFact{
			ItemID:   ch.ItemID,
			Title:    item.DisplayTitle("en"),
			Kind:     ch.Kind,
			RoomName: roomNames[ch.New.RoomID],
			Start:    &start,
		}
		for _, speakerID := range item.SpeakerIDs() {
			plan[speakerID] = append(plan[speakerID], fact)
		}
	}
	return plan, nil
}
