package services

import (
	"context"
	"fmt"
	"time"

	"confsched/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	scheduleRepo   domain.ScheduleRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, scheduleRepo domain.ScheduleRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		scheduleRepo:   scheduleRepo,
		contextTimeout: timeout,
	}
}

// CreateEvent stores the event and seeds its first (empty) draft version.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.ScheduleVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Name == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if event.Slug == "" {
		return nil, fmt.Errorf("%w: event slug is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	draft := &domain.ScheduleVersion{
		EventID:   event.ID,
		IsDraft:   true,
		CreatedAt: now,
	}
	if err := s.scheduleRepo.CreateVersion(ctx, draft); err != nil {
		return nil, fmt.Errorf("create initial draft: %w", err)
	}
	return draft, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) GetDraft(ctx context.Context, eventID string) (*domain.ScheduleVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.scheduleRepo.GetDraftByEventID(ctx, eventID)
}

func (s *eventService) ListReleased(ctx context.Context, eventID string) ([]*domain.ScheduleVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	versions, err := s.scheduleRepo.ListReleasedByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list released versions: %w", err)
	}
	if versions == nil {
		versions = []*domain.ScheduleVersion{}
	}
	return versions, nil
}
