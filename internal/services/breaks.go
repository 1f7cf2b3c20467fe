package services

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"confsched/internal/domain"
)

type breakService struct {
	breakRepo      domain.BreakRepository
	scheduleRepo   domain.ScheduleRepository
	slots          domain.SlotService
	contextTimeout time.Duration
}

func NewBreakService(breakRepo domain.BreakRepository, scheduleRepo domain.ScheduleRepository, slots domain.SlotService, timeout time.Duration) domain.BreakService {
	return &breakService{
		breakRepo:      breakRepo,
		scheduleRepo:   scheduleRepo,
		slots:          slots,
		contextTimeout: timeout,
	}
}

func (s *breakService) CreateBreak(ctx context.Context, eventID string, title, description domain.LocalizedString, durationMinutes int) (*domain.Break, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if durationMinutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	if title.In("en") == "" {
		return nil, fmt.Errorf("%w: break title is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	b := domain.NewBreak(uuid.NewString(), eventID, title, description, durationMinutes, now, now)
	if err := s.breakRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create break: %w", err)
	}
	return b, nil
}

func (s *breakService) UpdateBreak(ctx context.Context, b *domain.Break) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if b.DurationMinutes <= 0 {
		return domain.ErrInvalidDuration
	}
	if b.Title.In("en") == "" {
		return fmt.Errorf("%w: break title is required", domain.ErrInvalidInput)
	}
	b.UpdatedAt = time.Now().UTC()
	return s.breakRepo.Update(ctx, b)
}

// CopyBreak duplicates a break into another room at the same start time. The
// copy is a fully independent item linked to its origin only through CopyOf;
// edits to either never affect the other.
func (s *breakService) CopyBreak(ctx context.Context, versionID, breakID, roomID string) (*domain.Break, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	version, err := s.scheduleRepo.GetVersionByID(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	if !version.IsDraft {
		return nil, domain.ErrImmutableVersion
	}

	orig, err := s.breakRepo.GetByID(ctx, breakID)
	if err != nil {
		return nil, fmt.Errorf("get break: %w", err)
	}

	placements, err := s.scheduleRepo.ListPlacements(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	var origPlacement *domain.SlotPlacement
	for _, p := range placements {
		if p.ItemID == breakID {
			origPlacement = p
			break
		}
	}
	if origPlacement == nil {
		return nil, fmt.Errorf("%w: break is not placed in this version", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	cp := domain.NewBreak(uuid.NewString(), orig.EventID, maps.Clone(orig.Title), maps.Clone(orig.Description), orig.DurationMinutes, now, now)
	cp.CopyOf = orig.ID
	if err := s.breakRepo.Create(ctx, cp); err != nil {
		return nil, fmt.Errorf("create break copy: %w", err)
	}
	if _, err := s.slots.Place(ctx, versionID, cp.ID, roomID, origPlacement.Start, origPlacement.DurationMinutes); err != nil {
		return nil, fmt.Errorf("place break copy: %w", err)
	}
	return cp, nil
}
