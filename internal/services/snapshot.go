package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"confsched/internal/domain"
)

type snapshotService struct {
	scheduleRepo   domain.ScheduleRepository
	eventRepo      domain.EventRepository
	conflicts      domain.ConflictService
	diffs          domain.DiffService
	planner        domain.PlannerService
	mail           domain.ScheduleMailService
	policy         domain.ReleasePolicy
	contextTimeout time.Duration
}

// NewSnapshotService wires the release state machine. policy may be nil, in
// which case conflicts never block a release; mail may be nil to disable
// notifications entirely.
func NewSnapshotService(
	scheduleRepo domain.ScheduleRepository,
	eventRepo domain.EventRepository,
	conflicts domain.ConflictService,
	diffs domain.DiffService,
	planner domain.PlannerService,
	mail domain.ScheduleMailService,
	policy domain.ReleasePolicy,
	timeout time.Duration,
) domain.SnapshotService {
	return &snapshotService{
		scheduleRepo:   scheduleRepo,
		eventRepo:      eventRepo,
		conflicts:      conflicts,
		diffs:          diffs,
		planner:        planner,
		mail:           mail,
		policy:         policy,
		contextTimeout: timeout,
	}
}

// Release freezes the draft into an immutable released version and seeds a
// fresh draft from it, in one transaction owned by the repository. Conflict
// detection runs first only when a release policy is configured; findings are
// otherwise advisory and never consulted here.
func (s *snapshotService) Release(ctx context.Context, draftID, label, summary string, notify bool) (*domain.ScheduleVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: release label is required", domain.ErrInvalidInput)
	}

	draft, err := s.scheduleRepo.GetVersionByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if !draft.IsDraft {
		return nil, domain.ErrConcurrentModification
	}

	previous, err := s.scheduleRepo.ListReleasedByEventID(ctx, draft.EventID)
	if err != nil {
		return nil, fmt.Errorf("list released versions: %w", err)
	}
	for _, v := range previous {
		if v.ReleaseLabel != nil && *v.ReleaseLabel == label {
			return nil, domain.ErrDuplicateLabel
		}
	}
	prevID := ""
	if len(previous) > 0 {
		prevID = previous[len(previous)-1].ID
	}

	if s.policy != nil {
		report, err := s.conflicts.Detect(ctx, draftID)
		if err != nil {
			return nil, fmt.Errorf("detect conflicts: %w", err)
		}
		if err := s.policy(report); err != nil {
			return nil, err
		}
	}

	released, _, err := s.scheduleRepo.Release(ctx, draftID, label, summary, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if notify {
		// The release is committed at this point. A failure while planning or
		// queueing notifications must not undo it; the plan is idempotent and
		// can be recomputed from the released versions at any time.
		if err := s.notifyRelease(ctx, prevID, released); err != nil {
			log.Printf("[SCHEDULE] release %s: notification planning failed: %v", released.ID, err)
		}
	}
	return released, nil
}

func (s *snapshotService) notifyRelease(ctx context.Context, prevID string, released *domain.ScheduleVersion) error {
	if s.mail == nil {
		return nil
	}
	changes, err := s.diffs.Diff(ctx, prevID, released.ID)
	if err != nil {
		return fmt.Errorf("diff released versions: %w", err)
	}
	plan, err := s.planner.Plan(ctx, changes, released.ID)
	if err != nil {
		return fmt.Errorf("plan notifications: %w", err)
	}
	if len(plan) == 0 {
		return nil
	}
	event, err := s.eventRepo.GetByID(ctx, released.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	return s.mail.SendScheduleUpdate(ctx, event, released, plan)
}

// Reset replaces the draft's placements wholesale with a copy of an earlier
// released version. Destructive for unreleased draft edits; the calling layer
// is expected to warn before invoking.
func (s *snapshotService) Reset(ctx context.Context, draftID, targetVersionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.scheduleRepo.ResetDraft(ctx, draftID, targetVersionID)
}
