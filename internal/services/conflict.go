package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"confsched/internal/domain"
)

type conflictService struct {
	scheduleRepo   domain.ScheduleRepository
	eventRepo      domain.EventRepository
	registry       domain.ItemRegistry
	availability   domain.AvailabilityProvider
	contextTimeout time.Duration
}

func NewConflictService(scheduleRepo domain.ScheduleRepository, eventRepo domain.EventRepository, registry domain.ItemRegistry, availability domain.AvailabilityProvider, timeout time.Duration) domain.ConflictService {
	return &conflictService{
		scheduleRepo:   scheduleRepo,
		eventRepo:      eventRepo,
		registry:       registry,
		availability:   availability,
		contextTimeout: timeout,
	}
}

// Detect computes all conflicts for a version. It is a pure read over the
// version's placements plus external resource data, and always succeeds even
// when the report is non-empty; whether any finding blocks a release is the
// caller's decision.
func (s *conflictService) Detect(ctx context.Context, versionID string) (*domain.ConflictReport, error) {
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
	event, err := s.eventRepo.GetByID(ctx, version.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	items, err := s.registry.ListItemsByEventID(ctx, version.EventID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	itemsByID := make(map[string]domain.Schedulable, len(items))
	for _, item := range items {
		itemsByID[item.ItemID()] = item
	}

	report := &domain.ConflictReport{
		VersionID:   versionID,
		GeneratedAt: time.Now().UTC(),
		Conflicts:   []domain.Conflict{},
	}

	s.detectRoomDoubleBookings(placements, report)
	s.detectSpeakerDoubleBookings(placements, itemsByID, report)
	if err := s.detectAvailabilityViolations(ctx, placements, itemsByID, report); err != nil {
		return nil, err
	}
	s.detectItemStateFindings(event, placements, items, report)

	return report, nil
}

// detectRoomDoubleBookings groups placements by room and, within each room,
// sweeps the placements in start order emitting one conflict per overlapping
// pair.
func (s *conflictService) detectRoomDoubleBookings(placements []*domain.SlotPlacement, report *domain.ConflictReport) {
	byRoom := make(map[string][]*domain.SlotPlacement)
	for _, p := range placements {
		byRoom[p.RoomID] = append(byRoom[p.RoomID], p)
	}
	for _, roomID := range sortedKeys(byRoom) {
		for _, pair := range overlappingPairs(byRoom[roomID]) {
			report.Conflicts = append(report.Conflicts, domain.Conflict{
				Kind:         domain.RoomDoubleBooked,
				Severity:     domain.SeverityWarning,
				PlacementIDs: []string{pair[0].ID, pair[1].ID},
				RoomID:       roomID,
				Detail:       fmt.Sprintf("items %s and %s overlap in the same room", pair[0].ItemID, pair[1].ItemID),
			})
		}
	}
}

// detectSpeakerDoubleBookings runs the same pairwise sweep per speaker of the
// underlying items. Breaks contribute no speakers.
func (s *conflictService) detectSpeakerDoubleBookings(placements []*domain.SlotPlacement, itemsByID map[string]domain.Schedulable, report *domain.ConflictReport) {
	bySpeaker := make(map[string][]*domain.SlotPlacement)
	for _, p := range placements {
		item, ok := itemsByID[p.ItemID]
		if !ok {
			continue
		}
		for _, speakerID := range item.SpeakerIDs() {
			bySpeaker[speakerID] = append(bySpeaker[speakerID], p)
		}
	}
	for _, speakerID := range sortedKeys(bySpeaker) {
		for _, pair := range overlappingPairs(bySpeaker[speakerID]) {
			report.Conflicts = append(report.Conflicts, domain.Conflict{
				Kind:         domain.SpeakerDoubleBooked,
				Severity:     domain.SeverityWarning,
				PlacementIDs: []string{pair[0].ID, pair[1].ID},
				SpeakerID:    speakerID,
				Detail:       fmt.Sprintf("speaker %s is booked for items %s and %s at the same time", speakerID, pair[0].ItemID, pair[1].ItemID),
			})
		}
	}
}

// detectAvailabilityViolations tests each placement against the room's
// availability windows and each speaker's unavailability windows. A room with
// no windows at all is always available; a room with windows requires each
// placement to lie entirely within one of them. Any overlap with a speaker
// unavailability window is a violation.
func (s *conflictService) detectAvailabilityViolations(ctx context.Context, placements []*domain.SlotPlacement, itemsByID map[string]domain.Schedulable, report *domain.ConflictReport) error {
	if len(placements) == 0 {
		return nil
	}
	span := placementSpan(placements)

	roomWindows := make(map[string][]domain.TimeWindow)
	speakerWindows := make(map[string][]domain.TimeWindow)

	for _, p := range placements {
		windows, ok := roomWindows[p.RoomID]
		if !ok {
			var err error
			windows, err = s.availability.RoomAvailability(ctx, p.RoomID)
			if err != nil {
				return fmt.Errorf("room availability: %w", err)
			}
			roomWindows[p.RoomID] = windows
		}
		if len(windows) > 0 && !containedInAny(windows, p) {
			report.Conflicts = append(report.Conflicts, domain.Conflict{
				Kind:         domain.RoomUnavailable,
				Severity:     domain.SeverityWarning,
				PlacementIDs: []string{p.ID},
				ItemID:       p.ItemID,
				RoomID:       p.RoomID,
				Detail:       fmt.Sprintf("item %s is scheduled outside the room's availability", p.ItemID),
			})
		}

		item, ok := itemsByID[p.ItemID]
		if !ok {
			continue
		}
		for _, speakerID := range item.SpeakerIDs() {
			windows, ok := speakerWindows[speakerID]
			if !ok {
				var err error
				windows, err = s.availability.SpeakerUnavailability(ctx, speakerID, span.Start, span.End)
				if err != nil {
					return fmt.Errorf("speaker unavailability: %w", err)
				}
				speakerWindows[speakerID] = windows
			}
			for _, w := range windows {
				if w.Overlaps(p.Start, p.End()) {
					report.Conflicts = append(report.Conflicts, domain.Conflict{
						Kind:         domain.SpeakerUnavailable,
						Severity:     domain.SeverityWarning,
						PlacementIDs: []string{p.ID},
						ItemID:       p.ItemID,
						SpeakerID:    speakerID,
						Detail:       fmt.Sprintf("speaker %s is unavailable during item %s", speakerID, p.ItemID),
					})
					break
				}
			}
		}
	}
	return nil
}

// detectItemStateFindings emits the non-interval findings: confirmed items
// with no placement, placed items not yet eligible for public visibility, and
// placed items missing a required track when the event uses tracks.
func (s *conflictService) detectItemStateFindings(event *domain.Event, placements []*domain.SlotPlacement, items []domain.Schedulable, report *domain.ConflictReport) {
	placed := make(map[string]*domain.SlotPlacement, len(placements))
	for _, p := range placements {
		placed[p.ItemID] = p
	}

	for _, item := range items {
		p, isPlaced := placed[item.ItemID()]

		// Breaks have no confirmation workflow or track assignment; every
		// item-state finding below applies to items with a detail page.
		if !item.HasDetailPage() {
			continue
		}

		if item.State() == domain.StateConfirmed && !isPlaced {
			report.Conflicts = append(report.Conflicts, domain.Conflict{
				Kind:     domain.UnscheduledConfirmed,
				Severity: domain.SeverityWarning,
				ItemID:   item.ItemID(),
				Detail:   fmt.Sprintf("confirmed item %s has no slot", item.ItemID()),
			})
		}

		if !isPlaced {
			continue
		}

		if !s.registry.IsPubliclyVisible(item.State()) {
			report.Conflicts = append(report.Conflicts, domain.Conflict{
				Kind:         domain.UnconfirmedVisible,
				Severity:     domain.SeverityInfo,
				PlacementIDs: []string{p.ID},
				ItemID:       item.ItemID(),
				Detail:       fmt.Sprintf("item %s is placed but not confirmed, it will not appear publicly", item.ItemID()),
			})
		}

		if event.UseTracks && item.TrackID() == "" {
			report.Conflicts = append(report.Conflicts, domain.Conflict{
				Kind:         domain.MissingRequiredField,
				Severity:     domain.SeverityWarning,
				PlacementIDs: []string{p.ID},
				ItemID:       item.ItemID(),
				Detail:       fmt.Sprintf("item %s has no track assigned", item.ItemID()),
			})
		}
	}
}

// overlappingPairs returns every pair of placements whose half-open intervals
// overlap. The input is sorted by start time first so the inner scan can stop
// at the first non-overlapping candidate, and so the result is independent of
// insertion order.
func overlappingPairs(placements []*domain.SlotPlacement) [][2]*domain.SlotPlacement {
	sorted := make([]*domain.SlotPlacement, len(placements))
	copy(sorted, placements)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var pairs [][2]*domain.SlotPlacement
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if !sorted[j].Start.Before(sorted[i].End()) {
				break
			}
			if sorted[i].Overlaps(sorted[j]) {
				pairs = append(pairs, [2]*domain.SlotPlacement{sorted[i], sorted[j]})
			}
		}
	}
	return pairs
}

// placementSpan returns the smallest window covering all placements.
func placementSpan(placements []*domain.SlotPlacement) domain.TimeWindow {
	span := domain.TimeWindow{Start: placements[0].Start, End: placements[0].End()}
	for _, p := range placements[1:] {
		if p.Start.Before(span.Start) {
			span.Start = p.Start
		}
		if p.End().After(span.End) {
			span.End = p.End()
		}
	}
	return span
}

func containedInAny(windows []domain.TimeWindow, p *domain.SlotPlacement) bool {
	for _, w := range windows {
		if w.Contains(p.Start, p.End()) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
