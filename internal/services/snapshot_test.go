package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"confsched/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotFixture wires a snapshot service over in-memory fakes with the real
// conflict, diff, planner and mail collaborators.
type snapshotFixture struct {
	scheduleRepo *fakeScheduleRepo
	eventRepo    *fakeEventRepo
	registry     *fakeRegistry
	mailer       *fakeMailer
	speakers     *fakeSpeakerDirectory
	policy       domain.ReleasePolicy
}

func newSnapshotFixture(items ...domain.Schedulable) *snapshotFixture {
	return &snapshotFixture{
		scheduleRepo: newFakeScheduleRepo(),
		eventRepo:    newFakeEventRepo(&domain.Event{ID: "ev-1", Name: "Conf"}),
		registry:     newFakeRegistry(items...),
		mailer:       &fakeMailer{},
		speakers:     newFakeSpeakerDirectory(),
	}
}

func (fx *snapshotFixture) service() domain.SnapshotService {
	timeout := 5 * time.Second
	rooms := newFakeRoomRepo(&domain.Room{ID: "room-1", EventID: "ev-1", Name: "Main"})
	conflicts := NewConflictService(fx.scheduleRepo, fx.eventRepo, fx.registry, newFakeAvailability(), timeout)
	diffs := NewDiffService(fx.scheduleRepo, fx.registry, timeout)
	planner := NewPlannerService(fx.scheduleRepo, rooms, fx.registry, timeout)
	mail := NewScheduleMailService(fx.mailer, &fakeRenderer{}, fx.speakers)
	return NewSnapshotService(fx.scheduleRepo, fx.eventRepo, conflicts, diffs, planner, mail, fx.policy, timeout)
}

func TestSnapshotService_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("freezes draft and seeds a new one", func(t *testing.T) {
		fx := newSnapshotFixture(confirmedSession("item-a", "ev-1", "A"))
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 30,
		})

		released, err := fx.service().Release(ctx, draft.ID, "v1", "first cut", false)
		require.NoError(t, err)
		require.False(t, released.IsDraft)
		require.NotNil(t, released.ReleaseLabel)
		assert.Equal(t, "v1", *released.ReleaseLabel)
		assert.NotNil(t, released.ReleasedAt)
		assert.Equal(t, "first cut", released.ChangeSummary)

		// The draft row was retired in place as the released version; a fresh
		// draft seeded with the released placements takes over.
		assert.Equal(t, draft.ID, released.ID)
		retired, err := fx.scheduleRepo.GetVersionByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.False(t, retired.IsDraft)

		newDraft, err := fx.scheduleRepo.GetDraftByEventID(ctx, "ev-1")
		require.NoError(t, err)
		assert.NotEqual(t, draft.ID, newDraft.ID)

		releasedPl, err := fx.scheduleRepo.ListPlacements(ctx, released.ID)
		require.NoError(t, err)
		draftPl, err := fx.scheduleRepo.ListPlacements(ctx, newDraft.ID)
		require.NoError(t, err)
		require.Len(t, releasedPl, 1)
		require.Len(t, draftPl, 1)
		assert.NotEqual(t, releasedPl[0].ID, draftPl[0].ID)
		assert.Equal(t, releasedPl[0].ItemID, draftPl[0].ItemID)
	})

	t.Run("released placements are isolated from later draft edits", func(t *testing.T) {
		fx := newSnapshotFixture(confirmedSession("item-a", "ev-1", "A"))
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 30,
		})

		released, err := fx.service().Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)
		newDraft, err := fx.scheduleRepo.GetDraftByEventID(ctx, "ev-1")
		require.NoError(t, err)

		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: newDraft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(14, 0), DurationMinutes: 30,
		})

		frozen, err := fx.scheduleRepo.ListPlacements(ctx, released.ID)
		require.NoError(t, err)
		require.Len(t, frozen, 1)
		assert.Equal(t, ts(10, 0), frozen[0].Start)
	})

	t.Run("empty label", func(t *testing.T) {
		fx := newSnapshotFixture()
		draft := seedDraft(fx.scheduleRepo, "ev-1")

		_, err := fx.service().Release(ctx, draft.ID, "   ", "", false)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate label", func(t *testing.T) {
		fx := newSnapshotFixture()
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		svc := fx.service()

		_, err := svc.Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)
		newDraft, err := fx.scheduleRepo.GetDraftByEventID(ctx, "ev-1")
		require.NoError(t, err)

		_, err = svc.Release(ctx, newDraft.ID, "v1", "", false)
		require.ErrorIs(t, err, domain.ErrDuplicateLabel)
	})

	t.Run("releasing a released version", func(t *testing.T) {
		fx := newSnapshotFixture()
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		svc := fx.service()

		released, err := svc.Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)

		_, err = svc.Release(ctx, released.ID, "v2", "", false)
		require.ErrorIs(t, err, domain.ErrConcurrentModification)
	})

	t.Run("unknown draft", func(t *testing.T) {
		fx := newSnapshotFixture()
		_, err := fx.service().Release(ctx, "ver-missing", "v1", "", false)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSnapshotService_Release_Policy(t *testing.T) {
	ctx := context.Background()

	t.Run("policy can block on warnings", func(t *testing.T) {
		// Two sessions overlapping in the same room: a warning finding.
		fx := newSnapshotFixture(
			confirmedSession("item-a", "ev-1", "A"),
			confirmedSession("item-b", "ev-1", "B"),
		)
		fx.policy = func(report *domain.ConflictReport) error {
			if len(report.ByKind(domain.RoomDoubleBooked)) > 0 {
				return fmt.Errorf("%w: room conflicts present", domain.ErrInvalidInput)
			}
			return nil
		}
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 60,
		})
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-b", RoomID: "room-1", Start: ts(10, 30), DurationMinutes: 60,
		})

		_, err := fx.service().Release(ctx, draft.ID, "v1", "", false)
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		// The draft survives a blocked release untouched.
		got, err := fx.scheduleRepo.GetVersionByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.True(t, got.IsDraft)
	})

	t.Run("nil policy never blocks", func(t *testing.T) {
		fx := newSnapshotFixture(
			confirmedSession("item-a", "ev-1", "A"),
			confirmedSession("item-b", "ev-1", "B"),
		)
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 60,
		})
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-b", RoomID: "room-1", Start: ts(10, 30), DurationMinutes: 60,
		})

		_, err := fx.service().Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)
	})
}

func TestSnapshotService_Release_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("sends one consolidated mail per affected speaker", func(t *testing.T) {
		fx := newSnapshotFixture(
			confirmedSession("item-a", "ev-1", "Talk A", "spk-1"),
			confirmedSession("item-b", "ev-1", "Talk B", "spk-1", "spk-2"),
		)
		fx.speakers = newFakeSpeakerDirectory(
			&domain.Speaker{ID: "spk-1", Name: "Ada", Email: "ada@example.com"},
			&domain.Speaker{ID: "spk-2", Name: "Grace", Email: "grace@example.com"},
		)
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 30,
		})
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-b", RoomID: "room-1", Start: ts(11, 0), DurationMinutes: 30,
		})

		_, err := fx.service().Release(ctx, draft.ID, "v1", "", true)
		require.NoError(t, err)

		require.Len(t, fx.mailer.sent, 2)
		assert.Equal(t, "ada@example.com", fx.mailer.sent[0].to)
		assert.Equal(t, "grace@example.com", fx.mailer.sent[1].to)
		// Ada has two changed sessions in one mail.
		assert.Contains(t, fx.mailer.sent[0].text, "2 of your sessions changed")
		assert.Contains(t, fx.mailer.sent[1].text, "1 of your sessions changed")
	})

	t.Run("mailer failure does not undo the release", func(t *testing.T) {
		fx := newSnapshotFixture(confirmedSession("item-a", "ev-1", "Talk A", "spk-1"))
		fx.speakers = newFakeSpeakerDirectory(&domain.Speaker{ID: "spk-1", Name: "Ada", Email: "ada@example.com"})
		fx.mailer.err = fmt.Errorf("ses unavailable")
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 30,
		})

		released, err := fx.service().Release(ctx, draft.ID, "v1", "", true)
		require.NoError(t, err)
		got, err := fx.scheduleRepo.GetVersionByID(ctx, released.ID)
		require.NoError(t, err)
		assert.False(t, got.IsDraft)
	})

	t.Run("notify disabled sends nothing", func(t *testing.T) {
		fx := newSnapshotFixture(confirmedSession("item-a", "ev-1", "Talk A", "spk-1"))
		fx.speakers = newFakeSpeakerDirectory(&domain.Speaker{ID: "spk-1", Name: "Ada", Email: "ada@example.com"})
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 30,
		})

		_, err := fx.service().Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)
		assert.Empty(t, fx.mailer.sent)
	})
}

func TestSnapshotService_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces draft placements with the target's", func(t *testing.T) {
		fx := newSnapshotFixture(confirmedSession("item-a", "ev-1", "A"))
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: draft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(10, 0), DurationMinutes: 30,
		})
		svc := fx.service()

		released, err := svc.Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)
		newDraft, err := fx.scheduleRepo.GetDraftByEventID(ctx, "ev-1")
		require.NoError(t, err)

		// Mangle the draft, then roll it back to the release.
		_ = fx.scheduleRepo.UpsertPlacement(ctx, &domain.SlotPlacement{
			VersionID: newDraft.ID, ItemID: "item-a", RoomID: "room-1", Start: ts(15, 0), DurationMinutes: 45,
		})

		require.NoError(t, svc.Reset(ctx, newDraft.ID, released.ID))
		got, err := fx.scheduleRepo.ListPlacements(ctx, newDraft.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ts(10, 0), got[0].Start)
		assert.Equal(t, 30, got[0].DurationMinutes)
	})

	t.Run("reset racing a committed release reports a conflict", func(t *testing.T) {
		// A client still holding the pre-release draft ID must learn the
		// draft moved on, not that it never existed.
		fx := newSnapshotFixture(confirmedSession("item-a", "ev-1", "A"))
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		svc := fx.service()

		released, err := svc.Release(ctx, draft.ID, "v1", "", false)
		require.NoError(t, err)

		err = svc.Reset(ctx, draft.ID, released.ID)
		require.ErrorIs(t, err, domain.ErrConcurrentModification)
	})

	t.Run("target must be a released version of the same event", func(t *testing.T) {
		fx := newSnapshotFixture()
		draft := seedDraft(fx.scheduleRepo, "ev-1")
		otherDraft := seedDraft(fx.scheduleRepo, "ev-2")

		err := fx.service().Reset(ctx, draft.ID, otherDraft.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
