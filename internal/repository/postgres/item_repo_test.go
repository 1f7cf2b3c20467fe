package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"confsched/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRegistry_IsPubliclyVisible(t *testing.T) {
	reg := NewItemRegistry(nil)
	assert.True(t, reg.IsPubliclyVisible(domain.StateConfirmed))
	for _, state := range []domain.ItemState{
		domain.StateSubmitted, domain.StateAccepted, domain.StateRejected,
		domain.StateWithdrawn, domain.StateCanceled,
	} {
		assert.False(t, reg.IsPubliclyVisible(state), string(state))
	}
}

func TestItemRegistry_GetItem(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("session with speakers", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, title, abstract, state, track, duration_minutes, created_at, updated_at`).
			WithArgs("s-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "title", "abstract", "state", "track", "duration_minutes", "created_at", "updated_at"}).
				AddRow("s-1", "ev-1", "Generics in practice", "A talk", "confirmed", "backend", 45, now, now))
		mock.ExpectQuery(`SELECT session_id, speaker_id FROM session_speakers`).
			WithArgs(pq.Array([]string{"s-1"})).
			WillReturnRows(sqlmock.NewRows([]string{"session_id", "speaker_id"}).
				AddRow("s-1", "spk-1").
				AddRow("s-1", "spk-2"))

		reg := NewItemRegistry(db)
		item, err := reg.GetItem(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, "Generics in practice", item.DisplayTitle("en"))
		assert.Equal(t, []string{"spk-1", "spk-2"}, item.SpeakerIDs())
		assert.Equal(t, domain.StateConfirmed, item.State())
		assert.Equal(t, "backend", item.TrackID())
		assert.True(t, item.HasDetailPage())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to breaks", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, title, abstract, state, track, duration_minutes, created_at, updated_at`).
			WithArgs("b-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT id, event_id, title, description, duration_minutes, copy_of, created_at, updated_at`).
			WithArgs("b-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "title", "description", "duration_minutes", "copy_of", "created_at", "updated_at"}).
				AddRow("b-1", "ev-1", []byte(`{"en":"Lunch"}`), []byte(`{}`), 60, nil, now, now))

		reg := NewItemRegistry(db)
		item, err := reg.GetItem(ctx, "b-1")
		require.NoError(t, err)
		assert.Equal(t, "Lunch", item.DisplayTitle("en"))
		assert.False(t, item.HasDetailPage())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown item", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, title, abstract, state, track, duration_minutes, created_at, updated_at`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT id, event_id, title, description, duration_minutes, copy_of, created_at, updated_at`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		reg := NewItemRegistry(db)
		_, err = reg.GetItem(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
