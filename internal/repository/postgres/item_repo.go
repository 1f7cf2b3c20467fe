package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"confsched/internal/domain"
)

// itemRegistry implements domain.ItemRegistry over the sessions table (owned
// by the surrounding application, read-only here) and the breaks table (owned
// by this core).
type itemRegistry struct {
	DB *sql.DB
}

func NewItemRegistry(db *sql.DB) domain.ItemRegistry {
	return &itemRegistry{
		DB: db,
	}
}

// IsPubliclyVisible is the registry-owned visibility predicate: only confirmed
// items appear on public schedules. Evaluated at read time, never cached.
func (r *itemRegistry) IsPubliclyVisible(state domain.ItemState) bool {
	return state == domain.StateConfirmed
}

func (r *itemRegistry) GetItem(ctx context.Context, itemID string) (domain.Schedulable, error) {
	query := `
		SELECT id, event_id, title, abstract, state, track, duration_minutes, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	sess := &domain.Session{}
	var trackNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, itemID).Scan(
		&sess.ID, &sess.EventID, &sess.Title, &sess.Abstract, &sess.ItemState, &trackNull,
		&sess.DurationMinutes, &sess.CreatedAt, &sess.UpdatedAt,
	)
	switch {
	case err == nil:
		if trackNull.Valid {
			sess.Track = trackNull.String
		}
		sess.Speakers = []string{}
		if err := r.loadSpeakers(ctx, []*domain.Session{sess}); err != nil {
			return nil, err
		}
		return sess, nil
	case errors.Is(err, sql.ErrNoRows):
		return r.getBreak(ctx, itemID)
	default:
		return nil, err
	}
}

func (r *itemRegistry) ListItemsByEventID(ctx context.Context, eventID string) ([]domain.Schedulable, error) {
	query := `
		SELECT id, event_id, title, abstract, state, track, duration_minutes, created_at, updated_at
		FROM sessions
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []*domain.Session
	for rows.Next() {
		sess := &domain.Session{}
		var trackNull sql.NullString
		if err := rows.Scan(
			&sess.ID, &sess.EventID, &sess.Title, &sess.Abstract, &sess.ItemState, &trackNull,
			&sess.DurationMinutes, &sess.CreatedAt, &sess.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if trackNull.Valid {
			sess.Track = trackNull.String
		}
		sess.Speakers = []string{}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadSpeakers(ctx, sessions); err != nil {
		return nil, err
	}

	items := make([]domain.Schedulable, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, sess)
	}

	breaks, err := r.listBreaks(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, b := range breaks {
		items = append(items, b)
	}
	return items, nil
}

func (r *itemRegistry) loadSpeakers(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		ids = append(ids, sess.ID)
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT session_id, speaker_id FROM session_speakers WHERE session_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	bySession := make(map[string][]string)
	for rows.Next() {
		var sessionID, speakerID string
		if err := rows.Scan(&sessionID, &speakerID); err != nil {
			return err
		}
		bySession[sessionID] = append(bySession[sessionID], speakerID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, sess := range sessions {
		if s := bySession[sess.ID]; s != nil {
			sess.Speakers = s
		}
	}
	return nil
}

func (r *itemRegistry) getBreak(ctx context.Context, id string) (*domain.Break, error) {
	query := `
		SELECT id, event_id, title, description, duration_minutes, copy_of, created_at, updated_at
		FROM breaks
		WHERE id = $1
	`
	return scanBreak(r.DB.QueryRowContext(ctx, query, id))
}

func (r *itemRegistry) listBreaks(ctx context.Context, eventID string) ([]*domain.Break, error) {
	query := `
		SELECT id, event_id, title, description, duration_minutes, copy_of, created_at, updated_at
		FROM breaks
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var breaks []*domain.Break
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, b)
	}
	return breaks, rows.Err()
}

// scanBreak reads one break row. Localized title and description are stored
// as JSONB columns.
func scanBreak(row rowScanner) (*domain.Break, error) {
	b := &domain.Break{}
	var titleRaw, descRaw []byte
	var copyOfNull sql.NullString
	err := row.Scan(&b.ID, &b.EventID, &titleRaw, &descRaw, &b.DurationMinutes, &copyOfNull, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(titleRaw, &b.Title); err != nil {
		return nil, fmt.Errorf("decode break title: %w", err)
	}
	if len(descRaw) > 0 {
		if err := json.Unmarshal(descRaw, &b.Description); err != nil {
			return nil, fmt.Errorf("decode break description: %w", err)
		}
	}
	if copyOfNull.Valid {
		b.CopyOf = copyOfNull.String
	}
	return b, nil
}
