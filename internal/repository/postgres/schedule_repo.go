package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"confsched/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{
		DB: db,
	}
}

func (r *scheduleRepository) CreateVersion(ctx context.Context, v *domain.ScheduleVersion) error {
	query := `
		INSERT INTO schedule_versions (event_id, is_draft, release_label, released_at, change_summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, v.EventID, v.IsDraft, v.ReleaseLabel, v.ReleasedAt, v.ChangeSummary, v.CreatedAt).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLabel
		}
		return err
	}
	return nil
}

func (r *scheduleRepository) GetVersionByID(ctx context.Context, id string) (*domain.ScheduleVersion, error) {
	query := `
		SELECT id, event_id, is_draft, release_label, released_at, change_summary, created_at
		FROM schedule_versions
		WHERE id = $1
	`
	return r.scanVersion(r.DB.QueryRowContext(ctx, query, id))
}

func (r *scheduleRepository) GetDraftByEventID(ctx context.Context, eventID string) (*domain.ScheduleVersion, error) {
	query := `
		SELECT id, event_id, is_draft, release_label, released_at, change_summary, created_at
		FROM schedule_versions
		WHERE event_id = $1 AND is_draft
	`
	return r.scanVersion(r.DB.QueryRowContext(ctx, query, eventID))
}

func (r *scheduleRepository) ListReleasedByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleVersion, error) {
	query := `
		SELECT id, event_id, is_draft, release_label, released_at, change_summary, created_at
		FROM schedule_versions
		WHERE event_id = $1 AND NOT is_draft
		ORDER BY released_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var versions []*domain.ScheduleVersion
	for rows.Next() {
		v, err := r.scanVersionRows(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (r *scheduleRepository) UpsertPlacement(ctx context.Context, p *domain.SlotPlacement) error {
	query := `
		INSERT INTO slot_placements (version_id, item_id, room_id, start_time, duration_minutes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (version_id, item_id) DO UPDATE
		SET room_id = EXCLUDED.room_id, start_time = EXCLUDED.start_time, duration_minutes = EXCLUDED.duration_minutes
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.VersionID, p.ItemID, p.RoomID, p.Start, p.DurationMinutes).Scan(&p.ID)
}

func (r *scheduleRepository) DeletePlacement(ctx context.Context, versionID, itemID string) error {
	query := `DELETE FROM slot_placements WHERE version_id = $1 AND item_id = $2`
	res, err := r.DB.ExecContext(ctx, query, versionID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scheduleRepository) ListPlacements(ctx context.Context, versionID string) ([]*domain.SlotPlacement, error) {
	query := `
		SELECT id, version_id, item_id, room_id, start_time, duration_minutes
		FROM slot_placements
		WHERE version_id = $1
		ORDER BY start_time, room_id
	`
	rows, err := r.DB.QueryContext(ctx, query, versionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var placements []*domain.SlotPlacement
	for rows.Next() {
		p := &domain.SlotPlacement{}
		if err := rows.Scan(&p.ID, &p.VersionID, &p.ItemID, &p.RoomID, &p.Start, &p.DurationMinutes); err != nil {
			return nil, err
		}
		placements = append(placements, p)
	}
	return placements, rows.Err()
}

// Release freezes the draft in one transaction. The draft row is locked with
// FOR UPDATE for the whole transaction, so a concurrent release or reset on
// the same draft blocks here and then fails the is_draft check once the first
// one commits. The draft row is retired in place: it becomes the released
// version, keeping its ID and placements, so a request still holding the old
// draft ID gets ErrConcurrentModification rather than ErrNotFound.
func (r *scheduleRepository) Release(ctx context.Context, draftID, label, summary string, releasedAt time.Time) (*domain.ScheduleVersion, *domain.ScheduleVersion, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin release: %w", err)
	}
	defer tx.Rollback()

	eventID, err := lockDraft(ctx, tx, draftID)
	if err != nil {
		return nil, nil, err
	}

	released := &domain.ScheduleVersion{
		ID:            draftID,
		EventID:       eventID,
		IsDraft:       false,
		ReleaseLabel:  &label,
		ReleasedAt:    &releasedAt,
		ChangeSummary: summary,
	}
	err = tx.QueryRowContext(ctx, `
		UPDATE schedule_versions
		SET is_draft = false, release_label = $2, released_at = $3, change_summary = $4
		WHERE id = $1
		RETURNING created_at
	`, draftID, label, releasedAt, summary).Scan(&released.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.ErrDuplicateLabel
		}
		return nil, nil, fmt.Errorf("retire draft: %w", err)
	}

	newDraft := &domain.ScheduleVersion{
		EventID:   eventID,
		IsDraft:   true,
		CreatedAt: releasedAt,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO schedule_versions (event_id, is_draft, created_at)
		VALUES ($1, true, $2)
		RETURNING id
	`, eventID, releasedAt).Scan(&newDraft.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("insert new draft: %w", err)
	}

	if err := copyPlacements(ctx, tx, released.ID, newDraft.ID); err != nil {
		return nil, nil, fmt.Errorf("copy placements to new draft: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit release: %w", err)
	}
	return released, newDraft, nil
}

// ResetDraft replaces all draft placements with a copy of the target released
// version's placements, holding the draft row lock so it serializes against a
// concurrent release.
func (r *scheduleRepository) ResetDraft(ctx context.Context, draftID, targetVersionID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	eventID, err := lockDraft(ctx, tx, draftID)
	if err != nil {
		return err
	}

	var targetEventID string
	err = tx.QueryRowContext(ctx, `
		SELECT event_id FROM schedule_versions WHERE id = $1 AND NOT is_draft
	`, targetVersionID).Scan(&targetEventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("load reset target: %w", err)
	}
	if targetEventID != eventID {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM slot_placements WHERE version_id = $1`, draftID); err != nil {
		return fmt.Errorf("clear draft placements: %w", err)
	}
	if err := copyPlacements(ctx, tx, targetVersionID, draftID); err != nil {
		return fmt.Errorf("copy placements from target: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

// lockDraft locks the draft row and returns its event ID. A version that
// exists but is no longer the draft means another request released or retired
// it since the caller last looked.
func lockDraft(ctx context.Context, tx *sql.Tx, draftID string) (string, error) {
	var eventID string
	err := tx.QueryRowContext(ctx, `
		SELECT event_id FROM schedule_versions WHERE id = $1 AND is_draft FOR UPDATE
	`, draftID).Scan(&eventID)
	if err == nil {
		return eventID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lock draft: %w", err)
	}
	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM schedule_versions WHERE id = $1)
	`, draftID).Scan(&exists); err != nil {
		return "", fmt.Errorf("check draft existence: %w", err)
	}
	if exists {
		return "", domain.ErrConcurrentModification
	}
	return "", domain.ErrNotFound
}

func copyPlacements(ctx context.Context, tx *sql.Tx, fromVersionID, toVersionID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO slot_placements (version_id, item_id, room_id, start_time, duration_minutes)
		SELECT $1, item_id, room_id, start_time, duration_minutes
		FROM slot_placements
		WHERE version_id = $2
	`, toVersionID, fromVersionID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *scheduleRepository) scanVersion(row rowScanner) (*domain.ScheduleVersion, error) {
	v, err := r.scanVersionRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *scheduleRepository) scanVersionRows(row rowScanner) (*domain.ScheduleVersion, error) {
	v := &domain.ScheduleVersion{}
	var labelNull sql.NullString
	var releasedNull sql.NullTime
	var summaryNull sql.NullString
	err := row.Scan(&v.ID, &v.EventID, &v.IsDraft, &labelNull, &releasedNull, &summaryNull, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if labelNull.Valid {
		v.ReleaseLabel = &labelNull.String
	}
	if releasedNull.Valid {
		v.ReleasedAt = &releasedNull.Time
	}
	if summaryNull.Valid {
		v.ChangeSummary = summaryNull.String
	}
	return v, nil
}
