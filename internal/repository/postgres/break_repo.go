package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"confsched/internal/domain"
)

type breakRepository struct {
	DB *sql.DB
}

func NewBreakRepository(db *sql.DB) domain.BreakRepository {
	return &breakRepository{
		DB: db,
	}
}

func (r *breakRepository) Create(ctx context.Context, b *domain.Break) error {
	titleRaw, descRaw, err := encodeBreakText(b)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO breaks (id, event_id, title, description, duration_minutes, copy_of, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`
	_, err = r.DB.ExecContext(ctx, query, b.ID, b.EventID, titleRaw, descRaw, b.DurationMinutes, b.CopyOf, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *breakRepository) Update(ctx context.Context, b *domain.Break) error {
	titleRaw, descRaw, err := encodeBreakText(b)
	if err != nil {
		return err
	}
	query := `
		UPDATE breaks
		SET title = $2, description = $3, duration_minutes = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, b.ID, titleRaw, descRaw, b.DurationMinutes, b.UpdatedAt)
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

func (r *breakRepository) GetByID(ctx context.Context, id string) (*domain.Break, error) {
	query := `
		SELECT id, event_id, title, description, duration_minutes, copy_of, created_at, updated_at
		FROM breaks
		WHERE id = $1
	`
	return scanBreak(r.DB.QueryRowContext(ctx, query, id))
}

func (r *breakRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Break, error) {
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

func encodeBreakText(b *domain.Break) (titleRaw, descRaw []byte, err error) {
	titleRaw, err = json.Marshal(b.Title)
	if err != nil {
		return nil, nil, fmt.Errorf("encode break title: %w", err)
	}
	if b.Description == nil {
		b.Description = domain.LocalizedString{}
	}
	descRaw, err = json.Marshal(b.Description)
	if err != nil {
		return nil, nil, fmt.Errorf("encode break description: %w", err)
	}
	return titleRaw, descRaw, nil
}
