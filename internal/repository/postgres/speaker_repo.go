package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confsched/internal/domain"
)

type speakerDirectory struct {
	DB *sql.DB
}

func NewSpeakerDirectory(db *sql.DB) domain.SpeakerDirectory {
	return &speakerDirectory{
		DB: db,
	}
}

func (r *speakerDirectory) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `
		SELECT id, name, email
		FROM speakers
		WHERE id = $1
	`
	s := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
