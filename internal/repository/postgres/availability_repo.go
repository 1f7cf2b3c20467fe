package postgres

import (
	"context"
	"database/sql"
	"time"

	"confsched/internal/domain"
)

// availabilityProvider reads room availability and speaker unavailability
// windows. The windows are maintained by the surrounding application; this
// core only queries them.
type availabilityProvider struct {
	DB *sql.DB
}

func NewAvailabilityProvider(db *sql.DB) domain.AvailabilityProvider {
	return &availabilityProvider{
		DB: db,
	}
}

// RoomAvailability returns all of the room's windows, unfiltered. The
// containment check needs the full set to distinguish "no windows" from
// "no windows near this placement".
func (r *availabilityProvider) RoomAvailability(ctx context.Context, roomID string) ([]domain.TimeWindow, error) {
	query := `
		SELECT start_time, end_time
		FROM room_availabilities
		WHERE room_id = $1
		ORDER BY start_time
	`
	return r.listWindows(ctx, query, roomID)
}

func (r *availabilityProvider) SpeakerUnavailability(ctx context.Context, speakerID string, from, to time.Time) ([]domain.TimeWindow, error) {
	query := `
		SELECT start_time, end_time
		FROM speaker_unavailabilities
		WHERE speaker_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`
	return r.listWindows(ctx, query, speakerID, from, to)
}

func (r *availabilityProvider) listWindows(ctx context.Context, query string, args ...any) ([]domain.TimeWindow, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var windows []domain.TimeWindow
	for rows.Next() {
		var w domain.TimeWindow
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
