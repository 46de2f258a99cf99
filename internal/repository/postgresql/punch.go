package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type PunchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) *PunchRepository {
	return &PunchRepository{db: db}
}

// punchColumns casts day and the time-of-day columns to text so every row
// round-trips in the wire formats the domain layer uses.
const punchColumns = `id, name, day::text, captured_at,
	check_in_time::text, check_in_status, check_out_time::text, check_out_status,
	distance, gap, meta`

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	var rawMeta []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Day, &p.CapturedAt,
		&p.CheckInTime, &p.CheckInStatus, &p.CheckOutTime, &p.CheckOutStatus,
		&p.Distance, &p.Gap, &rawMeta,
	)
	if err != nil {
		return punch.Punch{}, err
	}
	p.Meta = punch.ParseMeta(rawMeta)
	return p, nil
}

func (r *PunchRepository) GetOrCreate(ctx context.Context, name, day string, capturedAt time.Time) (punch.Punch, error) {
	querier := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO punches (name, day, captured_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, day) DO NOTHING`

	if _, err := querier.Exec(ctx, insertQuery, name, day, capturedAt); err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create punch row: %w", err)
	}

	return r.Get(ctx, name, day)
}

func (r *PunchRepository) Get(ctx context.Context, name, day string) (punch.Punch, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + ` FROM punches WHERE name = $1 AND day = $2`

	p, err := scanPunch(querier.QueryRow(ctx, query, name, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}
	return p, nil
}

// ClaimCheckIn is a single conditional update: when two devices race on the
// same (name, day), exactly one statement matches the IS NULL guard. The
// status COALESCE keeps an earlier administrative status in place.
func (r *PunchRepository) ClaimCheckIn(ctx context.Context, name, day, clock, status string, distance, gap *float64) (punch.Punch, bool, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches
		SET check_in_time = $3::time,
			check_in_status = COALESCE(check_in_status, $4),
			distance = COALESCE($5, distance),
			gap = COALESCE($6, gap)
		WHERE name = $1 AND day = $2 AND check_in_time IS NULL
		RETURNING ` + punchColumns

	p, err := scanPunch(querier.QueryRow(ctx, query, name, day, clock, status, distance, gap))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.Get(ctx, name, day)
			if getErr != nil {
				return punch.Punch{}, false, getErr
			}
			return current, false, nil
		}
		return punch.Punch{}, false, fmt.Errorf("failed to claim check-in: %w", err)
	}
	return p, true, nil
}

func (r *PunchRepository) ClaimCheckOut(ctx context.Context, name, day, clock, status string, distance, gap *float64) (punch.Punch, bool, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches
		SET check_out_time = $3::time,
			check_out_status = COALESCE(check_out_status, $4),
			distance = COALESCE($5, distance),
			gap = COALESCE($6, gap)
		WHERE name = $1 AND day = $2
			AND check_in_time IS NOT NULL
			AND check_out_time IS NULL
		RETURNING ` + punchColumns

	p, err := scanPunch(querier.QueryRow(ctx, query, name, day, clock, status, distance, gap))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.Get(ctx, name, day)
			if getErr != nil {
				return punch.Punch{}, false, getErr
			}
			return current, false, nil
		}
		return punch.Punch{}, false, fmt.Errorf("failed to claim check-out: %w", err)
	}
	return p, true, nil
}

func (r *PunchRepository) MarkAbsent(ctx context.Context, name, day string, meta punch.Meta) (punch.Punch, error) {
	querier := GetQuerier(ctx, r.db)

	rawMeta, err := meta.JSON()
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to encode punch meta: %w", err)
	}

	query := `
		UPDATE punches
		SET check_in_time = NULL,
			check_in_status = NULL,
			check_out_time = NULL,
			check_out_status = NULL,
			meta = $3
		WHERE name = $1 AND day = $2
		RETURNING ` + punchColumns

	p, err := scanPunch(querier.QueryRow(ctx, query, name, day, rawMeta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to mark punch absent: %w", err)
	}
	return p, nil
}

func (r *PunchRepository) SetPhase(ctx context.Context, name, day, phase, clock, status string, meta punch.Meta) (punch.Punch, error) {
	querier := GetQuerier(ctx, r.db)

	rawMeta, err := meta.JSON()
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to encode punch meta: %w", err)
	}

	var query string
	switch phase {
	case punch.PhaseOut:
		query = `
			UPDATE punches
			SET check_out_time = $3::time, check_out_status = $4, meta = $5
			WHERE name = $1 AND day = $2
			RETURNING ` + punchColumns
	default:
		query = `
			UPDATE punches
			SET check_in_time = $3::time, check_in_status = $4, meta = $5
			WHERE name = $1 AND day = $2
			RETURNING ` + punchColumns
	}

	p, err := scanPunch(querier.QueryRow(ctx, query, name, day, clock, status, rawMeta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to set punch phase: %w", err)
	}
	return p, nil
}

func (r *PunchRepository) ListByDay(ctx context.Context, day string) ([]punch.Punch, error) {
	querier := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + `
		FROM punches
		WHERE day = $1
		ORDER BY check_in_time NULLS LAST, name`

	rows, err := querier.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punches: %w", err)
	}

	return punches, nil
}
