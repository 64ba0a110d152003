package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/slots"
)

type SlotRepository struct {
	pool *db.Pool
}

func NewSlotRepository(pool *db.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func (r *SlotRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// InsertSlots persists the given start instants as open one-hour slots.
// Existing rows for the same provider and start are left untouched, so
// repeated materialization over the same range is a no-op. Returns the
// number of rows actually created.
func (r *SlotRepository) InsertSlots(ctx context.Context, providerID string, starts []time.Time) (int, error) {
	created := 0
	for _, start := range starts {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO time_slots (provider_id, start_at, end_at, is_available, is_booked)
			VALUES ($1, $2, $3, TRUE, FALSE)
			ON CONFLICT (provider_id, start_at) DO NOTHING
		`, providerID, start, start.Add(slots.SlotDuration))
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func (r *SlotRepository) ListSlotsInRange(ctx context.Context, providerID string, from, to time.Time) ([]model.TimeSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, start_at, end_at, is_available, is_booked, booked_by, created_at
		FROM time_slots
		WHERE provider_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at ASC
	`, providerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlots(rows)
}

func (r *SlotRepository) ListOpenSlots(ctx context.Context, providerID string, from, to time.Time) ([]model.TimeSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, start_at, end_at, is_available, is_booked, booked_by, created_at
		FROM time_slots
		WHERE provider_id = $1
			AND start_at >= $2 AND start_at < $3
			AND is_available AND NOT is_booked
		ORDER BY start_at ASC
	`, providerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlots(rows)
}

// ClaimSlot reserves the provider's slot at exactly startAt, if and
// only if it is still open. The conditional update serializes racing
// bookings at the storage layer; the loser scans zero rows and sees
// pgx.ErrNoRows, which callers map to a booking conflict.
func (r *SlotRepository) ClaimSlot(ctx context.Context, tx pgx.Tx, providerID string, startAt time.Time, requesterID string) (model.TimeSlot, error) {
	var slot model.TimeSlot
	err := tx.QueryRow(ctx, `
		UPDATE time_slots
		SET is_booked = TRUE, booked_by = $3
		WHERE provider_id = $1 AND start_at = $2 AND is_available AND NOT is_booked
		RETURNING id, provider_id, start_at, end_at, is_available, is_booked, booked_by, created_at
	`, providerID, startAt, requesterID).Scan(
		&slot.ID,
		&slot.ProviderID,
		&slot.StartAt,
		&slot.EndAt,
		&slot.IsAvailable,
		&slot.IsBooked,
		&slot.BookedBy,
		&slot.CreatedAt,
	)
	if err != nil {
		return model.TimeSlot{}, err
	}
	return slot, nil
}

// ReleaseSlot reopens a booked slot for the given provider and start.
func (r *SlotRepository) ReleaseSlot(ctx context.Context, tx pgx.Tx, providerID string, startAt time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE time_slots
		SET is_booked = FALSE, booked_by = NULL
		WHERE provider_id = $1 AND start_at = $2 AND is_booked
	`, providerID, startAt)
	return err
}

func (r *SlotRepository) DeleteSlot(ctx context.Context, providerID, slotID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM time_slots
		WHERE id = $1 AND provider_id = $2 AND NOT is_booked
	`, slotID, providerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSlots(rows pgx.Rows) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for rows.Next() {
		var slot model.TimeSlot
		if err := rows.Scan(
			&slot.ID,
			&slot.ProviderID,
			&slot.StartAt,
			&slot.EndAt,
			&slot.IsAvailable,
			&slot.IsBooked,
			&slot.BookedBy,
			&slot.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
