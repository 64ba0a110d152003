package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

type AppointmentRepository struct {
	pool *db.Pool
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments (provider_id, requester_id, start_at, notes, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, appt.ProviderID, appt.RequesterID, appt.StartAt, appt.Notes, appt.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *AppointmentRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (model.Appointment, error) {
	var appt model.Appointment
	var status string
	err := tx.QueryRow(ctx, `
		SELECT id, provider_id, requester_id, start_at, COALESCE(notes, ''), status, cancelled_at, created_at
		FROM appointments
		WHERE id = $1
		FOR UPDATE
	`, appointmentID).Scan(
		&appt.ID,
		&appt.ProviderID,
		&appt.RequesterID,
		&appt.StartAt,
		&appt.Notes,
		&status,
		&appt.CancelledAt,
		&appt.CreatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	appt.Status = model.AppointmentStatus(status)
	return appt, nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, tx pgx.Tx, appointmentID string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = 'cancelled', cancelled_at = now()
		WHERE id = $1
		RETURNING cancelled_at
	`, appointmentID).Scan(&cancelledAt)
	return cancelledAt, err
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, appointmentID, providerID string, status model.AppointmentStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = $3
		WHERE id = $1 AND provider_id = $2
	`, appointmentID, providerID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AppointmentRepository) ListByRequester(ctx context.Context, requesterID string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, requester_id, start_at, COALESCE(notes, ''), status, cancelled_at, created_at
		FROM appointments
		WHERE requester_id = $1
		ORDER BY start_at DESC
		LIMIT $2
	`, requesterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) ListByProvider(ctx context.Context, providerID string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, requester_id, start_at, COALESCE(notes, ''), status, cancelled_at, created_at
		FROM appointments
		WHERE provider_id = $1
		ORDER BY start_at DESC
		LIMIT $2
	`, providerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ExistsForRequesterAndProvider reports whether the requester has ever
// held an appointment with the provider, in any status. The review gate
// depends on this.
func (r *AppointmentRepository) ExistsForRequesterAndProvider(ctx context.Context, requesterID, providerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE requester_id = $1 AND provider_id = $2
		)
	`, requesterID, providerID).Scan(&exists)
	return exists, err
}

func scanAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var appts []model.Appointment
	for rows.Next() {
		var appt model.Appointment
		var status string
		if err := rows.Scan(
			&appt.ID,
			&appt.ProviderID,
			&appt.RequesterID,
			&appt.StartAt,
			&appt.Notes,
			&status,
			&appt.CancelledAt,
			&appt.CreatedAt,
		); err != nil {
			return nil, err
		}
		appt.Status = model.AppointmentStatus(status)
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}
