package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
)

type Notification struct {
	ID            string
	RecipientID   string
	AppointmentID string
	Kind          string
	Message       string
	IsRead        bool
	CreatedAt     time.Time
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, n Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (recipient_id, appointment_id, kind, message)
		VALUES ($1, $2, $3, $4)
	`, n.RecipientID, n.AppointmentID, n.Kind, n.Message)
	return err
}

func (r *Repository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id::text, recipient_id::text, COALESCE(appointment_id::text, ''), kind, message, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
	`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	query += `
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.AppointmentID, &n.Kind, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND recipient_id = $2
	`, notificationID, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
