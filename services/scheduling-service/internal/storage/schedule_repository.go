package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

type ScheduleRepository struct {
	pool *db.Pool
}

func NewScheduleRepository(pool *db.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *ScheduleRepository) ListTemplates(ctx context.Context, providerID string) ([]model.ScheduleTemplate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, weekday, start_minute, end_minute, is_available, created_at
		FROM schedule_templates
		WHERE provider_id = $1
		ORDER BY weekday ASC, start_minute ASC
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

// ListTemplatesForWeekdayForUpdate locks the provider's templates on one
// weekday so a concurrent add cannot slip an overlapping window past the
// handler's check.
func (r *ScheduleRepository) ListTemplatesForWeekdayForUpdate(ctx context.Context, tx pgx.Tx, providerID string, weekday time.Weekday) ([]model.ScheduleTemplate, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, provider_id, weekday, start_minute, end_minute, is_available, created_at
		FROM schedule_templates
		WHERE provider_id = $1 AND weekday = $2
		ORDER BY start_minute ASC
		FOR UPDATE
	`, providerID, int(weekday))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

func (r *ScheduleRepository) CreateTemplate(ctx context.Context, tx pgx.Tx, tpl *model.ScheduleTemplate) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO schedule_templates (provider_id, weekday, start_minute, end_minute, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, tpl.ProviderID, int(tpl.Weekday), tpl.StartMinute, tpl.EndMinute, tpl.IsAvailable).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ScheduleRepository) DeleteTemplate(ctx context.Context, providerID, templateID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM schedule_templates
		WHERE id = $1 AND provider_id = $2
	`, templateID, providerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTemplates(rows pgx.Rows) ([]model.ScheduleTemplate, error) {
	var templates []model.ScheduleTemplate
	for rows.Next() {
		var tpl model.ScheduleTemplate
		var weekday int
		if err := rows.Scan(
			&tpl.ID,
			&tpl.ProviderID,
			&weekday,
			&tpl.StartMinute,
			&tpl.EndMinute,
			&tpl.IsAvailable,
			&tpl.CreatedAt,
		); err != nil {
			return nil, err
		}
		tpl.Weekday = time.Weekday(weekday)
		templates = append(templates, tpl)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return templates, nil
}
