package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
)

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

type ProviderProfile struct {
	ID          string
	UserID      string
	DisplayName string
	Specialty   string
	Bio         string
	PhotoURL    string
	IsActive    bool
	CreatedAt   time.Time
}

const profileColumns = `id::text, user_id::text, display_name, COALESCE(specialty, ''), COALESCE(bio, ''), COALESCE(photo_url, ''), is_active, created_at`

func (r *Repository) ListActive(ctx context.Context, limit int) ([]ProviderProfile, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM provider_profiles
		WHERE is_active
		ORDER BY display_name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (r *Repository) GetByID(ctx context.Context, providerID string) (ProviderProfile, error) {
	return r.getOne(ctx, `WHERE id = $1`, providerID)
}

func (r *Repository) GetByUser(ctx context.Context, userID string) (ProviderProfile, error) {
	return r.getOne(ctx, `WHERE user_id = $1`, userID)
}

// UpsertOwn creates or updates the profile belonging to the given user.
// A user holds at most one profile; the profile id is stable across
// updates because bookings and reviews reference it.
func (r *Repository) UpsertOwn(ctx context.Context, userID string, displayName, specialty, bio, photoURL string) (string, error) {
	id := uuid.NewString()
	var out string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO provider_profiles (id, user_id, display_name, specialty, bio, photo_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
			specialty = EXCLUDED.specialty,
			bio = EXCLUDED.bio,
			photo_url = EXCLUDED.photo_url,
			updated_at = now()
		RETURNING id::text
	`, id, userID, displayName, specialty, bio, photoURL).Scan(&out)
	if err != nil {
		return "", err
	}
	return out, nil
}

// SetActive toggles whether the profile appears in public listings and
// accepts new bookings.
func (r *Repository) SetActive(ctx context.Context, userID string, active bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE provider_profiles
		SET is_active = $2, updated_at = now()
		WHERE user_id = $1
	`, userID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, where string, arg any) (ProviderProfile, error) {
	var p ProviderProfile
	err := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM provider_profiles
		`+where, arg).Scan(
		&p.ID,
		&p.UserID,
		&p.DisplayName,
		&p.Specialty,
		&p.Bio,
		&p.PhotoURL,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return ProviderProfile{}, err
	}
	return p, nil
}

func scanProfiles(rows pgx.Rows) ([]ProviderProfile, error) {
	var out []ProviderProfile
	for rows.Next() {
		var p ProviderProfile
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.DisplayName,
			&p.Specialty,
			&p.Bio,
			&p.PhotoURL,
			&p.IsActive,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
