package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/model"
)

type ReviewRepository struct {
	pool *db.Pool
}

func NewReviewRepository(pool *db.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a review awaiting moderation. New reviews start
// unapproved but visible, so approval alone gates public listings.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (provider_id, requester_id, rating, title, comment, is_approved, is_visible)
		VALUES ($1, $2, $3, $4, $5, FALSE, TRUE)
		RETURNING id
	`, review.ProviderID, review.RequesterID, review.Rating, review.Title, review.Comment).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ReviewRepository) ListApprovedByProvider(ctx context.Context, providerID string, limit int) ([]model.Review, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, requester_id, rating, COALESCE(title, ''), COALESCE(comment, ''),
			is_approved, is_visible, created_at, updated_at
		FROM reviews
		WHERE provider_id = $1 AND is_approved AND is_visible
		ORDER BY created_at DESC
		LIMIT $2
	`, providerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *ReviewRepository) ListByProvider(ctx context.Context, providerID string, limit int) ([]model.Review, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, requester_id, rating, COALESCE(title, ''), COALESCE(comment, ''),
			is_approved, is_visible, created_at, updated_at
		FROM reviews
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, providerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// SetModeration approves a review or rejects it. Rejection also hides
// it from the public listing.
func (r *ReviewRepository) SetModeration(ctx context.Context, reviewID, providerID string, approved bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reviews
		SET is_approved = $3, is_visible = $3, updated_at = now()
		WHERE id = $1 AND provider_id = $2
	`, reviewID, providerID, approved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, reviewID, providerID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM reviews
		WHERE id = $1 AND provider_id = $2
	`, reviewID, providerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanReviews(rows pgx.Rows) ([]model.Review, error) {
	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProviderID,
			&rev.RequesterID,
			&rev.Rating,
			&rev.Title,
			&rev.Comment,
			&rev.IsApproved,
			&rev.IsVisible,
			&rev.CreatedAt,
			&rev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return reviews, nil
}
