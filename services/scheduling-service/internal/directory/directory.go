package directory

import (
	"context"

	"github.com/sofia-wellness/sofia/libs/db"
)

// Profile is the subset of a psychologist's directory profile the
// scheduling service needs: identity linkage and whether the provider
// accepts bookings at all.
type Profile struct {
	ID       string
	UserID   string
	IsActive bool
}

// Client resolves provider profiles. Backed by the directory service
// over gRPC when generated stubs are built in, otherwise by a direct
// read of the directory tables.
type Client interface {
	ProfileByID(ctx context.Context, providerID string) (Profile, error)
	ProfileByUser(ctx context.Context, userID string) (Profile, error)
}

// Store reads provider profiles straight from the database. It is the
// fallback when no gRPC client is configured.
type Store struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ProfileByID(ctx context.Context, providerID string) (Profile, error) {
	var p Profile
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, is_active
		FROM provider_profiles
		WHERE id = $1
	`, providerID).Scan(&p.ID, &p.UserID, &p.IsActive)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Store) ProfileByUser(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, is_active
		FROM provider_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.IsActive)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}
