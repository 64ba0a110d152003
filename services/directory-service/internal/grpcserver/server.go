//go:build protogen

package grpcserver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sofia-wellness/sofia/libs/db"
	directoryv1 "github.com/sofia-wellness/sofia/protos/gen/directory/v1"
	"github.com/sofia-wellness/sofia/services/directory-service/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type server struct {
	directoryv1.UnimplementedDirectoryServiceServer
	pool *db.Pool
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, pool *db.Pool, repo *storage.Repository) {
	directoryv1.RegisterDirectoryServiceServer(grpcServer, &server{pool: pool, repo: repo})
}

// GetProviderProfile resolves a profile by provider id or by user id,
// whichever the caller supplies.
func (s *server) GetProviderProfile(ctx context.Context, req *directoryv1.ProviderProfileRequest) (*directoryv1.ProviderProfileResponse, error) {
	var (
		p   storage.ProviderProfile
		err error
	)
	switch {
	case req.GetProviderId() != "":
		p, err = s.repo.GetByID(ctx, req.GetProviderId())
	case req.GetUserId() != "":
		p, err = s.repo.GetByUser(ctx, req.GetUserId())
	default:
		return nil, status.Error(codes.InvalidArgument, "provider_id or user_id required")
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, status.Error(codes.NotFound, "provider profile not found")
		}
		return nil, status.Error(codes.Internal, "profile lookup failed")
	}

	return &directoryv1.ProviderProfileResponse{
		ProviderId:  p.ID,
		UserId:      p.UserID,
		DisplayName: p.DisplayName,
		Specialty:   p.Specialty,
		IsActive:    p.IsActive,
	}, nil
}
