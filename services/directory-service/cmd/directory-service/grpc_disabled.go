//go:build !protogen

package main

import (
	"context"
	"log/slog"

	"github.com/sofia-wellness/sofia/libs/db"
	"github.com/sofia-wellness/sofia/services/directory-service/internal/storage"
)

func startGrpcServer(_ context.Context, _ *slog.Logger, _ *db.Pool, _ *storage.Repository) error {
	return nil
}
