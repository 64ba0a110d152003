//go:build protogen

package directory

import (
	"context"
	"time"

	"github.com/sofia-wellness/sofia/libs/grpcx"
	directoryv1 "github.com/sofia-wellness/sofia/protos/gen/directory/v1"
)

type grpcClient struct {
	client directoryv1.DirectoryServiceClient
}

func NewClient(addr string) (Client, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcClient{client: directoryv1.NewDirectoryServiceClient(conn)}, nil
}

func (c *grpcClient) ProfileByID(ctx context.Context, providerID string) (Profile, error) {
	resp, err := c.client.GetProviderProfile(ctx, &directoryv1.ProviderProfileRequest{ProviderId: providerID})
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:       resp.GetProviderId(),
		UserID:   resp.GetUserId(),
		IsActive: resp.GetIsActive(),
	}, nil
}

func (c *grpcClient) ProfileByUser(ctx context.Context, userID string) (Profile, error) {
	resp, err := c.client.GetProviderProfile(ctx, &directoryv1.ProviderProfileRequest{UserId: userID})
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:       resp.GetProviderId(),
		UserID:   resp.GetUserId(),
		IsActive: resp.GetIsActive(),
	}, nil
}
