package tool

import "context"

type Repository interface {
	Create(ctx context.Context, tool *Tool) error
	Update(ctx context.Context, tool *Tool) error
	GetByID(ctx context.Context, id uint) (*Tool, error)
	DeleteMany(ctx context.Context, ids []uint) (int64, error)

	// ListActive returns active tools, newest first. A nil entityIDs means
	// every entity; otherwise tools of those entities plus shared ones.
	ListActive(ctx context.Context, entityIDs []uint) ([]*Tool, error)
}
