package sponsor

import "context"

// EntityGroup is one active entity with its active sponsors.
type EntityGroup struct {
	EntityID   uint
	EntityName string
	Sponsors   []*Sponsor
}

type Repository interface {
	Create(ctx context.Context, sponsor *Sponsor) error
	Update(ctx context.Context, sponsor *Sponsor) error
	GetByID(ctx context.Context, id uint) (*Sponsor, error)
	DeleteMany(ctx context.Context, ids []uint) (int64, error)

	// UpdateStatus sets status on every listed sponsor
	UpdateStatus(ctx context.Context, ids []uint, status Status) (int64, error)

	// List returns every sponsor, newest first
	List(ctx context.Context) ([]*Sponsor, error)

	// ListActiveByEntities returns active sponsors attached to at least one
	// of entityIDs. A nil slice means all entities.
	ListActiveByEntities(ctx context.Context, entityIDs []uint) ([]*Sponsor, error)

	// GroupByEntity groups active sponsors under their entities, newest
	// entity first. A nil slice means all entities.
	GroupByEntity(ctx context.Context, entityIDs []uint) ([]EntityGroup, error)
}
