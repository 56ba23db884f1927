package directory

import "context"

// Repository resolves actors. Lookups of unknown IDs return nil, nil.
type Repository interface {
	// Create persists a new actor with its department memberships
	Create(ctx context.Context, actor *Actor) error

	// GetByID retrieves an actor with departments loaded
	GetByID(ctx context.Context, id uint) (*Actor, error)

	// GetByIDs retrieves several actors; missing IDs are skipped
	GetByIDs(ctx context.Context, ids []uint) ([]*Actor, error)

	// GetByUsername retrieves an actor by login name
	GetByUsername(ctx context.Context, username string) (*Actor, error)

	// UpdateActivity stores the presence state only
	UpdateActivity(ctx context.Context, id uint, activity Activity) error

	// UpdateSolde stores the holiday balance only
	UpdateSolde(ctx context.Context, id uint, solde float64) error
}
