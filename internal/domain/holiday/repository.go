package holiday

import (
	"context"

	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, holiday *Holiday) error
	Update(ctx context.Context, holiday *Holiday) error
	GetByID(ctx context.Context, id uint) (*Holiday, error)
	Delete(ctx context.Context, id uint) error
}

type DaysoffRepository interface {
	Create(ctx context.Context, daysoff *Daysoff) error
	Update(ctx context.Context, daysoff *Daysoff) error
	GetByID(ctx context.Context, id uint) (*Daysoff, error)
	Delete(ctx context.Context, id uint) error

	// List returns all days off ordered by date
	List(ctx context.Context) ([]*Daysoff, error)
}

type QueryRepository interface {
	// List applies scope, filters, the optional creation month, sort and
	// pagination
	List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*Holiday, int64, error)

	GetVisible(ctx context.Context, scope visibility.Scope, holidayID uint) (*Holiday, error)
}
