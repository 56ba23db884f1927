package shift

import "context"

type Repository interface {
	Create(ctx context.Context, shift *Shift) error
	GetByID(ctx context.Context, id uint) (*Shift, error)
	SetDeleted(ctx context.Context, id uint, deleted bool) error

	// List returns the catalogue, built-in shifts first
	List(ctx context.Context) ([]*Shift, error)
	Count(ctx context.Context) (int64, error)

	// SeedDefaults inserts the built-in catalogue when none of its values
	// exist yet. Returns the number of rows inserted.
	SeedDefaults(ctx context.Context, defaults []*Shift) (int, error)
}

type RecordRepository interface {
	// CreateMissing inserts the records not already planned for the same
	// user, shift and day. Returns the number inserted.
	CreateMissing(ctx context.Context, records []*Record) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)

	// DeleteInRange removes the given records whose day falls in [from, to]
	DeleteInRange(ctx context.Context, ids []uint, from, to string) (int64, error)
	List(ctx context.Context, f RecordFilter) ([]*PlannedRecord, error)
}
