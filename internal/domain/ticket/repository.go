package ticket

import (
	"context"
	"time"

	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/query"
)

// TicketRepository persists tickets. Visibility is applied by the query
// repository, not here.
type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByIDs(ctx context.Context, ticketIDs []uint) ([]*Ticket, error)

	// Delete soft-deletes tickets with their messages and read markers
	Delete(ctx context.Context, ticketIDs ...uint) error

	// UpdateStatus sets the status of several tickets at once
	UpdateStatus(ctx context.Context, ticketIDs []uint, status vo.TicketStatus, changedBy uint) (int64, error)

	// ArchiveStale archives tickets not updated since cutoff, leaving
	// updated_at untouched. Returns the number of tickets archived.
	ArchiveStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	Update(ctx context.Context, message *Message) error

	// ListByTicket returns messages oldest first, with read sets loaded
	ListByTicket(ctx context.Context, ticketID uint) ([]*Message, error)
}

// StatusCount is the number of visible tickets in one status.
type StatusCount struct {
	Status vo.TicketStatus
	Count  int64
}

// QueryRepository lists tickets through a visibility scope. Items outside
// the scope are filtered out, never reported.
type QueryRepository interface {
	// List applies scope, sparse filters, sort and pagination. The total is
	// the filtered count before pagination.
	List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*Ticket, int64, error)

	// IDs returns the IDs matching scope and filters, unpaginated
	IDs(ctx context.Context, scope visibility.Scope, params query.Params) ([]uint, error)

	// CountByStatus counts visible tickets per status
	CountByStatus(ctx context.Context, scope visibility.Scope) ([]StatusCount, error)

	// Search returns visible tickets having a message whose body contains
	// text, case-insensitively, each ticket once
	Search(ctx context.Context, scope visibility.Scope, text string) ([]*Ticket, error)

	// GetVisible returns nil when the ticket does not exist or is out of scope
	GetVisible(ctx context.Context, scope visibility.Scope, ticketID uint) (*Ticket, error)
}
