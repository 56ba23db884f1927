package ticket

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/application/ticket/usecases"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type TicketLister interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*dto.TicketListDTO, error)
	ExecuteAdmin(ctx context.Context, q usecases.ListTicketsQuery) (*dto.TicketListDTO, error)
}

type TicketSearcher interface {
	Execute(ctx context.Context, q usecases.SearchTicketsQuery) ([]*dto.TicketDTO, error)
	ExecuteAdmin(ctx context.Context, q usecases.SearchTicketsQuery) ([]*dto.TicketDTO, error)
}

type TicketCounter interface {
	StatusCounts(ctx context.Context, caller common.Caller) (*dto.StatusCountsDTO, error)
	IDs(ctx context.Context, caller common.Caller, params query.Params) ([]uint, error)
	Unread(ctx context.Context, caller common.Caller) (readtracker.Summary, error)
}

type TicketGetter interface {
	Execute(ctx context.Context, q usecases.GetTicketQuery) (*dto.TicketDTO, error)
}

type TicketCreator interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

type TicketUpdater interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

type TicketDeleter interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketsCommand) (*usecases.DeleteTicketsResult, error)
}

type StatusBulkUpdater interface {
	Execute(ctx context.Context, cmd usecases.BulkUpdateStatusCommand) ([]*dto.TicketDTO, error)
}

type TicketPinner interface {
	Execute(ctx context.Context, cmd usecases.PinTicketCommand) (*dto.TicketDTO, error)
}

type TicketForwarder interface {
	Execute(ctx context.Context, cmd usecases.ForwardTicketCommand) (*dto.TicketDTO, error)
}

type MessageLister interface {
	Execute(ctx context.Context, q usecases.ListMessagesQuery) ([]*dto.MessageDTO, error)
}

type MessagePoster interface {
	Execute(ctx context.Context, cmd usecases.PostMessageCommand) (*dto.MessageDTO, error)
}

type ReadMarker interface {
	Execute(ctx context.Context, cmd usecases.MarkTicketReadCommand) (*usecases.MarkTicketReadResult, error)
}

// UseCases groups what TicketHandler calls.
type UseCases struct {
	List     TicketLister
	Search   TicketSearcher
	Counters TicketCounter
	Get      TicketGetter
	Create   TicketCreator
	Update   TicketUpdater
	Delete   TicketDeleter
	Status   StatusBulkUpdater
	Pin      TicketPinner
	Forward  TicketForwarder
	Messages MessageLister
	Post     MessagePoster
	MarkRead ReadMarker
}
