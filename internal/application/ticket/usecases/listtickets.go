package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/mapper"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type ListTicketsQuery struct {
	Caller common.Caller
	Params query.Params
}

// ListTicketsUseCase is the ticket side of the query engine: scope, sparse
// filters, sort, pagination, then the caller's unread count per ticket.
type ListTicketsUseCase struct {
	queries ticket.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewListTicketsUseCase(
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		queries: queries,
		reads:   reads,
		scopes:  scopes,
		logger:  logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*dto.TicketListDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, scope, q.Caller.ActorID, q.Params)
}

// ExecuteAdmin lists without a visibility scope, archived tickets included,
// with AND-combined filters.
func (uc *ListTicketsUseCase) ExecuteAdmin(ctx context.Context, q ListTicketsQuery) (*dto.TicketListDTO, error) {
	return uc.list(ctx, visibility.AdminScope(q.Caller.ActorID), q.Caller.ActorID, q.Params)
}

func (uc *ListTicketsUseCase) list(ctx context.Context, scope visibility.Scope, readerID uint, params query.Params) (*dto.TicketListDTO, error) {
	tickets, total, err := uc.queries.List(ctx, scope, params)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "actor_id", readerID, "error", err)
		return nil, err
	}

	unread, err := unreadByTickets(ctx, uc.reads, readerID, tickets)
	if err != nil {
		return nil, err
	}

	return &dto.TicketListDTO{
		Items:      dto.ToTicketDTOs(tickets, unread),
		TotalCount: total,
		Page:       params.Page(),
		PageSize:   params.Size(),
	}, nil
}

func unreadByTickets(ctx context.Context, reads readtracker.Repository, readerID uint, tickets []*ticket.Ticket) (map[uint]int64, error) {
	if readerID == 0 || len(tickets) == 0 {
		return nil, nil
	}
	ids := mapper.MapSlice(tickets, (*ticket.Ticket).ID)
	return reads.CountUnreadByTickets(ctx, readerID, ids)
}
