package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
)

type GetTicketQuery struct {
	Caller   common.Caller
	TicketID uint
}

type GetTicketUseCase struct {
	queries ticket.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
}

func NewGetTicketUseCase(
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
) *GetTicketUseCase {
	return &GetTicketUseCase{queries: queries, reads: reads, scopes: scopes}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, q GetTicketQuery) (*dto.TicketDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTicket(ctx, uc.queries, scope, q.TicketID)
	if err != nil {
		return nil, err
	}

	result := dto.ToTicketDTO(t)
	if q.Caller.ActorID != 0 {
		unread, err := uc.reads.CountTicketUnread(ctx, q.Caller.ActorID, t.ID())
		if err != nil {
			return nil, err
		}
		result.Unread = unread
	}
	return result, nil
}
