package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type PinTicketCommand struct {
	Caller   common.Caller
	TicketID uint
	Pinned   bool
}

type PinTicketUseCase struct {
	tickets ticket.TicketRepository
	queries ticket.QueryRepository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewPinTicketUseCase(
	tickets ticket.TicketRepository,
	queries ticket.QueryRepository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *PinTicketUseCase {
	return &PinTicketUseCase{
		tickets: tickets,
		queries: queries,
		scopes:  scopes,
		logger:  logger,
	}
}

func (uc *PinTicketUseCase) Execute(ctx context.Context, cmd PinTicketCommand) (*dto.TicketDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTicket(ctx, uc.queries, scope, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	t.SetPinned(cmd.Pinned)
	if err := uc.tickets.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to pin ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}
	return dto.ToTicketDTO(t), nil
}
