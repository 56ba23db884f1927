package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type ForwardTicketCommand struct {
	Caller       common.Caller
	TicketID     uint
	TargetTeamID uint
}

// ForwardTicketUseCase hands a ticket to another team and clears its assignee.
type ForwardTicketUseCase struct {
	tickets   ticket.TicketRepository
	queries   ticket.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewForwardTicketUseCase(
	tickets ticket.TicketRepository,
	queries ticket.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *ForwardTicketUseCase {
	return &ForwardTicketUseCase{
		tickets:   tickets,
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *ForwardTicketUseCase) Execute(ctx context.Context, cmd ForwardTicketCommand) (*dto.TicketDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTicket(ctx, uc.queries, scope, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if err := t.Forward(cmd.TargetTeamID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.tickets.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to forward ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket forwarded", "ticket_id", t.ID(), "target_team", cmd.TargetTeamID)

	result := dto.ToTicketDTO(t)
	uc.publisher.Publish(events.New(events.TicketForwarded, result).
		From(cmd.Caller.ConnID).
		For(ticketAudience(ctx, uc.actors, t, uc.logger)))
	return result, nil
}
