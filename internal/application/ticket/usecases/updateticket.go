package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// UpdateTicketCommand replaces the editable fields. An empty Status keeps
// the current one.
type UpdateTicketCommand struct {
	Caller           common.Caller
	TicketID         uint
	Subject          string
	RelatedRessource string
	Notes            string
	Severity         string
	Type             string
	Status           string
	Routing          ticket.Routing
}

type UpdateTicketUseCase struct {
	tickets   ticket.TicketRepository
	queries   ticket.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewUpdateTicketUseCase(
	tickets ticket.TicketRepository,
	queries ticket.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		tickets:   tickets,
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTicket(ctx, uc.queries, scope, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	content := ticket.Content{
		Subject:          cmd.Subject,
		RelatedRessource: cmd.RelatedRessource,
		Notes:            cmd.Notes,
		Severity:         vo.Severity(cmd.Severity),
		Type:             vo.TicketType(cmd.Type),
	}
	if err := t.Update(content, cmd.Routing); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Status != "" {
		status, err := vo.NewTicketStatus(cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := t.ChangeStatus(status, cmd.Caller.ActorID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.tickets.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated", "ticket_id", t.ID(), "status", t.Status())

	uc.publisher.Publish(events.New(events.TicketUpdated(t.ID()), t.Status().String()).
		From(cmd.Caller.ConnID).
		For(ticketAudience(ctx, uc.actors, t, uc.logger)))

	return dto.ToTicketDTO(t), nil
}
