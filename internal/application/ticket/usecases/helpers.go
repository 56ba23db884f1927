package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// visibleTicket loads a ticket through the caller's scope. A ticket outside
// the scope is reported as not found.
func visibleTicket(ctx context.Context, tickets ticket.QueryRepository, scope visibility.Scope, ticketID uint) (*ticket.Ticket, error) {
	t, err := tickets.GetVisible(ctx, scope, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	return t, nil
}

// ticketAudience builds the facts targeted delivery checks a ticket event
// against. An unresolvable owner narrows the audience to participants.
func ticketAudience(ctx context.Context, actors common.ActorFinder, t *ticket.Ticket, log logger.Interface) *events.Audience {
	owner, err := common.Party(ctx, actors, t.UserID())
	if err != nil {
		log.Warnw("failed to resolve ticket owner for event audience", "ticket_id", t.ID(), "error", err)
		owner = visibility.Party{ID: t.UserID()}
	}
	return &events.Audience{Ticket: &visibility.TicketFacts{
		OwnerID:      t.UserID(),
		AssignedTo:   t.AssignedTo(),
		EntityID:     t.EntityID(),
		DepartmentID: t.DepartmentID(),
		Archived:     t.Archived(),
		Owner:        owner,
	}}
}

func requireActor(caller common.Caller) error {
	if caller.ActorID == 0 {
		return errors.NewForbiddenError("an actor account is required")
	}
	return nil
}
