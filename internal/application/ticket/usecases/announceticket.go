package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils/setutil"
)

// AnnounceTicketCommand asks for a change already stored to be pushed again.
// Event is the client event name.
type AnnounceTicketCommand struct {
	Caller    common.Caller
	Event     string
	TicketIDs []uint
}

// AnnounceTicketUseCase serves the notify-only socket events. Payloads are
// rebuilt from stored rows; client-sent fields are ignored.
type AnnounceTicketUseCase struct {
	queries   ticket.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewAnnounceTicketUseCase(
	queries ticket.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *AnnounceTicketUseCase {
	return &AnnounceTicketUseCase{
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute returns the number of events published. Tickets the caller
// cannot see are skipped.
func (uc *AnnounceTicketUseCase) Execute(ctx context.Context, cmd AnnounceTicketCommand) (int, error) {
	ids := setutil.Dedupe(cmd.TicketIDs)
	if len(ids) == 0 {
		return 0, errors.NewValidationError("at least one ticket ID is required")
	}
	switch cmd.Event {
	case events.ClientCreateTicket, events.ClientForwardTicket, events.ClientUpdatedTicket, events.ClientBulkUpdatedTicket:
	default:
		return 0, errors.NewValidationError("unsupported ticket event", cmd.Event)
	}

	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, id := range ids {
		t, err := uc.queries.GetVisible(ctx, scope, id)
		if err != nil {
			return published, err
		}
		if t == nil {
			continue
		}

		d := dto.ToTicketDTO(t)
		var e events.Event
		switch cmd.Event {
		case events.ClientCreateTicket:
			e = events.New(events.TicketCreated, d)
		case events.ClientForwardTicket:
			e = events.New(events.TicketForwarded, d)
		case events.ClientUpdatedTicket:
			e = events.New(events.TicketUpdated(t.ID()), t.Status().String())
		case events.ClientBulkUpdatedTicket:
			e = events.New(events.TicketsUpdated, []*dto.TicketDTO{d})
		}
		uc.publisher.Publish(e.From(cmd.Caller.ConnID).For(ticketAudience(ctx, uc.actors, t, uc.logger)))
		published++
	}
	return published, nil
}
