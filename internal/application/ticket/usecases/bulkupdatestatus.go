package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/query"
	"github.com/deskhub/deskhub/internal/shared/utils/setutil"
)

type BulkUpdateStatusCommand struct {
	Caller    common.Caller
	TicketIDs []uint
	Status    string
}

type BulkUpdateStatusUseCase struct {
	tickets   ticket.TicketRepository
	queries   ticket.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewBulkUpdateStatusUseCase(
	tickets ticket.TicketRepository,
	queries ticket.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *BulkUpdateStatusUseCase {
	return &BulkUpdateStatusUseCase{
		tickets:   tickets,
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute sets the status of every visible ticket in the list. Each updated
// ticket is announced on its own so targeted delivery can check it.
func (uc *BulkUpdateStatusUseCase) Execute(ctx context.Context, cmd BulkUpdateStatusCommand) ([]*dto.TicketDTO, error) {
	status, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	ids := setutil.Dedupe(cmd.TicketIDs)
	if len(ids) == 0 {
		return nil, errors.NewValidationError("at least one ticket ID is required")
	}

	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	visible, err := visibleIDs(ctx, uc.queries, scope, ids)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return []*dto.TicketDTO{}, nil
	}

	affected, err := uc.tickets.UpdateStatus(ctx, visible, status, cmd.Caller.ActorID)
	if err != nil {
		uc.logger.Errorw("failed to update ticket statuses", "ticket_ids", visible, "error", err)
		return nil, err
	}

	updated, err := uc.tickets.GetByIDs(ctx, visible)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("ticket statuses updated", "status", status, "affected", affected)

	result := dto.ToTicketDTOs(updated, nil)
	for i, t := range updated {
		uc.publisher.Publish(events.New(events.TicketsUpdated, result[i:i+1]).
			From(cmd.Caller.ConnID).
			For(ticketAudience(ctx, uc.actors, t, uc.logger)))
	}
	return result, nil
}

// visibleIDs keeps the IDs of ids that scope can see, in the order given.
func visibleIDs(ctx context.Context, queries ticket.QueryRepository, scope visibility.Scope, ids []uint) ([]uint, error) {
	raw := make([]any, len(ids))
	for i, id := range ids {
		raw[i] = float64(id)
	}
	found, err := queries.IDs(ctx, scope, query.Params{Filter: map[string]any{"id": raw}})
	if err != nil {
		return nil, err
	}
	allowed := setutil.NewUintSet(found...)
	out := make([]uint, 0, len(found))
	for _, id := range ids {
		if allowed.Has(id) {
			out = append(out, id)
		}
	}
	return out, nil
}
