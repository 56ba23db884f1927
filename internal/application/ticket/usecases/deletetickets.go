package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils/setutil"
)

type DeleteTicketsCommand struct {
	Caller    common.Caller
	TicketIDs []uint
}

type DeleteTicketsResult struct {
	Deleted []uint `json:"deleted"`
}

// DeleteTicketsUseCase soft-deletes tickets with their messages and read
// markers. IDs outside the caller's scope are skipped.
type DeleteTicketsUseCase struct {
	tickets ticket.TicketRepository
	queries ticket.QueryRepository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewDeleteTicketsUseCase(
	tickets ticket.TicketRepository,
	queries ticket.QueryRepository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *DeleteTicketsUseCase {
	return &DeleteTicketsUseCase{
		tickets: tickets,
		queries: queries,
		scopes:  scopes,
		logger:  logger,
	}
}

func (uc *DeleteTicketsUseCase) Execute(ctx context.Context, cmd DeleteTicketsCommand) (*DeleteTicketsResult, error) {
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
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if err := uc.tickets.Delete(ctx, visible...); err != nil {
		uc.logger.Errorw("failed to delete tickets", "ticket_ids", visible, "error", err)
		return nil, err
	}

	uc.logger.Infow("tickets deleted", "ticket_ids", visible, "by", cmd.Caller.ActorID)
	return &DeleteTicketsResult{Deleted: visible}, nil
}
