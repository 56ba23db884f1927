package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
)

type MarkTicketReadCommand struct {
	Caller   common.Caller
	TicketID uint
}

type MarkTicketReadResult struct {
	Marked int64 `json:"marked"`
}

type MarkTicketReadUseCase struct {
	queries ticket.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
}

func NewMarkTicketReadUseCase(
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
) *MarkTicketReadUseCase {
	return &MarkTicketReadUseCase{queries: queries, reads: reads, scopes: scopes}
}

func (uc *MarkTicketReadUseCase) Execute(ctx context.Context, cmd MarkTicketReadCommand) (*MarkTicketReadResult, error) {
	if err := requireActor(cmd.Caller); err != nil {
		return nil, err
	}
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTicket(ctx, uc.queries, scope, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	marked, err := uc.reads.MarkTicketRead(ctx, cmd.Caller.ActorID, t.ID())
	if err != nil {
		return nil, err
	}
	return &MarkTicketReadResult{Marked: marked}, nil
}
