package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/shared/query"
)

// TicketCountersUseCase serves the dashboard figures: per-status counts,
// visible IDs and the unread summary.
type TicketCountersUseCase struct {
	queries ticket.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
}

func NewTicketCountersUseCase(
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
) *TicketCountersUseCase {
	return &TicketCountersUseCase{queries: queries, reads: reads, scopes: scopes}
}

func (uc *TicketCountersUseCase) StatusCounts(ctx context.Context, caller common.Caller) (*dto.StatusCountsDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	counts, err := uc.queries.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	result := &dto.StatusCountsDTO{}
	for _, c := range counts {
		switch c.Status {
		case vo.StatusOpen:
			result.OpenCount = c.Count
		case vo.StatusInProgress:
			result.ProgressCount = c.Count
		case vo.StatusResolved:
			result.ResolveCount = c.Count
		case vo.StatusReopened:
			result.ReOpenCount = c.Count
		case vo.StatusClosed:
			result.CloseCount = c.Count
		}
	}
	return result, nil
}

func (uc *TicketCountersUseCase) IDs(ctx context.Context, caller common.Caller, params query.Params) ([]uint, error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	ids, err := uc.queries.IDs(ctx, scope, params)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// Unread sums the caller's unread entries over non-archived visible tickets
// and visible topics.
func (uc *TicketCountersUseCase) Unread(ctx context.Context, caller common.Caller) (readtracker.Summary, error) {
	if err := requireActor(caller); err != nil {
		return readtracker.Summary{}, err
	}
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return readtracker.Summary{}, err
	}
	return uc.reads.CountUnreadForScope(ctx, scope)
}
