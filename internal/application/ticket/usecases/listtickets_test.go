package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/query"
)

func TestListTicketsUseCase_EnrichesUnread(t *testing.T) {
	scopes, _ := resolverFor(newMember(7))
	var seenScope visibility.Scope
	queries := &mockQueryRepository{
		ListFunc: func(ctx context.Context, scope visibility.Scope, params query.Params) ([]*ticket.Ticket, int64, error) {
			seenScope = scope
			return []*ticket.Ticket{existingTicket(1, 7), existingTicket(2, 7)}, 12, nil
		},
	}
	reads := &mockReadRepository{
		CountUnreadByTicketsFunc: func(ctx context.Context, actorID uint, ids []uint) (map[uint]int64, error) {
			assert.Equal(t, uint(7), actorID)
			assert.Equal(t, []uint{1, 2}, ids)
			return map[uint]int64{2: 4}, nil
		},
	}

	uc := NewListTicketsUseCase(queries, reads, scopes, logger.NewNop())
	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Caller: common.Caller{ActorID: 7},
		Params: query.Params{PageNumber: 2, PageSize: 5, AccessEntity: []uint{99}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.TotalCount)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.PageSize)
	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(0), result.Items[0].Unread)
	assert.Equal(t, int64(4), result.Items[1].Unread)

	// client access lists never reach the scope
	assert.Empty(t, seenScope.AccessEntity)
	assert.False(t, seenScope.Admin)
}

func TestListTicketsUseCase_AdminUsesUnscopedView(t *testing.T) {
	scopes, _ := resolverFor()
	queries := &mockQueryRepository{
		ListFunc: func(ctx context.Context, scope visibility.Scope, params query.Params) ([]*ticket.Ticket, int64, error) {
			assert.True(t, scope.Admin)
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(queries, &mockReadRepository{}, scopes, logger.NewNop())

	result, err := uc.ExecuteAdmin(context.Background(), ListTicketsQuery{Caller: common.Caller{Admin: true}})
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PageSize)
}

func TestTicketCountersUseCase(t *testing.T) {
	scopes, _ := resolverFor(newMember(7))
	queries := &mockQueryRepository{
		CountByStatusFunc: func(ctx context.Context, scope visibility.Scope) ([]ticket.StatusCount, error) {
			return []ticket.StatusCount{
				{Status: vo.StatusOpen, Count: 3},
				{Status: vo.StatusReopened, Count: 1},
				{Status: vo.StatusClosed, Count: 8},
			}, nil
		},
	}
	reads := &mockReadRepository{
		CountUnreadForScopeFunc: func(ctx context.Context, scope visibility.Scope) (readtracker.Summary, error) {
			assert.Equal(t, uint(7), scope.ActorID)
			return readtracker.Summary{Tickets: 2, Topics: 1, Total: 3}, nil
		},
	}
	uc := NewTicketCountersUseCase(queries, reads, scopes)
	caller := common.Caller{ActorID: 7}

	counts, err := uc.StatusCounts(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.OpenCount)
	assert.Equal(t, int64(0), counts.ProgressCount)
	assert.Equal(t, int64(1), counts.ReOpenCount)
	assert.Equal(t, int64(8), counts.CloseCount)

	ids, err := uc.IDs(context.Background(), caller, query.Params{})
	require.NoError(t, err)
	assert.NotNil(t, ids)

	summary, err := uc.Unread(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Total)
}

func TestBulkUpdateStatusUseCase_SkipsInvisible(t *testing.T) {
	scopes, actors := resolverFor(newMember(7))
	queries := &mockQueryRepository{
		IDsFunc: func(ctx context.Context, scope visibility.Scope, params query.Params) ([]uint, error) {
			return []uint{3, 1}, nil
		},
	}
	var updatedIDs []uint
	tickets := &mockTicketRepository{
		UpdateStatusFunc: func(ctx context.Context, ids []uint, status vo.TicketStatus, by uint) (int64, error) {
			updatedIDs = ids
			assert.Equal(t, vo.StatusClosed, status)
			assert.Equal(t, uint(7), by)
			return int64(len(ids)), nil
		},
		GetByIDsFunc: func(ctx context.Context, ids []uint) ([]*ticket.Ticket, error) {
			out := make([]*ticket.Ticket, 0, len(ids))
			for _, id := range ids {
				out = append(out, existingTicket(id, 7))
			}
			return out, nil
		},
	}
	pub := &recordingPublisher{}

	uc := NewBulkUpdateStatusUseCase(tickets, queries, scopes, actors, pub, logger.NewNop())
	result, err := uc.Execute(context.Background(), BulkUpdateStatusCommand{
		Caller:    common.Caller{ActorID: 7},
		TicketIDs: []uint{1, 2, 3, 1},
		Status:    "Closed",
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, updatedIDs)
	assert.Len(t, result, 2)
	assert.Equal(t, []string{"tickets-updated", "tickets-updated"}, pub.names())
}
