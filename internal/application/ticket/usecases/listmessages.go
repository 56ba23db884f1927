package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type ListMessagesQuery struct {
	Caller   common.Caller
	TicketID uint
}

// ListMessagesUseCase returns a ticket's messages oldest first. Retrieving
// them marks them read by the caller.
type ListMessagesUseCase struct {
	messages ticket.MessageRepository
	queries  ticket.QueryRepository
	reads    readtracker.Repository
	scopes   *common.ScopeResolver
	logger   logger.Interface
}

func NewListMessagesUseCase(
	messages ticket.MessageRepository,
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *ListMessagesUseCase {
	return &ListMessagesUseCase{
		messages: messages,
		queries:  queries,
		reads:    reads,
		scopes:   scopes,
		logger:   logger,
	}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, q ListMessagesQuery) ([]*dto.MessageDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTicket(ctx, uc.queries, scope, q.TicketID)
	if err != nil {
		return nil, err
	}

	if q.Caller.ActorID != 0 {
		marked, err := uc.reads.MarkTicketRead(ctx, q.Caller.ActorID, t.ID())
		if err != nil {
			uc.logger.Errorw("failed to mark ticket read", "ticket_id", t.ID(), "error", err)
			return nil, err
		}
		uc.logger.Debugw("ticket messages marked read", "ticket_id", t.ID(), "marked", marked)
	}

	messages, err := uc.messages.ListByTicket(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	return dto.ToMessageDTOs(messages), nil
}
