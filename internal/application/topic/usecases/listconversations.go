package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type ListConversationsQuery struct {
	Caller  common.Caller
	TopicID uint
}

// ListConversationsUseCase returns a topic's entries oldest first and marks
// them read by the caller.
type ListConversationsUseCase struct {
	conversations topic.ConversationRepository
	queries       topic.QueryRepository
	reads         readtracker.Repository
	scopes        *common.ScopeResolver
	logger        logger.Interface
}

func NewListConversationsUseCase(
	conversations topic.ConversationRepository,
	queries topic.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *ListConversationsUseCase {
	return &ListConversationsUseCase{
		conversations: conversations,
		queries:       queries,
		reads:         reads,
		scopes:        scopes,
		logger:        logger,
	}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, q ListConversationsQuery) ([]*dto.ConversationDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTopic(ctx, uc.queries, scope, q.TopicID)
	if err != nil {
		return nil, err
	}

	if q.Caller.ActorID != 0 {
		marked, err := uc.reads.MarkTopicRead(ctx, q.Caller.ActorID, t.ID())
		if err != nil {
			uc.logger.Errorw("failed to mark topic read", "topic_id", t.ID(), "error", err)
			return nil, err
		}
		uc.logger.Debugw("topic conversations marked read", "topic_id", t.ID(), "marked", marked)
	}

	convs, err := uc.conversations.ListByTopic(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	return dto.ToConversationDTOs(convs), nil
}
