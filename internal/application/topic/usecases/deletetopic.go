package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type DeleteTopicCommand struct {
	Caller  common.Caller
	TopicID uint
}

// DeleteTopicUseCase removes a topic with its conversations and their read
// markers.
type DeleteTopicUseCase struct {
	topics  topic.TopicRepository
	queries topic.QueryRepository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewDeleteTopicUseCase(
	topics topic.TopicRepository,
	queries topic.QueryRepository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *DeleteTopicUseCase {
	return &DeleteTopicUseCase{topics: topics, queries: queries, scopes: scopes, logger: logger}
}

func (uc *DeleteTopicUseCase) Execute(ctx context.Context, cmd DeleteTopicCommand) error {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return err
	}
	t, err := visibleTopic(ctx, uc.queries, scope, cmd.TopicID)
	if err != nil {
		return err
	}
	if err := uc.topics.Delete(ctx, t.ID()); err != nil {
		uc.logger.Errorw("failed to delete topic", "topic_id", t.ID(), "error", err)
		return err
	}
	uc.logger.Infow("topic deleted", "topic_id", t.ID(), "by", cmd.Caller.ActorID)
	return nil
}
