package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type UpdateTopicStatusCommand struct {
	Caller  common.Caller
	TopicID uint
	Status  string
}

type UpdateTopicStatusUseCase struct {
	topics    topic.TopicRepository
	queries   topic.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewUpdateTopicStatusUseCase(
	topics topic.TopicRepository,
	queries topic.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *UpdateTopicStatusUseCase {
	return &UpdateTopicStatusUseCase{
		topics:    topics,
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UpdateTopicStatusUseCase) Execute(ctx context.Context, cmd UpdateTopicStatusCommand) (*dto.TopicDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTopic(ctx, uc.queries, scope, cmd.TopicID)
	if err != nil {
		return nil, err
	}

	if err := t.ChangeStatus(topic.Status(cmd.Status), cmd.Caller.ActorID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.topics.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update topic status", "topic_id", t.ID(), "error", err)
		return nil, err
	}

	result := dto.ToTopicDTO(t)
	uc.publisher.Publish(events.New(events.TopicUpdated(t.ID()), result).
		From(cmd.Caller.ConnID).
		For(topicAudience(ctx, uc.actors, t, uc.logger)))
	return result, nil
}
