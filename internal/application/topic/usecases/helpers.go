package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func visibleTopic(ctx context.Context, topics topic.QueryRepository, scope visibility.Scope, topicID uint) (*topic.Topic, error) {
	t, err := topics.GetVisible(ctx, scope, topicID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("topic not found")
	}
	return t, nil
}

func topicAudience(ctx context.Context, actors common.ActorFinder, t *topic.Topic, log logger.Interface) *events.Audience {
	from, err := common.Party(ctx, actors, t.FromID())
	if err != nil {
		log.Warnw("failed to resolve topic participant", "topic_id", t.ID(), "error", err)
		from = visibility.Party{ID: t.FromID()}
	}
	to, err := common.Party(ctx, actors, t.ToID())
	if err != nil {
		log.Warnw("failed to resolve topic participant", "topic_id", t.ID(), "error", err)
		to = visibility.Party{ID: t.ToID()}
	}
	return &events.Audience{Topic: &visibility.TopicFacts{From: from, To: to}}
}

func requireActor(caller common.Caller) error {
	if caller.ActorID == 0 {
		return errors.NewForbiddenError("an actor account is required")
	}
	return nil
}
