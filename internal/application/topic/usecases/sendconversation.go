package usecases

import (
	"context"
	"time"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type SendConversationCommand struct {
	Caller  common.Caller
	TopicID uint
	Msg     string
}

// SendConversationUseCase appends a chat entry from the caller to the other
// participant of the topic. The entry is stored as read by its sender.
type SendConversationUseCase struct {
	topics        topic.TopicRepository
	conversations topic.ConversationRepository
	queries       topic.QueryRepository
	reads         readtracker.Repository
	scopes        *common.ScopeResolver
	actors        common.ActorFinder
	tx            common.Transactor
	sanitizer     common.Sanitizer
	files         common.FileStore
	publisher     events.Publisher
	logger        logger.Interface
	now           func() time.Time
}

func NewSendConversationUseCase(
	topics topic.TopicRepository,
	conversations topic.ConversationRepository,
	queries topic.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	tx common.Transactor,
	sanitizer common.Sanitizer,
	files common.FileStore,
	publisher events.Publisher,
	logger logger.Interface,
) *SendConversationUseCase {
	return &SendConversationUseCase{
		topics:        topics,
		conversations: conversations,
		queries:       queries,
		reads:         reads,
		scopes:        scopes,
		actors:        actors,
		tx:            tx,
		sanitizer:     sanitizer,
		files:         files,
		publisher:     publisher,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (uc *SendConversationUseCase) Execute(ctx context.Context, cmd SendConversationCommand) (*dto.ConversationDTO, error) {
	if err := requireActor(cmd.Caller); err != nil {
		return nil, err
	}
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTopic(ctx, uc.queries, scope, cmd.TopicID)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(cmd.Caller.ActorID) {
		return nil, errors.NewForbiddenError("only topic participants can send messages")
	}

	conv, err := topic.NewConversation(t.ID(), cmd.Caller.ActorID, t.Counterpart(cmd.Caller.ActorID), uc.sanitizer.Sanitize(cmd.Msg))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.conversations.Create(ctx, conv); err != nil {
			return err
		}
		body, err := common.TieAttachment(ctx, uc.files, conv.Msg(), conv.ID())
		if err != nil {
			return err
		}
		if body != conv.Msg() {
			conv.SetMsg(body)
			if err := uc.conversations.Update(ctx, conv); err != nil {
				return err
			}
		}
		if err := uc.reads.MarkConversationRead(ctx, cmd.Caller.ActorID, conv.ID()); err != nil {
			return err
		}
		t.Touch(uc.now())
		return uc.topics.Update(ctx, t)
	})
	if err != nil {
		uc.logger.Errorw("failed to send conversation", "topic_id", t.ID(), "error", err)
		return nil, err
	}

	stored := topic.ReconstructConversation(conv.ID(), conv.TopicID(), conv.FromID(), conv.ToID(), conv.Msg(),
		[]uint{cmd.Caller.ActorID}, conv.CreatedAt())
	result := dto.ToConversationDTO(stored)

	audience := topicAudience(ctx, uc.actors, t, uc.logger)
	uc.publisher.Publish(events.New(events.ReceivedMessage, result).From(cmd.Caller.ConnID).For(audience))
	uc.publisher.Publish(events.New(events.ReceivedMessageTopics, result).From(cmd.Caller.ConnID).For(audience))
	return result, nil
}
