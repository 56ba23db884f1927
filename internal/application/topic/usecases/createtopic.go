package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type CreateTopicCommand struct {
	Caller  common.Caller
	ToID    uint
	Subject string

	// Message optionally opens the thread; it is read by its sender
	Message string
}

type CreateTopicUseCase struct {
	topics        topic.TopicRepository
	conversations topic.ConversationRepository
	reads         readtracker.Repository
	actors        common.ActorFinder
	tx            common.Transactor
	sanitizer     common.Sanitizer
	logger        logger.Interface
}

func NewCreateTopicUseCase(
	topics topic.TopicRepository,
	conversations topic.ConversationRepository,
	reads readtracker.Repository,
	actors common.ActorFinder,
	tx common.Transactor,
	sanitizer common.Sanitizer,
	logger logger.Interface,
) *CreateTopicUseCase {
	return &CreateTopicUseCase{
		topics:        topics,
		conversations: conversations,
		reads:         reads,
		actors:        actors,
		tx:            tx,
		sanitizer:     sanitizer,
		logger:        logger,
	}
}

func (uc *CreateTopicUseCase) Execute(ctx context.Context, cmd CreateTopicCommand) (*dto.TopicDTO, error) {
	if err := requireActor(cmd.Caller); err != nil {
		return nil, err
	}

	recipient, err := uc.actors.GetByID(ctx, cmd.ToID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, errors.NewValidationError("recipient not found")
	}

	t, err := topic.NewTopic(cmd.Caller.ActorID, cmd.ToID, cmd.Subject)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.topics.Create(ctx, t); err != nil {
			return err
		}
		if cmd.Message == "" {
			return nil
		}
		conv, err := topic.NewConversation(t.ID(), cmd.Caller.ActorID, cmd.ToID, uc.sanitizer.Sanitize(cmd.Message))
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.conversations.Create(ctx, conv); err != nil {
			return err
		}
		return uc.reads.MarkConversationRead(ctx, cmd.Caller.ActorID, conv.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to create topic", "from", cmd.Caller.ActorID, "to", cmd.ToID, "error", err)
		return nil, err
	}

	uc.logger.Infow("topic created", "topic_id", t.ID(), "from", t.FromID(), "to", t.ToID())
	return dto.ToTopicDTO(t), nil
}
