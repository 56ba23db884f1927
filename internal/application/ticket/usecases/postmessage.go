package usecases

import (
	"context"
	"time"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type PostMessageCommand struct {
	Caller   common.Caller
	TicketID uint
	Body     string
}

// PostMessageUseCase appends a message to a ticket and records the activity
// on the ticket. Replying counts as reading: the author's markers cover the
// whole thread, the new message included.
type PostMessageUseCase struct {
	tickets   ticket.TicketRepository
	messages  ticket.MessageRepository
	queries   ticket.QueryRepository
	reads     readtracker.Repository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	tx        common.Transactor
	sanitizer common.Sanitizer
	files     common.FileStore
	publisher events.Publisher
	logger    logger.Interface
	now       func() time.Time
}

func NewPostMessageUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	tx common.Transactor,
	sanitizer common.Sanitizer,
	files common.FileStore,
	publisher events.Publisher,
	logger logger.Interface,
) *PostMessageUseCase {
	return &PostMessageUseCase{
		tickets:   tickets,
		messages:  messages,
		queries:   queries,
		reads:     reads,
		scopes:    scopes,
		actors:    actors,
		tx:        tx,
		sanitizer: sanitizer,
		files:     files,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*dto.MessageDTO, error) {
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

	msg, err := ticket.NewMessage(t.ID(), cmd.Caller.ActorID, uc.sanitizer.Sanitize(cmd.Body))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.messages.Create(ctx, msg); err != nil {
			return err
		}
		if err := tieMessageAttachment(ctx, uc.files, uc.messages, msg); err != nil {
			return err
		}
		if _, err := uc.reads.MarkTicketRead(ctx, cmd.Caller.ActorID, t.ID()); err != nil {
			return err
		}
		t.Touch(uc.now())
		return uc.tickets.Update(ctx, t)
	})
	if err != nil {
		uc.logger.Errorw("failed to post ticket message", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Debugw("ticket message posted", "ticket_id", t.ID(), "message_id", msg.ID())

	stored := ticket.ReconstructMessage(msg.ID(), msg.TicketID(), msg.UserID(), msg.Body(),
		[]uint{cmd.Caller.ActorID}, msg.CreatedAt())
	result := dto.ToMessageDTO(stored)
	audience := ticketAudience(ctx, uc.actors, t, uc.logger)
	uc.publisher.Publish(events.New(events.MessageCreated(t.ID()), result).From(cmd.Caller.ConnID).For(audience))
	uc.publisher.Publish(events.New(events.MessageConv(t.ID()), result).From(cmd.Caller.ConnID).For(audience))
	return result, nil
}
