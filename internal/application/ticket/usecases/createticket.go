package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type CreateTicketCommand struct {
	Caller           common.Caller
	Subject          string
	RelatedRessource string
	Notes            string
	Severity         string
	Type             string
	Routing          ticket.Routing

	// Message is the opening message, stored as already read by the issuer
	Message string
}

type CreateTicketUseCase struct {
	tickets   ticket.TicketRepository
	messages  ticket.MessageRepository
	reads     readtracker.Repository
	actors    common.ActorFinder
	tx        common.Transactor
	sanitizer common.Sanitizer
	files     common.FileStore
	publisher events.Publisher
	logger    logger.Interface
}

func NewCreateTicketUseCase(
	tickets ticket.TicketRepository,
	messages ticket.MessageRepository,
	reads readtracker.Repository,
	actors common.ActorFinder,
	tx common.Transactor,
	sanitizer common.Sanitizer,
	files common.FileStore,
	publisher events.Publisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		tickets:   tickets,
		messages:  messages,
		reads:     reads,
		actors:    actors,
		tx:        tx,
		sanitizer: sanitizer,
		files:     files,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	if err := requireActor(cmd.Caller); err != nil {
		return nil, err
	}

	content := ticket.Content{
		Subject:          cmd.Subject,
		RelatedRessource: cmd.RelatedRessource,
		Notes:            cmd.Notes,
		Severity:         vo.Severity(cmd.Severity),
		Type:             vo.TicketType(cmd.Type),
	}
	newTicket, err := ticket.NewTicket(cmd.Caller.ActorID, content, cmd.Routing)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.tickets.Create(ctx, newTicket); err != nil {
			return err
		}
		if cmd.Message == "" {
			return nil
		}

		msg, err := ticket.NewMessage(newTicket.ID(), cmd.Caller.ActorID, uc.sanitizer.Sanitize(cmd.Message))
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.messages.Create(ctx, msg); err != nil {
			return err
		}
		if err := tieMessageAttachment(ctx, uc.files, uc.messages, msg); err != nil {
			return err
		}
		_, err = uc.reads.MarkTicketRead(ctx, cmd.Caller.ActorID, newTicket.ID())
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "user_id", cmd.Caller.ActorID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created", "ticket_id", newTicket.ID(), "user_id", cmd.Caller.ActorID)

	result := dto.ToTicketDTO(newTicket)
	uc.publisher.Publish(events.New(events.TicketCreated, result).
		From(cmd.Caller.ConnID).
		For(ticketAudience(ctx, uc.actors, newTicket, uc.logger)))

	return result, nil
}

// tieMessageAttachment renames the blob a freshly stored message refers to
// and rewrites its body.
func tieMessageAttachment(ctx context.Context, files common.FileStore, messages ticket.MessageRepository, msg *ticket.Message) error {
	body, err := common.TieAttachment(ctx, files, msg.Body(), msg.ID())
	if err != nil {
		return err
	}
	if body == msg.Body() {
		return nil
	}
	msg.SetBody(body)
	return messages.Update(ctx, msg)
}
