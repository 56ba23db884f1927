package http

import (
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/infrastructure/repository"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	actorRepo        directory.Repository
	readRepo         readtracker.Repository
	ticketRepo       ticket.TicketRepository
	messageRepo      ticket.MessageRepository
	ticketQueryRepo  ticket.QueryRepository
	topicRepo        topic.TopicRepository
	conversationRepo topic.ConversationRepository
	topicQueryRepo   topic.QueryRepository
	holidayRepo      *repository.HolidayRepository
	daysoffRepo      holiday.DaysoffRepository
	sponsorRepo      sponsor.Repository
	toolRepo         tool.Repository
	shiftRepo        shift.Repository
	recordRepo       shift.RecordRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		actorRepo:        repository.NewActorRepository(db, log),
		readRepo:         repository.NewReadRepository(db),
		ticketRepo:       repository.NewTicketRepository(db, log),
		messageRepo:      repository.NewMessageRepository(db),
		ticketQueryRepo:  repository.NewTicketQueryRepository(db, log),
		topicRepo:        repository.NewTopicRepository(db),
		conversationRepo: repository.NewConversationRepository(db),
		topicQueryRepo:   repository.NewTopicQueryRepository(db),
		holidayRepo:      repository.NewHolidayRepository(db),
		daysoffRepo:      repository.NewDaysoffRepository(db),
		sponsorRepo:      repository.NewSponsorRepository(db),
		toolRepo:         repository.NewToolRepository(db),
		shiftRepo:        repository.NewShiftRepository(db),
		recordRepo:       repository.NewRecordRepository(db),
	}
}
