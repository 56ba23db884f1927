package http

import (
	"github.com/deskhub/deskhub/internal/application/common"
	directoryUsecases "github.com/deskhub/deskhub/internal/application/directory/usecases"
	holidayUsecases "github.com/deskhub/deskhub/internal/application/holiday/usecases"
	shiftUsecases "github.com/deskhub/deskhub/internal/application/shift/usecases"
	sponsorUsecases "github.com/deskhub/deskhub/internal/application/sponsor/usecases"
	ticketUsecases "github.com/deskhub/deskhub/internal/application/ticket/usecases"
	toolUsecases "github.com/deskhub/deskhub/internal/application/tool/usecases"
	topicUsecases "github.com/deskhub/deskhub/internal/application/topic/usecases"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/infrastructure/email"
	"github.com/deskhub/deskhub/internal/shared/db"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	scopes *common.ScopeResolver

	// Directory
	getCurrentActorUC *directoryUsecases.GetCurrentActorUseCase
	updatePresenceUC  *directoryUsecases.UpdatePresenceUseCase

	// Ticket
	listTicketsUC      *ticketUsecases.ListTicketsUseCase
	searchTicketsUC    *ticketUsecases.SearchTicketsUseCase
	ticketCountersUC   *ticketUsecases.TicketCountersUseCase
	getTicketUC        *ticketUsecases.GetTicketUseCase
	createTicketUC     *ticketUsecases.CreateTicketUseCase
	updateTicketUC     *ticketUsecases.UpdateTicketUseCase
	deleteTicketsUC    *ticketUsecases.DeleteTicketsUseCase
	bulkStatusUC       *ticketUsecases.BulkUpdateStatusUseCase
	pinTicketUC        *ticketUsecases.PinTicketUseCase
	forwardTicketUC    *ticketUsecases.ForwardTicketUseCase
	listMessagesUC     *ticketUsecases.ListMessagesUseCase
	postMessageUC      *ticketUsecases.PostMessageUseCase
	markTicketReadUC   *ticketUsecases.MarkTicketReadUseCase
	announceTicketUC   *ticketUsecases.AnnounceTicketUseCase
	archiveStaleUC     *ticketUsecases.ArchiveStaleTicketsUseCase

	// Topic
	listTopicsUC        *topicUsecases.ListTopicsUseCase
	createTopicUC       *topicUsecases.CreateTopicUseCase
	topicStatusUC       *topicUsecases.UpdateTopicStatusUseCase
	deleteTopicUC       *topicUsecases.DeleteTopicUseCase
	listConversationsUC *topicUsecases.ListConversationsUseCase
	sendConversationUC  *topicUsecases.SendConversationUseCase
	markTopicReadUC     *topicUsecases.MarkTopicReadUseCase
	chatPartnersUC      *topicUsecases.ChatPartnersUseCase

	// Holiday
	ledger            *holidayUsecases.BalanceLedger
	listHolidaysUC    *holidayUsecases.ListHolidaysUseCase
	getHolidayUC      *holidayUsecases.GetHolidayUseCase
	createHolidayUC   *holidayUsecases.CreateHolidayUseCase
	updateHolidayUC   *holidayUsecases.UpdateHolidayUseCase
	deleteHolidayUC   *holidayUsecases.DeleteHolidayUseCase
	decideHolidayUC   *holidayUsecases.DecideHolidayUseCase
	cancelHolidayUC   *holidayUsecases.CancelHolidayUseCase
	announceHolidayUC *holidayUsecases.AnnounceHolidayUseCase
	daysoffUC         *holidayUsecases.DaysoffUseCase

	// Workspace directories
	sponsorUC  *sponsorUsecases.SponsorUseCase
	toolUC     *toolUsecases.ToolUseCase
	shiftUC    *shiftUsecases.ShiftUseCase
	planningUC *shiftUsecases.PlanningUseCase
}

// initUseCases wires every use case onto the repositories and the hub.
func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	var publisher events.Publisher = c.hub
	tx := db.NewTransactionManager(c.db)
	scopes := common.NewScopeResolver(r.actorRepo)

	var notifier holidayUsecases.DecisionNotifier
	if c.cfg.Mail.Enabled {
		notifier = email.NewSMTPDecisionNotifier(email.FromMailConfig(c.cfg.Mail))
	}

	ledger := holidayUsecases.NewBalanceLedger(r.holidayRepo, r.daysoffRepo, r.actorRepo, tx, log)

	c.ucs = &allUseCases{
		scopes: scopes,

		getCurrentActorUC: directoryUsecases.NewGetCurrentActorUseCase(r.actorRepo),
		updatePresenceUC:  directoryUsecases.NewUpdatePresenceUseCase(r.actorRepo, log),

		listTicketsUC:    ticketUsecases.NewListTicketsUseCase(r.ticketQueryRepo, r.readRepo, scopes, log),
		searchTicketsUC:  ticketUsecases.NewSearchTicketsUseCase(r.ticketQueryRepo, r.readRepo, scopes),
		ticketCountersUC: ticketUsecases.NewTicketCountersUseCase(r.ticketQueryRepo, r.readRepo, scopes),
		getTicketUC:      ticketUsecases.NewGetTicketUseCase(r.ticketQueryRepo, r.readRepo, scopes),
		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.messageRepo, r.readRepo, r.actorRepo, tx, c.sanitizer, c.files, publisher, log,
		),
		updateTicketUC:   ticketUsecases.NewUpdateTicketUseCase(r.ticketRepo, r.ticketQueryRepo, scopes, r.actorRepo, publisher, log),
		deleteTicketsUC:  ticketUsecases.NewDeleteTicketsUseCase(r.ticketRepo, r.ticketQueryRepo, scopes, log),
		bulkStatusUC:     ticketUsecases.NewBulkUpdateStatusUseCase(r.ticketRepo, r.ticketQueryRepo, scopes, r.actorRepo, publisher, log),
		pinTicketUC:      ticketUsecases.NewPinTicketUseCase(r.ticketRepo, r.ticketQueryRepo, scopes, log),
		forwardTicketUC:  ticketUsecases.NewForwardTicketUseCase(r.ticketRepo, r.ticketQueryRepo, scopes, r.actorRepo, publisher, log),
		listMessagesUC:   ticketUsecases.NewListMessagesUseCase(r.messageRepo, r.ticketQueryRepo, r.readRepo, scopes, log),
		markTicketReadUC: ticketUsecases.NewMarkTicketReadUseCase(r.ticketQueryRepo, r.readRepo, scopes),
		postMessageUC: ticketUsecases.NewPostMessageUseCase(
			r.ticketRepo, r.messageRepo, r.ticketQueryRepo, r.readRepo, scopes, r.actorRepo, tx, c.sanitizer, c.files, publisher, log,
		),
		announceTicketUC: ticketUsecases.NewAnnounceTicketUseCase(r.ticketQueryRepo, scopes, r.actorRepo, publisher, log),
		archiveStaleUC:   ticketUsecases.NewArchiveStaleTicketsUseCase(r.ticketRepo, c.cfg.Scheduler.ArchiveAfterMonths, log),

		listTopicsUC: topicUsecases.NewListTopicsUseCase(r.topicQueryRepo, r.readRepo, scopes, log),
		createTopicUC: topicUsecases.NewCreateTopicUseCase(
			r.topicRepo, r.conversationRepo, r.readRepo, r.actorRepo, tx, c.sanitizer, log,
		),
		topicStatusUC:       topicUsecases.NewUpdateTopicStatusUseCase(r.topicRepo, r.topicQueryRepo, scopes, r.actorRepo, publisher, log),
		deleteTopicUC:       topicUsecases.NewDeleteTopicUseCase(r.topicRepo, r.topicQueryRepo, scopes, log),
		listConversationsUC: topicUsecases.NewListConversationsUseCase(r.conversationRepo, r.topicQueryRepo, r.readRepo, scopes, log),
		sendConversationUC: topicUsecases.NewSendConversationUseCase(
			r.topicRepo, r.conversationRepo, r.topicQueryRepo, r.readRepo, scopes, r.actorRepo, tx, c.sanitizer, c.files, publisher, log,
		),
		markTopicReadUC: topicUsecases.NewMarkTopicReadUseCase(r.topicQueryRepo, r.readRepo, scopes),
		chatPartnersUC:  topicUsecases.NewChatPartnersUseCase(r.conversationRepo, r.readRepo, r.actorRepo),

		ledger:          ledger,
		listHolidaysUC:  holidayUsecases.NewListHolidaysUseCase(r.holidayRepo, scopes, log),
		getHolidayUC:    holidayUsecases.NewGetHolidayUseCase(r.holidayRepo, scopes),
		createHolidayUC: holidayUsecases.NewCreateHolidayUseCase(r.holidayRepo, scopes, r.actorRepo, publisher, log),
		updateHolidayUC: holidayUsecases.NewUpdateHolidayUseCase(r.holidayRepo, r.holidayRepo, scopes, r.actorRepo, publisher, log),
		deleteHolidayUC: holidayUsecases.NewDeleteHolidayUseCase(r.holidayRepo, r.holidayRepo, scopes, log),
		decideHolidayUC: holidayUsecases.NewDecideHolidayUseCase(
			r.holidayRepo, r.holidayRepo, ledger, scopes, r.actorRepo, tx, notifier, publisher, log,
		),
		cancelHolidayUC: holidayUsecases.NewCancelHolidayUseCase(
			r.holidayRepo, r.holidayRepo, ledger, scopes, r.actorRepo, tx, publisher, log,
		),
		announceHolidayUC: holidayUsecases.NewAnnounceHolidayUseCase(r.holidayRepo, scopes, r.actorRepo, publisher, log),
		daysoffUC:         holidayUsecases.NewDaysoffUseCase(r.daysoffRepo, log),

		sponsorUC:  sponsorUsecases.NewSponsorUseCase(r.sponsorRepo, scopes, log),
		toolUC:     toolUsecases.NewToolUseCase(r.toolRepo, scopes, log),
		shiftUC:    shiftUsecases.NewShiftUseCase(r.shiftRepo, log),
		planningUC: shiftUsecases.NewPlanningUseCase(r.recordRepo, scopes, log),
	}
}
