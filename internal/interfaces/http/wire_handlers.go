package http

import (
	directoryHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/directory"
	holidayHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/holiday"
	realtimeHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/realtime"
	shiftHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/shift"
	sponsorHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/sponsor"
	ticketHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/ticket"
	toolHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/tool"
	topicHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/topic"
	uploadHandlers "github.com/deskhub/deskhub/internal/interfaces/http/handlers/upload"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	directoryHandler *directoryHandlers.DirectoryHandler
	ticketHandler    *ticketHandlers.TicketHandler
	topicHandler     *topicHandlers.TopicHandler
	holidayHandler   *holidayHandlers.HolidayHandler
	uploadHandler    *uploadHandlers.UploadHandler
	sponsorHandler   *sponsorHandlers.SponsorHandler
	toolHandler      *toolHandlers.ToolHandler
	shiftHandler     *shiftHandlers.ShiftHandler
	hubHandler       *realtimeHandlers.HubHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		directoryHandler: directoryHandlers.NewDirectoryHandler(u.getCurrentActorUC, u.updatePresenceUC, c.hub, log),
		ticketHandler: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			List:     u.listTicketsUC,
			Search:   u.searchTicketsUC,
			Counters: u.ticketCountersUC,
			Get:      u.getTicketUC,
			Create:   u.createTicketUC,
			Update:   u.updateTicketUC,
			Delete:   u.deleteTicketsUC,
			Status:   u.bulkStatusUC,
			Pin:      u.pinTicketUC,
			Forward:  u.forwardTicketUC,
			Messages: u.listMessagesUC,
			Post:     u.postMessageUC,
			MarkRead: u.markTicketReadUC,
		}, log),
		topicHandler: topicHandlers.NewTopicHandler(topicHandlers.UseCases{
			List:          u.listTopicsUC,
			Create:        u.createTopicUC,
			Status:        u.topicStatusUC,
			Delete:        u.deleteTopicUC,
			Conversations: u.listConversationsUC,
			Send:          u.sendConversationUC,
			MarkRead:      u.markTopicReadUC,
			Partners:      u.chatPartnersUC,
		}, log),
		holidayHandler: holidayHandlers.NewHolidayHandler(holidayHandlers.UseCases{
			List:    u.listHolidaysUC,
			Get:     u.getHolidayUC,
			Create:  u.createHolidayUC,
			Update:  u.updateHolidayUC,
			Delete:  u.deleteHolidayUC,
			Decide:  u.decideHolidayUC,
			Cancel:  u.cancelHolidayUC,
			Daysoff: u.daysoffUC,
		}, log),
		uploadHandler:  uploadHandlers.NewUploadHandler(c.files, log),
		sponsorHandler: sponsorHandlers.NewSponsorHandler(u.sponsorUC, log),
		toolHandler:    toolHandlers.NewToolHandler(u.toolUC, log),
		shiftHandler:   shiftHandlers.NewShiftHandler(u.shiftUC, u.planningUC, log),
		hubHandler: realtimeHandlers.NewHubHandler(c.hub, u.scopes, realtimeHandlers.UseCases{
			PostMessage:      u.postMessageUC,
			SendConversation: u.sendConversationUC,
			AnnounceTicket:   u.announceTicketUC,
			AnnounceHoliday:  u.announceHolidayUC,
			Presence:         u.updatePresenceUC,
		}, c.cfg.Realtime.Origins, log),
	}
}
