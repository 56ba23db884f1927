package events

import "fmt"

// Events sent by clients.
const (
	ClientCreateMessage         = "createMessage"
	ClientSendMessage           = "send:message"
	ClientCreateTicket          = "createTicket"
	ClientForwardTicket         = "forwardTicket"
	ClientUpdatedTicket         = "updatedTicket"
	ClientBulkUpdatedTicket     = "bulkUpdatedTicket"
	ClientRequestCreated        = "requestCreated"
	ClientRequestCreatedProd    = "requestCreatedProd"
	ClientRequestCreatedTech    = "requestCreatedTech"
	ClientUserOnline            = "user-online"
	ClientUserAway              = "user-away"
	ClientComplainCreatedByUser = "complainCreatedByUser"
	ClientComplainAdminsSeen    = "complainAdminsSeen"
)

// Events sent by the server.
const (
	TicketMessageSent     = "ticket:message:sent"
	ReceivedMessage       = "received:message"
	ReceivedMessageTopics = "received:message:topics"
	MessageSent           = "message:sent"
	TicketCreated         = "ticket-created"
	TicketForwarded       = "ticket-forwarded"
	TicketsUpdated        = "tickets-updated"
	HolidayCreated        = "holiday-created"
	HolidayCreatedProd    = "holiday-created-prod"
	HolidayCreatedTech    = "holiday-created-tech"
	HolidayUpdated        = "holiday-updated"
	ComplainCreated       = "complainCreated"
)

func MessageCreated(ticketID uint) string {
	return fmt.Sprintf("messageCreated-%d", ticketID)
}

func MessageConv(ticketID uint) string {
	return fmt.Sprintf("messageConv-%d", ticketID)
}

func TicketUpdated(ticketID uint) string {
	return fmt.Sprintf("ticket-updated-%d", ticketID)
}

func TopicUpdated(topicID uint) string {
	return fmt.Sprintf("topic-updated-%d", topicID)
}

// ComplainSeen names the acknowledgement for one side ("prod" or "tech").
func ComplainSeen(side string, userID, complaintID uint) string {
	return fmt.Sprintf("complainSeen-%s-%d-%d", side, userID, complaintID)
}

// HolidayCreatedFor picks the holiday-created variant for a client event.
func HolidayCreatedFor(clientEvent string) (string, bool) {
	switch clientEvent {
	case ClientRequestCreated:
		return HolidayCreated, true
	case ClientRequestCreatedProd:
		return HolidayCreatedProd, true
	case ClientRequestCreatedTech:
		return HolidayCreatedTech, true
	}
	return "", false
}
