// Package readtracker records which actors have retrieved ticket messages
// and topic conversations. Markers are append-only; nothing removes them.
package readtracker

import (
	"context"

	"github.com/deskhub/deskhub/internal/domain/visibility"
)

// Summary aggregates unread entries over everything an actor can see.
type Summary struct {
	Tickets int64 `json:"tickets"`
	Topics  int64 `json:"topics"`
	Total   int64 `json:"total"`
}

type Repository interface {
	// MarkTicketRead marks every message of the ticket as read by actorID
	// in one statement. Returns the number of markers added.
	MarkTicketRead(ctx context.Context, actorID, ticketID uint) (int64, error)

	// MarkTopicRead does the same for the conversations of a topic
	MarkTopicRead(ctx context.Context, actorID, topicID uint) (int64, error)

	// MarkConversationRead marks a single conversation entry
	MarkConversationRead(ctx context.Context, actorID, conversationID uint) error

	CountTicketUnread(ctx context.Context, actorID, ticketID uint) (int64, error)
	CountTopicUnread(ctx context.Context, actorID, topicID uint) (int64, error)

	// CountUnreadByTickets returns unread counts keyed by ticket; tickets
	// with nothing unread are absent
	CountUnreadByTickets(ctx context.Context, actorID uint, ticketIDs []uint) (map[uint]int64, error)
	CountUnreadByTopics(ctx context.Context, actorID uint, topicIDs []uint) (map[uint]int64, error)

	// CountUnreadForScope sums unread entries over the non-archived tickets
	// and the topics visible to scope
	CountUnreadForScope(ctx context.Context, scope visibility.Scope) (Summary, error)

	// CountUnreadFromPartner counts conversations partnerID sent to me that I have not read
	CountUnreadFromPartner(ctx context.Context, me, partnerID uint) (int64, error)

	// CountUnreadAddressedTo counts all unread conversations addressed to me
	CountUnreadAddressedTo(ctx context.Context, me uint) (int64, error)
}
