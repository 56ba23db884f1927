package repository

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/biztime"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/errors"
)

const (
	markMessagesSQL = `INSERT INTO message_reads (message_id, user_id, read_at)
SELECT messages.id, ?, ? FROM messages
WHERE messages.ticket_id = ? AND messages.deleted_at IS NULL
AND NOT EXISTS (SELECT 1 FROM message_reads r WHERE r.message_id = messages.id AND r.user_id = ?)`

	markConversationsSQL = `INSERT INTO conversation_reads (conversation_id, user_id, read_at)
SELECT conversations.id, ?, ? FROM conversations
WHERE conversations.topic_id = ? AND conversations.deleted_at IS NULL
AND NOT EXISTS (SELECT 1 FROM conversation_reads r WHERE r.conversation_id = conversations.id AND r.user_id = ?)`

	markConversationSQL = `INSERT INTO conversation_reads (conversation_id, user_id, read_at)
SELECT conversations.id, ?, ? FROM conversations
WHERE conversations.id = ? AND conversations.deleted_at IS NULL
AND NOT EXISTS (SELECT 1 FROM conversation_reads r WHERE r.conversation_id = conversations.id AND r.user_id = ?)`

	messageUnreadSQL      = "NOT EXISTS (SELECT 1 FROM message_reads r WHERE r.message_id = messages.id AND r.user_id = ?)"
	conversationUnreadSQL = "NOT EXISTS (SELECT 1 FROM conversation_reads r WHERE r.conversation_id = conversations.id AND r.user_id = ?)"
)

// ReadRepository keeps read markers in message_reads and conversation_reads.
// Each mark is a single INSERT ... SELECT guarded by NOT EXISTS. Two
// concurrent marks by the same actor can both pass NOT EXISTS under READ
// COMMITTED; the conflict clause on the unique pair index absorbs the loser.
type ReadRepository struct {
	db                *gorm.DB
	markMessages      string
	markConversations string
	markConversation  string
}

func NewReadRepository(gdb *gorm.DB) *ReadRepository {
	dialect := gdb.Dialector.Name()
	return &ReadRepository{
		db:                gdb,
		markMessages:      withConflictGuard(dialect, markMessagesSQL),
		markConversations: withConflictGuard(dialect, markConversationsSQL),
		markConversation:  withConflictGuard(dialect, markConversationSQL),
	}
}

// withConflictGuard makes an INSERT ... SELECT skip rows that already exist
// in the read table. read_at is only present on the read table, so the MySQL no-op update is
// unambiguous against the joined source.
func withConflictGuard(dialect, stmt string) string {
	switch dialect {
	case "mysql":
		return stmt + "\nON DUPLICATE KEY UPDATE read_at = read_at"
	case "postgres", "sqlite":
		return stmt + "\nON CONFLICT DO NOTHING"
	default:
		return stmt
	}
}

// markedRows turns a duplicate-key failure into "nothing new marked".
func markedRows(tx *gorm.DB) (int64, error) {
	if tx.Error != nil {
		if errors.IsDuplicateError(tx.Error) {
			return 0, nil
		}
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *ReadRepository) MarkTicketRead(ctx context.Context, actorID, ticketID uint) (int64, error) {
	n, err := markedRows(db.GetTxFromContext(ctx, r.db).Exec(r.markMessages, actorID, biztime.NowUTC(), ticketID, actorID))
	if err != nil {
		return 0, fmt.Errorf("failed to mark ticket read: %w", err)
	}
	return n, nil
}

func (r *ReadRepository) MarkTopicRead(ctx context.Context, actorID, topicID uint) (int64, error) {
	n, err := markedRows(db.GetTxFromContext(ctx, r.db).Exec(r.markConversations, actorID, biztime.NowUTC(), topicID, actorID))
	if err != nil {
		return 0, fmt.Errorf("failed to mark topic read: %w", err)
	}
	return n, nil
}

func (r *ReadRepository) MarkConversationRead(ctx context.Context, actorID, conversationID uint) error {
	if _, err := markedRows(db.GetTxFromContext(ctx, r.db).Exec(r.markConversation, actorID, biztime.NowUTC(), conversationID, actorID)); err != nil {
		return fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return nil
}

func (r *ReadRepository) CountTicketUnread(ctx context.Context, actorID, ticketID uint) (int64, error) {
	var n int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MessageModel{}).
		Where("messages.ticket_id = ?", ticketID).
		Where(messageUnreadSQL, actorID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

func (r *ReadRepository) CountTopicUnread(ctx context.Context, actorID, topicID uint) (int64, error) {
	var n int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConversationModel{}).
		Where("conversations.topic_id = ?", topicID).
		Where(conversationUnreadSQL, actorID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread conversations: %w", err)
	}
	return n, nil
}

type containerCount struct {
	ContainerID uint
	Unread      int64
}

func (r *ReadRepository) CountUnreadByTickets(ctx context.Context, actorID uint, ticketIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return out, nil
	}
	var rows []containerCount
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MessageModel{}).
		Select("messages.ticket_id AS container_id, COUNT(*) AS unread").
		Where("messages.ticket_id IN ?", ticketIDs).
		Where(messageUnreadSQL, actorID).
		Group("messages.ticket_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages by ticket: %w", err)
	}
	for _, row := range rows {
		out[row.ContainerID] = row.Unread
	}
	return out, nil
}

func (r *ReadRepository) CountUnreadByTopics(ctx context.Context, actorID uint, topicIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(topicIDs))
	if len(topicIDs) == 0 {
		return out, nil
	}
	var rows []containerCount
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConversationModel{}).
		Select("conversations.topic_id AS container_id, COUNT(*) AS unread").
		Where("conversations.topic_id IN ?", topicIDs).
		Where(conversationUnreadSQL, actorID).
		Group("conversations.topic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unread conversations by topic: %w", err)
	}
	for _, row := range rows {
		out[row.ContainerID] = row.Unread
	}
	return out, nil
}

// CountUnreadForScope runs the ticket and topic aggregates concurrently.
func (r *ReadRepository) CountUnreadForScope(ctx context.Context, scope visibility.Scope) (readtracker.Summary, error) {
	var summary readtracker.Summary
	base := db.GetTxFromContext(ctx, r.db)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tickets := base.WithContext(gctx).
			Session(&gorm.Session{NewDB: true}).
			Model(&models.TicketModel{}).
			Select("tickets.id").
			Where("tickets.archived = ?", false).
			Scopes(ticketScope(scope))

		return base.WithContext(gctx).
			Session(&gorm.Session{NewDB: true}).
			Model(&models.MessageModel{}).
			Where("messages.ticket_id IN (?)", tickets).
			Where(messageUnreadSQL, scope.ActorID).
			Count(&summary.Tickets).Error
	})
	g.Go(func() error {
		topics := base.WithContext(gctx).
			Session(&gorm.Session{NewDB: true}).
			Model(&models.TopicModel{}).
			Select("topics.id").
			Scopes(topicScope(scope))

		return base.WithContext(gctx).
			Session(&gorm.Session{NewDB: true}).
			Model(&models.ConversationModel{}).
			Where("conversations.topic_id IN (?)", topics).
			Where(conversationUnreadSQL, scope.ActorID).
			Count(&summary.Topics).Error
	})
	if err := g.Wait(); err != nil {
		return readtracker.Summary{}, fmt.Errorf("failed to count unread for actor: %w", err)
	}

	summary.Total = summary.Tickets + summary.Topics
	return summary, nil
}

func (r *ReadRepository) CountUnreadFromPartner(ctx context.Context, me, partnerID uint) (int64, error) {
	var n int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConversationModel{}).
		Where("conversations.from_id = ? AND conversations.to_id = ?", partnerID, me).
		Where(conversationUnreadSQL, me).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread from partner: %w", err)
	}
	return n, nil
}

func (r *ReadRepository) CountUnreadAddressedTo(ctx context.Context, me uint) (int64, error) {
	var n int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConversationModel{}).
		Where("conversations.to_id = ?", me).
		Where(conversationUnreadSQL, me).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread conversations: %w", err)
	}
	return n, nil
}
