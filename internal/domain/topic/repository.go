package topic

import (
	"context"

	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *Topic) error
	Update(ctx context.Context, topic *Topic) error
	GetByID(ctx context.Context, id uint) (*Topic, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Topic, error)

	// Delete soft-deletes a topic with its conversations and read markers
	Delete(ctx context.Context, id uint) error
}

// Partner is a distinct chat counterpart of an actor.
type Partner struct {
	ActorID uint
	Unread  int64
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation) error
	Update(ctx context.Context, conversation *Conversation) error

	// ListByTopic returns entries oldest first, with read sets loaded
	ListByTopic(ctx context.Context, topicID uint) ([]*Conversation, error)

	// Partners returns the distinct counterparts of actorID's conversations
	Partners(ctx context.Context, actorID uint) ([]uint, error)
}

type QueryRepository interface {
	// List applies scope, filters and sort. Pagination applies only when
	// params asks for it.
	List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*Topic, int64, error)

	// Search returns visible topics with a conversation containing text
	Search(ctx context.Context, scope visibility.Scope, text string) ([]*Topic, error)

	GetVisible(ctx context.Context, scope visibility.Scope, topicID uint) (*Topic, error)
}
