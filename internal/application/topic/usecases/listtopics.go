package usecases

import (
	"context"
	"strings"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/mapper"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type ListTopicsQuery struct {
	Caller common.Caller
	Params query.Params
}

// ListTopicsUseCase is the topic side of the query engine. Without paging
// fields the whole visible list is returned.
type ListTopicsUseCase struct {
	queries topic.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewListTopicsUseCase(
	queries topic.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *ListTopicsUseCase {
	return &ListTopicsUseCase{
		queries: queries,
		reads:   reads,
		scopes:  scopes,
		logger:  logger,
	}
}

func (uc *ListTopicsUseCase) Execute(ctx context.Context, q ListTopicsQuery) (*dto.TopicListDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	topics, total, err := uc.queries.List(ctx, scope, q.Params)
	if err != nil {
		uc.logger.Errorw("failed to list topics", "actor_id", q.Caller.ActorID, "error", err)
		return nil, err
	}
	unread, err := unreadByTopics(ctx, uc.reads, q.Caller.ActorID, topics)
	if err != nil {
		return nil, err
	}

	result := &dto.TopicListDTO{
		Items:      dto.ToTopicDTOs(topics, unread),
		TotalCount: total,
		Page:       1,
		PageSize:   len(topics),
	}
	if q.Params.Paginated() {
		result.Page, result.PageSize = q.Params.Page(), q.Params.Size()
	}
	return result, nil
}

type SearchTopicsQuery struct {
	Caller common.Caller
	Text   string
}

// Search returns visible topics with a conversation containing the text.
func (uc *ListTopicsUseCase) Search(ctx context.Context, q SearchTopicsQuery) ([]*dto.TopicDTO, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.NewValidationError("search text is required")
	}
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	topics, err := uc.queries.Search(ctx, scope, text)
	if err != nil {
		return nil, err
	}
	unread, err := unreadByTopics(ctx, uc.reads, q.Caller.ActorID, topics)
	if err != nil {
		return nil, err
	}
	return dto.ToTopicDTOs(topics, unread), nil
}

func unreadByTopics(ctx context.Context, reads readtracker.Repository, readerID uint, topics []*topic.Topic) (map[uint]int64, error) {
	if readerID == 0 || len(topics) == 0 {
		return nil, nil
	}
	return reads.CountUnreadByTopics(ctx, readerID, mapper.MapSlice(topics, (*topic.Topic).ID))
}
