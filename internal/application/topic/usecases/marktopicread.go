package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/topic"
)

type MarkTopicReadCommand struct {
	Caller  common.Caller
	TopicID uint
}

type MarkTopicReadResult struct {
	Marked int64 `json:"marked"`
}

type MarkTopicReadUseCase struct {
	queries topic.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
}

func NewMarkTopicReadUseCase(queries topic.QueryRepository, reads readtracker.Repository, scopes *common.ScopeResolver) *MarkTopicReadUseCase {
	return &MarkTopicReadUseCase{queries: queries, reads: reads, scopes: scopes}
}

func (uc *MarkTopicReadUseCase) Execute(ctx context.Context, cmd MarkTopicReadCommand) (*MarkTopicReadResult, error) {
	if err := requireActor(cmd.Caller); err != nil {
		return nil, err
	}
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	t, err := visibleTopic(ctx, uc.queries, scope, cmd.TopicID)
	if err != nil {
		return nil, err
	}
	marked, err := uc.reads.MarkTopicRead(ctx, cmd.Caller.ActorID, t.ID())
	if err != nil {
		return nil, err
	}
	return &MarkTopicReadResult{Marked: marked}, nil
}
