package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type actorFinder map[uint]*directory.Actor

func (f actorFinder) GetByID(ctx context.Context, id uint) (*directory.Actor, error) {
	return f[id], nil
}

func (f actorFinder) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error) {
	return nil, nil
}

func agent(id uint, entityID *uint) *directory.Actor {
	a, err := directory.ReconstructActor(id, directory.ActorParams{
		Username: fmt.Sprintf("agent%d", id),
		Role:     directory.RoleTeamMember,
		UserType: directory.UserTypeProd,
		EntityID: entityID,
	}, directory.ActivityOnline, "active", true, "", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return a
}

func uintPtr(v uint) *uint { return &v }

type stubTools struct {
	tool.Repository
	byID    map[uint]*tool.Tool
	filter  []uint
	updated *tool.Tool
}

func (s *stubTools) GetByID(ctx context.Context, id uint) (*tool.Tool, error) {
	return s.byID[id], nil
}

func (s *stubTools) ListActive(ctx context.Context, entityIDs []uint) ([]*tool.Tool, error) {
	s.filter = entityIDs
	return nil, nil
}

func (s *stubTools) Update(ctx context.Context, t *tool.Tool) error {
	s.updated = t
	return nil
}

func newToolUseCase(repo *stubTools, actors ...*directory.Actor) *ToolUseCase {
	finder := actorFinder{}
	for _, a := range actors {
		finder[a.ID()] = a
	}
	return NewToolUseCase(repo, common.NewScopeResolver(finder), logger.NewNop())
}

func TestToolUseCase_EntityGate(t *testing.T) {
	south := tool.ReconstructTool(4, tool.Spec{Tool: "spf", Name: "SPF", Server: "s", Port: 1, EntityID: uintPtr(2), Active: true}, false, "", time.Now(), time.Now())
	shared := tool.ReconstructTool(5, tool.Spec{Tool: "office", Name: "Office", Server: "s", Port: 1, Active: true}, false, "", time.Now(), time.Now())
	repo := &stubTools{byID: map[uint]*tool.Tool{4: south, 5: shared}}
	uc := newToolUseCase(repo, agent(1, uintPtr(1)), agent(2, nil))
	ctx := context.Background()

	_, err := uc.Get(ctx, common.Caller{ActorID: 1}, 4)
	assert.True(t, errors.IsNotFoundError(err))
	got, err := uc.Get(ctx, common.Caller{ActorID: 1}, 5)
	require.NoError(t, err)
	assert.Equal(t, "office", got.Tool)

	_, err = uc.ListByEntity(ctx, common.Caller{ActorID: 1}, 2)
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.List(ctx, common.Caller{ActorID: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, repo.filter)

	// no entity at all still gets shared tools
	_, err = uc.List(ctx, common.Caller{ActorID: 2})
	require.NoError(t, err)
	assert.NotNil(t, repo.filter)
	assert.Empty(t, repo.filter)

	_, err = uc.List(ctx, common.Caller{ActorID: 9, Admin: true})
	require.NoError(t, err)
	assert.Nil(t, repo.filter)
}

func TestToolUseCase_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	existing := tool.ReconstructTool(4, tool.Spec{Tool: "spf", Name: "SPF", Server: "s", Port: 1, Password: "old"}, false, "", time.Now(), time.Now())
	repo := &stubTools{byID: map[uint]*tool.Tool{4: existing}}
	uc := newToolUseCase(repo)

	_, err := uc.Update(context.Background(), 4, tool.Spec{Tool: "spf", Name: "SPF v2", Server: "s", Port: 2})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "old", repo.updated.Spec().Password)
	assert.Equal(t, "SPF v2", repo.updated.Spec().Name)

	_, err = uc.Update(context.Background(), 4, tool.Spec{Tool: "spf", Name: "SPF", Server: "s", Port: 0})
	assert.True(t, errors.IsValidationError(err))
}
