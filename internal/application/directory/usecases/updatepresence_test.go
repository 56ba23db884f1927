package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type mockActorRepository struct {
	actor              *directory.Actor
	UpdateActivityFunc func(ctx context.Context, id uint, activity directory.Activity) error
}

func (m *mockActorRepository) Create(ctx context.Context, a *directory.Actor) error { return nil }

func (m *mockActorRepository) GetByID(ctx context.Context, id uint) (*directory.Actor, error) {
	if m.actor != nil && m.actor.ID() == id {
		return m.actor, nil
	}
	return nil, nil
}

func (m *mockActorRepository) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error) {
	return nil, nil
}

func (m *mockActorRepository) GetByUsername(ctx context.Context, username string) (*directory.Actor, error) {
	return nil, nil
}

func (m *mockActorRepository) UpdateActivity(ctx context.Context, id uint, activity directory.Activity) error {
	if m.UpdateActivityFunc != nil {
		return m.UpdateActivityFunc(ctx, id, activity)
	}
	return nil
}

func (m *mockActorRepository) UpdateSolde(ctx context.Context, id uint, solde float64) error {
	return nil
}

func actorWith(activity directory.Activity) *directory.Actor {
	a, err := directory.ReconstructActor(4, directory.ActorParams{
		Name:     "dee",
		Username: "dee",
		Role:     directory.RoleTeamLeader,
		UserType: directory.UserTypeSupport,
	}, activity, "active", true, "", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return a
}

func TestUpdatePresenceUseCase_AwayNeedsClickToClear(t *testing.T) {
	var stored []directory.Activity
	repo := &mockActorRepository{
		actor: actorWith(directory.ActivityAway),
		UpdateActivityFunc: func(ctx context.Context, id uint, activity directory.Activity) error {
			stored = append(stored, activity)
			return nil
		},
	}
	uc := NewUpdatePresenceUseCase(repo, logger.NewNop())
	ctx := context.Background()

	result, err := uc.Execute(ctx, UpdatePresenceCommand{ActorID: 4, Signal: directory.PresenceSignal{
		Event: directory.PresenceEventOnline, Activity: directory.ActivityOnline, Type: "ping",
	}})
	require.NoError(t, err)
	assert.Equal(t, directory.ActivityAway, result.Activity)
	assert.False(t, result.Changed)
	assert.Empty(t, stored)

	result, err = uc.Execute(ctx, UpdatePresenceCommand{ActorID: 4, Signal: directory.PresenceSignal{
		Event: directory.PresenceEventOnline, Activity: directory.ActivityOnline, Type: "click",
	}})
	require.NoError(t, err)
	assert.Equal(t, directory.ActivityOnline, result.Activity)
	assert.True(t, result.Changed)
	assert.Equal(t, []directory.Activity{directory.ActivityOnline}, stored)
}

func TestUpdatePresenceUseCase_UnknownActor(t *testing.T) {
	uc := NewUpdatePresenceUseCase(&mockActorRepository{}, logger.NewNop())
	_, err := uc.Execute(context.Background(), UpdatePresenceCommand{ActorID: 9})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetCurrentActorUseCase(t *testing.T) {
	uc := NewGetCurrentActorUseCase(&mockActorRepository{actor: actorWith(directory.ActivityOnline)})

	got, err := uc.Execute(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "SUPPORT", got.UserType)
	assert.Equal(t, []uint{}, got.DepartmentIDs)

	_, err = uc.Execute(context.Background(), 0)
	assert.True(t, errors.IsForbiddenError(err))
}
