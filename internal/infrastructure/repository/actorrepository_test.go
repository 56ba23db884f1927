package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func TestActorRepository_RoundTrip(t *testing.T) {
	gdb := setupDB(t)
	o := seedOrg(t, gdb)
	ctx := context.Background()
	repo := NewActorRepository(gdb, logger.NewNop())

	got, err := repo.GetByUsername(ctx, "lead")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, o.leader.ID(), got.ID())
	assert.Equal(t, directory.RoleTeamLeader, got.Role())
	assert.Equal(t, []uint{teamTm1}, got.AccessTeam())
	assert.Equal(t, []uint{deptD1}, got.DepartmentIDs())
	assert.Equal(t, directory.ActivityOffline, got.Activity())

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	several, err := repo.GetByIDs(ctx, []uint{o.member.ID(), o.support.ID(), 9999})
	require.NoError(t, err)
	require.Len(t, several, 2)
	assert.True(t, several[1].IsSupport())
}

func TestActorRepository_ActivityAndSolde(t *testing.T) {
	gdb := setupDB(t)
	o := seedOrg(t, gdb)
	ctx := context.Background()
	repo := NewActorRepository(gdb, logger.NewNop())

	require.NoError(t, repo.UpdateActivity(ctx, o.member.ID(), directory.ActivityAway))
	require.NoError(t, repo.UpdateSolde(ctx, o.member.ID(), 12.5))

	got, err := repo.GetByID(ctx, o.member.ID())
	require.NoError(t, err)
	assert.Equal(t, directory.ActivityAway, got.Activity())
	assert.InDelta(t, 12.5, got.Solde(), 0.0001)
}
