package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/tool"
)

func TestToolRepository_ListActiveByEntity(t *testing.T) {
	gdb := setupDB(t)
	repo := NewToolRepository(gdb)
	ctx := context.Background()

	mk := func(key string, entityID *uint, active bool) *tool.Tool {
		tl, err := tool.NewTool(tool.Spec{Tool: key, Name: key, Server: "10.0.0.1", Port: 8080, EntityID: entityID, Active: active})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tl))
		return tl
	}
	north := mk("spf", uintPtr(entityE1), true)
	shared := mk("office", nil, true)
	mk("south", uintPtr(entityE2), true)
	dormant := mk("dormant", uintPtr(entityE1), false)

	got, err := repo.ListActive(ctx, []uint{entityE1})
	require.NoError(t, err)
	ids := make([]uint, 0, len(got))
	for _, tl := range got {
		ids = append(ids, tl.ID())
	}
	assert.ElementsMatch(t, []uint{north.ID(), shared.ID()}, ids)

	all, err := repo.ListActive(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dormant.Deploy("starting")
	dormant.Deployed("up")
	require.NoError(t, repo.Update(ctx, dormant))
	reloaded, err := repo.GetByID(ctx, dormant.ID())
	require.NoError(t, err)
	assert.True(t, reloaded.Active())
	assert.False(t, reloaded.Deploying())
	assert.Equal(t, "starting\nup", reloaded.Logs())

	n, err := repo.DeleteMany(ctx, []uint{north.ID(), dormant.ID()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	gone, err := repo.GetByID(ctx, north.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}
