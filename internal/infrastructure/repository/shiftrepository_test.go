package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/shift"
)

func TestShiftRepository_SeedDefaultsOnce(t *testing.T) {
	gdb := setupDB(t)
	repo := NewShiftRepository(gdb)
	ctx := context.Background()

	n, err := repo.SeedDefaults(ctx, shift.Defaults())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = repo.SeedDefaults(ctx, shift.Defaults())
	require.NoError(t, err)
	assert.Zero(t, n)

	custom, err := shift.NewShift(shift.Spec{Value: "night", BgColor: "#000000"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, custom))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 6)
	assert.False(t, list[0].Removable())
	assert.Equal(t, "night", list[5].Value())
	assert.True(t, list[5].Removable())

	require.NoError(t, repo.SetDeleted(ctx, custom.ID(), true))
	got, err := repo.GetByID(ctx, custom.ID())
	require.NoError(t, err)
	assert.True(t, got.Deleted())
}
