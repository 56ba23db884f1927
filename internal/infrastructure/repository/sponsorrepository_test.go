package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
)

func seedEntities(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&[]models.EntityModel{
		{ID: entityE1, Name: "North", CreatedAt: base},
		{ID: entityE2, Name: "South", CreatedAt: base.Add(time.Hour)},
	}).Error)
}

func createSponsor(t *testing.T, gdb *gorm.DB, name string, entityIDs ...uint) *sponsor.Sponsor {
	t.Helper()
	s, err := sponsor.NewSponsor(name, sponsor.Login{
		LoginLink:        "https://" + name + ".example.com/login",
		LoginSelector:    "#u",
		PasswordSelector: "#p",
		SubmitSelector:   "#go",
		Username:         "desk",
		Password:         "pw",
		RestrictedPages:  []string{"/billing"},
	}, entityIDs)
	require.NoError(t, err)
	require.NoError(t, NewSponsorRepository(gdb).Create(context.Background(), s))
	return s
}

func TestSponsorRepository_RoundTripKeepsEntitiesAndLogin(t *testing.T) {
	gdb := setupDB(t)
	seedEntities(t, gdb)
	repo := NewSponsorRepository(gdb)
	ctx := context.Background()

	s := createSponsor(t, gdb, "acme", entityE2, entityE1)

	got, err := repo.GetByID(ctx, s.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []uint{entityE1, entityE2}, got.EntityIDs())
	assert.Equal(t, []string{"/billing"}, got.Login().RestrictedPages)
	assert.Equal(t, "pw", got.Login().Password)

	require.NoError(t, got.Edit("acme2", got.Login(), []uint{entityE2}))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "acme2", got.Name())
	assert.Equal(t, []uint{entityE2}, got.EntityIDs())

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSponsorRepository_GroupByEntityHidesInactive(t *testing.T) {
	gdb := setupDB(t)
	seedEntities(t, gdb)
	repo := NewSponsorRepository(gdb)
	ctx := context.Background()

	shared := createSponsor(t, gdb, "shared", entityE1, entityE2)
	northOnly := createSponsor(t, gdb, "north", entityE1)
	retired := createSponsor(t, gdb, "retired", entityE1)

	n, err := repo.UpdateStatus(ctx, []uint{retired.ID()}, sponsor.StatusInactive)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	groups, err := repo.GroupByEntity(ctx, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "South", groups[0].EntityName)
	assert.Equal(t, "North", groups[1].EntityName)

	names := func(list []*sponsor.Sponsor) []string {
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, s.Name())
		}
		return out
	}
	assert.ElementsMatch(t, []string{"shared"}, names(groups[0].Sponsors))
	assert.ElementsMatch(t, []string{"shared", "north"}, names(groups[1].Sponsors))

	groups, err = repo.GroupByEntity(ctx, []uint{entityE2})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, entityE2, groups[0].EntityID)

	active, err := repo.ListActiveByEntities(ctx, []uint{entityE1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"shared", "north"}, names(active))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	deleted, err := repo.DeleteMany(ctx, []uint{shared.ID(), northOnly.ID()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	groups, err = repo.GroupByEntity(ctx, nil)
	require.NoError(t, err)
	for _, g := range groups {
		assert.Empty(t, g.Sponsors)
	}
}
