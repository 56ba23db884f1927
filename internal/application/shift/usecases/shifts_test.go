package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type stubShifts struct {
	shift.Repository
	rows    []*shift.Shift
	created *shift.Shift
	toggled map[uint]bool
	seeded  int
}

func (s *stubShifts) List(ctx context.Context) ([]*shift.Shift, error) {
	return append([]*shift.Shift(nil), s.rows...), nil
}

func (s *stubShifts) GetByID(ctx context.Context, id uint) (*shift.Shift, error) {
	for _, r := range s.rows {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubShifts) Create(ctx context.Context, sh *shift.Shift) error {
	s.created = sh
	return sh.SetID(uint(len(s.rows) + 1))
}

func (s *stubShifts) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	if s.toggled == nil {
		s.toggled = map[uint]bool{}
	}
	s.toggled[id] = deleted
	return nil
}

func (s *stubShifts) SeedDefaults(ctx context.Context, defaults []*shift.Shift) (int, error) {
	s.seeded = len(defaults)
	return len(defaults), nil
}

func catalogue() []*shift.Shift {
	now := time.Now()
	return []*shift.Shift{
		shift.ReconstructShift(1, shift.Spec{Value: "09h00-19h00", BgColor: "#3ea8ea"}, false, false, now),
		shift.ReconstructShift(2, shift.Spec{Value: "07h00-15h00", BgColor: "#112233"}, true, true, now),
	}
}

func TestShiftUseCase_ListHidesDeleted(t *testing.T) {
	uc := NewShiftUseCase(&stubShifts{rows: catalogue()}, logger.NewNop())

	visible, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "09h00-19h00", visible[0].Value)

	all, err := uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestShiftUseCase_CreateOwnedByCaller(t *testing.T) {
	repo := &stubShifts{}
	uc := NewShiftUseCase(repo, logger.NewNop())

	got, err := uc.Create(context.Background(), common.Caller{ActorID: 7}, shift.Spec{Value: " 06h00-14h00 "})
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, uint(7), *got.User)
	assert.Equal(t, "06h00-14h00", got.Value)
	assert.Equal(t, shift.DefaultColor, got.BgColor)
	assert.True(t, got.Removable)

	_, err = uc.Create(context.Background(), common.Caller{ActorID: 7}, shift.Spec{Value: "x", BgColor: "red"})
	assert.True(t, errors.IsValidationError(err))
}

func TestShiftUseCase_SetDeletedRefusesBuiltIns(t *testing.T) {
	repo := &stubShifts{rows: catalogue()}
	uc := NewShiftUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.SetDeleted(ctx, 1, true)
	assert.True(t, errors.IsValidationError(err))
	assert.NotContains(t, repo.toggled, uint(1))

	got, err := uc.SetDeleted(ctx, 2, false)
	require.NoError(t, err)
	assert.False(t, got.Deleted)
	assert.Equal(t, false, repo.toggled[2])

	_, err = uc.SetDeleted(ctx, 9, true)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestShiftUseCase_SeedDefaults(t *testing.T) {
	repo := &stubShifts{}
	n, err := NewShiftUseCase(repo, logger.NewNop()).SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, repo.seeded)
}
