package holiday

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/application/holiday/usecases"
	"github.com/deskhub/deskhub/internal/interfaces/http/handlers/testutil"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type mockDecider struct {
	got *usecases.DecideHolidayCommand
}

func (m *mockDecider) Execute(ctx context.Context, cmd usecases.DecideHolidayCommand) (*dto.HolidayDTO, error) {
	m.got = &cmd
	return &dto.HolidayDTO{ID: cmd.HolidayID, Status: "Approve", IsOkByHr: true, IsOkByChef: true}, nil
}

type mockCreator struct {
	got *usecases.CreateHolidayCommand
}

func (m *mockCreator) Execute(ctx context.Context, cmd usecases.CreateHolidayCommand) (*dto.HolidayDTO, error) {
	m.got = &cmd
	return &dto.HolidayDTO{ID: 1, From: cmd.From, To: cmd.To}, nil
}

type mockCanceller struct{}

func (mockCanceller) Execute(ctx context.Context, cmd usecases.CancelHolidayCommand) (*dto.HolidayDTO, error) {
	return nil, errors.NewValidationError("holiday is already cancelled")
}

type mockDaysoff struct {
	deleted []uint
}

func (m *mockDaysoff) List(ctx context.Context) ([]*dto.DaysoffDTO, error) {
	return []*dto.DaysoffDTO{{ID: 1, Name: "labour day", Date: "2026-05-01"}}, nil
}

func (m *mockDaysoff) Create(ctx context.Context, cmd usecases.DaysoffCommand) (*dto.DaysoffDTO, error) {
	return &dto.DaysoffDTO{ID: 2, Name: cmd.Name, Date: cmd.Date}, nil
}

func (m *mockDaysoff) Update(ctx context.Context, id uint, cmd usecases.DaysoffCommand) (*dto.DaysoffDTO, error) {
	return nil, errors.NewNotFoundError("day off not found")
}

func (m *mockDaysoff) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestDecide(t *testing.T) {
	decider := &mockDecider{}
	h := NewHolidayHandler(UseCases{Decide: decider}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/holidays/7/decision", map[string]any{"isOkByHr": true, "isOkByChef": true})
	testutil.SetAuthContext(c, 3, "ChefEntity")
	testutil.SetURLParam(c, "id", "7")
	h.Decide(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, decider.got)
	assert.Equal(t, uint(7), decider.got.HolidayID)
	assert.True(t, decider.got.Decision.IsOkByHr)
	assert.True(t, decider.got.Decision.IsOkByChef)
	assert.False(t, decider.got.Decision.IsRejectByHr)
}

func TestCreateHoliday_ValidatesDates(t *testing.T) {
	creator := &mockCreator{}
	h := NewHolidayHandler(UseCases{Create: creator}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/holidays", map[string]any{"from": "2026-05-04", "to": "2026-05-06"})
	testutil.SetAuthContext(c, 3, "TeamMember")
	h.CreateHoliday(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(0), creator.got.UserID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/holidays", map[string]any{"from": "04/05/2026", "to": "2026-05-06"})
	testutil.SetAuthContext(c, 3, "TeamMember")
	h.CreateHoliday(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	h := NewHolidayHandler(UseCases{Cancel: mockCanceller{}}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/holidays/7/cancel", nil)
	testutil.SetAuthContext(c, 3, "TeamMember")
	testutil.SetURLParam(c, "id", "7")
	h.Cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDaysoff(t *testing.T) {
	days := &mockDaysoff{}
	h := NewHolidayHandler(UseCases{Daysoff: days}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/daysoff", nil)
	h.ListDaysoff(c)
	assert.Contains(t, w.Body.String(), `"date":"2026-05-01"`)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/daysoff", map[string]any{"name": "x", "date": "2026-13-01"})
	h.CreateDaysoff(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testutil.NewTestContext(http.MethodPut, "/api/daysoff/9", map[string]any{"name": "x", "date": "2026-12-01"})
	testutil.SetURLParam(c, "id", "9")
	h.UpdateDaysoff(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, _ = testutil.NewTestContext(http.MethodDelete, "/api/daysoff/9", nil)
	testutil.SetURLParam(c, "id", "9")
	h.DeleteDaysoff(c)
	assert.Equal(t, []uint{9}, days.deleted)
}
