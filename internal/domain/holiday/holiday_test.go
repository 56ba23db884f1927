package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDaysoff(t *testing.T, name, date string) *Daysoff {
	t.Helper()
	d, err := NewDaysoff(name, date)
	require.NoError(t, err)
	return d
}

func TestWorkingDays(t *testing.T) {
	day := func(s string) time.Time {
		v, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name    string
		from    string
		to      string
		daysoff []*Daysoff
		want    int
	}{
		{
			name:    "five days with a saturday and a public holiday",
			from:    "2026-03-03",
			to:      "2026-03-07",
			daysoff: []*Daysoff{mustDaysoff(t, "Founders day", "2026-03-05")},
			want:    3,
		},
		{
			name: "single weekday",
			from: "2026-03-04",
			to:   "2026-03-04",
			want: 1,
		},
		{
			name:    "day off on a weekend is not subtracted twice",
			from:    "2026-03-02",
			to:      "2026-03-08",
			daysoff: []*Daysoff{mustDaysoff(t, "Sunday fest", "2026-03-08")},
			want:    5,
		},
		{
			name:    "day off in another year does not apply",
			from:    "2026-03-02",
			to:      "2026-03-06",
			daysoff: []*Daysoff{mustDaysoff(t, "Old", "2025-03-04")},
			want:    5,
		},
		{
			name: "weekend only",
			from: "2026-03-07",
			to:   "2026-03-08",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingDays(day(tt.from), day(tt.to), tt.daysoff))
		})
	}
}

func TestNewHoliday_Flags(t *testing.T) {
	h, err := NewHoliday(1, "2026-03-03", "2026-03-07", "", nil, StatusApprove, false)
	require.NoError(t, err)
	assert.True(t, h.Flags().IsOkByChef)
	assert.True(t, h.Flags().IsOkByHr)
	assert.True(t, h.IsApproved())

	h, err = NewHoliday(1, "2026-03-03", "2026-03-07", "", nil, "", true)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, h.Status())
	assert.True(t, h.Flags().IsOkByChef)
	assert.False(t, h.Flags().IsOkByHr)

	_, err = NewHoliday(1, "2026-03-07", "2026-03-03", "", nil, "", false)
	assert.Error(t, err)
	_, err = NewHoliday(1, "03/03/2026", "2026-03-07", "", nil, "", false)
	assert.Error(t, err)
}

func TestHoliday_Decide(t *testing.T) {
	h, err := NewHoliday(1, "2026-03-03", "2026-03-07", "", nil, "", false)
	require.NoError(t, err)

	assert.False(t, h.Decide(Decision{IsOkByChef: true}))
	assert.Equal(t, StatusOpen, h.Status())

	assert.False(t, h.Decide(Decision{IsOkByChef: true, IsRejectByHr: true}))
	assert.Equal(t, StatusReject, h.Status())

	assert.True(t, h.Decide(Decision{IsOkByChef: true, IsOkByHr: true}))
	assert.Equal(t, StatusApprove, h.Status())
}

func TestHoliday_Cancel(t *testing.T) {
	h, err := NewHoliday(1, "2026-03-03", "2026-03-07", "", nil, StatusApprove, true)
	require.NoError(t, err)

	prev, err := h.Cancel()
	require.NoError(t, err)
	assert.Equal(t, StatusApprove, prev)
	assert.Equal(t, StatusCancel, h.Status())

	h.ResetAfterCancel(true)
	assert.True(t, h.Flags().IsOkByChef)
	assert.False(t, h.Flags().IsOkByHr)

	_, err = h.Cancel()
	assert.Error(t, err)
}
