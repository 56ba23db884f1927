package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShift(t *testing.T) {
	s, err := NewShift(Spec{Value: " 08h00-16h00 "})
	require.NoError(t, err)
	assert.Equal(t, "08h00-16h00", s.Value())
	assert.Equal(t, DefaultColor, s.Spec().BgColor)
	assert.True(t, s.Removable())

	_, err = NewShift(Spec{Value: "x", BgColor: "red"})
	assert.Error(t, err)
	_, err = NewShift(Spec{})
	assert.Error(t, err)
}

func TestShift_BuiltInCannotBeHidden(t *testing.T) {
	defaults := Defaults()
	require.Len(t, defaults, 5)
	dayOff := defaults[4]
	assert.True(t, dayOff.Spec().Holiday)
	assert.Error(t, dayOff.SetDeleted(true))
	assert.NoError(t, dayOff.SetDeleted(false))

	custom, err := NewShift(Spec{Value: "night"})
	require.NoError(t, err)
	require.NoError(t, custom.SetDeleted(true))
	assert.True(t, custom.Deleted())
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord(3, 1, "2026-03-02", 4)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", rec.Day())
	assert.Equal(t, 4, rec.BoxDay())

	_, err = NewRecord(0, 1, "2026-03-02", 0)
	assert.Error(t, err)
	_, err = NewRecord(3, 1, "2026-02-30", 0)
	assert.Error(t, err)
	_, err = NewRecord(3, 1, "2026-03-02", -1)
	assert.Error(t, err)
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange("2026-03-01", "2026-03-01"))
	assert.Error(t, ValidateRange("2026-03-02", "2026-03-01"))
	assert.Error(t, ValidateRange("2026-03-01", "March"))
}
