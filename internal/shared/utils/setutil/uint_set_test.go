package setutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintSet_Intersects(t *testing.T) {
	tests := []struct {
		name string
		set  []uint
		ids  []uint
		want bool
	}{
		{"shared element", []uint{1, 2}, []uint{2, 5}, true},
		{"disjoint", []uint{1, 2}, []uint{3, 4}, false},
		{"empty lookup", []uint{1}, nil, false},
		{"empty set", nil, []uint{1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewUintSet(tt.set...).Intersects(tt.ids))
		})
	}
}

func TestUintSet_AddAndSlice(t *testing.T) {
	s := NewUintSet()
	s.Add(3)
	s.AddAll([]uint{1, 3, 2})

	got := s.ToSlice()
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	assert.Equal(t, []uint{1, 2, 3}, got)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(9))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, Dedupe([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, Dedupe(nil))
}
