package mapper

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct{ id int }

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{}, MapSlice([]int{}, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapSlicePtrSkipNil(t *testing.T) {
	double := func(r *row) *row {
		if r.id < 0 {
			return nil
		}
		return &row{id: r.id * 2}
	}

	assert.Nil(t, MapSlicePtrSkipNil[row, row](nil, double))

	got := MapSlicePtrSkipNil([]*row{{id: 1}, nil, {id: -1}, {id: 3}}, double)
	assert.Equal(t, []*row{{id: 2}, {id: 6}}, got)
}
