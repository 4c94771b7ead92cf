package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintSet(t *testing.T) {
	s := NewUintSet(3, 1, 3)
	s.Add(2)
	s.AddAll([]uint{1, 5})

	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Has(5))
	assert.False(t, s.Has(4))
	assert.Equal(t, []uint{1, 2, 3, 5}, s.Sorted())
}

func TestUintSet_Empty(t *testing.T) {
	assert.Empty(t, NewUintSet().Sorted())
}
