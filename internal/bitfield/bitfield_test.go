package bitfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitField(t *testing.T) {
	v := New(70)
	assert.Equal(t, 70, v.Len())
	assert.Equal(t, 0, v.Count())
	assert.Equal(t, "{}", v.String())

	assert.True(t, v.Set(0))
	assert.True(t, v.Set(69))
	assert.True(t, v.Set(3))
	assert.False(t, v.Set(3))
	assert.Equal(t, 3, v.Count())
	assert.Equal(t, []int{0, 3, 69}, v.Positions())
	assert.Equal(t, "{0 3 69}", v.String())

	assert.True(t, v.Test(69))
	assert.False(t, v.Test(68))

	assert.True(t, v.Clear(0))
	assert.False(t, v.Clear(0))
	assert.Equal(t, []int{3, 69}, v.Positions())

	assert.Panics(t, func() { v.Set(70) })
	assert.Panics(t, func() { v.Test(-1) })
	assert.Panics(t, func() { New(-1) })
}

func TestBitFieldClone(t *testing.T) {
	v := New(10)
	v.Set(1)
	v.Set(2)
	c := v.Clone()
	c.Clear(1)
	assert.Equal(t, []int{1, 2}, v.Positions())
	assert.Equal(t, []int{2}, c.Positions())
}
