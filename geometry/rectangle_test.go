package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRectangle(t *testing.T) {
	r, err := New(1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, r.X())
	assert.Equal(t, 2, r.Y())
	assert.Equal(t, 3, r.W())
	assert.Equal(t, 4, r.H())
	assert.Equal(t, 12, r.Area())
	assert.Equal(t, Interval{1, 4}, r.Interval(Horizontal))
	assert.Equal(t, Interval{2, 6}, r.Interval(Vertical))
	assert.Equal(t, "(1, 2), w=3, h=4", r.String())

	_, err = New(0, math.MaxInt, 1, 1)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Panics(t, func() { MustNew(math.MaxInt, 0, 1, 1) })
}

func TestRectangleIsPositive(t *testing.T) {
	assert.True(t, MustNew(0, 0, 1, 1).IsPositive())
	assert.False(t, MustNew(0, 0, 0, 1).IsPositive())
	assert.False(t, MustNew(0, 0, 1, -1).IsPositive())

	// wider than math.MaxInt
	wide := FromIntervals(Interval{Start: -5, End: math.MaxInt}, Interval{Start: 0, End: 1})
	assert.True(t, wide.IsPositive())
	assert.True(t, Max.IsPositive())
	assert.False(t, FromIntervals(Interval{Start: math.MaxInt, End: math.MinInt}, Interval{Start: 0, End: 1}).IsPositive())
}

func TestRectangleIntersect(t *testing.T) {
	a := MustNew(0, 0, 10, 10)
	b := MustNew(5, 5, 10, 10)
	assert.Equal(t, MustNew(5, 5, 5, 5), a.Intersect(b))
	assert.Equal(t, a.Intersect(b), b.Intersect(a))

	touching := MustNew(10, 10, 10, 10)
	assert.False(t, a.Intersect(touching).IsPositive())

	assert.Equal(t, a, Max.Intersect(a))
	assert.Equal(t, a, a.Intersect(Max))
}

func TestRectangleContains(t *testing.T) {
	outer := MustNew(1, 2, 17, 30)
	inner := MustNew(5, 3, 10, 10)
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.True(t, inner.Contains(inner))
	assert.True(t, Max.Contains(outer))

	assert.True(t, inner.ContainsPoint(5, 3))
	assert.True(t, inner.ContainsPoint(14, 12))
	assert.False(t, inner.ContainsPoint(15, 12))
	assert.False(t, inner.ContainsPoint(14, 13))
}

func TestRectangleLess(t *testing.T) {
	a := MustNew(0, 0, 1, 1)
	b := MustNew(0, 1, 1, 1)
	c := MustNew(1, 0, 1, 1)
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, a.Less(c))
	assert.False(t, a.Less(a))
	assert.False(t, c.Less(a))
}

func TestRectangleHash(t *testing.T) {
	a := MustNew(1, 2, 3, 4)
	assert.Equal(t, a.Hash(), MustNew(1, 2, 3, 4).Hash())
	assert.Equal(t, uint64(1)^uint64(4)<<10^uint64(2)<<20^uint64(6)<<30, a.Hash())
	assert.NotEqual(t, a.Hash(), MustNew(2, 1, 3, 4).Hash())
}

func TestBounds(t *testing.T) {
	assert.Equal(t, Rectangle{}, Bounds(nil))
	rects := []Rectangle{
		MustNew(0, 0, 10, 10),
		MustNew(15, -5, 10, 10),
	}
	assert.Equal(t, MustNew(0, -5, 25, 15), Bounds(rects))
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "horizontal", Horizontal.String())
	assert.Equal(t, "vertical", Vertical.String())
}
