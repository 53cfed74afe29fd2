package intersections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenkalti/overlap/geometry"
	"github.com/cenkalti/overlap/internal/bitfield"
)

func requireInvariantPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic but not found")
		_, ok := r.(*InvariantError)
		require.True(t, ok, "unexpected panic value: %v", r)
	}()
	f()
}

func TestSubmitSubset(t *testing.T) {
	region := rect(0, 0, 1, 1)
	m := make(Intersections)
	constituents := []int{0, 2, 3}
	m.submitSubset(region, constituents)
	constituents[0] = 9
	assert.Equal(t, []int{0, 2, 3}, m[region], "stored constituents must not alias the caller's slice")

	m.submitSubset(region, []int{0, 3})
	m.submitSubset(region, []int{2})
	assert.Equal(t, []int{0, 2, 3}, m[region])

	requireInvariantPanic(t, func() { m.submitSubset(region, []int{0, 2, 3}) })
	requireInvariantPanic(t, func() { m.submitSubset(region, []int{1, 2}) })
}

func TestSubmitExact(t *testing.T) {
	rects := []geometry.Rectangle{rect(0, 0, 2, 2), rect(1, 1, 2, 2), rect(1, 1, 1, 1), rect(5, 5, 1, 1)}
	m := make(Intersections)

	set := bitfield.New(len(rects))
	set.Set(0)
	set.Set(1)
	set.Set(2)
	m.submitExact(rects, &set)
	assert.Equal(t, Intersections{rect(1, 1, 1, 1): {0, 1, 2}}, m)

	// same region, same rectangles
	m.submitExact(rects, &set)
	assert.Len(t, m, 1)

	// rectangles 0 and 1 alone overlap at the same region
	set.Clear(2)
	requireInvariantPanic(t, func() { m.submitExact(rects, &set) })

	disjoint := bitfield.New(len(rects))
	disjoint.Set(0)
	disjoint.Set(3)
	requireInvariantPanic(t, func() { m.submitExact(rects, &disjoint) })
}

func TestIsSubset(t *testing.T) {
	assert.True(t, isSubset(nil, nil))
	assert.True(t, isSubset(nil, []int{1}))
	assert.True(t, isSubset([]int{1, 3}, []int{0, 1, 2, 3}))
	assert.False(t, isSubset([]int{1, 4}, []int{0, 1, 2, 3}))
	assert.False(t, isSubset([]int{1, 1}, []int{1}))
	assert.False(t, isSubset([]int{0}, nil))
}
