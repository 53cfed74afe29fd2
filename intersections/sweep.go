package intersections

import (
	"slices"

	"github.com/cenkalti/overlap/geometry"
	"github.com/cenkalti/overlap/internal/bitfield"
	"github.com/cenkalti/overlap/internal/transitions"
)

// Sweep solves by sweeping rectangle edges horizontally and, for every group of rectangles sharing a
// horizontal range, sweeping their edges vertically. Its cost depends on the number of edges and of
// overlap regions rather than on the number of subsets.
type Sweep struct {
	// Thorough validates every transition index after each modification. Slow; for debugging.
	Thorough bool
}

var _ Solver = Sweep{}

// SolveSweep is a shorthand for Sweep{}.Solve.
func SolveSweep(rects []geometry.Rectangle) (Intersections, error) {
	return Sweep{}.Solve(rects)
}

// MustSolveSweep is like SolveSweep but panics if an input rectangle has no area.
func MustSolveSweep(rects []geometry.Rectangle) Intersections {
	return must(SolveSweep(rects))
}

func (s Sweep) Solve(rects []geometry.Rectangle) (Intersections, error) {
	if err := checkInput(rects); err != nil {
		return nil, err
	}
	result := make(Intersections)

	horizontal, err := transitions.Build(geometry.Horizontal, rects)
	if err != nil {
		invariant("horizontal transitions: %s", err)
	}
	open := transitions.New(geometry.Vertical, rects)
	open.Thorough = s.Thorough

	// For each horizontal range,
	forEachRange(horizontal.Steps(), &verticalSet{open}, func(candidates *verticalSet) {
		// for each vertical sub-range of the rectangles spanning it,
		forEachRange(candidates.Steps(), &constituentSet{bitfield.New(len(rects))}, func(c *constituentSet) {
			result.submitExact(rects, &c.BitField)
		})
	})

	if err = horizontal.Validate(); err != nil {
		invariant("horizontal transitions: %s", err)
	}
	return result, nil
}

// rangeSet is the set of rectangles open at the current sweep position.
type rangeSet[S any] interface {
	add(i int)
	remove(i int)
	size() int
	clone() S
}

// forEachRange walks steps in order, keeping the set of open rectangles.
// Whenever rectangles open, it walks forward through the following closing edges and, while at least
// two of the rectangles open at that point remain, calls f with them just before each closing edge.
func forEachRange[S rangeSet[S]](steps []*transitions.Step, open S, f func(S)) {
	for k, step := range steps {
		for _, i := range step.Ending.Items {
			open.remove(i)
		}
		if step.Starting.Len() == 0 {
			continue
		}
		for _, i := range step.Starting.Items {
			open.add(i)
		}

		closing := open.clone()
		for c := k + 1; closing.size() >= 2; c++ {
			if c == len(steps) {
				invariant("%d rectangles still open after the last edge", closing.size())
			}
			if steps[c].Ending.Len() == 0 {
				continue
			}
			f(closing)
			for _, i := range steps[c].Ending.Items {
				closing.remove(i)
			}
		}
	}
	if open.size() != 0 {
		invariant("%d rectangles still open after the last edge", open.size())
	}
}

// verticalSet is the set of horizontally open rectangles, kept as the vertical transitions they
// contribute so that the inner sweep can walk them directly.
type verticalSet struct {
	*transitions.Index
}

func (v *verticalSet) add(i int) {
	if err := v.Insert(i); err != nil {
		invariant("open set: %s", err)
	}
}

func (v *verticalSet) remove(i int) {
	if !v.Tracks(i) {
		return
	}
	if err := v.Erase(i); err != nil {
		invariant("open set: %s", err)
	}
}

func (v *verticalSet) size() int { return v.Len() }

func (v *verticalSet) clone() *verticalSet { return &verticalSet{v.Clone()} }

// constituentSet is the set of rectangles open on both axes.
type constituentSet struct {
	bitfield.BitField
}

func (c *constituentSet) add(i int)    { c.Set(i) }
func (c *constituentSet) remove(i int) { c.Clear(i) }
func (c *constituentSet) size() int    { return c.Count() }

func (c *constituentSet) clone() *constituentSet { return &constituentSet{c.Clone()} }

// submitExact records the overlap of the rectangles in set.
// The sweep reaches each region at a single position, so a repeated region must have identical constituents.
func (m Intersections) submitExact(rects []geometry.Rectangle, set *bitfield.BitField) {
	overlap := geometry.Max
	set.ForEach(func(i int) {
		overlap = overlap.Intersect(rects[i])
	})
	if !overlap.IsPositive() {
		invariant("rectangles %s overlap at %s", set, overlap)
	}
	constituents := set.Positions()
	if found, ok := m[overlap]; ok {
		if !slices.Equal(found, constituents) {
			invariant("region %s reached by %v after %v", overlap, constituents, found)
		}
		return
	}
	m[overlap] = constituents
}
