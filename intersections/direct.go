package intersections

import (
	"slices"

	"github.com/cenkalti/overlap/geometry"
)

// Direct solves by enumerating every subset of the input whose overlap has positive area.
// It takes O(2^n·n) time in the worst case.
type Direct struct{}

var _ Solver = Direct{}

// SolveDirect is a shorthand for Direct{}.Solve.
func SolveDirect(rects []geometry.Rectangle) (Intersections, error) {
	return Direct{}.Solve(rects)
}

// MustSolveDirect is like SolveDirect but panics if an input rectangle has no area.
func MustSolveDirect(rects []geometry.Rectangle) Intersections {
	return must(SolveDirect(rects))
}

func (Direct) Solve(rects []geometry.Rectangle) (Intersections, error) {
	if err := checkInput(rects); err != nil {
		return nil, err
	}
	d := direct{
		rects:  rects,
		result: make(Intersections),
	}
	d.recurse(0, geometry.Max)
	return d.result, nil
}

type direct struct {
	rects        []geometry.Rectangle
	constituents []int
	result       Intersections
}

// recurse decides rectangles from position next onwards.
//
// Each rectangle is included before it is excluded. For any region, the subset of all rectangles
// containing it therefore reaches a leaf before any of its own subsets producing the same region,
// so the first submission of a region carries its complete constituents.
func (d *direct) recurse(next int, overlap geometry.Rectangle) {
	if next == len(d.rects) {
		if len(d.constituents) >= 2 {
			d.result.submitSubset(overlap, d.constituents)
		}
		return
	}

	// A region without area can not become one by intersecting more rectangles.
	if o := overlap.Intersect(d.rects[next]); o.IsPositive() {
		d.constituents = append(d.constituents, next)
		d.recurse(next+1, o)
		d.constituents = d.constituents[:len(d.constituents)-1]
	}

	d.recurse(next+1, overlap)
}

// submitSubset records constituents for region unless the region is already present.
// A present region must have been reached by a strict superset of constituents.
func (m Intersections) submitSubset(region geometry.Rectangle, constituents []int) {
	found, ok := m[region]
	if !ok {
		m[region] = slices.Clone(constituents)
		return
	}
	if len(found) <= len(constituents) || !isSubset(constituents, found) {
		invariant("region %s reached by %v after %v", region, constituents, found)
	}
}

// isSubset returns true if every element of a is in b. Both must be sorted.
func isSubset(a, b []int) bool {
	j := 0
	for _, v := range a {
		for j < len(b) && b[j] < v {
			j++
		}
		if j == len(b) || b[j] != v {
			return false
		}
		j++
	}
	return true
}
