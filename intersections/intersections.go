// Package intersections enumerates every distinct region where two or more rectangles overlap,
// together with the complete set of input rectangles containing that region.
//
// Two solvers are provided. Direct enumerates subsets of the input and is only suitable for small
// inputs or as a reference. Sweep walks the rectangle edges along both axes and scales with the
// number of overlapping regions instead. Both produce identical results.
package intersections

import (
	"fmt"
	"slices"
	"sort"

	"github.com/cenkalti/overlap/geometry"
)

// Intersections maps each overlap region to the positions of the input rectangles that contain it.
// Positions are indexes into the slice given to the solver, in ascending order.
//
// For every region A in the map, its value is exactly the set of input rectangles r with r ⊇ A.
// The set has at least two members and A has positive area.
type Intersections map[geometry.Rectangle][]int

// Solver computes Intersections for a slice of rectangles with positive area.
// Solvers do not retain or modify rects.
type Solver interface {
	Solve(rects []geometry.Rectangle) (Intersections, error)
}

// ByName returns the solver registered under name.
// "sweep" (alias "fast") and "direct" (alias "simple") are known.
func ByName(name string) (Solver, error) {
	switch name {
	case "sweep", "fast":
		return Sweep{}, nil
	case "direct", "simple":
		return Direct{}, nil
	default:
		return nil, fmt.Errorf("unknown solver: %q", name)
	}
}

// Regions returns the keys of m ordered by geometry.Rectangle.Less.
func (m Intersections) Regions() []geometry.Rectangle {
	regions := make([]geometry.Rectangle, 0, len(m))
	for r := range m {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Less(regions[j]) })
	return regions
}

// Equal returns true if m and o have the same regions with the same constituents.
func (m Intersections) Equal(o Intersections) bool {
	if len(m) != len(o) {
		return false
	}
	for region, constituents := range m {
		other, ok := o[region]
		if !ok || !slices.Equal(constituents, other) {
			return false
		}
	}
	return true
}

// Fingerprint summarizes a result independently of map iteration order.
type Fingerprint struct {
	Regions      int
	Constituents int
	Hash         uint64
}

// Add combines two fingerprints.
func (f Fingerprint) Add(o Fingerprint) Fingerprint {
	return Fingerprint{
		Regions:      f.Regions + o.Regions,
		Constituents: f.Constituents + o.Constituents,
		Hash:         f.Hash ^ o.Hash,
	}
}

func (m Intersections) Fingerprint() Fingerprint {
	var f Fingerprint
	for region, constituents := range m {
		f.Regions++
		f.Constituents += len(constituents)
		f.Hash ^= region.Hash()
	}
	return f
}

// Verify checks m against rects: every region must have positive area and be mapped to exactly
// the rectangles containing it, at least two of them. The first violation is returned.
func (m Intersections) Verify(rects []geometry.Rectangle) error {
	for _, region := range m.Regions() {
		constituents := m[region]
		if !region.IsPositive() {
			return fmt.Errorf("region %s has no area", region)
		}
		if len(constituents) < 2 {
			return fmt.Errorf("region %s has %d constituents", region, len(constituents))
		}
		if !sort.IntsAreSorted(constituents) {
			return fmt.Errorf("region %s: constituents %v are not in input order", region, constituents)
		}
		var stabilizer []int
		for i, r := range rects {
			if r.Contains(region) {
				stabilizer = append(stabilizer, i)
			}
		}
		if !slices.Equal(constituents, stabilizer) {
			return fmt.Errorf("region %s: constituents %v, rectangles containing it %v", region, constituents, stabilizer)
		}
	}
	return nil
}
