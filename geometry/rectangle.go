// Package geometry provides exact integer intervals and axis-aligned rectangles.
package geometry

import (
	"fmt"
	"math"
)

// Axis selects one of the two dimensions of a Rectangle.
// Problems that are solved along one dimension take an Axis instead of being written twice.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
	numAxes
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Rectangle is an axis-aligned box with integer coordinates.
// It is a comparable value and can be used as a map key.
type Rectangle struct {
	intervals [numAxes]Interval
}

// Max spans the whole int range on both axes.
// Intersecting any rectangle with Max returns that rectangle.
var Max = FromIntervals(
	Interval{Start: math.MinInt, End: math.MaxInt},
	Interval{Start: math.MinInt, End: math.MaxInt},
)

// New returns the rectangle with top-left corner (x, y), width w and height h.
func New(x, y, w, h int) (Rectangle, error) {
	horizontal, err := FromExtent(x, w)
	if err != nil {
		return Rectangle{}, fmt.Errorf("x=%d w=%d: %w", x, w, err)
	}
	vertical, err := FromExtent(y, h)
	if err != nil {
		return Rectangle{}, fmt.Errorf("y=%d h=%d: %w", y, h, err)
	}
	return FromIntervals(horizontal, vertical), nil
}

// MustNew is like New but panics on overflow.
func MustNew(x, y, w, h int) Rectangle {
	r, err := New(x, y, w, h)
	if err != nil {
		panic(err)
	}
	return r
}

// FromIntervals builds a rectangle from its horizontal and vertical spans.
// Spans wider than math.MaxInt are allowed: containment, intersection and IsPositive stay exact,
// but W, H and Area overflow.
func FromIntervals(horizontal, vertical Interval) Rectangle {
	var r Rectangle
	r.intervals[Horizontal] = horizontal
	r.intervals[Vertical] = vertical
	return r
}

// Interval returns the span of r along axis.
func (r Rectangle) Interval(axis Axis) Interval { return r.intervals[axis] }

func (r Rectangle) X() int { return r.intervals[Horizontal].Start }
func (r Rectangle) Y() int { return r.intervals[Vertical].Start }
func (r Rectangle) W() int { return r.intervals[Horizontal].Length() }
func (r Rectangle) H() int { return r.intervals[Vertical].Length() }

// Area of r. Width, height and area overflow for Max.
func (r Rectangle) Area() int { return r.W() * r.H() }

// IsPositive returns true if r has positive width and height.
func (r Rectangle) IsPositive() bool {
	return !r.intervals[Horizontal].IsEmpty() && !r.intervals[Vertical].IsEmpty()
}

// Intersect returns the overlap of r and o, computed independently on each axis.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	return FromIntervals(
		r.intervals[Horizontal].Intersect(o.intervals[Horizontal]),
		r.intervals[Vertical].Intersect(o.intervals[Vertical]),
	)
}

// Contains returns true if o lies entirely inside r.
func (r Rectangle) Contains(o Rectangle) bool {
	return r.intervals[Horizontal].Covers(o.intervals[Horizontal]) &&
		r.intervals[Vertical].Covers(o.intervals[Vertical])
}

// ContainsPoint returns true if the unit cell at (x, y) is inside r.
func (r Rectangle) ContainsPoint(x, y int) bool {
	return r.intervals[Horizontal].Contains(x) && r.intervals[Vertical].Contains(y)
}

// Less orders rectangles by horizontal interval, then by vertical interval.
func (r Rectangle) Less(o Rectangle) bool {
	h, oh := r.intervals[Horizontal], o.intervals[Horizontal]
	if h != oh {
		return h.Less(oh)
	}
	return r.intervals[Vertical].Less(o.intervals[Vertical])
}

// Hash mixes the four edges of r.
func (r Rectangle) Hash() uint64 {
	h, v := r.intervals[Horizontal], r.intervals[Vertical]
	return uint64(h.Start) ^ uint64(h.End)<<10 ^ uint64(v.Start)<<20 ^ uint64(v.End)<<30
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d, %d), w=%d, h=%d", r.X(), r.Y(), r.W(), r.H())
}

// Bounds returns the smallest rectangle containing all of rects.
// The zero Rectangle is returned for an empty slice.
func Bounds(rects []Rectangle) Rectangle {
	if len(rects) == 0 {
		return Rectangle{}
	}
	b := rects[0]
	for _, r := range rects[1:] {
		for a := Horizontal; a < numAxes; a++ {
			b.intervals[a].Start = min(b.intervals[a].Start, r.intervals[a].Start)
			b.intervals[a].End = max(b.intervals[a].End, r.intervals[a].End)
		}
	}
	return b
}
