package geometry

import (
	"errors"
	"math"
	"strconv"
)

// ErrOverflow is returned when start+extent does not fit in an int.
var ErrOverflow = errors.New("interval overflows int range")

// Interval is the semi-open range [Start, End).
type Interval struct {
	Start int
	End   int
}

// FromExtent returns the interval [start, start+extent).
// Extent may be negative. ErrOverflow is returned if the end position cannot be represented.
func FromExtent(start, extent int) (Interval, error) {
	if extent >= 0 {
		if start > math.MaxInt-extent {
			return Interval{}, ErrOverflow
		}
	} else if start < math.MinInt-extent {
		return Interval{}, ErrOverflow
	}
	return Interval{Start: start, End: start + extent}, nil
}

// Length may be zero or negative for degenerate intervals.
// It overflows when the interval spans more than math.MaxInt positions.
func (i Interval) Length() int { return i.End - i.Start }

// IsEmpty returns true if no position is inside i. Unlike Length it is exact for any span.
func (i Interval) IsEmpty() bool { return i.Start >= i.End }

// Contains returns true if position is inside [Start, End).
func (i Interval) Contains(position int) bool {
	return position >= i.Start && position < i.End
}

// Covers returns true if every position of o is also in i.
func (i Interval) Covers(o Interval) bool {
	return o.Start >= i.Start && o.End <= i.End
}

// Intersect returns the common part of i and o.
// Disjoint intervals produce an empty interval with Start == End.
func (i Interval) Intersect(o Interval) Interval {
	start, end := max(i.Start, o.Start), min(i.End, o.End)
	return Interval{Start: min(start, end), End: end}
}

// Less orders intervals by Start, then by End.
func (i Interval) Less(o Interval) bool {
	return i.Start < o.Start || (i.Start == o.Start && i.End < o.End)
}

func (i Interval) String() string {
	return "[" + strconv.Itoa(i.Start) + "," + strconv.Itoa(i.End) + ")"
}
