// Package transitions maps out the positions along an axis where rectangles begin or end.
package transitions

import (
	"errors"
	"fmt"

	"github.com/google/btree"

	"github.com/cenkalti/overlap/geometry"
	"github.com/cenkalti/overlap/internal/sliceset"
)

const degree = 32

var (
	// ErrAlreadyTracked is returned when inserting a rectangle that is already in the index.
	ErrAlreadyTracked = errors.New("rectangle is already tracked")
	// ErrNotTracked is returned when erasing a rectangle that is not in the index.
	ErrNotTracked = errors.New("rectangle is not tracked")
	// ErrImbalanced is returned when a rectangle has only one of its two edges recorded.
	ErrImbalanced = errors.New("starting and ending transitions are out of balance")
)

// Step holds the rectangles that start or end at a single position.
// Rectangles are identified by their position in the input slice.
type Step struct {
	Position int
	Ending   sliceset.SliceSet[int]
	Starting sliceset.SliceSet[int]
}

func lessStep(a, b *Step) bool { return a.Position < b.Position }

// Index keeps one starting and one ending Step entry for each tracked rectangle,
// ordered by position along a single axis.
type Index struct {
	axis  geometry.Axis
	rects []geometry.Rectangle
	steps *btree.BTreeG[*Step]
	count int

	// Thorough enables validating the whole index before and after every Insert and Erase.
	// It makes both operations linear in the size of the index.
	Thorough bool
}

// New returns an empty index over rects. Rectangles are inserted by their position in rects.
// The caller must not modify rects while the index is in use.
func New(axis geometry.Axis, rects []geometry.Rectangle) *Index {
	return &Index{
		axis:  axis,
		rects: rects,
		steps: btree.NewG(degree, lessStep),
	}
}

// Build returns an index with every rectangle of rects inserted.
func Build(axis geometry.Axis, rects []geometry.Rectangle) (*Index, error) {
	x := New(axis, rects)
	for i := range rects {
		if err := x.Insert(i); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Axis returns the axis the index was built for.
func (x *Index) Axis() geometry.Axis { return x.axis }

// Len returns the number of tracked rectangles.
func (x *Index) Len() int { return x.count }

// Empty returns true if no rectangle is tracked.
func (x *Index) Empty() bool { return x.count == 0 }

// Tracks returns true if rectangle i is in the index.
func (x *Index) Tracks(i int) bool {
	s, ok := x.steps.Get(&Step{Position: x.interval(i).Start})
	return ok && s.Starting.Has(i)
}

// Insert records the starting and ending transitions of rectangle i.
func (x *Index) Insert(i int) error {
	if err := x.check(); err != nil {
		return err
	}
	iv := x.interval(i)
	startAdded := x.step(iv.Start).Starting.Add(i)
	endAdded := x.step(iv.End).Ending.Add(i)
	if startAdded != endAdded {
		// leave the index as it was
		if startAdded {
			x.remove(iv.Start, i, starting)
		} else {
			x.remove(iv.End, i, ending)
		}
		return fmt.Errorf("insert rectangle %d: %w", i, ErrImbalanced)
	}
	if !startAdded {
		return fmt.Errorf("insert rectangle %d: %w", i, ErrAlreadyTracked)
	}
	x.count++
	return x.check()
}

// Erase removes both transitions of rectangle i.
func (x *Index) Erase(i int) error {
	if err := x.check(); err != nil {
		return err
	}
	iv := x.interval(i)
	startRemoved := x.remove(iv.Start, i, starting)
	endRemoved := x.remove(iv.End, i, ending)
	if startRemoved != endRemoved {
		if startRemoved {
			x.step(iv.Start).Starting.Add(i)
		} else {
			x.step(iv.End).Ending.Add(i)
		}
		return fmt.Errorf("erase rectangle %d: %w", i, ErrImbalanced)
	}
	if !startRemoved {
		return fmt.Errorf("erase rectangle %d: %w", i, ErrNotTracked)
	}
	x.count--
	return x.check()
}

// Ascend calls f for each Step in increasing position order until f returns false.
// Steps must not be modified by f.
func (x *Index) Ascend(f func(s *Step) bool) {
	x.steps.Ascend(f)
}

// Steps returns all Steps in increasing position order.
func (x *Index) Steps() []*Step {
	steps := make([]*Step, 0, x.steps.Len())
	x.steps.Ascend(func(s *Step) bool {
		steps = append(steps, s)
		return true
	})
	return steps
}

// Clone returns a deep copy of x. Modifying one does not affect the other.
func (x *Index) Clone() *Index {
	c := New(x.axis, x.rects)
	c.count = x.count
	c.Thorough = x.Thorough
	x.steps.Ascend(func(s *Step) bool {
		c.steps.ReplaceOrInsert(&Step{
			Position: s.Position,
			Ending:   s.Ending.Clone(),
			Starting: s.Starting.Clone(),
		})
		return true
	})
	return c
}

// Validate returns an error if the index is not consistent: every tracked rectangle must start once,
// end once after it started, at the positions of its own interval, and Len must match. Empty steps are
// not allowed.
func (x *Index) Validate() error {
	open := make(map[int]int)
	edges := make(map[int]int)
	var err error
	x.steps.Ascend(func(s *Step) bool {
		if s.Starting.Len() == 0 && s.Ending.Len() == 0 {
			err = fmt.Errorf("empty step at %d", s.Position)
			return false
		}
		for _, i := range s.Starting.Items {
			edges[i]++
			open[i]++
			if open[i] != 1 {
				err = fmt.Errorf("rectangle %d starts more than once", i)
				return false
			}
			if x.interval(i).Start != s.Position {
				err = fmt.Errorf("rectangle %d starts at %d, recorded at %d", i, x.interval(i).Start, s.Position)
				return false
			}
		}
		for _, i := range s.Ending.Items {
			edges[i]++
			open[i]--
			if open[i] != 0 {
				err = fmt.Errorf("rectangle %d ends before it starts", i)
				return false
			}
			if x.interval(i).End != s.Position {
				err = fmt.Errorf("rectangle %d ends at %d, recorded at %d", i, x.interval(i).End, s.Position)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if x.count != len(open) {
		return fmt.Errorf("index counts %d rectangles, found %d", x.count, len(open))
	}
	for i, n := range edges {
		if n != 2 {
			return fmt.Errorf("rectangle %d has %d edges", i, n)
		}
	}
	return nil
}

func (x *Index) check() error {
	if !x.Thorough {
		return nil
	}
	return x.Validate()
}

func (x *Index) interval(i int) geometry.Interval {
	return x.rects[i].Interval(x.axis)
}

// step returns the Step at position, creating it if necessary.
func (x *Index) step(position int) *Step {
	key := &Step{Position: position}
	if s, ok := x.steps.Get(key); ok {
		return s
	}
	x.steps.ReplaceOrInsert(key)
	return key
}

func starting(s *Step) *sliceset.SliceSet[int] { return &s.Starting }

func ending(s *Step) *sliceset.SliceSet[int] { return &s.Ending }

func (x *Index) remove(position, i int, set func(*Step) *sliceset.SliceSet[int]) bool {
	s, ok := x.steps.Get(&Step{Position: position})
	if !ok || !set(s).Remove(i) {
		return false
	}
	if s.Starting.Len() == 0 && s.Ending.Len() == 0 {
		x.steps.Delete(s)
	}
	return true
}
