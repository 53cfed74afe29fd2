package intersections

import (
	"fmt"

	"github.com/cenkalti/overlap/geometry"
)

// NonPositiveError is returned by solvers when an input rectangle has no area.
type NonPositiveError struct {
	Index     int
	Rectangle geometry.Rectangle
}

func (e *NonPositiveError) Error() string {
	return fmt.Sprintf("rectangle %d at %s does not have positive area", e.Index, e.Rectangle)
}

// InvariantError is the panic value used when a solver detects an internal inconsistency.
// It indicates a defect in the algorithm, never bad input.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "intersections: invariant violated: " + e.Message
}

func invariant(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}

func checkInput(rects []geometry.Rectangle) error {
	for i, r := range rects {
		if !r.IsPositive() {
			return &NonPositiveError{Index: i, Rectangle: r}
		}
	}
	return nil
}

func must(m Intersections, err error) Intersections {
	if err != nil {
		panic(err)
	}
	return m
}
