// Package stress runs solvers on random rectangles and checks their results.
package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"

	"github.com/cenkalti/overlap/geometry"
	"github.com/cenkalti/overlap/internal/logger"
	"github.com/cenkalti/overlap/intersections"
)

// Parameters of a stress run. Every rectangle count in [MinRectangles, MaxRectangles] is combined
// with every edge in [MinEdge, MaxEdge] and each combination is sampled Samples times, with
// rectangles inside [0, edge) on both axes. Small edges give dense inputs, large edges sparse ones.
type Parameters struct {
	MinRectangles int
	MaxRectangles int
	MinEdge       int
	MaxEdge       int
	Samples       int
	// Number of samples solved concurrently.
	Workers int
	// Correctness verifies each result against the input. Without it only speed is measured.
	Correctness bool
}

func (p Parameters) validate() error {
	switch {
	case p.MinRectangles < 0 || p.MaxRectangles < p.MinRectangles:
		return fmt.Errorf("invalid rectangle count range: [%d, %d]", p.MinRectangles, p.MaxRectangles)
	case p.MinEdge <= 0 || p.MaxEdge < p.MinEdge:
		return fmt.Errorf("invalid edge range: [%d, %d]", p.MinEdge, p.MaxEdge)
	case p.Samples < 0:
		return fmt.Errorf("negative sample count: %d", p.Samples)
	}
	return nil
}

// Combinations returns the number of samples a complete run solves.
func (p Parameters) Combinations() int {
	return (p.MaxRectangles - p.MinRectangles + 1) * (p.MaxEdge - p.MinEdge + 1) * p.Samples
}

// Bounds returns the square [0, edge) on both axes that rectangles are generated in.
func Bounds(edge int) geometry.Rectangle {
	return geometry.FromIntervals(
		geometry.Interval{Start: 0, End: edge},
		geometry.Interval{Start: 0, End: edge},
	)
}

// Report summarizes a run. Fingerprint is the combination of every result and is the same for
// every correct solver given the same parameters and generator seed.
type Report struct {
	Samples      int
	Rectangles   int
	Fingerprint  intersections.Fingerprint
	MeanDuration time.Duration
	MaxDuration  time.Duration
	Elapsed      time.Duration
}

// Failure is returned when a solver produces a wrong result or panics on some input.
type Failure struct {
	Rectangles []geometry.Rectangle
	Err        error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (rectangles: %v)", f.Err, f.Rectangles)
}

func (f *Failure) Unwrap() error { return f.Err }

// Random returns a rectangle with positive area inside bounds, which must have positive area.
func Random(rnd *rand.Rand, bounds geometry.Rectangle) geometry.Rectangle {
	if !bounds.IsPositive() {
		panic("bounds must have positive area")
	}
	interval := func(axis geometry.Axis) geometry.Interval {
		b := bounds.Interval(axis)
		start := b.Start + rnd.Intn(b.Length())
		end := b.Start + rnd.Intn(b.Length())
		if start > end {
			start, end = end, start
		}
		return geometry.Interval{Start: start, End: end + 1}
	}
	return geometry.FromIntervals(interval(geometry.Horizontal), interval(geometry.Vertical))
}

// Run solves random inputs with solver. Inputs are drawn from rnd in a fixed order,
// so the same seed gives the same inputs regardless of Workers.
func Run(ctx context.Context, solver intersections.Solver, params Parameters, rnd *rand.Rand) (Report, error) {
	return run(ctx, params, rnd, func(rects []geometry.Rectangle) (intersections.Intersections, error) {
		return solver.Solve(rects)
	})
}

// CrossCheck solves random inputs with both reference and candidate and fails on the first input
// they disagree on. Timings in the report are of candidate.
func CrossCheck(ctx context.Context, reference, candidate intersections.Solver, params Parameters, rnd *rand.Rand) (Report, error) {
	return run(ctx, params, rnd, func(rects []geometry.Rectangle) (intersections.Intersections, error) {
		expected, err := reference.Solve(rects)
		if err != nil {
			return nil, err
		}
		actual, err := candidate.Solve(rects)
		if err != nil {
			return nil, err
		}
		if err = compare(expected, actual); err != nil {
			return nil, err
		}
		return actual, nil
	})
}

type solveFunc func(rects []geometry.Rectangle) (intersections.Intersections, error)

func run(ctx context.Context, params Parameters, rnd *rand.Rand, solve solveFunc) (Report, error) {
	var report Report
	if err := params.validate(); err != nil {
		return report, err
	}
	log := logger.New("stress")
	durations := metrics.NewHistogram(metrics.NewUniformSample(1028))
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	start := time.Now()
loop:
	for n := params.MinRectangles; n <= params.MaxRectangles; n++ {
		for edge := params.MinEdge; edge <= params.MaxEdge; edge++ {
			log.Debugf("solving %d samples of %d rectangles with edge %d", params.Samples, n, edge)
			bounds := Bounds(edge)
			for sample := 0; sample < params.Samples; sample++ {
				if gctx.Err() != nil {
					break loop
				}
				rects := make([]geometry.Rectangle, n)
				for i := range rects {
					rects[i] = Random(rnd, bounds)
				}
				g.Go(func() error {
					begin := time.Now()
					result, err := safeSolve(solve, rects)
					durations.Update(int64(time.Since(begin)))
					if err == nil && params.Correctness {
						err = Check(rects, result, bounds)
					}
					if err != nil {
						return &Failure{Rectangles: rects, Err: err}
					}
					mu.Lock()
					report.Samples++
					report.Rectangles += len(rects)
					report.Fingerprint = report.Fingerprint.Add(result.Fingerprint())
					mu.Unlock()
					return nil
				})
			}
		}
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	report.Elapsed = time.Since(start)
	report.MeanDuration = time.Duration(durations.Mean())
	report.MaxDuration = time.Duration(durations.Max())
	if err != nil {
		log.Errorf("stress run failed after %d samples: %s", report.Samples, err)
		return report, err
	}
	log.Infof("%d samples, %d regions in %s (mean %s, max %s per sample)",
		report.Samples, report.Fingerprint.Regions, report.Elapsed, report.MeanDuration, report.MaxDuration)
	return report, nil
}

// safeSolve turns solver invariant violations into errors so the failing input can be reported.
func safeSolve(solve solveFunc, rects []geometry.Rectangle) (result intersections.Intersections, err error) {
	defer func() {
		if r := recover(); r != nil {
			var ie *intersections.InvariantError
			if e, ok := r.(error); ok && errors.As(e, &ie) {
				err = ie
				return
			}
			panic(r)
		}
	}()
	return solve(rects)
}

// Check verifies result against rects and samples every unit cell of bounds: a cell covered by two
// or more rectangles must map to a region whose constituents are exactly the covering rectangles,
// and a cell covered by fewer must not map to any region.
func Check(rects []geometry.Rectangle, result intersections.Intersections, bounds geometry.Rectangle) error {
	if err := result.Verify(rects); err != nil {
		return err
	}
	h, v := bounds.Interval(geometry.Horizontal), bounds.Interval(geometry.Vertical)
	for y := v.Start; y < v.End; y++ {
		for x := h.Start; x < h.End; x++ {
			var covering []int
			overlap := geometry.Max
			for i, r := range rects {
				if r.ContainsPoint(x, y) {
					covering = append(covering, i)
					overlap = overlap.Intersect(r)
				}
			}
			found, ok := result[overlap]
			switch {
			case len(covering) < 2 && ok:
				return fmt.Errorf("point (%d, %d) is covered by %v but region %s is reported for %v", x, y, covering, overlap, found)
			case len(covering) >= 2 && !ok:
				return fmt.Errorf("point (%d, %d) is covered by %v but region %s is missing", x, y, covering, overlap)
			case len(covering) >= 2 && !slices.Equal(found, covering):
				return fmt.Errorf("point (%d, %d) is covered by %v but region %s is reported for %v", x, y, covering, overlap, found)
			}
		}
	}
	return nil
}

func compare(expected, actual intersections.Intersections) error {
	for _, region := range expected.Regions() {
		found, ok := actual[region]
		if !ok {
			return fmt.Errorf("region %s of %v is missing", region, expected[region])
		}
		if !slices.Equal(found, expected[region]) {
			return fmt.Errorf("region %s: expected %v, got %v", region, expected[region], found)
		}
	}
	for _, region := range actual.Regions() {
		if _, ok := expected[region]; !ok {
			return fmt.Errorf("unexpected region %s of %v", region, actual[region])
		}
	}
	return nil
}
