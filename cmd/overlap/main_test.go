package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/cenkalti/overlap"
	"github.com/cenkalti/overlap/intersections"
)

const twoRects = `{"rects": [{"x": 0, "y": 0, "w": 10, "h": 10}, {"x": 5, "y": 5, "w": 10, "h": 10}]}`

const twoRectsText = "Intersections:\n" +
	"\tBetween rectangle 1 and 2 at (5, 5), w=5, h=5\n"

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runApp runs the command line with a config file holding config.
func runApp(t *testing.T, config string, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp(&out)
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"overlap", "--config", writeFile(t, "overlap.yaml", config)}, args...))
	return out.String(), err
}

// flagContext parses args with the flags of the named command.
func flagContext(t *testing.T, name string, args ...string) *cli.Context {
	app := newApp(io.Discard)
	command := app.Command(name)
	require.NotNil(t, command)
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	for _, f := range command.Flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	c := cli.NewContext(app, set, nil)
	c.Command = *command
	return c
}

func TestNewSolver(t *testing.T) {
	cfg := overlap.DefaultConfig
	s, err := newSolver(cfg, "sweep")
	require.NoError(t, err)
	assert.Equal(t, intersections.Sweep{}, s)

	cfg.ThoroughChecks = true
	s, err = newSolver(cfg, "fast")
	require.NoError(t, err)
	assert.Equal(t, intersections.Sweep{Thorough: true}, s)

	s, err = newSolver(cfg, "direct")
	require.NoError(t, err)
	assert.Equal(t, intersections.Direct{}, s)

	_, err = newSolver(cfg, "quadtree")
	assert.Error(t, err)
}

func TestApplySolveFlags(t *testing.T) {
	cfg := overlap.DefaultConfig
	cfg.Output = "json"
	applySolveFlags(&cfg, flagContext(t, "solve"))
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "sweep", cfg.Solver)
	assert.False(t, cfg.ThoroughChecks)

	applySolveFlags(&cfg, flagContext(t, "solve", "-o", "text", "--solver", "direct", "--thorough"))
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "direct", cfg.Solver)
	assert.True(t, cfg.ThoroughChecks)
}

func TestApplyStressFlags(t *testing.T) {
	cfg := overlap.DefaultConfig
	applyStressFlags(&cfg, flagContext(t, "stress", "--edge", "7", "--max-edge", "9", "-n", "3", "--speed"))
	assert.Equal(t, 7, cfg.Stress.MinEdge)
	assert.Equal(t, 9, cfg.Stress.MaxEdge)
	assert.Equal(t, 3, cfg.Stress.Samples)
	assert.False(t, cfg.Stress.Correctness)
	assert.Equal(t, overlap.DefaultConfig.Stress.MaxRectangles, cfg.Stress.MaxRectangles)

	p := stressParameters(cfg.Stress)
	assert.Equal(t, 7, p.MinEdge)
	assert.Equal(t, 9, p.MaxEdge)
	assert.Equal(t, (10+1)*3*3, p.Combinations())
}

func TestSolveText(t *testing.T) {
	out, err := runApp(t, "color: false\n", "solve", writeFile(t, "rects.json", twoRects))
	require.NoError(t, err)
	assert.Equal(t, "Inputs:\n"+
		"\t1: Rectangle at (0,0), w=10, h=10.\n"+
		"\t2: Rectangle at (5,5), w=10, h=10.\n"+
		"\n"+twoRectsText, out)
}

func TestSolveOutputPrecedence(t *testing.T) {
	rects := writeFile(t, "rects.json", twoRects)

	out, err := runApp(t, "output: json\ncolor: false\n", "solve", rects)
	require.NoError(t, err)
	var r struct {
		X, Y, W, H int
		Rectangles []int
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &r))
	assert.Equal(t, []int{1, 2}, r.Rectangles)

	out, err = runApp(t, "output: json\n", "solve", "--output", "text", "--quiet", rects)
	require.NoError(t, err)
	assert.Equal(t, twoRectsText, out)

	_, err = runApp(t, "output: xml\n", "solve", rects)
	assert.EqualError(t, err, `unknown output format: "xml"`)

	_, err = runApp(t, "output: json\n", "solve", "-o", "xml", rects)
	assert.EqualError(t, err, `unknown output format: "xml"`)
}

func TestSolveSolverPrecedence(t *testing.T) {
	rects := writeFile(t, "rects.json", twoRects)

	_, err := runApp(t, "solver: quadtree\n", "solve", rects)
	assert.EqualError(t, err, `unknown solver: "quadtree"`)

	out, err := runApp(t, "solver: quadtree\nthorough_checks: true\n", "solve", "-q", "--solver", "direct", rects)
	require.NoError(t, err)
	assert.Equal(t, twoRectsText, out)
}

func TestSolveErrors(t *testing.T) {
	_, err := runApp(t, "", "solve")
	assert.EqualError(t, err, "please provide a rectangles file")

	_, err = runApp(t, "", "solve", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = runApp(t, "solvr: sweep\n", "version")
	assert.Error(t, err)
}

func TestStress(t *testing.T) {
	config := "stress:\n" +
		"  samples: 2\n" +
		"  min_rectangles: 0\n" +
		"  max_rectangles: 3\n" +
		"  min_edge: 3\n" +
		"  max_edge: 4\n" +
		"  workers: 2\n"

	out, err := runApp(t, config, "stress")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "16 samples, "), out)

	out, err = runApp(t, config, "stress", "--samples", "3", "--max-edge", "5")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "36 samples, "), out)

	out, err = runApp(t, config, "stress", "--edge", "6", "--solver", "sweep", "--against", "direct")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "8 samples, "), out)

	_, err = runApp(t, config, "stress", "--min-edge", "5")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, overlap.Version+"\n", out)
}
