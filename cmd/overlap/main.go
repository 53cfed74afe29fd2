package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	clog "github.com/cenkalti/log"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cenkalti/overlap"
	"github.com/cenkalti/overlap/internal/loader"
	"github.com/cenkalti/overlap/internal/logger"
	"github.com/cenkalti/overlap/internal/presenter"
	"github.com/cenkalti/overlap/internal/stress"
	"github.com/cenkalti/overlap/intersections"
)

var log = logger.New("overlap")

func main() {
	app := newApp(os.Stdout)
	err := app.Run(os.Args)
	if err != nil {
		clog.Fatal(err)
	}
}

// command holds the state shared by command handlers of one app run.
type command struct {
	cfg    overlap.Config
	stdout io.Writer
}

func newApp(stdout io.Writer) *cli.App {
	cmd := &command{cfg: overlap.DefaultConfig, stdout: stdout}
	app := cli.NewApp()
	app.Name = "overlap"
	app.Usage = "Find regions where rectangles overlap"
	app.Version = overlap.Version
	app.HideVersion = true
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "read config from `FILE`",
			Value: overlap.DefaultConfigPath,
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug log",
		},
	}
	app.Before = cmd.handleBeforeCommand
	app.Commands = []cli.Command{
		{
			Name:      "solve",
			Usage:     "print overlapping regions of rectangles in a JSON file",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "solver, s",
					Usage: "sweep or direct",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "text or json",
				},
				cli.BoolFlag{
					Name:  "quiet, q",
					Usage: "do not print input rectangles",
				},
				cli.BoolFlag{
					Name:  "thorough",
					Usage: "validate transition indexes after every change",
				},
			},
			Action: cmd.handleSolve,
		},
		{
			Name:  "stress",
			Usage: "cross-check solvers on random rectangles",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "solver, s",
					Usage: "solver to test",
				},
				cli.StringFlag{
					Name:  "against, a",
					Usage: "reference solver to compare results with",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed",
				},
				cli.IntFlag{
					Name:  "samples, n",
					Usage: "samples per rectangle count and edge",
				},
				cli.IntFlag{
					Name:  "min-rectangles",
					Usage: "smallest number of rectangles per sample",
				},
				cli.IntFlag{
					Name:  "max-rectangles",
					Usage: "largest number of rectangles per sample",
				},
				cli.IntFlag{
					Name:  "min-edge",
					Usage: "smallest area edge, rectangles are generated inside [0, edge) on both axes",
				},
				cli.IntFlag{
					Name:  "max-edge",
					Usage: "largest area edge",
				},
				cli.IntFlag{
					Name:  "edge",
					Usage: "sets both min-edge and max-edge",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of samples solved concurrently",
				},
				cli.BoolFlag{
					Name:  "speed",
					Usage: "skip result verification",
				},
			},
			Action: cmd.handleStress,
		},
		{
			Name:  "version",
			Usage: "print version",
			Action: func(c *cli.Context) error {
				_, err := fmt.Fprintln(stdout, overlap.Version)
				return err
			},
		},
	}
	return app
}

func (cmd *command) handleBeforeCommand(c *cli.Context) error {
	configPath, err := homedir.Expand(c.GlobalString("config"))
	if err != nil {
		return err
	}
	loaded, err := overlap.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cmd.cfg = *loaded
	level, err := logger.ParseLevel(cmd.cfg.LogLevel)
	if err != nil {
		return err
	}
	if c.GlobalBool("debug") {
		level = clog.DEBUG
	}
	logger.SetLevel(level)
	return nil
}

// newSolver returns the solver registered under name, configured from cfg.
func newSolver(cfg overlap.Config, name string) (intersections.Solver, error) {
	s, err := intersections.ByName(name)
	if err != nil {
		return nil, err
	}
	if sweep, ok := s.(intersections.Sweep); ok {
		sweep.Thorough = cfg.ThoroughChecks
		s = sweep
	}
	return s, nil
}

// applySolveFlags overrides cfg with the flags given to the solve command.
func applySolveFlags(cfg *overlap.Config, c *cli.Context) {
	if c.IsSet("solver") {
		cfg.Solver = c.String("solver")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.Bool("thorough") {
		cfg.ThoroughChecks = true
	}
}

// applyStressFlags overrides cfg with the flags given to the stress command.
func applyStressFlags(cfg *overlap.Config, c *cli.Context) {
	sc := &cfg.Stress
	if c.IsSet("solver") {
		cfg.Solver = c.String("solver")
	}
	if c.IsSet("seed") {
		sc.Seed = c.Int64("seed")
	}
	if c.IsSet("samples") {
		sc.Samples = c.Int("samples")
	}
	if c.IsSet("min-rectangles") {
		sc.MinRectangles = c.Int("min-rectangles")
	}
	if c.IsSet("max-rectangles") {
		sc.MaxRectangles = c.Int("max-rectangles")
	}
	if c.IsSet("edge") {
		sc.MinEdge = c.Int("edge")
		sc.MaxEdge = c.Int("edge")
	}
	if c.IsSet("min-edge") {
		sc.MinEdge = c.Int("min-edge")
	}
	if c.IsSet("max-edge") {
		sc.MaxEdge = c.Int("max-edge")
	}
	if c.IsSet("workers") {
		sc.Workers = c.Int("workers")
	}
	if c.Bool("speed") {
		sc.Correctness = false
	}
}

func stressParameters(sc overlap.StressConfig) stress.Parameters {
	return stress.Parameters{
		MinRectangles: sc.MinRectangles,
		MaxRectangles: sc.MaxRectangles,
		MinEdge:       sc.MinEdge,
		MaxEdge:       sc.MaxEdge,
		Samples:       sc.Samples,
		Workers:       sc.Workers,
		Correctness:   sc.Correctness,
	}
}

func (cmd *command) handleSolve(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("please provide a rectangles file")
	}
	applySolveFlags(&cmd.cfg, c)
	solver, err := newSolver(cmd.cfg, cmd.cfg.Solver)
	if err != nil {
		return err
	}
	switch cmd.cfg.Output {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format: %q", cmd.cfg.Output)
	}
	rects, err := loader.Load(c.Args().First())
	if err != nil {
		return err
	}
	result, err := solver.Solve(rects)
	if err != nil {
		return err
	}
	log.Debugf("%d rectangles, %d regions (solver=%s)", len(rects), len(result), cmd.cfg.Solver)

	if cmd.cfg.Output == "json" {
		return presenter.JSON(cmd.stdout, result, cmd.cfg.Color)
	}
	if !c.Bool("quiet") {
		if err = presenter.Inputs(cmd.stdout, rects); err != nil {
			return err
		}
		if _, err = fmt.Fprintln(cmd.stdout); err != nil {
			return err
		}
	}
	return presenter.Text(cmd.stdout, result)
}

func (cmd *command) handleStress(c *cli.Context) error {
	applyStressFlags(&cmd.cfg, c)
	params := stressParameters(cmd.cfg.Stress)
	solver, err := newSolver(cmd.cfg, cmd.cfg.Solver)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rnd := rand.New(rand.NewSource(cmd.cfg.Stress.Seed))
	var report stress.Report
	if c.IsSet("against") {
		reference, err := newSolver(cmd.cfg, c.String("against"))
		if err != nil {
			return err
		}
		report, err = stress.CrossCheck(ctx, reference, solver, params, rnd)
		if err != nil {
			return err
		}
	} else {
		report, err = stress.Run(ctx, solver, params, rnd)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(cmd.stdout, "%d samples, %d rectangles, %d regions, fingerprint %x, %s elapsed\n",
		report.Samples, report.Rectangles, report.Fingerprint.Regions, report.Fingerprint.Hash, report.Elapsed)
	return err
}
