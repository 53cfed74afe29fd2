// Package overlap holds the configuration shared by the overlap command line tool.
// The solvers live in package intersections.
package overlap

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Version of the overlap tool.
var Version = "0.1.0"

// DefaultConfigPath is used by the command line tool when no config path is given.
const DefaultConfigPath = "~/.overlap.yaml"

type Config struct {
	// Solver is "sweep" or "direct".
	Solver string `yaml:"solver"`
	// Output is "text" or "json".
	Output string `yaml:"output"`
	// Color enables colored json output.
	Color    bool   `yaml:"color"`
	LogLevel string `yaml:"log_level"`
	// ThoroughChecks validates transition indexes after every change. Very slow.
	ThoroughChecks bool         `yaml:"thorough_checks"`
	Stress         StressConfig `yaml:"stress"`
}

// StressConfig controls the randomized cross-check run by "overlap stress".
type StressConfig struct {
	Seed          int64 `yaml:"seed"`
	Samples       int   `yaml:"samples"`
	MinRectangles int   `yaml:"min_rectangles"`
	MaxRectangles int   `yaml:"max_rectangles"`
	// Rectangles are generated inside [0, edge) on both axes for every edge in [MinEdge, MaxEdge].
	MinEdge int `yaml:"min_edge"`
	MaxEdge int `yaml:"max_edge"`
	Workers int `yaml:"workers"`
	// Correctness enables point sampling and stabilizer verification of every result.
	Correctness bool `yaml:"correctness"`
}

var DefaultConfig = Config{
	Solver:   "sweep",
	Output:   "text",
	Color:    true,
	LogLevel: "info",
	Stress: StressConfig{
		Seed:          1,
		Samples:       100,
		MinRectangles: 0,
		MaxRectangles: 10,
		MinEdge:       50,
		MaxEdge:       50,
		Workers:       4,
		Correctness:   true,
	},
}

// LoadConfig reads filename over DefaultConfig. A missing file is not an error.
func LoadConfig(filename string) (*Config, error) {
	c := DefaultConfig
	b, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return &c, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}
	if err = yaml.UnmarshalStrict(b, &c); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %s", filename)
	}
	return &c, nil
}

// Save writes c to filename in YAML format.
func (c *Config) Save(filename string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(filename, b, 0o644), "cannot write config")
}
