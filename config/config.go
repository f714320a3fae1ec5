package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sbezverk/sortbench/sort"
	"gopkg.in/yaml.v2"
)

var (
	// ErrNoRuns is returned when a plan has nothing to benchmark
	ErrNoRuns = errors.New("no benchmark runs configured")
	// ErrInvalidPattern is returned when a dataset file pattern does not hold exactly one integer verb
	ErrInvalidPattern = errors.New("dataset pattern must hold exactly one integer verb")
)

// Run is one algorithm benchmarked over datasets 1..Datasets.
type Run struct {
	Algorithm string `yaml:"algorithm"`
	Datasets  int    `yaml:"datasets"`
}

// Config is the benchmark plan.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	OutDir    string `yaml:"out_dir"`
	Pattern   string `yaml:"pattern"`
	Verify    bool   `yaml:"verify"`
	Collector string `yaml:"collector"`
	Runs      []Run  `yaml:"runs"`
}

// Default returns the plan of the reference lab: quadratic algorithms on the
// six smallest datasets, the n*log(n) ones on all fifteen.
func Default() *Config {
	return &Config{
		DataDir: "data/in",
		OutDir:  "data/out",
		Pattern: "dataset_%d.csv",
		Verify:  true,
		Runs: []Run{
			{Algorithm: sort.AlgInsertionSort.String(), Datasets: 6},
			{Algorithm: sort.AlgShakerSort.String(), Datasets: 6},
			{Algorithm: sort.AlgMergeSort.String(), Datasets: 15},
			{Algorithm: sort.AlgStdSort.String(), Datasets: 15},
		},
	}
}

// Load reads a YAML plan from fn on top of Default. Keys missing from the
// file keep their default values; a runs list in the file replaces the default one.
func Load(fn string) (*Config, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s with error: %w", fn, err)
	}
	c := Default()
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s with error: %w", fn, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the dataset pattern and that every run names a known
// algorithm and a positive dataset count.
func (c *Config) Validate() error {
	if c.Pattern != "" {
		if err := validatePattern(c.Pattern); err != nil {
			return err
		}
	}
	if len(c.Runs) == 0 {
		return ErrNoRuns
	}
	for i, r := range c.Runs {
		if _, err := sort.Parse(r.Algorithm); err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		if r.Datasets <= 0 {
			return fmt.Errorf("run %d: invalid number of datasets %d", i, r.Datasets)
		}
	}
	return nil
}

// validatePattern accepts a printf pattern consuming exactly one integer,
// such as dataset_%d.csv or part-%05d.csv.
func validatePattern(p string) error {
	verbs := 0
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		i++
		// Flags, width and precision
		for i < len(p) && strings.IndexByte("+-# 0123456789.", p[i]) >= 0 {
			i++
		}
		if i == len(p) {
			return fmt.Errorf("%w: %q ends inside a verb", ErrInvalidPattern, p)
		}
		if p[i] == '%' {
			continue
		}
		if strings.IndexByte("dboOxX", p[i]) < 0 {
			return fmt.Errorf("%w: %q uses %%%c", ErrInvalidPattern, p, p[i])
		}
		verbs++
	}
	if verbs != 1 {
		return fmt.Errorf("%w: %q has %d", ErrInvalidPattern, p, verbs)
	}
	return nil
}

// Filter keeps only the runs whose algorithm matches the glob pattern.
func (c *Config) Filter(pattern string) error {
	g, err := glob.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid algorithm pattern %q: %w", pattern, err)
	}
	runs := make([]Run, 0, len(c.Runs))
	for _, r := range c.Runs {
		if g.Match(r.Algorithm) {
			runs = append(runs, r)
		}
	}
	if len(runs) == 0 {
		return fmt.Errorf("%w matching %q", ErrNoRuns, pattern)
	}
	c.Runs = runs

	return nil
}

func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(b)
}
