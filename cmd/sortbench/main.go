package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/sbezverk/sortbench/bench"
	"github.com/sbezverk/sortbench/config"
	"github.com/sbezverk/sortbench/dataset"
	"github.com/sbezverk/sortbench/report"
	"github.com/sbezverk/sortbench/store"
)

var (
	configFile string
	algorithms string
	dataDir    string
	outDir     string
	collector  string
	verify     bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "YAML benchmark plan, built-in plan is used when empty")
	flag.StringVar(&algorithms, "algorithms", "*", "glob pattern selecting the algorithms to benchmark")
	flag.StringVar(&dataDir, "data-dir", "", "directory holding dataset_<n>.csv files")
	flag.StringVar(&outDir, "out-dir", "", "directory sorted datasets are written to, it is wiped before the run")
	flag.StringVar(&collector, "collector", "", "host:port of a chart collector")
	flag.BoolVar(&verify, "verify", true, "check every dataset is sorted before writing it out")
}

func loadConfig() (*config.Config, error) {
	c := config.Default()
	if configFile != "" {
		var err error
		if c, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	// Explicitly set flags win over the plan
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			c.DataDir = dataDir
		case "out-dir":
			c.OutDir = outDir
		case "collector":
			c.Collector = collector
		case "verify":
			c.Verify = verify
		}
	})
	if err := c.Filter(algorithms); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// run executes the plan c and reports the resulting charts to out and, when
// configured, to the collector.
func run(c *config.Config, out io.Writer) error {
	glog.V(5).Infof("benchmark plan:\n%s", c)

	if err := dataset.Prepare(c.OutDir); err != nil {
		return fmt.Errorf("failed to prepare output with error: %w", err)
	}
	loader := dataset.NewLoader(c.DataDir)
	sink := dataset.NewSink(c.OutDir)
	if c.Pattern != "" {
		loader.Pattern = c.Pattern
		sink.Pattern = c.Pattern
	}
	h := bench.New(loader, sink, c.Verify)
	glog.Infof("starting benchmark run %s", h.RunID)

	results := store.NewStore()
	defer results.Stop()
	if err := h.RunPlan(c.Runs, results); err != nil {
		return fmt.Errorf("benchmark failed with error: %w", err)
	}

	reporters := []report.Reporter{report.NewConsole(out)}
	if c.Collector != "" {
		p, err := report.NewPublisher(c.Collector)
		if err != nil {
			return fmt.Errorf("failed to connect to collector with error: %w", err)
		}
		defer p.Close()
		reporters = append(reporters, p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	var failed error
	for _, chart := range report.Build(results) {
		for _, r := range reporters {
			if err := r.Report(ctx, chart); err != nil {
				glog.Errorf("failed to report chart %s with error: %+v", chart.Name, err)
				failed = err
			}
		}
	}

	return failed
}

func main() {
	flag.Parse()
	_ = flag.Set("logtostderr", "true")

	c, err := loadConfig()
	if err != nil {
		err = fmt.Errorf("failed to load benchmark plan with error: %w", err)
	} else {
		err = run(c, os.Stdout)
	}
	if err != nil {
		glog.Errorf("%+v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
