package bench

import (
	"errors"
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/golang/glog"
	uuid "github.com/satori/go.uuid"
	"github.com/sbezverk/sortbench/config"
	"github.com/sbezverk/sortbench/record"
	"github.com/sbezverk/sortbench/sort"
	"github.com/sbezverk/sortbench/store"
)

var (
	// ErrNotSorted is returned by a verifying harness when an algorithm leaves a dataset out of order
	ErrNotSorted = errors.New("dataset is not sorted")
)

// Clock is the time source of the harness. Timestamps must carry a
// monotonic reading so that the difference of two is never negative.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is backed by time.Now.
var SystemClock Clock = systemClock{}

// Loader provides the dataset with the given index.
type Loader interface {
	Load(index int) ([]record.Record, error)
}

// Sink persists a sorted dataset.
type Sink interface {
	Write(algorithm string, index int, recs []record.Record) error
}

// IndexError reports the dataset index a benchmark run stopped at.
type IndexError struct {
	Algorithm string
	Index     int
	Err       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: dataset %d: %v", e.Algorithm, e.Index, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Harness times sorting algorithms over a sequence of datasets.
type Harness struct {
	Loader Loader
	Sink   Sink
	Clock  Clock
	// Verify checks every sorted dataset before it is written out, outside the timed region.
	Verify bool
	RunID  string
}

// New returns a harness using the system clock and a fresh run id.
func New(l Loader, s Sink, verify bool) *Harness {
	return &Harness{
		Loader: l,
		Sink:   s,
		Clock:  SystemClock,
		Verify: verify,
		RunID:  uuid.NewV4().String(),
	}
}

// Run sorts datasets 1..count with the named algorithm. Iterations run one
// after another: load, sort between two clock readings, persist, append the
// sample. The first failing index stops the run; the samples collected up to
// that point are returned together with an *IndexError.
func (h *Harness) Run(algorithm string, count int) (*Series, error) {
	fn, err := sort.Lookup[record.Record](algorithm)
	if err != nil {
		return nil, err
	}
	clock := h.Clock
	if clock == nil {
		clock = SystemClock
	}
	series := &Series{
		Algorithm: algorithm,
		RunID:     h.RunID,
		Samples:   make([]Sample, 0, count),
	}
	for i := 1; i <= count; i++ {
		data, err := h.Loader.Load(i)
		if err != nil {
			return series, &IndexError{Algorithm: algorithm, Index: i, Err: err}
		}

		start := clock.Now()
		fn(data, record.Less)
		finish := clock.Now()

		elapsed := finish.Sub(start)
		if elapsed < 0 {
			elapsed = 0
		}
		if h.Verify && !sort.IsSorted(data, record.Less) {
			return series, &IndexError{Algorithm: algorithm, Index: i, Err: ErrNotSorted}
		}
		if h.Sink != nil {
			if err := h.Sink.Write(algorithm, i, data); err != nil {
				return series, &IndexError{Algorithm: algorithm, Index: i, Err: err}
			}
		}
		series.add(Sample{Index: i, Size: uint64(len(data)), Elapsed: elapsed})
		glog.Infof("%s: dataset_n=%d size=%s time=%f", algorithm, i, humanize.Comma(int64(len(data))), elapsed.Seconds())
	}

	return series, nil
}

// RunPlan executes every run in order and stores the resulting series in
// results. A failing run is stored with the samples it completed before the
// error is returned.
func (h *Harness) RunPlan(runs []config.Run, results store.Manager) error {
	for _, r := range runs {
		glog.Infof("benchmarking %s over %d datasets", r.Algorithm, r.Datasets)
		series, err := h.Run(r.Algorithm, r.Datasets)
		if series != nil {
			if serr := results.Add(series); serr != nil {
				return fmt.Errorf("failed to store results of %s with error: %w", r.Algorithm, serr)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
