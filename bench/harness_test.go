package bench

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/sbezverk/sortbench/config"
	"github.com/sbezverk/sortbench/dataset"
	"github.com/sbezverk/sortbench/record"
	"github.com/sbezverk/sortbench/sort"
	"github.com/sbezverk/sortbench/store"
	"github.com/stretchr/testify/require"
)

type memLoader map[int][]record.Record

func (m memLoader) Load(index int) ([]record.Record, error) {
	recs, ok := m[index]
	if !ok {
		return nil, fmt.Errorf("dataset %d does not exist", index)
	}
	out := make([]record.Record, len(recs))
	copy(out, recs)
	return out, nil
}

type memSink struct {
	written map[string][]record.Record
	fail    error
}

func (m *memSink) Write(algorithm string, index int, recs []record.Record) error {
	if m.fail != nil {
		return m.fail
	}
	if m.written == nil {
		m.written = make(map[string][]record.Record)
	}
	m.written[fmt.Sprintf("%s/%d", algorithm, index)] = recs
	return nil
}

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func randomRecords(n int, r *rand.Rand) []record.Record {
	recs := make([]record.Record, n)
	for i := range recs {
		recs[i] = record.Record{
			Name:   fmt.Sprintf("name-%03d", r.Intn(500)),
			Job:    "private",
			Unit:   fmt.Sprintf("U%d", r.Intn(10)),
			Salary: r.Intn(100000),
		}
	}
	return recs
}

func TestRunOrdersRecords(t *testing.T) {
	input := []record.Record{
		{Name: "B", Job: "x", Unit: "U2", Salary: 100},
		{Name: "A", Job: "y", Unit: "U1", Salary: 200},
		{Name: "A", Job: "z", Unit: "U1", Salary: 150},
	}
	expect := []record.Record{
		{Name: "A", Job: "z", Unit: "U1", Salary: 150},
		{Name: "A", Job: "y", Unit: "U1", Salary: 200},
		{Name: "B", Job: "x", Unit: "U2", Salary: 100},
	}
	for _, a := range sort.Names() {
		t.Run(a.String(), func(t *testing.T) {
			sink := &memSink{}
			h := &Harness{Loader: memLoader{1: input}, Sink: sink, Verify: true}
			series, err := h.Run(a.String(), 1)
			require.NoError(t, err)
			require.Len(t, series.Samples, 1)
			if diff := deep.Equal(expect, sink.written[a.String()+"/1"]); diff != nil {
				t.Errorf("%+v", diff)
			}
		})
	}
}

func TestRunOverDatasetFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, dataset.Prepare(out))
	r := rand.New(rand.NewSource(5))
	for i, n := range []int{10, 100, 1000} {
		f, err := os.Create(filepath.Join(in, fmt.Sprintf("dataset_%d.csv", i+1)))
		require.NoError(t, err)
		require.NoError(t, dataset.Write(f, randomRecords(n, r)))
		require.NoError(t, f.Close())
	}
	h := New(dataset.NewLoader(in), dataset.NewSink(out), true)

	for _, a := range sort.Names() {
		t.Run(a.String(), func(t *testing.T) {
			series, err := h.Run(a.String(), 3)
			require.NoError(t, err)
			require.Equal(t, []uint64{10, 100, 1000}, series.Sizes())
			secs := series.Seconds()
			require.Len(t, secs, 3)
			for _, s := range secs {
				require.GreaterOrEqual(t, s, 0.0)
			}
			written, err := dataset.NewLoader(filepath.Join(out, a.OutputDir())).Load(3)
			require.NoError(t, err)
			require.Len(t, written, 1000)
			require.True(t, sort.IsSorted(written, record.Less))
		})
	}
}

func TestRunUsesClock(t *testing.T) {
	h := &Harness{
		Loader: memLoader{1: randomRecords(5, rand.New(rand.NewSource(1))), 2: nil},
		Clock:  &stepClock{step: 250 * time.Millisecond},
		RunID:  "run-1",
	}
	series, err := h.Run(sort.AlgInsertionSort.String(), 2)
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.25}, series.Seconds())
	require.Equal(t, []uint64{5, 0}, series.Sizes())
	require.Equal(t, "run-1", series.RunID)
	require.Equal(t, sort.AlgInsertionSort.String(), series.Key())
}

func TestRunMissingDataset(t *testing.T) {
	h := &Harness{Loader: memLoader{1: randomRecords(3, rand.New(rand.NewSource(2)))}, Sink: &memSink{}}
	series, err := h.Run(sort.AlgMergeSort.String(), 3)
	require.Error(t, err)
	var ie *IndexError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, 2, ie.Index)
	require.Equal(t, sort.AlgMergeSort.String(), ie.Algorithm)
	require.Equal(t, []uint64{3}, series.Sizes())
}

func TestRunSinkFailure(t *testing.T) {
	failure := errors.New("disk full")
	h := &Harness{Loader: memLoader{1: nil}, Sink: &memSink{fail: failure}}
	_, err := h.Run(sort.AlgStdSort.String(), 1)
	require.ErrorIs(t, err, failure)
}

func TestRunUnknownAlgorithm(t *testing.T) {
	h := &Harness{Loader: memLoader{}}
	_, err := h.Run("bogo_sort", 1)
	require.ErrorIs(t, err, sort.ErrUnknownAlgorithm)
}

func TestRunPlan(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	loader := memLoader{1: randomRecords(20, r), 2: randomRecords(40, r)}
	h := &Harness{Loader: loader, Sink: &memSink{}, Verify: true}
	results := store.NewStore()
	defer results.Stop()

	runs := []config.Run{
		{Algorithm: sort.AlgShakerSort.String(), Datasets: 2},
		{Algorithm: sort.AlgStdSort.String(), Datasets: 1},
	}
	require.NoError(t, h.RunPlan(runs, results))

	shaker, ok := results.Get(sort.AlgShakerSort.String()).(*Series)
	require.True(t, ok)
	require.Equal(t, []uint64{20, 40}, shaker.Sizes())
	std, ok := results.Get(sort.AlgStdSort.String()).(*Series)
	require.True(t, ok)
	require.Equal(t, []uint64{20}, std.Sizes())
}

func TestRunPlanStopsAtFailure(t *testing.T) {
	h := &Harness{Loader: memLoader{1: nil}, Sink: &memSink{}}
	results := store.NewStore()
	defer results.Stop()

	runs := []config.Run{
		{Algorithm: sort.AlgMergeSort.String(), Datasets: 2},
		{Algorithm: sort.AlgStdSort.String(), Datasets: 1},
	}
	err := h.RunPlan(runs, results)
	var ie *IndexError
	require.True(t, errors.As(err, &ie))
	require.NotNil(t, results.Get(sort.AlgMergeSort.String()))
	require.Nil(t, results.Get(sort.AlgStdSort.String()))
}
