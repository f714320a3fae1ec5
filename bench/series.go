package bench

import (
	"time"

	"github.com/sbezverk/sortbench/store"
)

// Sample is the time one algorithm took to sort one dataset.
type Sample struct {
	Index   int
	Size    uint64
	Elapsed time.Duration
}

// Seconds returns the elapsed time as a real number of seconds.
func (s Sample) Seconds() float64 {
	return s.Elapsed.Seconds()
}

// Series holds the samples of one algorithm in dataset index order.
type Series struct {
	Algorithm string
	RunID     string
	Samples   []Sample
}

var _ store.Storable = &Series{}

func (s *Series) Key() string {
	return s.Algorithm
}

func (s *Series) add(sample Sample) {
	s.Samples = append(s.Samples, sample)
}

// Sizes returns dataset sizes, index aligned with Seconds.
func (s *Series) Sizes() []uint64 {
	x := make([]uint64, len(s.Samples))
	for i, sm := range s.Samples {
		x[i] = sm.Size
	}
	return x
}

// Seconds returns the elapsed times, index aligned with Sizes.
func (s *Series) Seconds() []float64 {
	y := make([]float64, len(s.Samples))
	for i, sm := range s.Samples {
		y[i] = sm.Seconds()
	}
	return y
}
