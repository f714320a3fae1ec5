package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbezverk/sortbench/bench"
	"github.com/sbezverk/sortbench/sort"
	"github.com/sbezverk/sortbench/store"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	// ErrInvalidChart is returned when a received chart cannot be decoded
	ErrInvalidChart = errors.New("invalid chart")
)

// Reporter hands a chart to whatever renders or stores it.
type Reporter interface {
	Report(context.Context, *Chart) error
}

// Line is one algorithm's time series within a chart.
type Line struct {
	Label string
	X     []uint64
	Y     []float64
}

// Chart describes a comparison plot: dataset size on X, seconds on Y.
type Chart struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	RunID  string
	Lines  []Line
}

// Comparison selects the algorithms plotted together on one chart.
type Comparison struct {
	Name       string
	Title      string
	Algorithms []sort.Algorithm
}

// Comparisons are the charts produced after every benchmark plan.
var Comparisons = []Comparison{
	{
		Name:       "all",
		Title:      "Insertion vs shaker vs merge vs std::sort",
		Algorithms: sort.Names(),
	},
	{
		Name:       "insertion_shaker",
		Title:      "Insertion vs shaker",
		Algorithms: []sort.Algorithm{sort.AlgInsertionSort, sort.AlgShakerSort},
	},
	{
		Name:       "merge_stdsort",
		Title:      "merge vs std::sort",
		Algorithms: []sort.Algorithm{sort.AlgMergeSort, sort.AlgStdSort},
	},
}

// Build assembles Comparisons from the series held in results. Algorithms
// without results are left out of a chart, and a chart left with no lines is
// not built at all.
func Build(results store.Manager) []*Chart {
	charts := make([]*Chart, 0, len(Comparisons))
	for _, c := range Comparisons {
		chart := &Chart{
			Name:   c.Name,
			Title:  c.Title,
			XLabel: "Dataset size",
			YLabel: "Time to sort (s)",
		}
		for _, a := range c.Algorithms {
			series, ok := results.Get(a.String()).(*bench.Series)
			if !ok || series == nil {
				continue
			}
			chart.RunID = series.RunID
			chart.Lines = append(chart.Lines, Line{
				Label: a.String(),
				X:     series.Sizes(),
				Y:     series.Seconds(),
			})
		}
		if len(chart.Lines) == 0 {
			continue
		}
		charts = append(charts, chart)
	}
	return charts
}

// ToStruct encodes a chart as a protobuf Struct for the wire.
func ToStruct(c *Chart) (*structpb.Struct, error) {
	lines := make([]interface{}, 0, len(c.Lines))
	for _, l := range c.Lines {
		x := make([]interface{}, len(l.X))
		for i, v := range l.X {
			x[i] = float64(v)
		}
		y := make([]interface{}, len(l.Y))
		for i, v := range l.Y {
			y[i] = v
		}
		lines = append(lines, map[string]interface{}{
			"label": l.Label,
			"x":     x,
			"y":     y,
		})
	}
	return structpb.NewStruct(map[string]interface{}{
		"name":    c.Name,
		"title":   c.Title,
		"x_label": c.XLabel,
		"y_label": c.YLabel,
		"run_id":  c.RunID,
		"lines":   lines,
	})
}

// FromStruct decodes a chart produced by ToStruct.
func FromStruct(s *structpb.Struct) (*Chart, error) {
	f := s.GetFields()
	c := &Chart{
		Name:   f["name"].GetStringValue(),
		Title:  f["title"].GetStringValue(),
		XLabel: f["x_label"].GetStringValue(),
		YLabel: f["y_label"].GetStringValue(),
		RunID:  f["run_id"].GetStringValue(),
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidChart)
	}
	for i, v := range f["lines"].GetListValue().GetValues() {
		lf := v.GetStructValue().GetFields()
		l := Line{Label: lf["label"].GetStringValue()}
		for _, x := range lf["x"].GetListValue().GetValues() {
			l.X = append(l.X, uint64(x.GetNumberValue()))
		}
		for _, y := range lf["y"].GetListValue().GetValues() {
			l.Y = append(l.Y, y.GetNumberValue())
		}
		if len(l.X) != len(l.Y) {
			return nil, fmt.Errorf("%w: line %d has %d sizes and %d times", ErrInvalidChart, i, len(l.X), len(l.Y))
		}
		c.Lines = append(c.Lines, l)
	}
	return c, nil
}
