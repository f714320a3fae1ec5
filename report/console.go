package report

import (
	"context"
	"fmt"
	"io"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var lineColors = []color.Attribute{
	color.FgMagenta,
	color.FgBlue,
	color.FgCyan,
	color.FgYellow,
	color.FgGreen,
}

// Console prints charts as plain tables, one colored block per line.
type Console struct {
	w io.Writer
}

var _ Reporter = &Console{}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Report(ctx context.Context, chart *Chart) error {
	title := color.New(color.Bold)
	if _, err := title.Fprintf(c.w, "%s (%s)\n", chart.Title, chart.Name); err != nil {
		return err
	}
	for i, l := range chart.Lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		lc := color.New(lineColors[i%len(lineColors)])
		for j := range l.X {
			if _, err := lc.Fprintf(c.w, "  %-16s %12s %12.6f\n", l.Label, humanize.Comma(int64(l.X[j])), l.Y[j]); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(c.w)

	return err
}
