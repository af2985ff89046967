package output

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"

	"splitstep/internal/sims/langevin"
)

// ErrNothingToPlot is returned when no series has two plottable points.
var ErrNothingToPlot = errors.New("nothing to plot")

// Series is one named density curve.
type Series struct {
	Name    string
	Records []langevin.Record
}

// PlotOptions sizes the rendered image.
type PlotOptions struct {
	Width  int
	Height int
	Title  string
}

// DefaultPlotOptions returns a 1024x640 canvas.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 1024, Height: 640}
}

// RenderDecay draws density against time on log-log axes as PNG. Points
// with non-positive time or density have no logarithm and are skipped.
func RenderDecay(w io.Writer, opts PlotOptions, series ...Series) error {
	var (
		out                    []chart.Series
		xmin, xmax, ymin, ymax = math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	)
	for i, s := range series {
		xs, ys := logPoints(s.Records)
		if len(xs) < 2 {
			continue
		}
		xmin, xmax = math.Min(xmin, floats.Min(xs)), math.Max(xmax, floats.Max(xs))
		ymin, ymax = math.Min(ymin, floats.Min(ys)), math.Max(ymax, floats.Max(ys))
		out = append(out, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if len(out) == 0 {
		return ErrNothingToPlot
	}

	xlo, xhi := decades(xmin, xmax)
	ylo, yhi := decades(ymin, ymax)
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "t",
			Range: &chart.ContinuousRange{Min: xlo, Max: xhi},
			Ticks: decadeTicks(xlo, xhi),
		},
		YAxis: chart.YAxis{
			Name:  "density",
			Range: &chart.ContinuousRange{Min: ylo, Max: yhi},
			Ticks: decadeTicks(ylo, yhi),
		},
		Series: out,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	return nil
}

func logPoints(recs []langevin.Record) (xs, ys []float64) {
	for _, r := range recs {
		if r.Time <= 0 || r.Density <= 0 {
			continue
		}
		xs = append(xs, math.Log10(r.Time))
		ys = append(ys, math.Log10(r.Density))
	}
	return xs, ys
}

// decades widens [lo, hi] to whole powers of ten, at least one apart.
func decades(lo, hi float64) (float64, float64) {
	lo, hi = math.Floor(lo), math.Ceil(hi)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func decadeTicks(lo, hi float64) []chart.Tick {
	var ticks []chart.Tick
	for e := lo; e <= hi; e++ {
		ticks = append(ticks, chart.Tick{Value: e, Label: fmt.Sprintf("1e%d", int(e))})
	}
	return ticks
}
