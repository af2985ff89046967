// Package sweep runs independent simulations over a range of growth rates to
// bracket the absorbing-phase transition.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"splitstep/internal/sims/langevin"
)

var (
	// ErrNoValues is returned when a sweep has nothing to run.
	ErrNoValues = errors.New("sweep: no values of a")
	// ErrDuplicateValue is returned when a value of a appears twice. Both
	// runs would write the same log file.
	ErrDuplicateValue = errors.New("sweep: duplicate value of a")
)

// Attach returns the sinks of the run for one value of a and a hook called
// with its result. finish may be nil.
type Attach func(ctx context.Context, cfg langevin.Config) (sinks []langevin.RecordSink, finish func(langevin.Result) error, err error)

// Options controls a sweep.
type Options struct {
	Base     langevin.Config
	Values   []float64
	Parallel int
	Attach   Attach
	Logger   *zap.Logger
}

// Outcome is the result of the run at one value of a.
type Outcome struct {
	A float64
	langevin.Result
}

// Values returns steps evenly spaced growth rates from..to inclusive.
// Repeated values, as produced when from equals to, are collapsed.
func Values(from, to float64, steps int) []float64 {
	switch {
	case steps <= 0:
		return nil
	case steps == 1 || from == to:
		return []float64{from}
	}
	return slices.Compact(floats.Span(make([]float64, steps), from, to))
}

// Run performs one simulation per value with at most Parallel of them at a
// time. The first failing run cancels the others. Outcomes are sorted by a.
func Run(ctx context.Context, opts Options) ([]Outcome, error) {
	if len(opts.Values) == 0 {
		return nil, ErrNoValues
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parallel := opts.Parallel
	if parallel < 1 {
		parallel = 1
	}

	// Validate everything up front so a bad value does not surface halfway
	// through a long sweep.
	cfgs := make([]langevin.Config, len(opts.Values))
	seen := make(map[float64]bool, len(opts.Values))
	for i, a := range opts.Values {
		if seen[a] {
			return nil, fmt.Errorf("%w: %g", ErrDuplicateValue, a)
		}
		seen[a] = true
		cfg := opts.Base
		cfg.Params.A = a
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("a=%g: %w", a, err)
		}
		cfgs[i] = cfg
	}

	logger.Info("sweep starting",
		zap.Int("runs", len(cfgs)),
		zap.Int("parallel", parallel),
		zap.Float64s("a", opts.Values))

	start := time.Now()
	outcomes := make([]Outcome, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := runOne(gctx, cfg, opts.Attach, logger.With(zap.Float64("a", cfg.Params.A)))
			if err != nil {
				return fmt.Errorf("a=%g: %w", cfg.Params.A, err)
			}
			outcomes[i] = Outcome{A: cfg.Params.A, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].A < outcomes[j].A })
	logger.Info("sweep finished", zap.Duration("elapsed", time.Since(start)))
	return outcomes, nil
}

func runOne(ctx context.Context, cfg langevin.Config, attach Attach, logger *zap.Logger) (langevin.Result, error) {
	var (
		sinks  []langevin.RecordSink
		finish func(langevin.Result) error
	)
	if attach != nil {
		var err error
		sinks, finish, err = attach(ctx, cfg)
		if err != nil {
			return langevin.Result{}, err
		}
	}
	sim, err := langevin.New(cfg, langevin.WithLogger(logger), langevin.WithSinks(sinks...))
	if err != nil {
		// finish owns the sinks' resources even when no run took place.
		if finish != nil {
			err = errors.Join(err, finish(langevin.Result{}))
		}
		return langevin.Result{}, err
	}
	res, runErr := sim.Run(ctx)
	if finish != nil {
		if err := finish(res); err != nil && runErr == nil {
			runErr = err
		}
	}
	return res, runErr
}

// Critical brackets the transition: the largest a that was absorbed and the
// smallest a above it that survived. ok is false unless both exist.
func Critical(outcomes []Outcome) (absorbed, active float64, ok bool) {
	found := false
	for _, o := range outcomes {
		if o.Converged {
			absorbed, found = o.A, true
		}
	}
	if !found {
		return 0, 0, false
	}
	for _, o := range outcomes {
		if !o.Converged && o.A > absorbed {
			return absorbed, o.A, true
		}
	}
	return 0, 0, false
}

// WriteTable prints the sweep summary.
func WriteTable(w io.Writer, outcomes []Outcome) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#666666"))).
		Headers("a", "converged", "time", "density", "elapsed").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, o := range outcomes {
		t.Row(
			strconv.FormatFloat(o.A, 'g', -1, 64),
			strconv.FormatBool(o.Converged),
			fmt.Sprintf("%g", o.Time),
			fmt.Sprintf("%.6g", o.Density),
			o.Elapsed.Round(time.Millisecond).String(),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
