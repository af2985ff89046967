package langevin

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"splitstep/internal/core"
	pkgcore "splitstep/pkg/core"
)

// Option customises a Simulation.
type Option func(*Simulation)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSinks adds record sinks. Records reach them in the given order.
func WithSinks(sinks ...RecordSink) Option {
	return func(s *Simulation) {
		for _, sink := range sinks {
			if sink != nil {
				s.sinks = append(s.sinks, sink)
			}
		}
	}
}

// Simulation integrates the stochastic field on a periodic lattice. The
// lattice is split into Workers equal shards, each with its own pair of
// sampling streams.
type Simulation struct {
	cfg    Config
	coeff  Coefficients
	kernel kernel

	lattice  *core.Lattice
	shards   []*shard
	samplers []*pkgcore.Sampler

	sinks  []RecordSink
	logger *zap.Logger

	iter int
}

// New validates cfg and prepares the lattice with its initial condition.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:    cfg,
		coeff:  DeriveCoefficients(cfg.Params),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.kernel = newKernel(cfg.Params, s.coeff)
	s.lattice = core.NewLattice(cfg.N())
	s.Reset()
	return s, nil
}

// Reset reseeds every shard's streams and rewrites the initial condition.
func (s *Simulation) Reset() {
	ranges := partition(s.cfg.N(), s.cfg.Workers)
	s.shards = make([]*shard, len(ranges))
	s.samplers = make([]*pkgcore.Sampler, len(ranges))
	for i, r := range ranges {
		smp := pkgcore.NewSampler(s.cfg.GammaSeed, s.cfg.PoissonSeed, uint64(i),
			s.logger.With(zap.Int("shard", i)))
		s.samplers[i] = smp
		s.shards[i] = &shard{index: i, start: r[0], end: r[1], sampler: smp}
	}
	core.Initializers()[s.cfg.Initial](s.lattice, s.cfg.InitialDensity)
	s.iter = 0
}

// Config returns the run configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Coefficients returns the derived run constants.
func (s *Simulation) Coefficients() Coefficients { return s.coeff }

// Lattice exposes the field. It must not be read while Run is in progress.
func (s *Simulation) Lattice() *core.Lattice { return s.lattice }

// Iteration reports the last completed generation.
func (s *Simulation) Iteration() int { return s.iter }

// Time reports the simulated time of the current generation.
func (s *Simulation) Time() float64 { return float64(s.iter) * s.cfg.Params.Dt }

// Density reports the mean field value of the current generation.
func (s *Simulation) Density() float64 { return s.lattice.Sum() / float64(s.lattice.Len()) }

// Absorbed reports whether the current generation is in the absorbing state.
func (s *Simulation) Absorbed() bool { return s.lattice.Sum() < absorbingThreshold }

// Step advances one generation on the calling goroutine, visiting shards in
// order with their own streams. k Steps match a k-generation Run exactly.
func (s *Simulation) Step() error {
	iter := s.iter + 1
	for _, sh := range s.shards {
		if err := s.kernel.advance(s.lattice, sh, iter); err != nil {
			return err
		}
	}
	s.lattice.Update()
	s.iter = iter
	return nil
}

// Run integrates until round(timespan/dt) iterations have been reached or
// the field is absorbed. Generation numbering starts at 1 so reported times
// are never zero.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	total := s.cfg.Iterations()
	s.logCoefficients()
	s.logger.Info("run starting",
		zap.Int("sites", s.lattice.Len()),
		zap.Int("workers", len(s.shards)),
		zap.Int("iterations", total),
		zap.String("initial", s.cfg.Initial))

	started := time.Now()
	watch := core.NewStopwatch()
	coord := &coordinator{
		ctx:     ctx,
		lattice: s.lattice,
		dt:      s.cfg.Params.Dt,
		unit:    stepsPerUnitTime(s.cfg.Params.Dt),
		sinks:   s.sinks,
		watch:   watch,
		logger:  s.logger,
		iter:    s.iter,
	}
	barrier := core.NewBarrier(len(s.shards))
	first := s.iter + 1

	watch.Start()
	var g errgroup.Group
	for _, sh := range s.shards {
		g.Go(func() error {
			return s.work(sh, first, total, barrier, coord)
		})
	}
	err := g.Wait()
	s.iter = coord.iter

	res := Result{
		Iterations: coord.iter,
		Converged:  coord.converged,
		Time:       s.Time(),
		Density:    s.Density(),
		Elapsed:    time.Since(started),
	}
	s.logWarnings()
	if err == nil {
		err = coord.err
	}
	if err != nil {
		return res, err
	}
	s.logger.Info("run finished",
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Float64("time", res.Time),
		zap.Float64("density", res.Density),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// work is one worker's whole run: compute its shard, meet the others, let
// the elected worker publish the generation, then meet again so every worker
// sees the same stop decision.
func (s *Simulation) work(sh *shard, first, total int, barrier *core.Barrier, coord *coordinator) error {
	for iter := first; iter < total; iter++ {
		if err := s.kernel.advance(s.lattice, sh, iter); err != nil {
			barrier.Break()
			return err
		}
		elected, err := barrier.Wait()
		if err != nil {
			return ignoreBroken(err)
		}
		if elected {
			coord.boundary(iter)
		}
		if _, err := barrier.Wait(); err != nil {
			return ignoreBroken(err)
		}
		if coord.stop {
			return nil
		}
	}
	return nil
}

// ignoreBroken drops ErrBarrierBroken: the worker that broke the barrier
// reports the real cause.
func ignoreBroken(err error) error {
	if errors.Is(err, core.ErrBarrierBroken) {
		return nil
	}
	return err
}

func (s *Simulation) logCoefficients() {
	s.logger.Info("coefficients",
		zap.Float64("beta", s.coeff.Beta),
		zap.Float64("alpha_const", s.coeff.AlphaConst),
		zap.Float64("lambda", s.coeff.Lambda),
		zap.Float64("poisson_arg_const", s.coeff.PoissonArgConst))
}

func (s *Simulation) logWarnings() {
	total := 0
	for _, smp := range s.samplers {
		total += smp.Warnings()
	}
	if total > 0 {
		s.logger.Warn("invalid gamma arguments were replaced", zap.Int("count", total))
	}
}
