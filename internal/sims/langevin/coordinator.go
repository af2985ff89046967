package langevin

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"splitstep/internal/core"
)

// absorbingThreshold is the lattice sum below which the field is considered
// to have reached the absorbing state.
const absorbingThreshold = 1e-7

// stepsPerUnitTime is ceil(1/dt).
func stepsPerUnitTime(dt float64) int {
	return int(math.Ceil(1 / dt))
}

// reportEvery is the checkpoint spacing in iterations at iteration iter; the
// cadence thins out as the run gets longer.
func reportEvery(iter, unit int) int {
	switch {
	case iter <= 100*unit:
		return 5 * unit
	case iter <= 10000*unit:
		return 50 * unit
	default:
		return 500 * unit
	}
}

func isCheckpoint(iter, unit int) bool {
	return iter%reportEvery(iter, unit) == 0
}

// coordinator runs on whichever worker the barrier elects. Its fields are
// written only between the two rendezvous of a generation.
type coordinator struct {
	ctx     context.Context
	lattice *core.Lattice
	dt      float64
	unit    int
	sinks   []RecordSink
	watch   *core.Stopwatch
	logger  *zap.Logger

	iter      int
	stop      bool
	converged bool
	err       error
}

// boundary publishes generation iter and decides whether the run goes on.
func (c *coordinator) boundary(iter int) {
	c.lattice.Update()
	c.iter = iter

	if err := c.ctx.Err(); err != nil {
		c.stop, c.err = true, err
		return
	}
	if !isCheckpoint(iter, c.unit) {
		return
	}

	wall := c.watch.Stop()
	sum := c.lattice.Sum()
	t := float64(iter) * c.dt
	if sum < absorbingThreshold {
		c.logger.Info("absorbing state reached",
			zap.Int("iteration", iter),
			zap.Float64("time", t),
			zap.Float64("sum", sum))
		c.stop, c.converged = true, true
		return
	}

	rec := Record{
		Iteration: iter,
		Time:      t,
		Density:   sum / float64(c.lattice.Len()),
		Wall:      wall,
	}
	for _, s := range c.sinks {
		if err := s.Emit(rec); err != nil {
			c.stop = true
			c.err = fmt.Errorf("emit record at t=%g: %w", t, err)
			return
		}
	}
	c.watch.Start()
}
