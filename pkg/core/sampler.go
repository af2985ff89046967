package core

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrPoissonMean reports a Poisson draw requested with a mean that is not a
// finite positive number. Callers bypass the sampler for a zero mean.
var ErrPoissonMean = errors.New("core: poisson mean must be finite and > 0")

// Sampler draws Gamma and Poisson variates from two dedicated streams.
// A Sampler is not safe for concurrent use; give each goroutine its own.
type Sampler struct {
	gamma   distuv.Gamma
	poisson distuv.Poisson

	logger   *zap.Logger
	warnings int
}

// NewSampler builds a sampler whose gamma stream is (gammaSeed, stream) and
// whose poisson stream is (poissonSeed, stream).
func NewSampler(gammaSeed, poissonSeed, stream uint64, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{
		gamma:   distuv.Gamma{Alpha: 1, Beta: 1, Src: NewSource(gammaSeed, stream)},
		poisson: distuv.Poisson{Lambda: 1, Src: NewSource(poissonSeed, stream)},
		logger:  logger,
	}
}

// Gamma draws from Gamma(shape, scale). A non-positive shape yields 0 without
// touching the stream. A NaN or infinite shape is logged and also yields 0.
// A scale that is not a finite positive number is logged and replaced by 1.
func (s *Sampler) Gamma(shape, scale float64) float64 {
	if math.IsNaN(shape) || math.IsInf(shape, 0) {
		s.warnings++
		s.logger.Warn("gamma shape is not a finite number", zap.Float64("shape", shape))
		return 0
	}
	if shape <= 0 {
		return 0
	}
	if !(scale > 0) || math.IsInf(scale, 1) {
		s.warnings++
		s.logger.Warn("gamma scale is not a finite positive number, using 1", zap.Float64("scale", scale))
		scale = 1
	}
	s.gamma.Alpha = shape
	s.gamma.Beta = 1 / scale
	return s.gamma.Rand()
}

// Poisson draws from Poisson(mean).
func (s *Sampler) Poisson(mean float64) (float64, error) {
	if !(mean > 0) || math.IsInf(mean, 1) {
		return 0, fmt.Errorf("%w: got %v", ErrPoissonMean, mean)
	}
	s.poisson.Lambda = mean
	return s.poisson.Rand(), nil
}

// Warnings reports how many invalid Gamma shapes and scales have been replaced.
func (s *Sampler) Warnings() int { return s.warnings }
