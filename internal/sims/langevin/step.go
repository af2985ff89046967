package langevin

import "splitstep/internal/core"

// sampler is the pair of draws the update needs. *pkgcore.Sampler satisfies it.
type sampler interface {
	Gamma(shape, scale float64) float64
	Poisson(mean float64) (float64, error)
}

// kernel holds everything the per-site update reads.
type kernel struct {
	coeff Coefficients
	// 2/σ², so that mu+1 = alpha·twoOverSigma2
	twoOverSigma2 float64
	// b·dt of the decay correction
	bdt float64
}

func newKernel(p Params, c Coefficients) kernel {
	return kernel{
		coeff:         c,
		twoOverSigma2: 2 / (p.Sigma * p.Sigma),
		bdt:           p.B * p.Dt,
	}
}

// site advances one lattice value given its current value and neighbours.
//
// The linear part (diffusion plus growth) is solved exactly by a Poisson
// draw folded into the shape of a Gamma draw; the quadratic decay is then
// applied in closed form.
func (k kernel) site(s sampler, rho, left, right float64) (float64, error) {
	poissonMean := k.coeff.PoissonArgConst * rho
	alpha := k.coeff.AlphaConst * (left + right)
	shape := alpha * k.twoOverSigma2
	if poissonMean != 0 {
		n, err := s.Poisson(poissonMean)
		if err != nil {
			return 0, err
		}
		shape += n
	}
	pStar := s.Gamma(shape, 1) / k.coeff.Lambda
	return pStar / (1 + k.bdt*pStar), nil
}

// shard is a contiguous range of sites owned by one worker for the whole run.
type shard struct {
	index      int
	start, end int
	sampler    sampler
}

// advance stages the next generation of every site in the shard.
func (k kernel) advance(l *core.Lattice, sh *shard, iter int) error {
	for i := sh.start; i < sh.end; i++ {
		next, err := k.site(sh.sampler, l.Get(i), l.Left(i), l.Right(i))
		if err != nil {
			return &StepError{Iteration: iter, Site: i, Err: err}
		}
		l.Set(next, i)
	}
	return nil
}

// partition splits n sites into count equal contiguous ranges.
func partition(n, count int) [][2]int {
	size := n / count
	ranges := make([][2]int, count)
	for i := range ranges {
		ranges[i] = [2]int{i * size, (i + 1) * size}
	}
	return ranges
}
