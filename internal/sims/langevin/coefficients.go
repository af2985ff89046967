package langevin

import "math"

// degenerateBeta is the threshold below which lambda uses its beta→0 limit.
const degenerateBeta = 1e-5

// Coefficients are derived once per run and read-only afterwards.
type Coefficients struct {
	Beta            float64
	Lambda          float64
	PoissonArgConst float64
	AlphaConst      float64
}

// DeriveCoefficients computes the run constants of the split-step scheme.
func DeriveCoefficients(p Params) Coefficients {
	beta := p.A - 2*p.DD/(p.Dx*p.Dx)
	var lambda float64
	if beta < degenerateBeta {
		lambda = limitLambda(p.Sigma, p.Dt)
	} else {
		lambda = closedFormLambda(beta, p.Sigma, p.Dt)
	}
	return Coefficients{
		Beta:            beta,
		Lambda:          lambda,
		PoissonArgConst: lambda * math.Exp(beta*p.Dt),
		AlphaConst:      p.D / (p.Dx * p.Dx),
	}
}

func closedFormLambda(beta, sigma, dt float64) float64 {
	return 2 * beta / (sigma * sigma * math.Expm1(beta*dt))
}

// limitLambda is closedFormLambda as beta→0, using beta/(e^(beta·dt)−1) → 1/dt.
func limitLambda(sigma, dt float64) float64 {
	return 2 / (sigma * sigma * dt)
}
