package langevin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCoefficientsDefaults(t *testing.T) {
	p := DefaultConfig().Params
	c := DeriveCoefficients(p)

	assert.InDelta(t, 1.34701, c.Beta, 1e-12)
	assert.Equal(t, 0.25, c.AlphaConst)
	assert.InDelta(t, closedFormLambda(c.Beta, p.Sigma, p.Dt), c.Lambda, 0)
	assert.InDelta(t, c.Lambda*math.Exp(c.Beta*p.Dt), c.PoissonArgConst, 1e-12)
}

func TestLambdaLimitAgreesWithClosedForm(t *testing.T) {
	const sigma, dt = math.Sqrt2, 0.1
	limit := limitLambda(sigma, dt)
	for _, beta := range []float64{1e-6, 1e-9, 1e-12} {
		assert.InEpsilon(t, limit, closedFormLambda(beta, sigma, dt), 1e-6, "beta=%g", beta)
	}
}

func TestDegenerateBetaUsesLimit(t *testing.T) {
	p := DefaultConfig().Params
	p.A = 2 * p.DD // beta == 0
	c := DeriveCoefficients(p)
	assert.Zero(t, c.Beta)
	assert.Equal(t, limitLambda(p.Sigma, p.Dt), c.Lambda)
	assert.Equal(t, c.Lambda, c.PoissonArgConst)

	p.A = -1
	c = DeriveCoefficients(p)
	assert.Less(t, c.Beta, 0.0)
	assert.Equal(t, limitLambda(p.Sigma, p.Dt), c.Lambda)
	assert.False(t, math.IsNaN(c.PoissonArgConst))
}

func TestCadence(t *testing.T) {
	assert.Equal(t, 10, stepsPerUnitTime(0.1))
	assert.Equal(t, 4, stepsPerUnitTime(0.3))
	assert.Equal(t, 1, stepsPerUnitTime(1))

	const unit = 10
	for _, tc := range []struct {
		iter int
		want bool
	}{
		{1, false},
		{49, false},
		{50, true},
		{1000, true},
		{1050, false},
		{1500, true},
		{100000, true},
		{100500, false},
		{105000, true},
	} {
		assert.Equal(t, tc.want, isCheckpoint(tc.iter, unit), "iter=%d", tc.iter)
	}
	assert.Equal(t, 50, reportEvery(1000, unit))
	assert.Equal(t, 500, reportEvery(1001, unit))
	assert.Equal(t, 5000, reportEvery(100001, unit))
}
