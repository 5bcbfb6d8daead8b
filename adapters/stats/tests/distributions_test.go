package tests

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributions_NormalQuantile(t *testing.T) {
	d := NewDistributions()

	assert.InDelta(t, 1.959964, d.NormalQuantile(0.975), 1e-5)
	assert.InDelta(t, 1.644854, d.NormalQuantile(0.95), 1e-5)
	assert.InDelta(t, 0.0, d.NormalQuantile(0.5), 1e-9)
}

func TestDistributions_TwoTailedNormalPValue(t *testing.T) {
	d := NewDistributions()

	// At the critical value the two-tailed p equals alpha exactly.
	assert.InDelta(t, 0.05, d.TwoTailedNormalPValue(1.959964), 1e-5)
	assert.InDelta(t, 1.0, d.TwoTailedNormalPValue(0), 1e-9)
	// Sign must not matter.
	assert.InDelta(t, d.TwoTailedNormalPValue(2.5), d.TwoTailedNormalPValue(-2.5), 1e-12)
}

func TestDistributions_ChiSquare(t *testing.T) {
	d := NewDistributions()

	// Well-known critical value: chi2(0.05, 1) = 3.841.
	assert.InDelta(t, 3.8415, d.ChiSquareQuantile(0.05, 1), 1e-3)
	// Quantile and p-value invert each other.
	crit := d.ChiSquareQuantile(0.05, 7)
	assert.InDelta(t, 0.05, d.ChiSquarePValue(crit, 7), 1e-9)
	// Degenerate degrees of freedom.
	assert.Equal(t, 1.0, d.ChiSquarePValue(10, 0))
}

func TestDistributions_Kolmogorov(t *testing.T) {
	d := NewDistributions()

	// Q(1.3581) is the classic 5% point of the Kolmogorov distribution.
	assert.InDelta(t, 0.05, d.KolmogorovPValue(1.3581), 2e-3)
	assert.Equal(t, 1.0, d.KolmogorovPValue(0))
	assert.Less(t, d.KolmogorovPValue(2.0), 0.001)

	// Critical value shrinks with sample size.
	assert.Greater(t, d.KolmogorovCritical(0.05, 10), d.KolmogorovCritical(0.05, 100))
	assert.InDelta(t, 1.3581/math.Sqrt(100), d.KolmogorovCritical(0.05, 100), 1e-3)
}
