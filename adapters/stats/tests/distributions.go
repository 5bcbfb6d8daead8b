package tests

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the reference distributions
// used across the battery, so CDF and quantile calculations are never
// fragmented per test.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// NormalCDF computes the cumulative distribution function of the
// standard normal.
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the quantile function of the standard normal
// (inverse CDF).
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TwoTailedNormalPValue computes 2*(1-Phi(|z|)) for a Z statistic.
func (d *Distributions) TwoTailedNormalPValue(z float64) float64 {
	return 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
}

// ChiSquarePValue computes the right-tail p-value for a chi-square
// statistic.
func (d *Distributions) ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return 1 - chiDist.CDF(chiSquare)
}

// ChiSquareQuantile computes the critical value of the chi-square
// distribution at the given right-tail probability.
func (d *Distributions) ChiSquareQuantile(rightTail float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 0
	}
	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return chiDist.Quantile(1 - rightTail)
}

// KolmogorovPValue computes the p-value of the Kolmogorov statistic
// lambda = sqrt(n)*D using the asymptotic series
// Q(lambda) = 2 * sum_{k>=1} (-1)^(k-1) * exp(-2 k^2 lambda^2).
// gonum has no Kolmogorov distribution, so the series is evaluated
// directly; it converges in a handful of terms for lambda > 0.2.
func (d *Distributions) KolmogorovPValue(lambda float64) float64 {
	if lambda <= 0 {
		return 1.0
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k)*float64(k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// KolmogorovCritical approximates the critical D value for sample size
// n at significance alpha using the asymptotic quantile
// c(alpha) = sqrt(-ln(alpha/2)/2).
func (d *Distributions) KolmogorovCritical(alpha float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	c := math.Sqrt(-math.Log(alpha/2) / 2)
	return c / math.Sqrt(float64(n))
}
