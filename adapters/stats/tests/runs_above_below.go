package tests

import (
	"context"
	"fmt"
	"math"

	"randeval/domain/battery"
	"randeval/domain/core"
)

// RunsAboveBelow implements the runs test above and below a fixed
// threshold. Each value becomes a +/- symbol depending on which side of
// the threshold it falls; the observed number of runs is compared to
// its expectation under independence via a normal approximation.
type RunsAboveBelow struct {
	threshold float64
	dist      *Distributions
}

// NewRunsAboveBelow creates the runs above/below test. The 0.5 default
// threshold matches sequences of uniform pseudo-random numbers; other
// data should pass its median.
func NewRunsAboveBelow(threshold float64) *RunsAboveBelow {
	return &RunsAboveBelow{threshold: threshold, dist: NewDistributions()}
}

func (t *RunsAboveBelow) ID() battery.TestID {
	return battery.TestRunsAboveBelow
}

func (t *RunsAboveBelow) DisplayName() string {
	return "Rachas Encima/Debajo"
}

func (t *RunsAboveBelow) MinSamples() int {
	return 2
}

// Schema declares the field mapping for normalization; normal statistic,
// p-value derived by the normalizer.
func (t *RunsAboveBelow) Schema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "z_stat",
		CriticalField:  "z_critical",
		DecisionField:  "reject_null",
		Distribution:   battery.DistNormal,
	}
}

// Execute runs the test against the dataset
func (t *RunsAboveBelow) Execute(ctx context.Context, ds battery.Dataset) (battery.RawResult, error) {
	n := ds.Len()
	if n < t.MinSamples() {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}

	symbols, above, below := aboveBelowSymbols(ds.Values(), t.threshold)
	if above == 0 || below == 0 {
		return nil, fmt.Errorf("%w: %s: every value on one side of threshold %g",
			core.ErrInsufficientData, t.ID(), t.threshold)
	}

	runs := countRuns(symbols)

	// mu_R = 2*n1*n2/(n1+n2) + 1
	n1, n2 := float64(above), float64(below)
	mean := 2*n1*n2/(n1+n2) + 1

	// sigma_R^2 = 2*n1*n2*(2*n1*n2 - n1 - n2) / ((n1+n2)^2 * (n1+n2-1))
	numerator := 2 * n1 * n2 * (2*n1*n2 - n1 - n2)
	denominator := (n1 + n2) * (n1 + n2) * (n1 + n2 - 1)
	if denominator == 0 {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}
	stdDev := math.Sqrt(numerator / denominator)
	if stdDev == 0 {
		return nil, core.NewComputationError(string(t.ID()), core.ErrComputation)
	}

	z := (float64(runs) - mean) / stdDev
	zCritical := t.dist.NormalQuantile(1 - ds.Alpha()/2)

	return battery.RawResult{
		"n_total":       n,
		"threshold":     t.threshold,
		"n_above":       above,
		"n_below":       below,
		"runs_observed": runs,
		"runs_expected": mean,
		"std_dev":       stdDev,
		"z_stat":        z,
		"z_critical":    zCritical,
		"reject_null":   math.Abs(z) > zCritical,
	}, nil
}
