package tests

import (
	"context"
	"math"

	"randeval/domain/battery"
	"randeval/domain/core"
)

// RunsUpDown implements the ascending/descending runs test: the
// sequence is reduced to the signs of consecutive differences and the
// observed number of runs is compared against its expectation under
// independence using a normal approximation.
type RunsUpDown struct {
	dist *Distributions
}

// NewRunsUpDown creates the ascending/descending runs test
func NewRunsUpDown() *RunsUpDown {
	return &RunsUpDown{dist: NewDistributions()}
}

// ID returns the stable test identifier
func (t *RunsUpDown) ID() battery.TestID {
	return battery.TestRunsUpDown
}

// DisplayName returns the report name
func (t *RunsUpDown) DisplayName() string {
	return "Rachas Asc/Desc"
}

// MinSamples returns the smallest meaningful sample size
func (t *RunsUpDown) MinSamples() int {
	return 3
}

// Schema declares the field mapping for normalization. The statistic is
// normal, so the normalizer derives the two-tailed p-value.
func (t *RunsUpDown) Schema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "z_stat",
		CriticalField:  "z_critical",
		DecisionField:  "reject_null",
		Distribution:   battery.DistNormal,
	}
}

// Execute runs the test against the dataset
func (t *RunsUpDown) Execute(ctx context.Context, ds battery.Dataset) (battery.RawResult, error) {
	n := ds.Len()
	if n < t.MinSamples() {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}

	signs := signDiffs(ds.Values())
	if len(signs) < 2 {
		// All ties: no up/down movement to evaluate.
		return nil, core.NewInsufficientDataError(string(t.ID()), 2, len(signs))
	}

	runs := countRuns(signs)

	// Under H0: mu_a = (2n-1)/3, sigma_a^2 = (16n-29)/90.
	nf := float64(n)
	mean := (2*nf - 1) / 3
	variance := (16*nf - 29) / 90
	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return nil, core.NewComputationError(string(t.ID()), core.ErrComputation)
	}

	z := (float64(runs) - mean) / stdDev
	zCritical := t.dist.NormalQuantile(1 - ds.Alpha()/2)

	return battery.RawResult{
		"n_total":       n,
		"ties_dropped":  n - 1 - len(signs),
		"runs_observed": runs,
		"runs_expected": mean,
		"std_dev":       stdDev,
		"z_stat":        z,
		"z_critical":    zCritical,
		"reject_null":   math.Abs(z) > zCritical,
	}, nil
}
