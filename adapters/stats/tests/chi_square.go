package tests

import (
	"context"
	"fmt"

	"randeval/domain/battery"
	"randeval/domain/core"
)

// ChiSquare implements the chi-square goodness-of-fit test against a
// uniform distribution over k equal-width class intervals spanning the
// observed range. Chi-square reference distribution; supplies its own
// p-value.
type ChiSquare struct {
	intervals int
	dist      *Distributions
}

// NewChiSquare creates the chi-square goodness-of-fit test with k
// class intervals.
func NewChiSquare(intervals int) *ChiSquare {
	if intervals < 2 {
		intervals = 10
	}
	return &ChiSquare{intervals: intervals, dist: NewDistributions()}
}

func (t *ChiSquare) ID() battery.TestID {
	return battery.TestChiSquare
}

func (t *ChiSquare) DisplayName() string {
	return "Chi Cuadrado"
}

// MinSamples guarantees at least two expected observations per interval.
func (t *ChiSquare) MinSamples() int {
	return 2 * t.intervals
}

// Schema declares a chi-square statistic carrying its own p-value.
func (t *ChiSquare) Schema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "chi_square",
		CriticalField:  "chi_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistChiSquare,
	}
}

// Execute runs the test against the dataset
func (t *ChiSquare) Execute(ctx context.Context, ds battery.Dataset) (battery.RawResult, error) {
	n := ds.Len()
	if n < t.MinSamples() {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}

	values := ds.Values()
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return nil, fmt.Errorf("%w: %s: constant data has no distribution to test",
			core.ErrInsufficientData, t.ID())
	}

	// Equal-width intervals over [min, max]; the top edge is inclusive.
	width := (max - min) / float64(t.intervals)
	observed := make([]float64, t.intervals)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= t.intervals {
			idx = t.intervals - 1
		}
		observed[idx]++
	}

	expected := float64(n) / float64(t.intervals)
	chiSq := 0.0
	for _, o := range observed {
		diff := o - expected
		chiSq += diff * diff / expected
	}

	df := t.intervals - 1
	critical := t.dist.ChiSquareQuantile(ds.Alpha(), df)
	pValue := t.dist.ChiSquarePValue(chiSq, df)

	return battery.RawResult{
		"n_total":           n,
		"intervals":         t.intervals,
		"range_min":         min,
		"range_max":         max,
		"expected_per_cell": expected,
		"degrees_freedom":   df,
		"chi_square":        chiSq,
		"chi_critical":      critical,
		"p_value":           pValue,
		"reject_null":       chiSq > critical,
	}, nil
}
