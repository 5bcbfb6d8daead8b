package tests

import (
	"context"
	"fmt"
	"math"

	"randeval/domain/battery"
	"randeval/domain/core"
)

// RunLengthAboveBelow implements the length-of-runs test above/below a
// threshold: counts of runs of each length are compared against the
// geometric expectations that hold when each side is equally likely.
// Chi-square reference distribution; supplies its own p-value.
type RunLengthAboveBelow struct {
	threshold float64
	dist      *Distributions
}

// NewRunLengthAboveBelow creates the length-of-runs above/below test
func NewRunLengthAboveBelow(threshold float64) *RunLengthAboveBelow {
	return &RunLengthAboveBelow{threshold: threshold, dist: NewDistributions()}
}

func (t *RunLengthAboveBelow) ID() battery.TestID {
	return battery.TestRunLenAboveBelow
}

func (t *RunLengthAboveBelow) DisplayName() string {
	return "Longitud Rachas Encima/Debajo"
}

func (t *RunLengthAboveBelow) MinSamples() int {
	return 20
}

// Schema declares a chi-square statistic carrying its own p-value.
func (t *RunLengthAboveBelow) Schema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "chi_square",
		CriticalField:  "chi_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistChiSquare,
	}
}

// Execute runs the test against the dataset
func (t *RunLengthAboveBelow) Execute(ctx context.Context, ds battery.Dataset) (battery.RawResult, error) {
	n := ds.Len()
	if n < t.MinSamples() {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}

	symbols, above, below := aboveBelowSymbols(ds.Values(), t.threshold)
	if above == 0 || below == 0 {
		return nil, fmt.Errorf("%w: %s: every value on one side of threshold %g",
			core.ErrInsufficientData, t.ID(), t.threshold)
	}
	lengths := runLengths(symbols)

	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}

	// Categories are lengths 1..L-1 plus a final ">= L" bucket.
	// Expected runs of exactly length i with p = q = 1/2 is
	// E_i = (n - i + 3) / 2^(i+1); the series totals (n+1)/2.
	categories := maxLen
	if categories < 2 {
		categories = 2
	}
	observed := make([]float64, categories)
	for _, l := range lengths {
		if l >= categories {
			observed[categories-1]++
		} else {
			observed[l-1]++
		}
	}
	totalExpected := (float64(n) + 1) / 2
	expected := make([]float64, categories)
	sum := 0.0
	for i := 1; i < categories; i++ {
		e := (float64(n) - float64(i) + 3) / math.Pow(2, float64(i+1))
		if e < 0 {
			e = 0
		}
		expected[i-1] = e
		sum += e
	}
	tail := totalExpected - sum
	if tail < 0 {
		tail = 0
	}
	expected[categories-1] = tail

	observed, expected = mergeTail(observed, expected, 5)
	if len(expected) < 2 {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}

	chiSq := 0.0
	for i := range expected {
		if expected[i] <= 0 {
			continue
		}
		diff := observed[i] - expected[i]
		chiSq += diff * diff / expected[i]
	}

	df := len(expected) - 1
	critical := t.dist.ChiSquareQuantile(ds.Alpha(), df)
	pValue := t.dist.ChiSquarePValue(chiSq, df)

	return battery.RawResult{
		"n_total":         n,
		"threshold":       t.threshold,
		"n_above":         above,
		"n_below":         below,
		"total_runs":      len(lengths),
		"categories":      len(expected),
		"degrees_freedom": df,
		"chi_square":      chiSq,
		"chi_critical":    critical,
		"p_value":         pValue,
		"reject_null":     chiSq > critical,
	}, nil
}
