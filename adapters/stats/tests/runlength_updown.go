package tests

import (
	"context"
	"math"

	"randeval/domain/battery"
	"randeval/domain/core"
)

// RunLengthUpDown implements the length-of-runs test for ascending/
// descending runs: observed counts of runs of each length are compared
// against their expectations under independence with a chi-square
// statistic. The reference distribution is chi-square, so this test
// supplies its own p-value.
type RunLengthUpDown struct {
	dist *Distributions
}

// NewRunLengthUpDown creates the length-of-runs ascending/descending test
func NewRunLengthUpDown() *RunLengthUpDown {
	return &RunLengthUpDown{dist: NewDistributions()}
}

func (t *RunLengthUpDown) ID() battery.TestID {
	return battery.TestRunLenUpDown
}

func (t *RunLengthUpDown) DisplayName() string {
	return "Longitud Rachas Asc/Desc"
}

// MinSamples is higher than the plain runs test: the chi-square
// approximation needs enough runs to populate at least two length
// categories.
func (t *RunLengthUpDown) MinSamples() int {
	return 20
}

// Schema declares a chi-square statistic carrying its own p-value.
func (t *RunLengthUpDown) Schema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "chi_square",
		CriticalField:  "chi_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistChiSquare,
	}
}

// expectedRuns returns the expected count of up/down runs of exactly
// length i in a random sequence of n observations:
//
//	E_i = 2/(i+3)! * [ n(i^2+3i+1) - (i^3+3i^2-i-4) ]   for i <= n-2
//	E_{n-1} = 2/n!
func (t *RunLengthUpDown) expectedRuns(n, length int) float64 {
	nf, i := float64(n), float64(length)
	if length >= n-1 {
		return 2 / math.Gamma(nf+1)
	}
	e := 2 / math.Gamma(i+4) * (nf*(i*i+3*i+1) - (i*i*i + 3*i*i - i - 4))
	if e < 0 {
		return 0
	}
	return e
}

// Execute runs the test against the dataset
func (t *RunLengthUpDown) Execute(ctx context.Context, ds battery.Dataset) (battery.RawResult, error) {
	n := ds.Len()
	if n < t.MinSamples() {
		return nil, core.NewInsufficientDataError(string(t.ID()), t.MinSamples(), n)
	}

	signs := signDiffs(ds.Values())
	if len(signs) < 2 {
		return nil, core.NewInsufficientDataError(string(t.ID()), 2, len(signs))
	}
	lengths := runLengths(signs)

	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}

	// Categories are lengths 1..L-1 plus a final ">= L" bucket, so the
	// expected mass of runs longer than anything observed still enters
	// the table. Total expected runs is (2n-1)/3.
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
	totalExpected := (2*float64(n) - 1) / 3
	expected := make([]float64, categories)
	sum := 0.0
	for i := 1; i < categories; i++ {
		expected[i-1] = t.expectedRuns(n, i)
		sum += expected[i-1]
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
		"total_runs":      len(lengths),
		"categories":      len(expected),
		"degrees_freedom": df,
		"chi_square":      chiSq,
		"chi_critical":    critical,
		"p_value":         pValue,
		"reject_null":     chiSq > critical,
	}, nil
}
