// Package tests implements the battery of randomness hypothesis tests.
// Every implementation satisfies ports.HypothesisTest: it consumes the
// shared read-only dataset, returns a test-specific raw result, and
// declares via its schema how that raw result maps onto the fixed
// normalized shape.
package tests

import (
	"randeval/domain/battery"
	"randeval/ports"
)

// Registry resolves test implementations by identifier. Absence of an
// implementation is a handled case, not an exceptional program state:
// Resolve reports ok=false and the orchestrator substitutes a fallback
// result.
type Registry struct {
	order []battery.TestID
	byID  map[battery.TestID]ports.HypothesisTest
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[battery.TestID]ports.HypothesisTest)}
}

// Register adds or replaces a test implementation
func (r *Registry) Register(t ports.HypothesisTest) {
	if _, exists := r.byID[t.ID()]; !exists {
		r.order = append(r.order, t.ID())
	}
	r.byID[t.ID()] = t
}

// Resolve looks up a test by identifier
func (r *Registry) Resolve(id battery.TestID) (ports.HypothesisTest, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// List returns registered identifiers in registration order
func (r *Registry) List() []battery.TestID {
	out := make([]battery.TestID, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry builds the registry with every shipped test family.
// intervals configures the goodness-of-fit class count; threshold
// splits above/below symbols for the runs tests over a level.
func DefaultRegistry(intervals int, threshold float64) *Registry {
	r := NewRegistry()
	r.Register(NewRunsUpDown())
	r.Register(NewRunsAboveBelow(threshold))
	r.Register(NewRunLengthUpDown())
	r.Register(NewRunLengthAboveBelow(threshold))
	r.Register(NewChiSquare(intervals))
	r.Register(NewKolmogorov())
	return r
}

// signDiffs converts the sequence into +1/-1 movement signs, dropping
// ties. A tie carries no up/down information for the runs family.
func signDiffs(values []float64) []int {
	signs := make([]int, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		switch {
		case values[i] > values[i-1]:
			signs = append(signs, 1)
		case values[i] < values[i-1]:
			signs = append(signs, -1)
		}
	}
	return signs
}

// countRuns counts maximal blocks of equal consecutive symbols.
func countRuns(symbols []int) int {
	if len(symbols) == 0 {
		return 0
	}
	runs := 1
	for i := 1; i < len(symbols); i++ {
		if symbols[i] != symbols[i-1] {
			runs++
		}
	}
	return runs
}

// runLengths returns the lengths of the maximal blocks, in order.
func runLengths(symbols []int) []int {
	if len(symbols) == 0 {
		return nil
	}
	lengths := []int{}
	current := 1
	for i := 1; i < len(symbols); i++ {
		if symbols[i] == symbols[i-1] {
			current++
			continue
		}
		lengths = append(lengths, current)
		current = 1
	}
	return append(lengths, current)
}

// mergeTail collapses trailing categories until every expected count
// reaches minExpected, keeping the chi-square approximation honest.
// Run-length expectations decay geometrically, so only the tail ever
// needs merging.
func mergeTail(observed, expected []float64, minExpected float64) ([]float64, []float64) {
	o := append([]float64(nil), observed...)
	e := append([]float64(nil), expected...)
	for len(e) > 1 && e[len(e)-1] < minExpected {
		e[len(e)-2] += e[len(e)-1]
		o[len(o)-2] += o[len(o)-1]
		e = e[:len(e)-1]
		o = o[:len(o)-1]
	}
	return o, e
}

// aboveBelowSymbols maps values to +1 (above threshold) / -1 symbols.
func aboveBelowSymbols(values []float64, threshold float64) (symbols []int, above, below int) {
	symbols = make([]int, len(values))
	for i, v := range values {
		if v > threshold {
			symbols[i] = 1
			above++
		} else {
			symbols[i] = -1
			below++
		}
	}
	return symbols, above, below
}
