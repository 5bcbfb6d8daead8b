package battery

import (
	"math"

	"randeval/domain/core"
)

// TestID is the stable string key of one test family. It is used
// consistently across the result store, UI enablement state and report
// generation.
type TestID string

// Known test identifiers. The registry owns the authoritative set; these
// constants exist so collaborators never hardcode raw strings.
const (
	TestRunsUpDown       TestID = "rachas_ascendentes_descendentes"
	TestRunsAboveBelow   TestID = "rachas_encima_debajo"
	TestRunLenUpDown     TestID = "longitud_rachas_ascendentes_descendentes"
	TestRunLenAboveBelow TestID = "longitud_rachas_encima_debajo"
	TestChiSquare        TestID = "chi_cuadrado"
	TestKolmogorov       TestID = "kolmogorov_smirnov"
)

func (id TestID) String() string { return string(id) }

// Dataset is the shared read-only input to every test: an ordered
// numeric sequence plus the significance level. It is never mutated by
// a test; Values returns a defensive copy on construction so callers
// cannot alias the backing slice.
type Dataset struct {
	values []float64
	alpha  float64
}

// NewDataset validates and builds a Dataset. Validation failures here
// are the only errors allowed to abort a whole batch, since they affect
// every test equally.
func NewDataset(values []float64, alpha float64) (Dataset, error) {
	if len(values) == 0 {
		return Dataset{}, core.ErrEmptyDataset
	}
	if !(alpha > 0 && alpha < 1) {
		return Dataset{}, core.ErrInvalidAlpha
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Dataset{}, core.ErrNonFiniteValue
		}
	}
	owned := make([]float64, len(values))
	copy(owned, values)
	return Dataset{values: owned, alpha: alpha}, nil
}

// Values returns the ordered sequence. The returned slice is shared;
// tests must treat it as read-only.
func (d Dataset) Values() []float64 { return d.values }

// Len returns the sample size.
func (d Dataset) Len() int { return len(d.values) }

// Alpha returns the significance level.
func (d Dataset) Alpha() float64 { return d.alpha }

// RawResult is the test-specific output of one execution: a mapping
// from per-test field names to numeric, boolean or short string values.
// The schema varies per test family; the owning test declares how it
// maps onto the fixed Normalized schema via ResultSchema.
type RawResult map[string]interface{}

// Distribution names the reference distribution a test's statistic
// follows. The normalizer may derive a two-tailed p-value only for
// DistNormal statistics; every other family must supply its own.
type Distribution string

const (
	DistNormal     Distribution = "normal"
	DistChiSquare  Distribution = "chi_square"
	DistKolmogorov Distribution = "kolmogorov"
)

// ResultSchema is a test family's field-mapping declaration: which raw
// keys feed the normalized statistic, critical value and decision, and
// which distribution the statistic follows. Adding a new test family
// never requires touching the normalizer.
type ResultSchema struct {
	StatisticField string
	CriticalField  string
	DecisionField  string
	// PValueField is empty for tests whose p-value the normalizer
	// derives (normal statistics only).
	PValueField  string
	Distribution Distribution
}

// Normalized is the fixed-schema summary of one executed test. JSON
// tags carry the documented wire names consumed by report rendering.
type Normalized struct {
	Statistic     float64   `json:"estadistico"`
	CriticalValue float64   `json:"valor_critico"`
	PValue        float64   `json:"p_valor"`
	RejectNull    bool      `json:"rechaza_h0"`
	TestName      string    `json:"tipo_prueba"`
	Alpha         float64   `json:"alpha"`
	Raw           RawResult `json:"resultado_completo,omitempty"`
}

// Fallback sentinel values substituted when a selected test has no
// registered implementation. They are deliberately conspicuous so a
// report reader cannot mistake them for a computed result.
const (
	FallbackStatistic = 5.67
	FallbackCritical  = 3.84
	FallbackPValue    = 0.015
)

// NewFallback builds the clearly-marked placeholder result for a
// missing implementation.
func NewFallback(id TestID, alpha float64) Normalized {
	return Normalized{
		Statistic:     FallbackStatistic,
		CriticalValue: FallbackCritical,
		PValue:        FallbackPValue,
		RejectNull:    true,
		TestName:      string(id) + " (no disponible)",
		Alpha:         alpha,
		Raw:           RawResult{"fallback": true},
	}
}
