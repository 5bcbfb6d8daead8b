// Package normalize maps heterogeneous raw test results onto the fixed
// normalized schema consumed by the result store and report assembly.
package normalize

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"randeval/domain/battery"
	"randeval/domain/core"
)

// Normalize translates a raw result into the fixed Normalized schema
// using the producing test's field-mapping declaration.
//
// Derived-field policy: only statistics following the standard normal
// may have their two-tailed p-value derived here as 2*(1-Phi(|Z|));
// every other distribution family must supply its own p-value key, and
// a missing one is a normalization failure rather than a silent
// normal-approximation.
func Normalize(raw battery.RawResult, schema battery.ResultSchema, alpha float64, displayName string) (battery.Normalized, error) {
	statistic, err := floatField(raw, schema.StatisticField)
	if err != nil {
		return battery.Normalized{}, err
	}
	critical, err := floatField(raw, schema.CriticalField)
	if err != nil {
		return battery.Normalized{}, err
	}

	var pValue float64
	derived := false
	if schema.PValueField != "" {
		pValue, err = floatField(raw, schema.PValueField)
		if err != nil {
			return battery.Normalized{}, err
		}
	} else if schema.Distribution == battery.DistNormal {
		pValue = 2 * (1 - distuv.UnitNormal.CDF(math.Abs(statistic)))
		derived = true
	} else {
		return battery.Normalized{}, core.NewNormalizationError("p_value",
			"non-normal statistic must supply its own p-value")
	}
	if pValue < 0 || pValue > 1 {
		return battery.Normalized{}, core.NewNormalizationError(schema.PValueField, "p-value outside [0,1]")
	}

	var reject bool
	if schema.DecisionField != "" {
		reject, err = boolField(raw, schema.DecisionField)
		if err != nil {
			return battery.Normalized{}, err
		}
	} else {
		reject = pValue < alpha
	}

	// Decision and p-value must agree under alpha unless the test has
	// declared its p-value approximate (small-sample asymptotics).
	if reject != (pValue < alpha) && !approximate(raw) {
		return battery.Normalized{}, core.NewNormalizationError(schema.DecisionField,
			"decision inconsistent with p-value under alpha")
	}

	if derived {
		// Surface the derivation for drill-down views.
		raw["p_value_derived"] = pValue
	}

	return battery.Normalized{
		Statistic:     statistic,
		CriticalValue: critical,
		PValue:        pValue,
		RejectNull:    reject,
		TestName:      displayName,
		Alpha:         alpha,
		Raw:           raw,
	}, nil
}

func approximate(raw battery.RawResult) bool {
	v, ok := raw["p_approximate"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// floatField extracts a required finite float from the raw result.
func floatField(raw battery.RawResult, key string) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, core.NewNormalizationError(key, "missing required field")
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, core.NewNormalizationError(key, "field is not numeric")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, core.NewNormalizationError(key, "field is not finite")
	}
	return f, nil
}

// boolField extracts a required boolean from the raw result.
func boolField(raw battery.RawResult, key string) (bool, error) {
	v, ok := raw[key]
	if !ok {
		return false, core.NewNormalizationError(key, "missing required field")
	}
	b, ok := v.(bool)
	if !ok {
		return false, core.NewNormalizationError(key, "field is not boolean")
	}
	return b, nil
}
