package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randeval/domain/battery"
	"randeval/domain/core"
)

func normalSchema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "z_stat",
		CriticalField:  "z_critical",
		DecisionField:  "reject_null",
		Distribution:   battery.DistNormal,
	}
}

func TestNormalize_DerivesTwoTailedPValue(t *testing.T) {
	raw := battery.RawResult{
		"z_stat":      1.9069,
		"z_critical":  1.959964,
		"reject_null": false,
	}

	norm, err := Normalize(raw, normalSchema(), 0.05, "Rachas Asc/Desc")
	require.NoError(t, err)

	assert.InDelta(t, 0.0566, norm.PValue, 1e-3)
	assert.False(t, norm.RejectNull)
	assert.Equal(t, "Rachas Asc/Desc", norm.TestName)
	assert.Equal(t, 0.05, norm.Alpha)
	assert.InDelta(t, 1.9069, norm.Statistic, 1e-9)
	assert.InDelta(t, 1.959964, norm.CriticalValue, 1e-9)
}

func TestNormalize_NegativeStatisticSameP(t *testing.T) {
	pos, err := Normalize(battery.RawResult{"z_stat": 2.5, "z_critical": 1.96, "reject_null": true},
		normalSchema(), 0.05, "x")
	require.NoError(t, err)
	neg, err := Normalize(battery.RawResult{"z_stat": -2.5, "z_critical": 1.96, "reject_null": true},
		normalSchema(), 0.05, "x")
	require.NoError(t, err)

	assert.InDelta(t, pos.PValue, neg.PValue, 1e-12)
}

func TestNormalize_SuppliedPValueUsed(t *testing.T) {
	schema := battery.ResultSchema{
		StatisticField: "chi_square",
		CriticalField:  "chi_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistChiSquare,
	}
	raw := battery.RawResult{
		"chi_square":   12.5,
		"chi_critical": 16.9,
		"p_value":      0.13,
		"reject_null":  false,
	}

	norm, err := Normalize(raw, schema, 0.05, "Chi Cuadrado")
	require.NoError(t, err)
	assert.Equal(t, 0.13, norm.PValue)
}

func TestNormalize_NonNormalWithoutPFails(t *testing.T) {
	schema := battery.ResultSchema{
		StatisticField: "chi_square",
		CriticalField:  "chi_critical",
		DecisionField:  "reject_null",
		Distribution:   battery.DistChiSquare,
	}
	raw := battery.RawResult{"chi_square": 3.0, "chi_critical": 7.8, "reject_null": false}

	_, err := Normalize(raw, schema, 0.05, "Chi Cuadrado")
	require.Error(t, err)
	assert.True(t, core.IsNormalization(err))
}

func TestNormalize_MissingRequiredField(t *testing.T) {
	raw := battery.RawResult{"z_critical": 1.96, "reject_null": false}

	_, err := Normalize(raw, normalSchema(), 0.05, "x")
	require.Error(t, err)
	assert.True(t, core.IsNormalization(err))
}

func TestNormalize_NonFiniteStatistic(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		raw := battery.RawResult{"z_stat": bad, "z_critical": 1.96, "reject_null": false}
		_, err := Normalize(raw, normalSchema(), 0.05, "x")
		require.Error(t, err)
		assert.True(t, core.IsNormalization(err))
	}
}

func TestNormalize_PValueOutOfRange(t *testing.T) {
	schema := battery.ResultSchema{
		StatisticField: "d_stat",
		CriticalField:  "d_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistKolmogorov,
	}
	raw := battery.RawResult{"d_stat": 0.2, "d_critical": 0.21, "p_value": 1.4, "reject_null": false}

	_, err := Normalize(raw, schema, 0.05, "KS")
	require.Error(t, err)
	assert.True(t, core.IsNormalization(err))
}

func TestNormalize_InconsistentDecisionFails(t *testing.T) {
	// p=0.13 with reject=true cannot both hold at alpha=0.05 unless
	// the test declared its p approximate.
	schema := battery.ResultSchema{
		StatisticField: "chi_square",
		CriticalField:  "chi_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistChiSquare,
	}
	raw := battery.RawResult{"chi_square": 12.5, "chi_critical": 11.1, "p_value": 0.13, "reject_null": true}

	_, err := Normalize(raw, schema, 0.05, "Chi Cuadrado")
	require.Error(t, err)
	assert.True(t, core.IsNormalization(err))
}

func TestNormalize_ApproximatePToleratesMismatch(t *testing.T) {
	schema := battery.ResultSchema{
		StatisticField: "d_stat",
		CriticalField:  "d_critical",
		DecisionField:  "reject_null",
		PValueField:    "p_value",
		Distribution:   battery.DistKolmogorov,
	}
	raw := battery.RawResult{
		"d_stat": 0.215, "d_critical": 0.21, "p_value": 0.052,
		"reject_null": true, "p_approximate": true,
	}

	norm, err := Normalize(raw, schema, 0.05, "KS")
	require.NoError(t, err)
	assert.True(t, norm.RejectNull)
}

func TestNormalize_DecisionDerivedWhenUndeclared(t *testing.T) {
	schema := battery.ResultSchema{
		StatisticField: "z_stat",
		CriticalField:  "z_critical",
		Distribution:   battery.DistNormal,
	}
	raw := battery.RawResult{"z_stat": 3.2, "z_critical": 1.96}

	norm, err := Normalize(raw, schema, 0.05, "x")
	require.NoError(t, err)
	assert.True(t, norm.RejectNull)
	assert.Less(t, norm.PValue, 0.05)
}

func TestNormalize_IntegerFieldsCoerced(t *testing.T) {
	raw := battery.RawResult{"z_stat": 2, "z_critical": 1, "reject_null": true}

	norm, err := Normalize(raw, normalSchema(), 0.05, "x")
	require.NoError(t, err)
	assert.Equal(t, 2.0, norm.Statistic)
}
