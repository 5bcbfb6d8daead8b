package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randeval/domain/core"
	"randeval/internal/testkit"
)

func TestRunLengthUpDown_AlternatingRejects(t *testing.T) {
	// Strict alternation produces only runs of length one, far more
	// than expected.
	ds := mustDataset(t, testkit.Alternating(50), 0.05)

	raw, err := NewRunLengthUpDown().Execute(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, 49, raw["total_runs"])
	assert.True(t, raw["reject_null"].(bool))
	assert.Less(t, raw["p_value"].(float64), 0.05)
}

func TestRunLengthUpDown_UniformDataConsistent(t *testing.T) {
	ds := mustDataset(t, testkit.Uniform(500, 21), 0.05)

	raw, err := NewRunLengthUpDown().Execute(context.Background(), ds)
	require.NoError(t, err)

	p := raw["p_value"].(float64)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
	assert.Equal(t, p < 0.05, raw["reject_null"].(bool))
	assert.GreaterOrEqual(t, raw["categories"].(int), 2)
}

func TestRunLengthUpDown_TooFewSamples(t *testing.T) {
	ds := mustDataset(t, testkit.Uniform(10, 1), 0.05)

	_, err := NewRunLengthUpDown().Execute(context.Background(), ds)
	require.Error(t, err)
	assert.True(t, core.IsInsufficientData(err))
}

func TestRunLengthAboveBelow_AlternatingRejects(t *testing.T) {
	ds := mustDataset(t, testkit.Alternating(40), 0.05)

	raw, err := NewRunLengthAboveBelow(0.5).Execute(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, 40, raw["total_runs"])
	assert.True(t, raw["reject_null"].(bool))
}

func TestRunLengthAboveBelow_SingleSidedData(t *testing.T) {
	ds := mustDataset(t, testkit.Constant(40, 0.9), 0.05)

	_, err := NewRunLengthAboveBelow(0.5).Execute(context.Background(), ds)
	require.Error(t, err)
	assert.True(t, core.IsInsufficientData(err))
}

func TestRunLengthAboveBelow_UniformDataConsistent(t *testing.T) {
	ds := mustDataset(t, testkit.Uniform(500, 33), 0.05)

	raw, err := NewRunLengthAboveBelow(0.5).Execute(context.Background(), ds)
	require.NoError(t, err)

	p := raw["p_value"].(float64)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
	assert.Equal(t, p < 0.05, raw["reject_null"].(bool))
}
