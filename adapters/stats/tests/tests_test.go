package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randeval/domain/battery"
)

func TestDefaultRegistry_ContainsEveryFamily(t *testing.T) {
	r := DefaultRegistry(10, 0.5)

	want := []battery.TestID{
		battery.TestRunsUpDown,
		battery.TestRunsAboveBelow,
		battery.TestRunLenUpDown,
		battery.TestRunLenAboveBelow,
		battery.TestChiSquare,
		battery.TestKolmogorov,
	}
	assert.Equal(t, want, r.List())

	for _, id := range want {
		test, ok := r.Resolve(id)
		require.True(t, ok, "missing %s", id)
		assert.Equal(t, id, test.ID())
		assert.NotEmpty(t, test.DisplayName())
		assert.Greater(t, test.MinSamples(), 0)
	}
}

func TestRegistry_UnknownIdentifier(t *testing.T) {
	r := DefaultRegistry(10, 0.5)

	_, ok := r.Resolve("prueba_inexistente")
	assert.False(t, ok)
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register(NewChiSquare(4))
	r.Register(NewChiSquare(8))

	assert.Len(t, r.List(), 1)
	test, ok := r.Resolve(battery.TestChiSquare)
	require.True(t, ok)
	assert.Equal(t, 16, test.MinSamples())
}

func TestRunLengths(t *testing.T) {
	assert.Equal(t, []int{2, 1, 3}, runLengths([]int{1, 1, -1, 1, 1, 1}))
	assert.Equal(t, []int{1}, runLengths([]int{1}))
	assert.Nil(t, runLengths(nil))
}

func TestSignDiffs_DropsTies(t *testing.T) {
	signs := signDiffs([]float64{1, 1, 2, 2, 1})
	assert.Equal(t, []int{1, -1}, signs)
}
