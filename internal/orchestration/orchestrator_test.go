package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randeval/domain/battery"
	"randeval/internal/session"
	"randeval/ports"
)

// stubTest is a minimal normal-statistic test whose behavior is driven
// by the exec function, so one batch can mix healthy and faulty tests.
type stubTest struct {
	id   battery.TestID
	min  int
	exec func(battery.Dataset) (battery.RawResult, error)
}

func (s stubTest) ID() battery.TestID  { return s.id }
func (s stubTest) DisplayName() string { return string(s.id) }
func (s stubTest) MinSamples() int     { return s.min }
func (s stubTest) Schema() battery.ResultSchema {
	return battery.ResultSchema{
		StatisticField: "z_stat",
		CriticalField:  "z_critical",
		DecisionField:  "reject_null",
		Distribution:   battery.DistNormal,
	}
}
func (s stubTest) Execute(_ context.Context, ds battery.Dataset) (battery.RawResult, error) {
	return s.exec(ds)
}

type stubRegistry struct {
	order []battery.TestID
	byID  map[battery.TestID]ports.HypothesisTest
}

func newStubRegistry(tests ...ports.HypothesisTest) *stubRegistry {
	r := &stubRegistry{byID: make(map[battery.TestID]ports.HypothesisTest)}
	for _, t := range tests {
		r.order = append(r.order, t.ID())
		r.byID[t.ID()] = t
	}
	return r
}

func (r *stubRegistry) Resolve(id battery.TestID) (ports.HypothesisTest, bool) {
	t, ok := r.byID[id]
	return t, ok
}

func (r *stubRegistry) List() []battery.TestID { return r.order }

// recordingSink captures orchestrator progress events.
type recordingSink struct {
	completed []battery.TestID
	statuses  []ports.RunStatus
	warnings  []string
}

func (s *recordingSink) TestCompleted(id battery.TestID, status ports.RunStatus) {
	s.completed = append(s.completed, id)
	s.statuses = append(s.statuses, status)
}

func (s *recordingSink) Warning(_ battery.TestID, msg string) {
	s.warnings = append(s.warnings, msg)
}

func healthyStub(id battery.TestID, z float64) stubTest {
	return stubTest{id: id, min: 1, exec: func(battery.Dataset) (battery.RawResult, error) {
		return battery.RawResult{"z_stat": z, "z_critical": 1.96, "reject_null": z > 1.96 || z < -1.96}, nil
	}}
}

func mustDS(t *testing.T) battery.Dataset {
	t.Helper()
	ds, err := battery.NewDataset([]float64{0.1, 0.9, 0.3, 0.7, 0.5}, 0.05)
	require.NoError(t, err)
	return ds
}

func TestRun_OneFailureDoesNotAbortTheBatch(t *testing.T) {
	reg := newStubRegistry(
		healthyStub("a", 0.5),
		stubTest{id: "b", min: 1, exec: func(battery.Dataset) (battery.RawResult, error) {
			return nil, errors.New("numerical blowup")
		}},
		healthyStub("c", 2.5),
	)
	store := session.NewStore()
	sink := &recordingSink{}

	err := New(reg, store, nil, sink).Run(context.Background(), mustDS(t), reg.List())
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Len(t, snap, 3)

	assert.Equal(t, ports.StatusOK, snap[0].Status)
	assert.Equal(t, ports.StatusFailed, snap[1].Status)
	assert.Nil(t, snap[1].Result)
	assert.Contains(t, snap[1].Err, "numerical blowup")
	assert.Equal(t, ports.StatusOK, snap[2].Status)
	assert.True(t, snap[2].Result.RejectNull)

	assert.Equal(t, []battery.TestID{"a", "b", "c"}, sink.completed)
}

func TestRun_UnknownIDYieldsFallbackAndOneWarning(t *testing.T) {
	reg := newStubRegistry(healthyStub("a", 0.5))
	store := session.NewStore()
	sink := &recordingSink{}

	selection := []battery.TestID{"a", "no_existe"}
	err := New(reg, store, nil, sink).Run(context.Background(), mustDS(t), selection)
	require.NoError(t, err)

	e, ok := store.Get("no_existe")
	require.True(t, ok)
	assert.Equal(t, ports.StatusFallback, e.Status)
	require.NotNil(t, e.Result)
	assert.Equal(t, battery.FallbackStatistic, e.Result.Statistic)
	assert.Equal(t, battery.FallbackCritical, e.Result.CriticalValue)
	assert.Equal(t, battery.FallbackPValue, e.Result.PValue)
	assert.True(t, e.Result.RejectNull)
	assert.Equal(t, "no_existe (no disponible)", e.Result.TestName)
	assert.NotEmpty(t, e.Err)

	require.Len(t, sink.warnings, 1)
	assert.Equal(t, []ports.RunStatus{ports.StatusOK, ports.StatusFallback}, sink.statuses)
}

func TestRun_PanicIsContainedAsFailure(t *testing.T) {
	reg := newStubRegistry(
		stubTest{id: "panics", min: 1, exec: func(battery.Dataset) (battery.RawResult, error) {
			panic("index out of range")
		}},
		healthyStub("after", 0.1),
	)
	store := session.NewStore()

	err := New(reg, store, nil, nil).Run(context.Background(), mustDS(t), reg.List())
	require.NoError(t, err)

	e, ok := store.Get("panics")
	require.True(t, ok)
	assert.Equal(t, ports.StatusFailed, e.Status)
	assert.Contains(t, e.Err, "panic")

	after, ok := store.Get("after")
	require.True(t, ok)
	assert.Equal(t, ports.StatusOK, after.Status)
}

func TestRun_SupersedesPriorResults(t *testing.T) {
	reg := newStubRegistry(healthyStub("a", 0.5), healthyStub("b", 0.7))
	store := session.NewStore()
	orch := New(reg, store, nil, nil)
	ds := mustDS(t)

	require.NoError(t, orch.Run(context.Background(), ds, []battery.TestID{"a", "b"}))
	require.Equal(t, 2, store.Len())

	require.NoError(t, orch.Run(context.Background(), ds, []battery.TestID{"b"}))
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("a")
	assert.False(t, ok)
}

func TestRun_CancelledContextStopsBetweenTests(t *testing.T) {
	reg := newStubRegistry(healthyStub("a", 0.5))
	store := session.NewStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(reg, store, nil, nil).Run(ctx, mustDS(t), []battery.TestID{"a"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())
}

func TestRun_StoreFollowsSelectionOrderNotRegistryOrder(t *testing.T) {
	reg := newStubRegistry(healthyStub("a", 0.1), healthyStub("b", 0.2), healthyStub("c", 0.3))
	store := session.NewStore()

	selection := []battery.TestID{"c", "a"}
	require.NoError(t, New(reg, store, nil, nil).Run(context.Background(), mustDS(t), selection))

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, battery.TestID("c"), snap[0].ID)
	assert.Equal(t, battery.TestID("a"), snap[1].ID)
}
