package app

import (
	"context"
	"time"

	"randeval/domain/battery"
	"randeval/domain/core"
	"randeval/internal"
	"randeval/internal/orchestration"
	"randeval/internal/profiling"
	"randeval/internal/session"
	"randeval/ports"
)

// BatteryService is the collaborator boundary for UI and CLI: it owns
// the analysis session (dataset, store, orchestrator) and exposes the
// final mapping of normalized results in a stable shape.
type BatteryService struct {
	registry ports.TestRegistry
	store    *session.Store
	logger   *internal.Logger
}

// RunRequest defines the inputs for one analysis run
type RunRequest struct {
	Values    []float64
	Alpha     float64
	Selection []battery.TestID
	// Events receives per-test progress; may be nil.
	Events ports.EventSink
}

// RunSummary contains the complete outcome of one battery run
type RunSummary struct {
	RunID       core.RunID        `json:"run_id"`
	DatasetHash core.DatasetHash  `json:"dataset_hash"`
	Alpha       float64           `json:"alpha"`
	Profile     profiling.Profile `json:"profile"`
	Entries     []session.Entry   `json:"entries"`
	RuntimeMs   int64             `json:"runtime_ms"`
}

// NewBatteryService creates the session-owning service
func NewBatteryService(registry ports.TestRegistry, logger *internal.Logger) *BatteryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &BatteryService{
		registry: registry,
		store:    session.NewStore(),
		logger:   logger,
	}
}

// AvailableTests lists the registered identifiers in registration order
func (s *BatteryService) AvailableTests() []battery.TestID {
	return s.registry.List()
}

// Run validates the dataset, supersedes any previous session results
// and executes the selection. Dataset validation failures abort before
// any test runs; everything downstream is contained per test.
func (s *BatteryService) Run(ctx context.Context, req RunRequest) (*RunSummary, error) {
	startTime := time.Now()

	ds, err := battery.NewDataset(req.Values, req.Alpha)
	if err != nil {
		return nil, err
	}

	runID := core.NewRunID()
	s.logger.Info("run %s: %d samples, alpha=%g, %d tests selected",
		runID, ds.Len(), ds.Alpha(), len(req.Selection))

	orch := orchestration.New(s.registry, s.store, s.logger, req.Events)
	if err := orch.Run(ctx, ds, req.Selection); err != nil {
		return nil, err
	}

	return &RunSummary{
		RunID:       runID,
		DatasetHash: core.FingerprintDataset(ds.Values(), ds.Alpha()),
		Alpha:       ds.Alpha(),
		Profile:     profiling.Describe(ds),
		Entries:     s.store.Snapshot(),
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}, nil
}

// Results exposes the current store contents in selection order
func (s *BatteryService) Results() []session.Entry {
	return s.store.Snapshot()
}

// Result returns the entry for one identifier, if present
func (s *BatteryService) Result(id battery.TestID) (session.Entry, bool) {
	return s.store.Get(id)
}

// Clear discards the session results ahead of a new dataset load
func (s *BatteryService) Clear() {
	s.store.Clear()
}
