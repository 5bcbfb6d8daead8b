// Package orchestration runs a user-selected subset of tests against
// one dataset and populates the session result store. Its whole job is
// isolation: one faulty test must never abort or corrupt the results
// of the others in the same batch.
package orchestration

import (
	"context"
	"fmt"

	"randeval/domain/battery"
	"randeval/domain/core"
	"randeval/internal"
	"randeval/internal/normalize"
	"randeval/internal/session"
	"randeval/ports"
)

// Orchestrator executes selected tests sequentially, in selection
// order, and is the sole writer of the result store.
type Orchestrator struct {
	registry ports.TestRegistry
	store    *session.Store
	logger   *internal.Logger
	events   ports.EventSink
}

// New creates an orchestrator. events may be nil when no collaborator
// listens for progress.
func New(registry ports.TestRegistry, store *session.Store, logger *internal.Logger, events ports.EventSink) *Orchestrator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if events == nil {
		events = noopSink{}
	}
	return &Orchestrator{registry: registry, store: store, logger: logger, events: events}
}

// Run executes the selection against the dataset. Prior results are
// cleared first, so the store is fully superseded, never merged. The
// only error Run returns is context cancellation, checked between
// tests; a test already in progress runs to completion or failure.
// After Run returns nil the store holds exactly one entry per selected
// identifier.
func (o *Orchestrator) Run(ctx context.Context, ds battery.Dataset, selection []battery.TestID) error {
	o.store.Clear()

	for _, id := range selection {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("battery cancelled before %s: %v", id, err)
			return err
		}
		o.runOne(ctx, ds, id)
	}
	return nil
}

func (o *Orchestrator) runOne(ctx context.Context, ds battery.Dataset, id battery.TestID) {
	test, ok := o.registry.Resolve(id)
	if !ok {
		// Graceful degradation: a missing optional analysis module is
		// a handled case, substituted with a clearly-marked fallback.
		fallback := battery.NewFallback(id, ds.Alpha())
		o.store.Put(session.Entry{
			ID:     id,
			Status: ports.StatusFallback,
			Result: &fallback,
			Err:    core.NewUnavailableError(string(id)).Error(),
		})
		o.logger.Warn("test %s unavailable, substituting fallback result", id)
		o.events.Warning(id, fmt.Sprintf("implementation for %q is not registered; placeholder values reported", id))
		o.events.TestCompleted(id, ports.StatusFallback)
		return
	}

	result, err := o.execute(ctx, test, ds)
	if err != nil {
		o.store.Put(session.Entry{
			ID:     id,
			Status: ports.StatusFailed,
			Err:    err.Error(),
		})
		o.logger.Error("test %s failed: %v", id, err)
		o.events.TestCompleted(id, ports.StatusFailed)
		return
	}

	o.store.Put(session.Entry{
		ID:     id,
		Status: ports.StatusOK,
		Result: &result,
		Test:   test,
	})
	o.logger.Info("test %s done: statistic=%.6f p=%.6f reject=%v",
		id, result.Statistic, result.PValue, result.RejectNull)
	o.events.TestCompleted(id, ports.StatusOK)
}

// execute runs one test and normalizes its output, converting panics
// into computation errors so nothing escapes the batch.
func (o *Orchestrator) execute(ctx context.Context, test ports.HypothesisTest, ds battery.Dataset) (result battery.Normalized, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.NewComputationError(string(test.ID()), fmt.Errorf("panic: %v", r))
		}
	}()

	raw, err := test.Execute(ctx, ds)
	if err != nil {
		return battery.Normalized{}, err
	}
	return normalize.Normalize(raw, test.Schema(), ds.Alpha(), test.DisplayName())
}

type noopSink struct{}

func (noopSink) TestCompleted(battery.TestID, ports.RunStatus) {}
func (noopSink) Warning(battery.TestID, string)                {}
