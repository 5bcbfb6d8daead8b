package ports

import (
	"context"

	"randeval/domain/battery"
)

// HypothesisTest is the contract every statistical procedure satisfies.
// Execute must be pure with respect to the dataset and deterministic
// for identical input; it returns the test-specific raw result or a
// domain error (core.ErrInsufficientData for precondition violations).
type HypothesisTest interface {
	ID() battery.TestID
	DisplayName() string
	MinSamples() int
	Schema() battery.ResultSchema
	Execute(ctx context.Context, ds battery.Dataset) (battery.RawResult, error)
}

// TestRegistry resolves test identifiers to implementations at
// orchestration time. Absence is a first-class, handled case: Resolve
// returns ok=false rather than an error.
type TestRegistry interface {
	Resolve(id battery.TestID) (HypothesisTest, bool)
	List() []battery.TestID
}

// RunStatus classifies the outcome of one test within a batch.
type RunStatus string

const (
	StatusOK       RunStatus = "ok"
	StatusFallback RunStatus = "fallback"
	StatusFailed   RunStatus = "failed"
)

// EventSink receives per-test progress from the orchestrator. Methods
// are invoked between tests, never mid-test, and must not block; the
// UI collaborator decides how to display them.
type EventSink interface {
	TestCompleted(id battery.TestID, status RunStatus)
	Warning(id battery.TestID, message string)
}
