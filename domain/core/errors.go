package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dataset errors - these abort a batch before any test runs
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrNonFiniteValue = errors.New("dataset contains non-finite value")
	ErrInvalidAlpha   = errors.New("alpha must be in (0,1)")

	// Per-test errors - recovered locally by the orchestrator
	ErrInsufficientData = errors.New("insufficient data for test")
	ErrTestUnavailable  = errors.New("test implementation unavailable")
	ErrNormalization    = errors.New("result normalization failed")
	ErrComputation      = errors.New("unexpected computation error")
)

// Error constructors with context
func NewInsufficientDataError(testID string, need, got int) error {
	return fmt.Errorf("%w: %s requires at least %d samples, got %d", ErrInsufficientData, testID, need, got)
}

func NewNormalizationError(field string, reason string) error {
	return fmt.Errorf("%w: field %q: %s", ErrNormalization, field, reason)
}

func NewUnavailableError(testID string) error {
	return fmt.Errorf("%w: %s", ErrTestUnavailable, testID)
}

func NewComputationError(testID string, err error) error {
	return fmt.Errorf("%w in %s: %v", ErrComputation, testID, err)
}

// Error checking helpers
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrTestUnavailable)
}

func IsNormalization(err error) bool {
	return errors.Is(err, ErrNormalization)
}

// IsDatasetError reports whether err invalidates the whole batch rather
// than a single test.
func IsDatasetError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrNonFiniteValue) ||
		errors.Is(err, ErrInvalidAlpha)
}
