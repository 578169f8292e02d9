package engine

import "errors"

// Sentinel errors shared across the engine and the catalog gateway.
// Callers test with errors.Is; concrete errors wrap these with detail.
var (
	// ErrInvalidFilterCriterion marks a malformed identifier or an illegal
	// condition/field combination. Rejected before any remote call.
	ErrInvalidFilterCriterion = errors.New("invalid filter criterion")

	// ErrInvalidOperationParameter marks a non-numeric or out-of-range
	// amount, or a missing required sub-field. Rejected before batch
	// execution begins, so no partial batch is ever attempted.
	ErrInvalidOperationParameter = errors.New("invalid operation parameter")

	// ErrNotFound is returned by gateway implementations when an item or
	// its mutable variant does not exist on the remote side.
	ErrNotFound = errors.New("not found")

	// ErrRemoteUnavailable means the gateway itself cannot be reached
	// (auth failure, connection refused). It aborts the whole batch,
	// unlike per-item errors which are recorded and execution continues.
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
)
