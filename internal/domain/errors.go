package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyApplied indicates a side effect keyed by order id was already recorded.
	ErrAlreadyApplied = errors.New("already applied")
	// ErrFulfillmentInProgress indicates another invocation holds the per-order lock.
	ErrFulfillmentInProgress = errors.New("fulfillment already in progress")
)
