// Package internalerr holds the sentinel errors shared by remindmap packages.
package internalerr

import "errors"

// Sentinel errors. Call sites wrap them with context and callers match
// with errors.Is.
var (
	// ErrInvalidInput marks a precondition violation, e.g. an item
	// collection with duplicate ids handed to the graph builder.
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
