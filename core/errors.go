package core

import "errors"

// Sentinel errors surfaced by the engine.
var (
	// ErrWindowNotFound means a requested PI label is absent from the
	// configured calendar. Callers see the failure; it is never silently
	// defaulted to a rolling window.
	ErrWindowNotFound = errors.New("window not found")

	// ErrNoRecords means the engine was handed an empty record collection
	// before any filtering ran.
	ErrNoRecords = errors.New("no records supplied")
)
