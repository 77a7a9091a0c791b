package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidWrapColumn indicates a negative wrap column.
	ErrInvalidWrapColumn = errors.New("wrap column must not be negative")

	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("config watcher is closed")
)
