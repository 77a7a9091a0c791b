package viewlayout

import "errors"

// Errors returned by fold operations.
var (
	// ErrInvalidFold indicates a fold range outside the document or with
	// fewer than two lines.
	ErrInvalidFold = errors.New("invalid fold range")

	// ErrOverlappingFold indicates a fold that overlaps an existing fold.
	ErrOverlappingFold = errors.New("fold overlaps an existing fold")

	// ErrFoldNotFound indicates no fold starts at the given line.
	ErrFoldNotFound = errors.New("fold not found")
)
