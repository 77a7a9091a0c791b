// Package textrange provides positions and ranges for document and view
// coordinates. Lines and columns are 1-based; a column identifies the gap
// before a character, so column 1 precedes the first character and the last
// valid column on a line is len(line)+1.
package textrange

import "fmt"

// Position is a line/column pair. The zero value is not a valid position.
type Position struct {
	// Line is the 1-based line number.
	Line int

	// Col is the 1-based column number.
	Col int
}

// NewPosition creates a position.
func NewPosition(line, col int) Position {
	return Position{Line: line, Col: col}
}

// Before returns true if p is strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// BeforeOrEqual returns true if p is before or equal to other.
func (p Position) BeforeOrEqual(other Position) bool {
	return !other.Before(p)
}

// Equals returns true if two positions are identical.
func (p Position) Equals(other Position) bool {
	return p.Line == other.Line && p.Col == other.Col
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Col)
}

// Affinity is the tie-breaking rule used when a document boundary position
// corresponds to more than one view position (e.g. a soft-wrap boundary).
type Affinity uint8

const (
	// AffinityLeft resolves a boundary to the earlier view position.
	AffinityLeft Affinity = iota

	// AffinityRight resolves a boundary to the later view position.
	AffinityRight
)

// String returns the affinity name.
func (a Affinity) String() string {
	switch a {
	case AffinityLeft:
		return "left"
	case AffinityRight:
		return "right"
	default:
		return "unknown"
	}
}
