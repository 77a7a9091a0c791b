package textrange

import "fmt"

// Range is a span between two positions. Start is inclusive, End is
// exclusive in the column sense: the character at End is not part of the
// range. A range with Start == End is empty.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range from line/column components.
func NewRange(startLine, startCol, endLine, endCol int) Range {
	return Range{
		Start: Position{Line: startLine, Col: startCol},
		End:   Position{Line: endLine, Col: endCol},
	}
}

// RangeFromPositions creates a range from two positions.
func RangeFromPositions(start, end Position) Range {
	return Range{Start: start, End: end}
}

// CollapseToStart returns the empty range at the start position.
func (r Range) CollapseToStart() Range {
	return Range{Start: r.Start, End: r.Start}
}

// CollapseToEnd returns the empty range at the end position.
func (r Range) CollapseToEnd() Range {
	return Range{Start: r.End, End: r.End}
}

// IsEmpty returns true if the range spans no characters.
func (r Range) IsEmpty() bool {
	return r.Start.Equals(r.End)
}

// Equals returns true if two ranges are identical.
func (r Range) Equals(other Range) bool {
	return r.Start.Equals(other.Start) && r.End.Equals(other.End)
}

// ContainsPosition returns true if the position lies within the range,
// boundaries included.
func (r Range) ContainsPosition(p Position) bool {
	return r.Start.BeforeOrEqual(p) && p.BeforeOrEqual(r.End)
}

// ContainsLine returns true if the line intersects the range.
func (r Range) ContainsLine(line int) bool {
	return line >= r.Start.Line && line <= r.End.Line
}

// Intersects returns true if the ranges overlap or touch.
func (r Range) Intersects(other Range) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

// Intersection returns the overlapping span of two ranges. The second
// return value is false when the ranges do not intersect.
func (r Range) Intersection(other Range) (Range, bool) {
	if !r.Intersects(other) {
		return Range{}, false
	}
	result := r
	if r.Start.Before(other.Start) {
		result.Start = other.Start
	}
	if other.End.Before(r.End) {
		result.End = other.End
	}
	return result, true
}

// String returns a string representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s -> %s]", r.Start, r.End)
}
