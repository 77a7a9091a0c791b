package viewmodel

import (
	"github.com/dshills/viewspan/internal/document"
	"github.com/dshills/viewspan/internal/textrange"
	"github.com/dshills/viewspan/internal/token"
)

// ViewDecoration is a document decoration projected into view space. The
// options bag is shared with the document decoration, not copied.
type ViewDecoration struct {
	// Range is the view-space range.
	Range textrange.Range

	// Options is the document decoration's option bag.
	Options *document.DecorationOptions
}

// InlineDecorationKind tags the rendering role of an inline decoration.
type InlineDecorationKind uint8

const (
	// InlineRegular styles the covered characters.
	InlineRegular InlineDecorationKind = iota

	// InlineRegularAffectingLetterSpacing styles covered characters with a
	// class that changes glyph advance widths.
	InlineRegularAffectingLetterSpacing

	// InlineBefore is zero-width content injected before the range start.
	InlineBefore

	// InlineAfter is zero-width content injected after the range end.
	InlineAfter
)

// String returns the kind name.
func (k InlineDecorationKind) String() string {
	switch k {
	case InlineRegular:
		return "regular"
	case InlineRegularAffectingLetterSpacing:
		return "regular-letter-spacing"
	case InlineBefore:
		return "before"
	case InlineAfter:
		return "after"
	default:
		return "unknown"
	}
}

// InlineDecoration is a per-character rendering instruction on a view line.
// Produced per resolve, never persisted.
type InlineDecoration struct {
	// Range is the view-space range. For Before/After kinds it is the
	// zero-width range at the injection point.
	Range textrange.Range

	// ClassName is the style class to apply.
	ClassName string

	// Kind is the rendering role.
	Kind InlineDecorationKind
}

// ViewportData is the resolved decoration set for one view range.
type ViewportData struct {
	// Decorations holds the visible view decorations in document
	// intersection order.
	Decorations []*ViewDecoration

	// InlineDecorations has one bucket per view line of the queried range,
	// bucket i for line startLine+i. Every bucket exists even when empty.
	// Within a bucket, entries follow decoration scan order; they are not
	// sorted by column.
	InlineDecorations [][]InlineDecoration
}

// DocumentSource is the slice of the document model this package reads.
type DocumentSource interface {
	// DecorationsInRange returns decorations intersecting the range, scoped
	// to an owner and filtered by the policy, in document order.
	DecorationsInRange(rng textrange.Range, ownerID int, filter document.FilterPolicy) []*document.Decoration

	// AllTokensSatisfy reports whether every token intersecting the range
	// satisfies the predicate.
	AllTokensSatisfy(rng textrange.Range, pred func(token.StandardType) bool) bool

	// LineMaxColumn returns the last valid column of a document line.
	LineMaxColumn(line int) int
}

// Converter maps between document and view coordinates.
type Converter interface {
	// ModelPositionToViewPosition converts a document position using the
	// given affinity for boundary ties.
	ModelPositionToViewPosition(pos textrange.Position, affinity textrange.Affinity) textrange.Position

	// ModelRangeToViewRange converts a document range using the given
	// affinity at both ends.
	ModelRangeToViewRange(rng textrange.Range, affinity textrange.Affinity) textrange.Range

	// ViewRangeToModelRange returns the document-space extent of a view
	// range.
	ViewRangeToModelRange(rng textrange.Range) textrange.Range
}
