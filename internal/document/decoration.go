package document

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/viewspan/internal/textrange"
)

// Category classifies a decoration for the validation filter policy.
type Category uint8

const (
	// CategoryHighlight is a background highlight (selection, search match).
	CategoryHighlight Category = iota

	// CategorySquiggle is a diagnostic underline.
	CategorySquiggle

	// CategoryInlineMarker is a per-character inline marker.
	CategoryInlineMarker

	categoryCount
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryHighlight:
		return "highlight"
	case CategorySquiggle:
		return "squiggle"
	case CategoryInlineMarker:
		return "inline-marker"
	default:
		return "unknown"
	}
}

// FilterPolicy decides which decoration categories are eligible at all.
// The zero value allows everything. Policies are computed by the
// configuration layer and passed through the resolver opaquely.
type FilterPolicy struct {
	disabled [categoryCount]bool
}

// NewFilterPolicy creates a policy with the given categories disabled.
func NewFilterPolicy(disabled ...Category) FilterPolicy {
	var p FilterPolicy
	for _, c := range disabled {
		if c < categoryCount {
			p.disabled[c] = true
		}
	}
	return p
}

// Allows returns true if the category is eligible.
func (p FilterPolicy) Allows(c Category) bool {
	if c >= categoryCount {
		return true
	}
	return !p.disabled[c]
}

// DecorationOptions is the immutable option bag shared by a document
// decoration and every view decoration derived from it.
type DecorationOptions struct {
	// Category classifies the decoration for the filter policy.
	Category Category

	// ClassName is the whole-range style class.
	ClassName string

	// IsWholeLine marks the decoration as covering entire rendered lines
	// regardless of its nominal column range.
	IsWholeLine bool

	// InlineClassName styles each covered character.
	InlineClassName string

	// InlineClassNameAffectsLetterSpacing marks the inline class as
	// changing glyph advance widths.
	InlineClassNameAffectsLetterSpacing bool

	// BeforeContentClassName injects zero-width content before the range.
	BeforeContentClassName string

	// AfterContentClassName injects zero-width content after the range.
	AfterContentClassName string

	// HideInCommentTokens hides the decoration when its whole span is
	// comment tokens.
	HideInCommentTokens bool

	// HideInStringTokens hides the decoration when its whole span is
	// string tokens.
	HideInStringTokens bool
}

// Decoration is a document-space decoration. The struct is owned by the
// model; callers treat it as read-only.
type Decoration struct {
	// ID is the stable decoration identity.
	ID string

	// OwnerID scopes the decoration to an editor instance. Owner 0 is
	// shared across all editors.
	OwnerID int

	// Range is the document-space range.
	Range textrange.Range

	// Options is the shared option bag.
	Options *DecorationOptions

	// seq preserves insertion order for stable sorting.
	seq uint64
}

// AddDecoration adds a decoration and returns its generated id.
func (m *Model) AddDecoration(ownerID int, rng textrange.Range, opts *DecorationOptions) string {
	if opts == nil {
		opts = &DecorationOptions{}
	}

	m.mu.Lock()
	d := &Decoration{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Range:   rng,
		Options: opts,
		seq:     m.nextSeq,
	}
	m.nextSeq++
	m.decorations[d.ID] = d
	m.ordered = append(m.ordered, d)
	m.mu.Unlock()

	m.notifyDecorationsChanged()
	return d.ID
}

// RemoveDecoration removes a decoration by id.
func (m *Model) RemoveDecoration(id string) error {
	m.mu.Lock()
	d, ok := m.decorations[id]
	if !ok {
		m.mu.Unlock()
		return ErrDecorationNotFound
	}
	delete(m.decorations, id)
	for i, o := range m.ordered {
		if o == d {
			m.ordered = append(m.ordered[:i], m.ordered[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.notifyDecorationsChanged()
	return nil
}

// ChangeDecorationRange moves an existing decoration.
func (m *Model) ChangeDecorationRange(id string, rng textrange.Range) error {
	m.mu.Lock()
	d, ok := m.decorations[id]
	if !ok {
		m.mu.Unlock()
		return ErrDecorationNotFound
	}
	d.Range = rng
	m.mu.Unlock()

	m.notifyDecorationsChanged()
	return nil
}

// DecorationByID returns a decoration by id.
func (m *Model) DecorationByID(id string) (*Decoration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.decorations[id]
	return d, ok
}

// DecorationCount returns the number of decorations in the store.
func (m *Model) DecorationCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.decorations)
}

// DecorationsInRange returns the decorations intersecting the range, scoped
// to the given owner (ownerID 0 matches every owner) and filtered by the
// policy. Results are ordered by start position, then insertion order.
func (m *Model) DecorationsInRange(rng textrange.Range, ownerID int, filter FilterPolicy) []*Decoration {
	m.mu.RLock()
	var result []*Decoration
	for _, d := range m.ordered {
		if ownerID != 0 && d.OwnerID != 0 && d.OwnerID != ownerID {
			continue
		}
		if !filter.Allows(d.Options.Category) {
			continue
		}
		if !d.Range.Intersects(rng) {
			continue
		}
		result = append(result, d)
	}
	m.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Range.Start.Equals(result[j].Range.Start) {
			return result[i].Range.Start.Before(result[j].Range.Start)
		}
		return result[i].seq < result[j].seq
	})
	return result
}
