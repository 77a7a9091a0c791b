// Package render composes view-line text, token styles, and resolved
// decorations into styled cells. The compositor is pure: it holds no
// screen state and writes nothing, making it trivial to test and to
// drive from any backend.
package render

import (
	"github.com/dshills/viewspan/internal/theme"
	"github.com/dshills/viewspan/internal/token"
	"github.com/dshills/viewspan/internal/viewmodel"
)

// Cell is one styled screen cell.
type Cell struct {
	Rune  rune
	Style theme.Style
}

// LineInput carries everything needed to compose one view line.
type LineInput struct {
	// ViewLine is the 1-based view line number.
	ViewLine int

	// Text is the view line content.
	Text string

	// Tokens covers the line (may be zero value for unstyled text).
	Tokens token.LineTokens

	// Decorations is the viewport decoration snapshot. Entries whose
	// range does not touch this line are skipped.
	Decorations []*viewmodel.ViewDecoration

	// Inline is this line's inline decoration bucket.
	Inline []viewmodel.InlineDecoration
}

// Compositor layers token styles and decoration styles over a base style.
// Layering order is base, then tokens, then line decorations, then inline
// decorations; later layers win on conflict.
type Compositor struct {
	theme *theme.Theme
	base  theme.Style

	beforeMarker rune
	afterMarker  rune
}

// NewCompositor creates a compositor using the given theme. A nil theme
// falls back to the built-in default.
func NewCompositor(th *theme.Theme) *Compositor {
	if th == nil {
		th = theme.Default()
	}
	return &Compositor{
		theme:        th,
		beforeMarker: '▸',
		afterMarker:  '◂',
	}
}

// SetBaseStyle sets the style applied beneath all layers.
func (c *Compositor) SetBaseStyle(s theme.Style) {
	c.base = s
}

// SetMarkers sets the glyphs injected for before and after content
// decorations.
func (c *Compositor) SetMarkers(before, after rune) {
	c.beforeMarker = before
	c.afterMarker = after
}

// injection is a marker cell pinned at a byte offset.
type injection struct {
	offset int
	cell   Cell
}

// ComposeLine produces the styled cells for one view line. Before and
// after content decorations inject marker cells at their positions,
// shifting the content right.
func (c *Compositor) ComposeLine(in LineInput) []Cell {
	n := len(in.Text)
	styles := make([]theme.Style, n)
	for i := range styles {
		styles[i] = c.base
	}

	for i := 0; i < in.Tokens.Count(); i++ {
		s, ok := c.theme.Style(in.Tokens.TokenType(i).String())
		if !ok {
			continue
		}
		c.applyStyle(styles, in.Tokens.StartOffset(i), in.Tokens.EndOffset(i), s)
	}

	for _, d := range in.Decorations {
		if d.Options.ClassName == "" || !d.Range.ContainsLine(in.ViewLine) {
			continue
		}
		s, ok := c.theme.Style(d.Options.ClassName)
		if !ok {
			continue
		}
		start, end := clipToLine(d.Range.Start.Line, d.Range.Start.Col, d.Range.End.Line, d.Range.End.Col, in.ViewLine, n)
		c.applyStyle(styles, start, end, s)
	}

	var injections []injection
	for _, inline := range in.Inline {
		s, ok := c.theme.Style(inline.ClassName)
		if !ok {
			continue
		}
		switch inline.Kind {
		case viewmodel.InlineRegular, viewmodel.InlineRegularAffectingLetterSpacing:
			start, end := clipToLine(inline.Range.Start.Line, inline.Range.Start.Col, inline.Range.End.Line, inline.Range.End.Col, in.ViewLine, n)
			c.applyStyle(styles, start, end, s)
		case viewmodel.InlineBefore:
			injections = append(injections, injection{
				offset: inline.Range.Start.Col - 1,
				cell:   Cell{Rune: c.beforeMarker, Style: c.base.Merge(s)},
			})
		case viewmodel.InlineAfter:
			injections = append(injections, injection{
				offset: inline.Range.End.Col - 1,
				cell:   Cell{Rune: c.afterMarker, Style: c.base.Merge(s)},
			})
		}
	}

	cells := make([]Cell, 0, n+len(injections))
	offset := 0
	for _, r := range in.Text {
		for i := range injections {
			if injections[i].offset == offset {
				cells = append(cells, injections[i].cell)
			}
		}
		cells = append(cells, Cell{Rune: r, Style: styles[offset]})
		offset += len(string(r))
	}
	for i := range injections {
		if injections[i].offset >= n {
			cells = append(cells, injections[i].cell)
		}
	}
	return cells
}

// ComposeViewport composes every line of a view range against a viewport
// snapshot. lineText and lineTokens are indexed by view line number;
// data's inline buckets are indexed relative to startLine.
func (c *Compositor) ComposeViewport(
	startLine, endLine int,
	lineText func(viewLine int) string,
	lineTokens func(viewLine int) token.LineTokens,
	data *viewmodel.ViewportData,
) [][]Cell {
	lines := make([][]Cell, 0, endLine-startLine+1)
	for vl := startLine; vl <= endLine; vl++ {
		in := LineInput{
			ViewLine:    vl,
			Text:        lineText(vl),
			Decorations: data.Decorations,
		}
		if lineTokens != nil {
			in.Tokens = lineTokens(vl)
		}
		if idx := vl - startLine; idx < len(data.InlineDecorations) {
			in.Inline = data.InlineDecorations[idx]
		}
		lines = append(lines, c.ComposeLine(in))
	}
	return lines
}

// applyStyle merges a style over the byte span [start, end).
func (c *Compositor) applyStyle(styles []theme.Style, start, end int, s theme.Style) {
	if start < 0 {
		start = 0
	}
	if end > len(styles) {
		end = len(styles)
	}
	for i := start; i < end; i++ {
		styles[i] = styles[i].Merge(s)
	}
}

// clipToLine converts a multi-line span's 1-based columns to the byte
// span it covers on one line.
func clipToLine(startLine, startCol, endLine, endCol, line, lineLen int) (int, int) {
	start := 0
	if startLine == line {
		start = startCol - 1
	}
	end := lineLen
	if endLine == line {
		end = endCol - 1
	}
	return start, end
}
