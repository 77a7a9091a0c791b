// Package viewlayout projects document lines into view lines under soft
// wrapping and folding, and converts positions and ranges between the two
// coordinate spaces.
//
// View lines are 1-based. Wrapping is a hard split at the wrap column (no
// word-boundary logic); a fold hides every document line after the fold's
// first line through its last line, so the fold head stays visible. A view
// position always maps back to a document position; a document position
// inside a folded region does not exist in the view and clamps to the end of
// the nearest preceding visible line.
package viewlayout

import (
	"sync"

	"github.com/dshills/viewspan/internal/document"
	"github.com/dshills/viewspan/internal/textrange"
)

// segment is one view line: a slice of a document line.
type segment struct {
	modelLine int // 1-based document line
	startCol  int // 1-based first document column of the slice
	length    int // slice length in bytes
}

// fold is a folded document line range; lines start+1..end are hidden.
type fold struct {
	start int
	end   int
}

// Layout is the coordinate converter between document and view space.
type Layout struct {
	mu sync.RWMutex

	model      *document.Model
	wrapColumn int
	folds      []fold

	// segments[i] describes view line i+1. firstView[l] is the 1-based
	// first view line of document line l+1, or 0 when the line is hidden.
	segments  []segment
	firstView []int

	observers []func()
}

// NewLayout creates a layout over the model. wrapColumn 0 disables wrapping.
// The layout subscribes to model content changes and rebuilds itself.
func NewLayout(model *document.Model, wrapColumn int) *Layout {
	l := &Layout{model: model, wrapColumn: wrapColumn}
	l.rebuild()
	model.OnContentChanged(func() {
		l.rebuild()
		l.notify()
	})
	return l
}

// OnLineMappingChanged registers an observer fired whenever the
// document-to-view line mapping changes (wrap column, folding, content).
func (l *Layout) OnLineMappingChanged(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// notify invokes line-mapping observers (without the lock).
func (l *Layout) notify() {
	l.mu.RLock()
	observers := append([]func(){}, l.observers...)
	l.mu.RUnlock()

	for _, fn := range observers {
		fn()
	}
}

// SetWrapColumn changes the wrap column and rebuilds the mapping.
func (l *Layout) SetWrapColumn(wrapColumn int) {
	l.mu.Lock()
	if l.wrapColumn == wrapColumn {
		l.mu.Unlock()
		return
	}
	l.wrapColumn = wrapColumn
	l.mu.Unlock()

	l.rebuild()
	l.notify()
}

// WrapColumn returns the current wrap column (0 = off).
func (l *Layout) WrapColumn() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.wrapColumn
}

// Fold hides document lines startLine+1 through endLine. Folds that overlap
// an existing fold are ignored.
func (l *Layout) Fold(startLine, endLine int) error {
	if startLine >= endLine || startLine < 1 || endLine > l.model.LineCount() {
		return ErrInvalidFold
	}

	l.mu.Lock()
	for _, f := range l.folds {
		if startLine <= f.end && f.start <= endLine {
			l.mu.Unlock()
			return ErrOverlappingFold
		}
	}
	l.folds = append(l.folds, fold{start: startLine, end: endLine})
	l.mu.Unlock()

	l.rebuild()
	l.notify()
	return nil
}

// Unfold removes the fold whose first line is startLine.
func (l *Layout) Unfold(startLine int) error {
	l.mu.Lock()
	idx := -1
	for i, f := range l.folds {
		if f.start == startLine {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return ErrFoldNotFound
	}
	l.folds = append(l.folds[:idx], l.folds[idx+1:]...)
	l.mu.Unlock()

	l.rebuild()
	l.notify()
	return nil
}

// rebuild recomputes the segment table from the model, wrap column and folds.
func (l *Layout) rebuild() {
	l.mu.Lock()
	defer l.mu.Unlock()

	lineCount := l.model.LineCount()

	// Drop folds that no longer fit the document.
	valid := l.folds[:0]
	for _, f := range l.folds {
		if f.start >= 1 && f.end <= lineCount {
			valid = append(valid, f)
		}
	}
	l.folds = valid

	hidden := make([]bool, lineCount+1)
	for _, f := range l.folds {
		for line := f.start + 1; line <= f.end; line++ {
			hidden[line] = true
		}
	}

	l.segments = l.segments[:0]
	l.firstView = make([]int, lineCount+1)

	for line := 1; line <= lineCount; line++ {
		if hidden[line] {
			continue
		}
		l.firstView[line] = len(l.segments) + 1
		length := len(l.model.LineContent(line))

		if l.wrapColumn <= 0 || length <= l.wrapColumn {
			l.segments = append(l.segments, segment{modelLine: line, startCol: 1, length: length})
			continue
		}
		for start := 0; start < length; start += l.wrapColumn {
			segLen := l.wrapColumn
			if start+segLen > length {
				segLen = length - start
			}
			l.segments = append(l.segments, segment{modelLine: line, startCol: start + 1, length: segLen})
		}
	}
}

// ViewLineCount returns the number of view lines.
func (l *Layout) ViewLineCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.segments)
}

// ViewLineMaxColumn returns the last valid column of a view line.
func (l *Layout) ViewLineMaxColumn(viewLine int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.segments[viewLine-1].length + 1
}

// ModelPositionToViewPosition converts a document position to view space.
// Positions on a wrap boundary resolve per the affinity; positions inside a
// folded region clamp to the end of the nearest preceding visible line.
func (l *Layout) ModelPositionToViewPosition(pos textrange.Position, affinity textrange.Affinity) textrange.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.toViewLocked(pos, affinity)
}

// toViewLocked is the conversion core (must hold read lock).
func (l *Layout) toViewLocked(pos textrange.Position, affinity textrange.Affinity) textrange.Position {
	line := pos.Line
	if line < 1 {
		line = 1
	}
	if line >= len(l.firstView) {
		line = len(l.firstView) - 1
	}

	first := l.firstView[line]
	if first == 0 {
		// Hidden line: clamp to the end of the preceding visible line.
		for line > 1 && l.firstView[line] == 0 {
			line--
		}
		vl := l.lastViewLineOf(line)
		return textrange.NewPosition(vl, l.segments[vl-1].length+1)
	}

	last := l.lastViewLineOf(line)
	for vl := first; vl <= last; vl++ {
		seg := l.segments[vl-1]
		segEnd := seg.startCol + seg.length

		if pos.Col < seg.startCol {
			// Before the first segment; clamp to its start.
			return textrange.NewPosition(vl, 1)
		}
		if pos.Col < segEnd || vl == last {
			return textrange.NewPosition(vl, pos.Col-seg.startCol+1)
		}
		if pos.Col == segEnd {
			// Wrap boundary between vl and vl+1.
			if affinity == textrange.AffinityLeft {
				return textrange.NewPosition(vl, seg.length+1)
			}
			return textrange.NewPosition(vl+1, 1)
		}
	}
	// Unreachable: the last segment accepts any trailing column.
	vl := last
	return textrange.NewPosition(vl, l.segments[vl-1].length+1)
}

// lastViewLineOf returns the last view line of a visible document line
// (must hold read lock).
func (l *Layout) lastViewLineOf(line int) int {
	vl := l.firstView[line]
	for vl < len(l.segments) && l.segments[vl].modelLine == line {
		vl++
	}
	return vl
}

// ModelRangeToViewRange converts a document range to view space, applying
// the same affinity at both ends.
func (l *Layout) ModelRangeToViewRange(r textrange.Range, affinity textrange.Affinity) textrange.Range {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return textrange.RangeFromPositions(
		l.toViewLocked(r.Start, affinity),
		l.toViewLocked(r.End, affinity),
	)
}

// ViewPositionToModelPosition converts a view position to document space.
func (l *Layout) ViewPositionToModelPosition(pos textrange.Position) textrange.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.toModelLocked(pos)
}

// toModelLocked is the reverse conversion core (must hold read lock).
func (l *Layout) toModelLocked(pos textrange.Position) textrange.Position {
	line := pos.Line
	if line < 1 {
		line = 1
	}
	if line > len(l.segments) {
		line = len(l.segments)
	}
	seg := l.segments[line-1]

	col := pos.Col
	if col < 1 {
		col = 1
	}
	if col > seg.length+1 {
		col = seg.length + 1
	}
	return textrange.NewPosition(seg.modelLine, seg.startCol+col-1)
}

// ViewRangeToModelRange converts a view range to its document-space extent.
func (l *Layout) ViewRangeToModelRange(r textrange.Range) textrange.Range {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return textrange.RangeFromPositions(
		l.toModelLocked(r.Start),
		l.toModelLocked(r.End),
	)
}
