package document

import (
	"strings"
	"sync"

	"github.com/dshills/viewspan/internal/textrange"
	"github.com/dshills/viewspan/internal/token"
)

// Model is the document model: line text, tokenization, and decorations.
type Model struct {
	mu sync.RWMutex

	lines     []string
	tokenizer *token.Tokenizer

	// Tokenization cache. tokenized is the number of leading lines with a
	// valid cache entry; states[i] is the lexer state after line i.
	lineTokens []token.LineTokens
	states     []token.State
	tokenized  int

	// Decoration store.
	decorations map[string]*Decoration
	ordered     []*Decoration
	nextSeq     uint64

	// Observers, invoked synchronously in registration order.
	contentObservers    []func()
	decorationObservers []func()
}

// NewModel creates a model over the given text using the given tokenizer.
// A nil tokenizer falls back to the plain tokenizer.
func NewModel(text string, tokenizer *token.Tokenizer) *Model {
	if tokenizer == nil {
		tokenizer = token.PlainTokenizer()
	}
	m := &Model{
		tokenizer:   tokenizer,
		decorations: make(map[string]*Decoration),
	}
	m.setTextLocked(text)
	return m
}

// SetText replaces the entire document text. The tokenization cache is
// discarded wholesale and content observers fire.
func (m *Model) SetText(text string) {
	m.mu.Lock()
	m.setTextLocked(text)
	observers := append([]func(){}, m.contentObservers...)
	m.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// setTextLocked resets line and token state (must hold write lock, or be
// called from the constructor).
func (m *Model) setTextLocked(text string) {
	m.lines = strings.Split(text, "\n")
	m.lineTokens = make([]token.LineTokens, len(m.lines))
	m.states = make([]token.State, len(m.lines))
	m.tokenized = 0
}

// LineCount returns the number of lines. A model always has at least one
// line; the empty document has one empty line.
func (m *Model) LineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines)
}

// LineContent returns the text of the given 1-based line.
func (m *Model) LineContent(line int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines[line-1]
}

// LineMaxColumn returns the last valid column of the given 1-based line,
// which is len(line)+1.
func (m *Model) LineMaxColumn(line int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines[line-1]) + 1
}

// FullRange returns the range covering the whole document.
func (m *Model) FullRange() textrange.Range {
	m.mu.RLock()
	defer m.mu.RUnlock()
	last := len(m.lines)
	return textrange.NewRange(1, 1, last, len(m.lines[last-1])+1)
}

// LineTokens returns the normalized token sequence for the given 1-based
// line, tokenizing lazily from the first un-tokenized line.
func (m *Model) LineTokens(line int) token.LineTokens {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := line - 1
	for m.tokenized <= idx {
		i := m.tokenized
		prev := token.StateNormal
		if i > 0 {
			prev = m.states[i-1]
		}
		raw, next := m.tokenizer.TokenizeLine(m.lines[i], prev)
		m.lineTokens[i] = token.NewLineTokens(len(m.lines[i]), raw)
		m.states[i] = next
		m.tokenized++
	}
	return m.lineTokens[idx]
}

// AllTokensSatisfy reports whether every token intersecting the range
// satisfies the predicate. Scanning runs line by line: the first line starts
// at the token covering the start column, the last line stops once a token
// starts past the end column. The scan short-circuits on the first failing
// token. An empty or token-free span is vacuously true.
func (m *Model) AllTokensSatisfy(r textrange.Range, pred func(token.StandardType) bool) bool {
	for line := r.Start.Line; line <= r.End.Line; line++ {
		tokens := m.LineTokens(line)
		count := tokens.Count()
		if count == 0 {
			continue
		}

		i := 0
		if line == r.Start.Line {
			i = tokens.FindIndexAtOffset(r.Start.Col - 1)
		}
		for ; i < count; i++ {
			if line == r.End.Line && tokens.StartOffset(i) > r.End.Col-1 {
				break
			}
			if !pred(tokens.StandardType(i)) {
				return false
			}
		}
	}
	return true
}

// OnContentChanged registers an observer fired after every SetText.
func (m *Model) OnContentChanged(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contentObservers = append(m.contentObservers, fn)
}

// OnDecorationsChanged registers an observer fired after every decoration
// mutation.
func (m *Model) OnDecorationsChanged(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decorationObservers = append(m.decorationObservers, fn)
}

// notifyDecorationsChanged invokes decoration observers (without the lock).
func (m *Model) notifyDecorationsChanged() {
	m.mu.RLock()
	observers := append([]func(){}, m.decorationObservers...)
	m.mu.RUnlock()

	for _, fn := range observers {
		fn()
	}
}
