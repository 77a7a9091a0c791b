package token

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// State carries lexer state across lines for multi-line constructs such as
// block comments and raw strings. StateNormal means no construct is open.
type State uint32

// Lexer states.
const (
	StateNormal State = iota
	StateBlockComment
	StateRawString
)

// Rule is a single-line regex tokenization rule.
type Rule struct {
	// Pattern is matched against the remaining line text.
	Pattern *regexp.Regexp

	// Type is assigned to every match.
	Type Type
}

// spanRule describes a multi-line construct delimited by literal markers.
type spanRule struct {
	start string
	end   string
	typ   Type
	state State
}

// ruleMatch is one regex match competing for bytes during a line scan.
type ruleMatch struct {
	start int
	end   int
	rule  int
}

// Tokenizer is a rule-based line lexer. Regex matches from all rules are
// claimed leftmost-first, with registration order breaking ties at the same
// start offset; claimed bytes cannot be re-covered. Identifiers are
// recognized last and promoted to keyword types via the keyword table.
type Tokenizer struct {
	language string
	rules    []Rule
	keywords map[string]Type
	spans    []spanRule
}

// NewTokenizer creates an empty tokenizer for the named language.
func NewTokenizer(language string) *Tokenizer {
	return &Tokenizer{
		language: language,
		keywords: make(map[string]Type),
	}
}

// Language returns the language name.
func (t *Tokenizer) Language() string {
	return t.language
}

// AddRule registers a regex rule. The pattern must be a valid regexp;
// invalid patterns panic at registration time.
func (t *Tokenizer) AddRule(pattern string, typ Type) *Tokenizer {
	t.rules = append(t.rules, Rule{Pattern: regexp.MustCompile(pattern), Type: typ})
	return t
}

// AddKeywords registers keywords recognized inside identifier tokens.
func (t *Tokenizer) AddKeywords(typ Type, words ...string) *Tokenizer {
	for _, w := range words {
		t.keywords[w] = typ
	}
	return t
}

// AddSpan registers a multi-line construct with literal start/end markers and
// the state used while the construct remains open across lines.
func (t *Tokenizer) AddSpan(start, end string, typ Type, state State) *Tokenizer {
	t.spans = append(t.spans, spanRule{start: start, end: end, typ: typ, state: state})
	return t
}

// TokenizeLine tokenizes one line given the state left by the previous line.
// It returns the raw (possibly gapped) tokens and the state for the next line.
func (t *Tokenizer) TokenizeLine(line string, prev State) ([]Token, State) {
	if prev != StateNormal {
		rule, ok := t.spanForState(prev)
		if !ok {
			// Unknown state, treat the line as normal.
			return t.tokenizeNormal(line, 0)
		}
		endIdx := strings.Index(line, rule.end)
		if endIdx < 0 {
			// Whole line is still inside the construct.
			if len(line) == 0 {
				return nil, prev
			}
			return []Token{{Type: rule.typ, StartOffset: 0, EndOffset: len(line)}}, prev
		}
		closed := endIdx + len(rule.end)
		tokens := []Token{{Type: rule.typ, StartOffset: 0, EndOffset: closed}}
		rest, state := t.tokenizeNormal(line, closed)
		return append(tokens, rest...), state
	}

	return t.tokenizeNormal(line, 0)
}

// tokenizeNormal tokenizes line[from:] in the normal state. Token offsets are
// relative to the full line.
func (t *Tokenizer) tokenizeNormal(line string, from int) ([]Token, State) {
	text := line[from:]
	covered := make([]bool, len(text))
	var tokens []Token
	state := StateNormal

	// Multi-line construct openings first; they take priority over
	// single-line rules so an unterminated block comment swallows the tail.
	for _, rule := range t.spans {
		search := 0
		for search < len(text) {
			idx := strings.Index(text[search:], rule.start)
			if idx < 0 {
				break
			}
			start := search + idx
			if isCovered(covered, start, start+len(rule.start)) {
				search = start + len(rule.start)
				continue
			}
			endIdx := strings.Index(text[start+len(rule.start):], rule.end)
			if endIdx < 0 {
				tokens = append(tokens, Token{Type: rule.typ, StartOffset: from + start, EndOffset: from + len(text)})
				markCovered(covered, start, len(text))
				state = rule.state
				search = len(text)
				break
			}
			end := start + len(rule.start) + endIdx + len(rule.end)
			tokens = append(tokens, Token{Type: rule.typ, StartOffset: from + start, EndOffset: from + end})
			markCovered(covered, start, end)
			search = end
		}
	}

	// Single-line regex rules. Matches from all rules compete leftmost-first
	// so a construct starting earlier on the line claims its bytes before a
	// rule that matches inside it (a // marker inside a string literal never
	// becomes a comment); registration order breaks ties at the same start.
	var matches []ruleMatch
	for ri, rule := range t.rules {
		for _, match := range rule.Pattern.FindAllStringIndex(text, -1) {
			if match[1] <= match[0] {
				continue
			}
			matches = append(matches, ruleMatch{start: match[0], end: match[1], rule: ri})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].rule < matches[j].rule
	})
	for _, m := range matches {
		if isCovered(covered, m.start, m.end) {
			continue
		}
		tokens = append(tokens, Token{Type: t.rules[m.rule].Type, StartOffset: from + m.start, EndOffset: from + m.end})
		markCovered(covered, m.start, m.end)
	}

	// Identifiers and keywords over whatever is left.
	tokens = append(tokens, t.scanIdentifiers(text, from, covered)...)

	return tokens, state
}

// scanIdentifiers finds identifier words in uncovered regions and promotes
// keywords.
func (t *Tokenizer) scanIdentifiers(text string, from int, covered []bool) []Token {
	var tokens []Token
	i := 0
	for i < len(text) {
		if covered[i] {
			i++
			continue
		}
		r := rune(text[i])
		if !unicode.IsLetter(r) && r != '_' {
			i++
			continue
		}
		start := i
		for i < len(text) && !covered[i] {
			r = rune(text[i])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i++
		}
		word := text[start:i]
		typ := TypeIdentifier
		if kw, ok := t.keywords[word]; ok {
			typ = kw
		}
		tokens = append(tokens, Token{Type: typ, StartOffset: from + start, EndOffset: from + i})
		markCovered(covered, start, i)
	}
	return tokens
}

// spanForState returns the span rule that owns the given open state.
func (t *Tokenizer) spanForState(state State) (spanRule, bool) {
	for _, rule := range t.spans {
		if rule.state == state {
			return rule, true
		}
	}
	return spanRule{}, false
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
