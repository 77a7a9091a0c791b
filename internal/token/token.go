// Package token provides line tokenization for the document model: a compact
// token taxonomy, the coarse standard classification consumed by decoration
// visibility filtering, and a regex-rule lexer with cross-line state.
package token

import "sort"

// Type is the semantic type of a token.
type Type uint8

// Token types. The taxonomy is deliberately coarse; rendering themes and the
// standard classification below are the only consumers.
const (
	TypeNone Type = iota

	TypeCommentLine
	TypeCommentBlock

	TypeString
	TypeStringRaw
	TypeRegexp

	TypeNumber
	TypeKeyword
	TypeIdentifier
	TypeTypeName
	TypeBuiltin
	TypeConstant
	TypeOperator

	TypeMarkupHeading
	TypeMarkupEmphasis
	TypeMarkupCode
	TypeMarkupLink
)

// String returns the token type name.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeCommentLine:
		return "comment.line"
	case TypeCommentBlock:
		return "comment.block"
	case TypeString:
		return "string"
	case TypeStringRaw:
		return "string.raw"
	case TypeRegexp:
		return "string.regexp"
	case TypeNumber:
		return "number"
	case TypeKeyword:
		return "keyword"
	case TypeIdentifier:
		return "identifier"
	case TypeTypeName:
		return "type"
	case TypeBuiltin:
		return "builtin"
	case TypeConstant:
		return "constant"
	case TypeOperator:
		return "operator"
	case TypeMarkupHeading:
		return "markup.heading"
	case TypeMarkupEmphasis:
		return "markup.emphasis"
	case TypeMarkupCode:
		return "markup.code"
	case TypeMarkupLink:
		return "markup.link"
	default:
		return "unknown"
	}
}

// StandardType is the coarse lexical classification used by decoration
// visibility rules.
type StandardType uint8

const (
	// StandardOther covers everything that is not a comment, string or regexp.
	StandardOther StandardType = iota

	// StandardComment covers comment tokens.
	StandardComment

	// StandardString covers string tokens.
	StandardString

	// StandardRegexp covers regular expression literals.
	StandardRegexp
)

// String returns the standard type name.
func (s StandardType) String() string {
	switch s {
	case StandardOther:
		return "other"
	case StandardComment:
		return "comment"
	case StandardString:
		return "string"
	case StandardRegexp:
		return "regexp"
	default:
		return "unknown"
	}
}

// Standard returns the coarse classification of a token type.
func (t Type) Standard() StandardType {
	switch t {
	case TypeCommentLine, TypeCommentBlock:
		return StandardComment
	case TypeString, TypeStringRaw:
		return StandardString
	case TypeRegexp:
		return StandardRegexp
	default:
		return StandardOther
	}
}

// IsComment returns true for comment tokens.
func (t Type) IsComment() bool {
	return t.Standard() == StandardComment
}

// IsString returns true for string tokens.
func (t Type) IsString() bool {
	return t.Standard() == StandardString
}

// Token is a single token on a line. Offsets are 0-based byte offsets into
// the line text; EndOffset is exclusive.
type Token struct {
	Type        Type
	StartOffset int
	EndOffset   int
}

// Len returns the token length in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// Contains returns true if the offset falls inside the token.
func (t Token) Contains(offset int) bool {
	return offset >= t.StartOffset && offset < t.EndOffset
}

// LineTokens is the complete, gap-free token sequence of one line. Tokens are
// sorted by start offset and cover every byte of the line; uncovered spans
// from the lexer are filled with TypeNone tokens.
type LineTokens struct {
	tokens []Token
}

// NewLineTokens normalizes raw lexer output into a contiguous sequence
// covering lineLen bytes. Raw tokens may be unsorted but must not overlap.
func NewLineTokens(lineLen int, raw []Token) LineTokens {
	sorted := make([]Token, len(raw))
	copy(sorted, raw)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartOffset < sorted[j].StartOffset
	})

	tokens := make([]Token, 0, len(sorted)+1)
	pos := 0
	for _, tok := range sorted {
		if tok.EndOffset <= tok.StartOffset {
			continue
		}
		if tok.StartOffset > pos {
			tokens = append(tokens, Token{Type: TypeNone, StartOffset: pos, EndOffset: tok.StartOffset})
		}
		tokens = append(tokens, tok)
		pos = tok.EndOffset
	}
	if pos < lineLen {
		tokens = append(tokens, Token{Type: TypeNone, StartOffset: pos, EndOffset: lineLen})
	}

	return LineTokens{tokens: tokens}
}

// Count returns the number of tokens on the line.
func (lt LineTokens) Count() int {
	return len(lt.tokens)
}

// StartOffset returns the start offset of token i.
func (lt LineTokens) StartOffset(i int) int {
	return lt.tokens[i].StartOffset
}

// EndOffset returns the exclusive end offset of token i.
func (lt LineTokens) EndOffset(i int) int {
	return lt.tokens[i].EndOffset
}

// TokenType returns the type of token i.
func (lt LineTokens) TokenType(i int) Type {
	return lt.tokens[i].Type
}

// StandardType returns the coarse classification of token i.
func (lt LineTokens) StandardType(i int) StandardType {
	return lt.tokens[i].Type.Standard()
}

// FindIndexAtOffset returns the index of the token covering the given byte
// offset. Offsets past the end of the line resolve to the last token.
// Returns -1 only when the line has no tokens (an empty line).
func (lt LineTokens) FindIndexAtOffset(offset int) int {
	if len(lt.tokens) == 0 {
		return -1
	}
	// Binary search for the last token starting at or before the offset.
	lo, hi := 0, len(lt.tokens)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lt.tokens[mid].StartOffset <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Tokens returns the underlying token slice. Callers must not modify it.
func (lt LineTokens) Tokens() []Token {
	return lt.tokens
}
