package token

import "testing"

// tokenAt returns the first raw token covering the given offset, or nil.
func tokenAt(tokens []Token, offset int) *Token {
	for i := range tokens {
		if tokens[i].Contains(offset) {
			return &tokens[i]
		}
	}
	return nil
}

func TestGoTokenizerLineComment(t *testing.T) {
	tok := GoTokenizer()
	tokens, state := tok.TokenizeLine(`x := 1 // trailing comment`, StateNormal)

	if state != StateNormal {
		t.Errorf("state = %v, want StateNormal", state)
	}

	c := tokenAt(tokens, 8)
	if c == nil {
		t.Fatal("no token at comment start")
	}
	if c.Type != TypeCommentLine {
		t.Errorf("token type = %v, want TypeCommentLine", c.Type)
	}
	if c.EndOffset != len(`x := 1 // trailing comment`) {
		t.Errorf("comment end = %d, want end of line", c.EndOffset)
	}
}

func TestGoTokenizerString(t *testing.T) {
	tok := GoTokenizer()
	line := `s := "hello // not a comment"`
	tokens, _ := tok.TokenizeLine(line, StateNormal)

	s := tokenAt(tokens, 6)
	if s == nil {
		t.Fatal("no token at string start")
	}
	if s.Type != TypeString {
		t.Errorf("token type = %v, want TypeString", s.Type)
	}
	if s.EndOffset != len(line) {
		t.Errorf("string end = %d, want %d", s.EndOffset, len(line))
	}
	// The comment marker inside the string must not produce a comment token.
	for _, tk := range tokens {
		if tk.Type == TypeCommentLine {
			t.Error("comment token found inside string literal")
		}
	}
}

func TestGoTokenizerQuoteInsideComment(t *testing.T) {
	tok := GoTokenizer()
	line := `x := 1 // quote "inside" stays comment`
	tokens, _ := tok.TokenizeLine(line, StateNormal)

	c := tokenAt(tokens, 7)
	if c == nil || c.Type != TypeCommentLine {
		t.Fatalf("expected line comment at marker, got %+v", c)
	}
	if c.EndOffset != len(line) {
		t.Errorf("comment end = %d, want end of line", c.EndOffset)
	}
	// The quoted word inside the comment must not produce a string token.
	for _, tk := range tokens {
		if tk.Type == TypeString {
			t.Error("string token found inside line comment")
		}
	}
}

func TestGoTokenizerBlockCommentSpansLines(t *testing.T) {
	tok := GoTokenizer()

	tokens, state := tok.TokenizeLine("x /* open", StateNormal)
	if state != StateBlockComment {
		t.Fatalf("state after open = %v, want StateBlockComment", state)
	}
	c := tokenAt(tokens, 3)
	if c == nil || c.Type != TypeCommentBlock {
		t.Fatal("expected block comment token at opening")
	}

	// Whole middle line stays in the comment.
	tokens, state = tok.TokenizeLine("still inside", state)
	if state != StateBlockComment {
		t.Errorf("state in middle = %v, want StateBlockComment", state)
	}
	if len(tokens) != 1 || tokens[0].Type != TypeCommentBlock ||
		tokens[0].StartOffset != 0 || tokens[0].EndOffset != len("still inside") {
		t.Errorf("middle line tokens = %+v, want single full-line block comment", tokens)
	}

	// Closing line returns to normal after the terminator.
	tokens, state = tok.TokenizeLine("end */ y := 2", state)
	if state != StateNormal {
		t.Errorf("state after close = %v, want StateNormal", state)
	}
	if tokens[0].Type != TypeCommentBlock || tokens[0].EndOffset != len("end */") {
		t.Errorf("closing token = %+v, want block comment through %d", tokens[0], len("end */"))
	}
	if id := tokenAt(tokens, 7); id == nil || id.Type != TypeIdentifier {
		t.Error("expected identifier token after comment close")
	}
}

func TestGoTokenizerKeywords(t *testing.T) {
	tok := GoTokenizer()
	tokens, _ := tok.TokenizeLine("func main() int", StateNormal)

	tests := []struct {
		offset int
		want   Type
	}{
		{0, TypeKeyword},    // func
		{5, TypeIdentifier}, // main
		{12, TypeTypeName},  // int
	}
	for _, tt := range tests {
		got := tokenAt(tokens, tt.offset)
		if got == nil {
			t.Errorf("no token at offset %d", tt.offset)
			continue
		}
		if got.Type != tt.want {
			t.Errorf("token at %d = %v, want %v", tt.offset, got.Type, tt.want)
		}
	}
}

func TestGoTokenizerRawString(t *testing.T) {
	tok := GoTokenizer()

	_, state := tok.TokenizeLine("s := `raw", StateNormal)
	if state != StateRawString {
		t.Fatalf("state = %v, want StateRawString", state)
	}

	tokens, state := tok.TokenizeLine("done`", state)
	if state != StateNormal {
		t.Errorf("state after close = %v, want StateNormal", state)
	}
	if tokens[0].Type != TypeStringRaw || tokens[0].EndOffset != len("done`") {
		t.Errorf("raw string close token = %+v", tokens[0])
	}
}

func TestMarkdownTokenizerHeading(t *testing.T) {
	tok := MarkdownTokenizer()
	tokens, _ := tok.TokenizeLine("## Section title", StateNormal)

	h := tokenAt(tokens, 0)
	if h == nil || h.Type != TypeMarkupHeading {
		t.Fatalf("expected heading token, got %+v", tokens)
	}
	if h.EndOffset != len("## Section title") {
		t.Errorf("heading end = %d, want full line", h.EndOffset)
	}
}

func TestPlainTokenizerClassifiesOther(t *testing.T) {
	tok := PlainTokenizer()
	line := "just some text"
	raw, _ := tok.TokenizeLine(line, StateNormal)
	lt := NewLineTokens(len(line), raw)

	for i := 0; i < lt.Count(); i++ {
		if lt.StandardType(i) != StandardOther {
			t.Errorf("token %d standard type = %v, want StandardOther", i, lt.StandardType(i))
		}
	}
}
