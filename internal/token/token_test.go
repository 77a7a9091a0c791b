package token

import "testing"

func TestStandardClassification(t *testing.T) {
	tests := []struct {
		typ  Type
		want StandardType
	}{
		{TypeCommentLine, StandardComment},
		{TypeCommentBlock, StandardComment},
		{TypeString, StandardString},
		{TypeStringRaw, StandardString},
		{TypeRegexp, StandardRegexp},
		{TypeKeyword, StandardOther},
		{TypeIdentifier, StandardOther},
		{TypeNone, StandardOther},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Standard(); got != tt.want {
				t.Errorf("Standard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLineTokensFillsGaps(t *testing.T) {
	raw := []Token{
		{Type: TypeKeyword, StartOffset: 4, EndOffset: 7},
		{Type: TypeString, StartOffset: 10, EndOffset: 14},
	}
	lt := NewLineTokens(16, raw)

	if lt.Count() != 5 {
		t.Fatalf("expected 5 tokens after gap filling, got %d", lt.Count())
	}

	wantTypes := []Type{TypeNone, TypeKeyword, TypeNone, TypeString, TypeNone}
	wantStarts := []int{0, 4, 7, 10, 14}
	for i := 0; i < lt.Count(); i++ {
		if lt.TokenType(i) != wantTypes[i] {
			t.Errorf("token %d type = %v, want %v", i, lt.TokenType(i), wantTypes[i])
		}
		if lt.StartOffset(i) != wantStarts[i] {
			t.Errorf("token %d start = %d, want %d", i, lt.StartOffset(i), wantStarts[i])
		}
	}
	if lt.EndOffset(lt.Count()-1) != 16 {
		t.Errorf("last token end = %d, want 16", lt.EndOffset(lt.Count()-1))
	}
}

func TestNewLineTokensSortsInput(t *testing.T) {
	raw := []Token{
		{Type: TypeString, StartOffset: 5, EndOffset: 8},
		{Type: TypeKeyword, StartOffset: 0, EndOffset: 3},
	}
	lt := NewLineTokens(8, raw)

	if lt.TokenType(0) != TypeKeyword {
		t.Errorf("first token type = %v, want %v", lt.TokenType(0), TypeKeyword)
	}
	if lt.TokenType(lt.Count()-1) != TypeString {
		t.Errorf("last token type = %v, want %v", lt.TokenType(lt.Count()-1), TypeString)
	}
}

func TestFindIndexAtOffset(t *testing.T) {
	lt := NewLineTokens(12, []Token{
		{Type: TypeKeyword, StartOffset: 0, EndOffset: 4},
		{Type: TypeIdentifier, StartOffset: 4, EndOffset: 8},
		{Type: TypeString, StartOffset: 8, EndOffset: 12},
	})

	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{7, 1},
		{8, 2},
		{11, 2},
		{99, 2}, // past end resolves to last token
	}

	for _, tt := range tests {
		if got := lt.FindIndexAtOffset(tt.offset); got != tt.want {
			t.Errorf("FindIndexAtOffset(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestFindIndexAtOffsetEmptyLine(t *testing.T) {
	lt := NewLineTokens(0, nil)
	if got := lt.FindIndexAtOffset(0); got != -1 {
		t.Errorf("FindIndexAtOffset on empty line = %d, want -1", got)
	}
	if lt.Count() != 0 {
		t.Errorf("empty line token count = %d, want 0", lt.Count())
	}
}
