package token

// GoTokenizer returns a tokenizer for Go source.
func GoTokenizer() *Tokenizer {
	t := NewTokenizer("go")

	t.AddSpan("/*", "*/", TypeCommentBlock, StateBlockComment)
	t.AddSpan("`", "`", TypeStringRaw, StateRawString)

	t.AddRule(`//.*$`, TypeCommentLine)
	t.AddRule(`"(?:[^"\\]|\\.)*"`, TypeString)
	t.AddRule(`'(?:[^'\\]|\\.)+'`, TypeString)
	t.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, TypeNumber)
	t.AddRule(`\b0[bB][01_]+\b`, TypeNumber)
	t.AddRule(`\b\d[\d_]*\.?\d*(?:[eE][+-]?\d+)?i?\b`, TypeNumber)

	t.AddKeywords(TypeKeyword,
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var")
	t.AddKeywords(TypeConstant, "true", "false", "nil", "iota")
	t.AddKeywords(TypeTypeName,
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any")
	t.AddKeywords(TypeBuiltin,
		"append", "cap", "clear", "close", "complex", "copy", "delete",
		"imag", "len", "make", "max", "min", "new", "panic", "print",
		"println", "real", "recover")

	return t
}

// MarkdownTokenizer returns a tokenizer for Markdown text.
func MarkdownTokenizer() *Tokenizer {
	t := NewTokenizer("markdown")

	t.AddRule(`^#{1,6}\s.*$`, TypeMarkupHeading)
	t.AddRule("`[^`]+`", TypeMarkupCode)
	t.AddRule(`\*\*[^*]+\*\*`, TypeMarkupEmphasis)
	t.AddRule(`\*[^*]+\*`, TypeMarkupEmphasis)
	t.AddRule(`\[[^\]]+\]\([^)]+\)`, TypeMarkupLink)

	return t
}

// PlainTokenizer returns a tokenizer with no rules; every token on every
// line classifies as StandardOther.
func PlainTokenizer() *Tokenizer {
	return NewTokenizer("plain")
}
