// Package theme maps style class names to terminal styles. Themes are
// loaded from YAML files; a built-in default covers the standard classes.
package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an RGB color. Unset means the terminal default.
type Color struct {
	R, G, B uint8
	Set     bool
}

// ParseHex parses "#rgb" or "#rrggbb" into a color.
func ParseHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	parse := func(s string) (uint8, error) {
		v, err := strconv.ParseUint(s, 16, 8)
		return uint8(v), err
	}

	switch len(hex) {
	case 3:
		r, err1 := parse(string(hex[0]) + string(hex[0]))
		g, err2 := parse(string(hex[1]) + string(hex[1]))
		b, err3 := parse(string(hex[2]) + string(hex[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		return Color{R: r, G: g, B: b, Set: true}, nil
	case 6:
		r, err1 := parse(hex[0:2])
		g, err2 := parse(hex[2:4])
		b, err3 := parse(hex[4:6])
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		return Color{R: r, G: g, B: b, Set: true}, nil
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
}

// Style is the visual style attached to a class name.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Italic     bool
	Underline  bool
}

// Merge overlays another style onto this one. Set colors and true flags in
// the overlay win.
func (s Style) Merge(over Style) Style {
	result := s
	if over.Foreground.Set {
		result.Foreground = over.Foreground
	}
	if over.Background.Set {
		result.Background = over.Background
	}
	result.Bold = result.Bold || over.Bold
	result.Italic = result.Italic || over.Italic
	result.Underline = result.Underline || over.Underline
	return result
}

// Theme resolves class names to styles.
type Theme struct {
	styles map[string]Style
}

// Style returns the style for a class name. Dotted class names fall back to
// their parent ("comment.line" falls back to "comment").
func (t *Theme) Style(class string) (Style, bool) {
	for {
		if s, ok := t.styles[class]; ok {
			return s, true
		}
		idx := strings.LastIndex(class, ".")
		if idx < 0 {
			return Style{}, false
		}
		class = class[:idx]
	}
}

// Set assigns the style for a class name.
func (t *Theme) Set(class string, style Style) {
	t.styles[class] = style
}

// styleSpec is the YAML shape of one style entry.
type styleSpec struct {
	Fg        string `yaml:"fg"`
	Bg        string `yaml:"bg"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
}

// fileTheme is the YAML shape of a theme file.
type fileTheme struct {
	Styles map[string]styleSpec `yaml:"styles"`
}

// Load parses a theme from YAML bytes.
func Load(data []byte) (*Theme, error) {
	var ft fileTheme
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}

	t := &Theme{styles: make(map[string]Style, len(ft.Styles))}
	for class, spec := range ft.Styles {
		style := Style{Bold: spec.Bold, Italic: spec.Italic, Underline: spec.Underline}
		if spec.Fg != "" {
			c, err := ParseHex(spec.Fg)
			if err != nil {
				return nil, fmt.Errorf("theme class %q: %w", class, err)
			}
			style.Foreground = c
		}
		if spec.Bg != "" {
			c, err := ParseHex(spec.Bg)
			if err != nil {
				return nil, fmt.Errorf("theme class %q: %w", class, err)
			}
			style.Background = c
		}
		t.styles[class] = style
	}
	return t, nil
}

// LoadFile loads a theme from a YAML file.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return Load(data)
}

// mustHex parses a known-good hex literal.
func mustHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{styles: map[string]Style{
		"comment":        {Foreground: mustHex("#6a9955"), Italic: true},
		"string":         {Foreground: mustHex("#ce9178")},
		"number":         {Foreground: mustHex("#b5cea8")},
		"keyword":        {Foreground: mustHex("#569cd6"), Bold: true},
		"type":           {Foreground: mustHex("#4ec9b0")},
		"builtin":        {Foreground: mustHex("#dcdcaa")},
		"constant":       {Foreground: mustHex("#4fc1ff")},
		"markup.heading": {Foreground: mustHex("#569cd6"), Bold: true},
		"markup.code":    {Foreground: mustHex("#ce9178")},

		"search-match":     {Background: mustHex("#613214")},
		"selection":        {Background: mustHex("#264f78")},
		"diagnostic-error": {Foreground: mustHex("#f44747"), Underline: true},
		"inline-mark":      {Background: mustHex("#3a3d41")},
		"injected-text":    {Foreground: mustHex("#808080"), Italic: true},
	}}
}
