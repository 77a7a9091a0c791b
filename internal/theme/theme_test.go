package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    Color
		wantErr bool
	}{
		{"six digit", "#6a9955", Color{R: 0x6a, G: 0x99, B: 0x55, Set: true}, false},
		{"no hash", "ce9178", Color{R: 0xce, G: 0x91, B: 0x78, Set: true}, false},
		{"three digit", "#f40", Color{R: 0xff, G: 0x44, B: 0x00, Set: true}, false},
		{"bad length", "#12345", Color{}, true},
		{"bad digit", "#zzzzzz", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.hex)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestStyleMerge(t *testing.T) {
	base := Style{Foreground: mustHex("#ffffff"), Italic: true}
	over := Style{Background: mustHex("#000000"), Bold: true}

	got := base.Merge(over)
	if got.Foreground != mustHex("#ffffff") {
		t.Errorf("expected base foreground preserved, got %+v", got.Foreground)
	}
	if got.Background != mustHex("#000000") {
		t.Errorf("expected overlay background, got %+v", got.Background)
	}
	if !got.Bold || !got.Italic {
		t.Errorf("expected bold and italic set, got %+v", got)
	}

	// Overlay foreground replaces base foreground.
	got = base.Merge(Style{Foreground: mustHex("#ff0000")})
	if got.Foreground != mustHex("#ff0000") {
		t.Errorf("expected overlay foreground to win, got %+v", got.Foreground)
	}
}

func TestLoad(t *testing.T) {
	data := []byte(`
styles:
  comment:
    fg: "#6a9955"
    italic: true
  search-match:
    bg: "#613214"
  emphasis:
    bold: true
    underline: true
`)
	th, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s, ok := th.Style("comment")
	if !ok {
		t.Fatal("expected comment style")
	}
	if s.Foreground != mustHex("#6a9955") || !s.Italic {
		t.Errorf("unexpected comment style: %+v", s)
	}

	s, ok = th.Style("search-match")
	if !ok || s.Background != mustHex("#613214") {
		t.Errorf("unexpected search-match style: %+v", s)
	}

	s, ok = th.Style("emphasis")
	if !ok || !s.Bold || !s.Underline {
		t.Errorf("unexpected emphasis style: %+v", s)
	}

	if _, ok := th.Style("missing"); ok {
		t.Error("expected miss for unknown class")
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load([]byte("styles: [not a map")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := Load([]byte("styles:\n  comment:\n    fg: \"#nothex\"\n")); err == nil {
		t.Error("expected error for bad color")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	data := "styles:\n  string:\n    fg: \"#ce9178\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write theme file: %v", err)
	}

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if s, ok := th.Style("string"); !ok || s.Foreground != mustHex("#ce9178") {
		t.Errorf("unexpected string style: %+v", s)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDottedFallback(t *testing.T) {
	th := Default()

	// comment.line falls back to comment.
	direct, ok := th.Style("comment")
	if !ok {
		t.Fatal("expected comment style in default theme")
	}
	fallback, ok := th.Style("comment.line")
	if !ok {
		t.Fatal("expected dotted fallback to resolve")
	}
	if fallback != direct {
		t.Errorf("expected fallback %+v, got %+v", direct, fallback)
	}

	// Exact match wins over the parent.
	if s, ok := th.Style("markup.heading"); !ok || !s.Bold {
		t.Errorf("expected exact markup.heading match, got %+v", s)
	}

	if _, ok := th.Style("unknown.deeply.dotted"); ok {
		t.Error("expected miss when no segment matches")
	}
}

func TestDefaultCovers(t *testing.T) {
	th := Default()
	for _, class := range []string{
		"comment", "string", "number", "keyword", "type",
		"search-match", "diagnostic-error", "inline-mark",
	} {
		if _, ok := th.Style(class); !ok {
			t.Errorf("default theme missing %q", class)
		}
	}
}

func TestSet(t *testing.T) {
	th := Default()
	th.Set("custom", Style{Bold: true})
	if s, ok := th.Style("custom"); !ok || !s.Bold {
		t.Errorf("expected custom style after Set, got %+v", s)
	}
}
