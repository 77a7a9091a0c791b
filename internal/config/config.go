package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/viewspan/internal/document"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "VIEWSPAN_"

// Settings is the viewspan configuration tree.
type Settings struct {
	View        ViewSettings       `toml:"view"`
	Decorations DecorationSettings `toml:"decorations"`
	Theme       ThemeSettings      `toml:"theme"`
}

// ViewSettings configures the view layout.
type ViewSettings struct {
	// WrapColumn is the soft-wrap column; 0 disables wrapping.
	WrapColumn int `toml:"wrap_column"`
}

// DecorationSettings enables or disables decoration categories. Disabled
// categories are excluded by the computed filter policy before any
// per-decoration processing.
type DecorationSettings struct {
	Highlights    bool `toml:"highlights"`
	Squiggles     bool `toml:"squiggles"`
	InlineMarkers bool `toml:"inline_markers"`
}

// ThemeSettings locates the YAML theme file.
type ThemeSettings struct {
	// Path is the theme file path; empty selects the built-in theme.
	Path string `toml:"path"`
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		View: ViewSettings{WrapColumn: 0},
		Decorations: DecorationSettings{
			Highlights:    true,
			Squiggles:     true,
			InlineMarkers: true,
		},
	}
}

// Load reads settings from the TOML file at path, applies environment
// overrides, and validates. A missing file is not an error; defaults plus
// environment overrides apply.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnv overrides settings from VIEWSPAN_-prefixed variables.
func (s *Settings) applyEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix + "WRAP_COLUMN"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sWRAP_COLUMN: %w", EnvPrefix, err)
		}
		s.View.WrapColumn = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME"); ok {
		s.Theme.Path = v
	}
	return nil
}

// Validate checks settings invariants.
func (s *Settings) Validate() error {
	if s.View.WrapColumn < 0 {
		return ErrInvalidWrapColumn
	}
	return nil
}

// FilterPolicy computes the decoration validation filter from the enabled
// categories.
func (s *Settings) FilterPolicy() document.FilterPolicy {
	var disabled []document.Category
	if !s.Decorations.Highlights {
		disabled = append(disabled, document.CategoryHighlight)
	}
	if !s.Decorations.Squiggles {
		disabled = append(disabled, document.CategorySquiggle)
	}
	if !s.Decorations.InlineMarkers {
		disabled = append(disabled, document.CategoryInlineMarker)
	}
	return document.NewFilterPolicy(disabled...)
}
