// Package styles defines the visual styling for typedisk's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. They are declared in the embedded styles.yaml.
// Output that is not a terminal, or runs with NO_COLOR set, is rendered
// without escape sequences.
package styles

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Styles maps semantic names to lipgloss styles bound to one output.
type Styles struct {
	renderer *lipgloss.Renderer
	registry map[string]lipgloss.Style
}

// New loads the embedded styles for output to w.
func New(w io.Writer) (*Styles, error) {
	return FromData(w, embeddedStyles)
}

// FromData loads style configuration from YAML data for output to w.
func FromData(w io.Writer, data []byte) (*Styles, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	renderer := lipgloss.NewRenderer(w)
	if !ColorEnabled(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	s := &Styles{
		renderer: renderer,
		registry: make(map[string]lipgloss.Style, len(config.Styles)),
	}
	for name, def := range config.Styles {
		s.registry[name] = buildStyle(renderer, colors, def)
	}
	return s, nil
}

// ColorEnabled reports whether w is a color-capable terminal and NO_COLOR
// is unset.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(r *lipgloss.Renderer, colors map[string]lipgloss.AdaptiveColor, def StyleDef) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}

	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}
	return style
}

// Get returns the named style, or a plain style for an unknown name.
func (s *Styles) Get(name string) lipgloss.Style {
	if style, ok := s.registry[name]; ok {
		return style
	}
	return s.renderer.NewStyle()
}

// Has reports whether name is defined.
func (s *Styles) Has(name string) bool {
	_, ok := s.registry[name]
	return ok
}

// Render applies the named style to text.
func (s *Styles) Render(name, text string) string {
	return s.Get(name).Render(text)
}
