// Package styles defines the visual styling for the terminal summary.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. The palette ships embedded and can be replaced at
// runtime with LoadStyles.
package styles

import (
	_ "embed"
	"os"

	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

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
	Width        int    `yaml:"width,omitempty"`
	MarginLeft   int    `yaml:"marginLeft,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles bound to one renderer
type Registry map[string]lipgloss.Style

var current = mustParse(defaultStyles)

func mustParse(data []byte) Config {
	cfg, err := Parse(data)
	if err != nil {
		panic("failed to load embedded styles: " + err.Error())
	}
	return cfg
}

// Parse decodes a styles configuration
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}
	return cfg, nil
}

// LoadStyles replaces the active palette with the one in path
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read styles file %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	current = cfg
	return nil
}

// Default returns the active palette
func Default() Config {
	return current
}

// Build creates the style registry for r. A nil renderer uses the lipgloss
// default renderer.
func (c Config) Build(r *lipgloss.Renderer) Registry {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	colors := make(map[string]lipgloss.AdaptiveColor, len(c.Colors))
	for name, def := range c.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(Registry, len(c.Styles))
	for name, def := range c.Styles {
		registry[name] = buildStyle(r.NewStyle(), def, colors)
	}
	return registry
}

func buildStyle(style lipgloss.Style, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
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

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}
	return style
}

// Get safely retrieves a style from the registry
func (r Registry) Get(name string) lipgloss.Style {
	if style, ok := r[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
