// Package manifest parses deck manifests: YAML documents naming a
// template and the slides to compile, with typed placeholder nodes.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"deckgen/chart"
	"deckgen/deck"
	"deckgen/source"
)

// Manifest is the top-level document.
type Manifest struct {
	Template string            `yaml:"template"`
	Title    string            `yaml:"title,omitempty"`
	DPI      int               `yaml:"dpi,omitempty"`
	Font     string            `yaml:"font,omitempty"`
	ColorMap map[string]string `yaml:"colormap,omitempty"`
	Slides   []SlideNode       `yaml:"slides"`
}

// SlideNode is one slide entry.
type SlideNode struct {
	Name         string                     `yaml:"name,omitempty"`
	Layout       string                     `yaml:"layout"`
	Title        string                     `yaml:"title,omitempty"`
	Placeholders map[string]PlaceholderNode `yaml:"placeholders,omitempty"`
}

// PlaceholderNode is a tagged union: exactly one of the fields is set.
type PlaceholderNode struct {
	Text  *string       `yaml:"text,omitempty"`
	Image *string       `yaml:"image,omitempty"`
	Chart *chart.Figure `yaml:"chart,omitempty"`
	Table *TableNode    `yaml:"table,omitempty"`
}

// TableNode carries either a source URI or inline rows.
type TableNode struct {
	Source     string   `yaml:"source,omitempty"`
	Name       string   `yaml:"name,omitempty"`
	IndexNames []string `yaml:"indexNames,omitempty"`
	Columns    []string `yaml:"columns,omitempty"`
	Rows       [][]any  `yaml:"rows,omitempty"`
}

// Deck is a resolved manifest, ready for the builder.
type Deck struct {
	Template *deck.Template
	Slides   []deck.Slide
	Options  []deck.Option
}

// Defaults carries config-level fallbacks applied where the manifest
// is silent. Manifest values always win; color maps are merged.
type Defaults struct {
	Template string
	Font     string
	DPI      int
	ColorMap map[string]string
}

// Load parses and resolves a manifest file. Relative paths inside the
// manifest (template, images, sources) are taken relative to the
// manifest's directory.
func Load(path string) (*Deck, error) {
	return LoadWithDefaults(path, Defaults{})
}

// LoadWithDefaults parses a manifest file and fills gaps from the
// given defaults before resolving.
func LoadWithDefaults(path string, d Defaults) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	m.applyDefaults(d)
	return m.Resolve(filepath.Dir(path))
}

func (m *Manifest) applyDefaults(d Defaults) {
	if m.Template == "" {
		m.Template = d.Template
	}
	if m.Font == "" {
		m.Font = d.Font
	}
	if m.DPI == 0 {
		m.DPI = d.DPI
	}
	for k, v := range d.ColorMap {
		if _, ok := m.ColorMap[k]; !ok {
			if m.ColorMap == nil {
				m.ColorMap = make(map[string]string)
			}
			m.ColorMap[k] = v
		}
	}
}

// Resolve validates the manifest and loads everything it references.
func (m *Manifest) Resolve(baseDir string) (*Deck, error) {
	if m.Template == "" {
		return nil, fmt.Errorf("manifest names no template")
	}
	if len(m.Slides) == 0 {
		return nil, fmt.Errorf("manifest has no slides")
	}

	tpl, err := deck.LoadTemplate(resolvePath(baseDir, m.Template))
	if err != nil {
		return nil, err
	}

	var opts []deck.Option
	if m.DPI > 0 {
		opts = append(opts, deck.WithDPI(m.DPI))
	}
	if len(m.ColorMap) > 0 {
		opts = append(opts, deck.WithColorMap(m.ColorMap))
	}
	if m.Title != "" {
		opts = append(opts, deck.WithProperties(m.Title, "deckgen"))
	}

	slides := make([]deck.Slide, 0, len(m.Slides))
	for i, node := range m.Slides {
		slide, err := m.resolveSlide(baseDir, i, &node)
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}

	return &Deck{Template: tpl, Slides: slides, Options: opts}, nil
}

func (m *Manifest) resolveSlide(baseDir string, idx int, node *SlideNode) (deck.Slide, error) {
	name := node.Name
	if name == "" {
		name = fmt.Sprintf("slide-%d", idx+1)
	}
	slide := deck.Slide{
		Name:   name,
		Layout: node.Layout,
		Title:  node.Title,
	}
	if node.Layout == "" {
		return slide, fmt.Errorf("slide %s names no layout", name)
	}
	if len(node.Placeholders) == 0 {
		return slide, nil
	}

	slide.Placeholders = make(map[string]any, len(node.Placeholders))
	for phName, ph := range node.Placeholders {
		value, err := m.resolvePlaceholder(baseDir, ph)
		if err != nil {
			return slide, fmt.Errorf("slide %s, placeholder %s: %w", name, phName, err)
		}
		slide.Placeholders[phName] = value
	}
	return slide, nil
}

func (m *Manifest) resolvePlaceholder(baseDir string, node PlaceholderNode) (any, error) {
	set := 0
	for _, ok := range []bool{node.Text != nil, node.Image != nil, node.Chart != nil, node.Table != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("want exactly one of text, image, chart, table; got %d", set)
	}

	switch {
	case node.Text != nil:
		return *node.Text, nil
	case node.Image != nil:
		return deck.Image{Path: resolvePath(baseDir, *node.Image)}, nil
	case node.Chart != nil:
		fig := *node.Chart
		fig.FontPath = m.Font
		if fig.FontPath != "" {
			fig.FontPath = resolvePath(baseDir, fig.FontPath)
		}
		return &fig, nil
	default:
		return m.resolveTable(baseDir, node.Table)
	}
}

func (m *Manifest) resolveTable(baseDir string, node *TableNode) (*deck.Table, error) {
	if node.Source != "" {
		if len(node.Columns) > 0 || len(node.Rows) > 0 {
			return nil, fmt.Errorf("table declares both a source and inline rows")
		}
		table, err := source.Load(resolveSourcePath(baseDir, node.Source))
		if err != nil {
			return nil, err
		}
		if node.Name != "" {
			table.Name = node.Name
		}
		return table, nil
	}

	if len(node.Columns) == 0 && len(node.IndexNames) == 0 {
		return nil, fmt.Errorf("inline table has no columns")
	}
	return &deck.Table{
		Name:       node.Name,
		IndexNames: node.IndexNames,
		Columns:    node.Columns,
		Rows:       node.Rows,
	}, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// resolveSourcePath rewrites the path part of a scheme:path source
// spec relative to the manifest directory, leaving any ?query or
// #sheet suffix alone.
func resolveSourcePath(baseDir, spec string) string {
	scheme, rest, ok := cutScheme(spec)
	if !ok {
		return spec
	}
	suffix := ""
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest, suffix = rest[:i], rest[i:]
	}
	return scheme + ":" + resolvePath(baseDir, rest) + suffix
}

func cutScheme(spec string) (scheme, rest string, ok bool) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == ':' {
			return spec[:i], spec[i+1:], true
		}
	}
	return "", spec, false
}
