package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 版式常量 - 16:9宽屏比例
const (
	emuPerInch = 914400
	emuPerPt   = 12700

	defaultSlideWidthIn  = 10.0
	defaultSlideHeightIn = 5.625

	defaultFontSize      = 14
	defaultTableFontSize = 12
)

// Placeholder roles. Dispatch is always by value type; the role only
// drives title filling and default styling.
const (
	RoleTitle   = "title"
	RoleBody    = "body"
	RolePicture = "picture"
	RoleTable   = "table"
)

// Placeholder is a named region of a layout that content can be
// compiled into. Geometry is authored in inches.
type Placeholder struct {
	Name     string    `yaml:"name"`
	Role     string    `yaml:"role,omitempty"`
	X        float64   `yaml:"x"`
	Y        float64   `yaml:"y"`
	W        float64   `yaml:"w"`
	H        float64   `yaml:"h"`
	FontSize int       `yaml:"fontSize,omitempty"`
	Color    string    `yaml:"color,omitempty"` // ARGB, e.g. FF334155
	Fill     string    `yaml:"fill,omitempty"`  // ARGB background fill
	Bold     bool      `yaml:"bold,omitempty"`
	Align    string    `yaml:"align,omitempty"` // left (default), center, right
	ColWidth []float64 `yaml:"colWidths,omitempty"`
}

// Layout is a named slide layout.
type Layout struct {
	Name         string        `yaml:"name"`
	Background   string        `yaml:"background,omitempty"` // ARGB
	Accent       string        `yaml:"accent,omitempty"`     // ARGB, table headers and bars
	Placeholders []Placeholder `yaml:"placeholders"`
}

// Template describes the deck: slide size, defaults and layouts.
type Template struct {
	Name     string   `yaml:"name,omitempty"`
	WidthIn  float64  `yaml:"width,omitempty"`
	HeightIn float64  `yaml:"height,omitempty"`
	FontSize int      `yaml:"fontSize,omitempty"`
	Layouts  []Layout `yaml:"layouts"`
}

// LoadTemplate reads a YAML template file and validates it.
func LoadTemplate(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return ParseTemplate(raw)
}

// ParseTemplate parses template YAML and validates it.
func ParseTemplate(raw []byte) (*Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tpl.validate(); err != nil {
		return nil, err
	}
	tpl.applyDefaults()
	return &tpl, nil
}

func (t *Template) applyDefaults() {
	if t.WidthIn <= 0 {
		t.WidthIn = defaultSlideWidthIn
	}
	if t.HeightIn <= 0 {
		t.HeightIn = defaultSlideHeightIn
	}
	if t.FontSize <= 0 {
		t.FontSize = defaultFontSize
	}
}

func (t *Template) validate() error {
	if len(t.Layouts) == 0 {
		return fmt.Errorf("template declares no layouts")
	}
	seen := make(map[string]bool, len(t.Layouts))
	for li := range t.Layouts {
		l := &t.Layouts[li]
		if l.Name == "" {
			return fmt.Errorf("layout %d has no name", li)
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate layout name: %s", l.Name)
		}
		seen[l.Name] = true

		phSeen := make(map[string]bool, len(l.Placeholders))
		titles := 0
		for pi := range l.Placeholders {
			ph := &l.Placeholders[pi]
			if ph.Name == "" {
				return fmt.Errorf("layout %s: placeholder %d has no name", l.Name, pi)
			}
			if phSeen[ph.Name] {
				return fmt.Errorf("layout %s: duplicate placeholder name: %s", l.Name, ph.Name)
			}
			phSeen[ph.Name] = true
			if ph.W <= 0 || ph.H <= 0 {
				return fmt.Errorf("layout %s: placeholder %s has non-positive size %gx%g", l.Name, ph.Name, ph.W, ph.H)
			}
			if ph.X < 0 || ph.Y < 0 {
				return fmt.Errorf("layout %s: placeholder %s has negative position", l.Name, ph.Name)
			}
			if ph.Role == RoleTitle {
				titles++
			}
		}
		if titles > 1 {
			return fmt.Errorf("layout %s declares %d title placeholders, at most one allowed", l.Name, titles)
		}
	}
	return nil
}

// Layout returns the named layout, or nil when it does not exist.
func (t *Template) Layout(name string) *Layout {
	for i := range t.Layouts {
		if t.Layouts[i].Name == name {
			return &t.Layouts[i]
		}
	}
	return nil
}

// LayoutNames lists layout names in declaration order.
func (t *Template) LayoutNames() []string {
	names := make([]string, 0, len(t.Layouts))
	for i := range t.Layouts {
		names = append(names, t.Layouts[i].Name)
	}
	return names
}

// Placeholder returns the named placeholder of a layout, or nil.
func (l *Layout) Placeholder(name string) *Placeholder {
	for i := range l.Placeholders {
		if l.Placeholders[i].Name == name {
			return &l.Placeholders[i]
		}
	}
	return nil
}

// PlaceholderNames lists placeholder names in declaration order.
func (l *Layout) PlaceholderNames() []string {
	names := make([]string, 0, len(l.Placeholders))
	for i := range l.Placeholders {
		names = append(names, l.Placeholders[i].Name)
	}
	return names
}

// title returns the placeholder carrying the title role, or nil.
func (l *Layout) title() *Placeholder {
	for i := range l.Placeholders {
		if l.Placeholders[i].Role == RoleTitle {
			return &l.Placeholders[i]
		}
	}
	return nil
}

func inchesToEMU(in float64) int64 {
	return int64(in * emuPerInch)
}
