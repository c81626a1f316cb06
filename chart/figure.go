// Package chart rasterizes simple data figures (bar, line, pie,
// scatter) to PNG images for picture placeholders.
package chart

import "fmt"

// Kind selects the figure geometry.
type Kind string

const (
	Bar     Kind = "bar"
	Line    Kind = "line"
	Pie     Kind = "pie"
	Scatter Kind = "scatter"
)

// Series is one named value sequence. Color is ARGB (e.g. FF3B82F6);
// when empty the default palette is cycled.
type Series struct {
	Name   string    `yaml:"name,omitempty"`
	Values []float64 `yaml:"values"`
	Color  string    `yaml:"color,omitempty"`
}

// Figure describes a renderable chart. FontPath names a TrueType font
// for titles and labels; without it the chart renders unlabeled.
type Figure struct {
	Kind     Kind     `yaml:"kind"`
	Title    string   `yaml:"title,omitempty"`
	XLabels  []string `yaml:"xLabels,omitempty"`
	Series   []Series `yaml:"series"`
	YMin     *float64 `yaml:"yMin,omitempty"`
	YMax     *float64 `yaml:"yMax,omitempty"`
	FontPath string   `yaml:"-"`
}

// Default palette, cycled per series (deck accent colors).
var palette = []string{
	"FF3B82F6", // blue
	"FF16A34A", // green
	"FFF59E0B", // amber
	"FFDC2626", // red
	"FF8B5CF6", // violet
	"FF0EA5E9", // sky
	"FF64748B", // slate
}

func (f *Figure) validate() error {
	switch f.Kind {
	case Bar, Line, Pie, Scatter:
	case "":
		return fmt.Errorf("figure has no kind")
	default:
		return fmt.Errorf("unknown figure kind %q (supported: bar, line, pie, scatter)", f.Kind)
	}
	if len(f.Series) == 0 {
		return fmt.Errorf("figure has no series")
	}
	for i, s := range f.Series {
		if len(s.Values) == 0 {
			return fmt.Errorf("series %d (%s) has no values", i, s.Name)
		}
	}
	return nil
}

// seriesColor resolves the color of series i.
func (f *Figure) seriesColor(i int) string {
	if c := f.Series[i].Color; c != "" {
		return c
	}
	return palette[i%len(palette)]
}

// sliceColor resolves the color of pie slice i.
func sliceColor(i int) string {
	return palette[i%len(palette)]
}
