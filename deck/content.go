package deck

// Slide describes the content of one compiled slide.
//
// Layout names a layout in the template. Title, when set, fills the
// layout's title placeholder. Placeholders maps placeholder names to
// typed content values; the builder dispatches on the dynamic type:
//
//	string     rendered as (markdown-lite) text
//	[]byte     placed as a picture, format sniffed (PNG/JPEG/GIF)
//	deck.Image picture loaded from a file
//	deck.Figure rendered to PNG at placeholder size x DPI
//	*deck.Table rendered as a native table shape
type Slide struct {
	Name         string
	Layout       string
	Title        string
	Placeholders map[string]any
}

// Image wraps an image file path for insertion into a picture
// placeholder.
type Image struct {
	Path string
}

// Figure is anything that can rasterize itself to a PNG of the given
// pixel size. chart.Figure satisfies this.
type Figure interface {
	RenderPNG(widthPx, heightPx int) ([]byte, error)
}

// Table holds tabular content for a table placeholder. Each row
// carries the index level values first, then one value per column.
type Table struct {
	Name       string
	IndexNames []string
	Columns    []string
	Rows       [][]any
}

// HeaderCells returns the header row: index names (blanks for unnamed
// levels) followed by column titles.
func (t *Table) HeaderCells() []string {
	cells := make([]string, 0, len(t.IndexNames)+len(t.Columns))
	for _, name := range t.IndexNames {
		if name == "" {
			name = " "
		}
		cells = append(cells, name)
	}
	cells = append(cells, t.Columns...)
	return cells
}

// ColumnCount returns the total width of the table in cells.
func (t *Table) ColumnCount() int {
	return len(t.IndexNames) + len(t.Columns)
}
