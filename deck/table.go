package deck

import (
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"
)

const (
	tableHeaderHeightIn = 0.35
	tableRowHeightIn    = 0.28

	// Default column weights, in points: first column wide, rest narrow.
	tableFirstColPt = 150
	tableOtherColPt = 50

	zebraEvenFill = "FFF8FAFC"
	zebraOddFill  = "FFF1F5F9"
)

// putTable renders a table into a native table shape: a header row of
// index names and column titles, then one row per data row. All cell
// text gets the uniform table font size, then the builder's color map
// is applied to cells whose rendered text matches exactly.
func (b *Builder) putTable(slide *ppt.Slide, layout *Layout, ph *Placeholder, t *Table) error {
	cols := t.ColumnCount()
	if cols == 0 {
		return fmt.Errorf("table for placeholder %q has no columns", ph.Name)
	}
	for i, row := range t.Rows {
		if len(row) != cols {
			return fmt.Errorf("table for placeholder %q: row %d has %d values, want %d",
				ph.Name, i, len(row), cols)
		}
	}

	tbl := slide.CreateTableShape(cols)
	tbl.SetOffsetX(inchesToEMU(ph.X)).SetOffsetY(inchesToEMU(ph.Y))
	tbl.SetWidth(inchesToEMU(ph.W)).SetHeight(inchesToEMU(ph.H))
	for i, w := range columnWidthsEMU(ph, cols) {
		tbl.SetColumnWidth(i, w)
	}

	accent := layout.Accent
	if accent == "" {
		accent = colorHeading2
	}

	var runs []*ppt.TextRun

	header := tbl.CreateRow()
	header.SetHeight(inchesToEMU(tableHeaderHeightIn))
	for i, title := range t.HeaderCells() {
		cell := header.GetCell(i)
		cell.SetFill(solidFill(accent))
		tr := cell.CreateTextRun(title)
		tr.GetFont().SetBold(true).SetColor(ppt.ColorWhite)
		alignTo(cell.GetActiveParagraph(), "center")
		runs = append(runs, tr)
	}

	for rowIdx, rowData := range t.Rows {
		row := tbl.CreateRow()
		row.SetHeight(inchesToEMU(tableRowHeightIn))
		fill := zebraEvenFill
		if rowIdx%2 == 1 {
			fill = zebraOddFill
		}
		for colIdx, v := range rowData {
			cell := row.GetCell(colIdx)
			cell.SetFill(solidFill(fill))
			text := fmt.Sprintf("%v", v)
			tr := cell.CreateTextRun(text)
			tr.GetFont().SetColor(ppt.NewColor(colorBody))
			runs = append(runs, tr)
			if argb, ok := b.colorMap[text]; ok {
				tr.GetFont().SetColor(ppt.NewColor(argb))
			}
		}
	}

	// Uniform font size pass over every cell, header included.
	for _, tr := range runs {
		tr.GetFont().SetSize(defaultTableFontSize)
	}

	b.tables = append(b.tables, t)
	return nil
}

// columnWidthsEMU computes per-column widths. Widths declared on the
// placeholder (inches) win; otherwise point defaults are used. Either
// way the result is normalized to fill the placeholder width.
func columnWidthsEMU(ph *Placeholder, cols int) []int64 {
	weights := make([]float64, cols)
	if len(ph.ColWidth) == cols {
		copy(weights, ph.ColWidth)
	} else {
		for i := range weights {
			if i == 0 {
				weights[i] = tableFirstColPt
			} else {
				weights[i] = tableOtherColPt
			}
		}
	}

	var total float64
	for _, w := range weights {
		if w <= 0 {
			w = 1
		}
		total += w
	}

	widths := make([]int64, cols)
	available := inchesToEMU(ph.W)
	var used int64
	for i, w := range weights {
		if w <= 0 {
			w = 1
		}
		if i == cols-1 {
			widths[i] = available - used
			break
		}
		widths[i] = int64(float64(available) * w / total)
		used += widths[i]
	}
	return widths
}
