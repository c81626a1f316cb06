// Package export writes the tables placed in a deck as a companion
// Excel workbook, one worksheet per table.
package export

import (
	"bytes"
	"fmt"

	gospreadsheet "github.com/VantageDataChat/GoExcel"

	"deckgen/deck"
)

// ExcelService handles workbook generation using GoExcel (pure Go).
type ExcelService struct{}

// NewExcelService creates a new Excel export service.
func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ExportTablesToExcel writes one worksheet per table, in deck order.
// Sheet names come from the table names; unnamed tables are numbered.
func (s *ExcelService) ExportTablesToExcel(tables []*deck.Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to export")
	}

	wb := gospreadsheet.New()
	wb.Properties.Title = "Deck tables"
	wb.Properties.Creator = "deckgen"

	used := make(map[string]bool)
	for idx, table := range tables {
		name := table.Name
		if name == "" {
			name = fmt.Sprintf("Table %d", idx+1)
		}
		if used[name] {
			name = fmt.Sprintf("%s (%d)", name, idx+1)
		}
		used[name] = true

		var ws *gospreadsheet.Worksheet
		if idx == 0 {
			ws = wb.GetActiveSheet()
			ws.SetTitle(name)
		} else {
			var err error
			ws, err = wb.AddSheet(name)
			if err != nil {
				return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
			}
		}

		if err := s.writeTable(ws, table); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}

	var buf bytes.Buffer
	writer := gospreadsheet.NewXLSXWriter()
	if err := writer.Write(wb, &buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExcelService) writeTable(ws *gospreadsheet.Worksheet, table *deck.Table) error {
	headerStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		}).
		SetFill(&gospreadsheet.Fill{
			Type:  "solid",
			Color: "4472C4",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignCenter,
			Vertical:   gospreadsheet.AlignMiddle,
		})

	dataStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Size: 10,
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
		})

	for i, title := range table.HeaderCells() {
		cellName, err := gospreadsheet.CellName(0, i)
		if err != nil {
			return err
		}
		ws.SetCellValue(cellName, title)
		ws.SetCellStyle(cellName, headerStyle)

		width := float64(len([]rune(title))) * 2.5
		if width < 12 {
			width = 12
		}
		if width > 60 {
			width = 60
		}
		ws.SetColumnWidth(i, width)
	}
	ws.SetRowHeight(0, 25)

	for rowIdx, rowData := range table.Rows {
		excelRow := rowIdx + 1
		for colIdx, v := range rowData {
			cellName, err := gospreadsheet.CellName(excelRow, colIdx)
			if err != nil {
				return err
			}
			ws.SetCellValue(cellName, v)
			ws.SetCellStyle(cellName, dataStyle)
		}
		ws.SetRowHeight(excelRow, 20)
	}

	ws.FreezePane("A2")
	return nil
}
