package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	xlsReader "github.com/shakinm/xlsReader/xls"
	"golang.org/x/text/encoding/charmap"

	"deckgen/deck"
)

// loadXLS reads a legacy .xls workbook. The spec may name a sheet
// after a '#'; otherwise the first sheet is used. The first non-empty
// row is the header.
func loadXLS(spec string) (*deck.Table, error) {
	path, sheetName, _ := strings.Cut(spec, "#")

	workbook, err := xlsReader.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls source %s: %w", path, err)
	}

	sheetIdx := -1
	var names []string
	for si := 0; si < workbook.GetNumberSheets(); si++ {
		sheet, err := workbook.GetSheet(si)
		if err != nil {
			continue
		}
		names = append(names, sheet.GetName())
		if sheetName == "" || sheet.GetName() == sheetName {
			sheetIdx = si
			break
		}
	}
	if sheetIdx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s, available sheets are: %s",
			sheetName, path, strings.Join(names, ", "))
	}

	sheet, err := workbook.GetSheet(sheetIdx)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet of %s: %w", path, err)
	}

	var records [][]string
	maxCols := 0
	for r := 0; r <= sheet.GetNumberRows(); r++ {
		row, err := sheet.GetRow(r)
		if err != nil {
			continue
		}
		cols := row.GetCols()
		rec := make([]string, len(cols))
		hasData := false
		for c, cell := range cols {
			rec[c] = toUTF8(cell.GetString())
			if !hasData && strings.TrimSpace(rec[c]) != "" {
				hasData = true
			}
		}
		if !hasData {
			continue
		}
		if len(rec) > maxCols {
			maxCols = len(rec)
		}
		records = append(records, rec)
	}
	for i, rec := range records {
		if len(rec) < maxCols {
			padded := make([]string, maxCols)
			copy(padded, rec)
			records[i] = padded
		}
	}

	name := strippedName(path)
	if sheetName != "" {
		name = sheetName
	}
	return tableFromRecords(name, records)
}

// toUTF8 decodes legacy cell text that is not valid UTF-8 as
// Windows-1252.
func toUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "�")
	}
	return decoded
}
