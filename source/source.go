// Package source loads table content for deck manifests from external
// data: CSV files, legacy .xls workbooks and SQLite queries.
package source

import (
	"fmt"
	"strings"

	"deckgen/deck"
)

// Load resolves a table source spec of the form scheme:rest:
//
//	csv:data/sales.csv
//	xls:data/sales.xls#Sheet1
//	sqlite:data/sales.db?query=SELECT region, total FROM sales
func Load(spec string) (*deck.Table, error) {
	scheme, rest, ok := strings.Cut(spec, ":")
	if !ok || rest == "" {
		return nil, fmt.Errorf("malformed table source %q, want scheme:path", spec)
	}
	switch scheme {
	case "csv":
		return loadCSV(rest)
	case "xls":
		return loadXLS(rest)
	case "sqlite":
		return loadSQLite(rest)
	default:
		return nil, fmt.Errorf("unknown table source scheme %q (supported: csv, xls, sqlite)", scheme)
	}
}

// tableFromRecords turns a header record plus data records into a
// table. Short records are padded so every row is rectangular.
func tableFromRecords(name string, records [][]string) (*deck.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("table source %s has no header row", name)
	}
	header := records[0]
	if len(header) == 0 {
		return nil, fmt.Errorf("table source %s has an empty header row", name)
	}

	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(header))
		for i := range header {
			if i < len(rec) {
				row[i] = rec[i]
			} else {
				row[i] = ""
			}
		}
		rows = append(rows, row)
	}
	return &deck.Table{Name: name, Columns: header, Rows: rows}, nil
}
