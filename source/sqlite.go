package source

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"deckgen/deck"
)

// loadSQLite runs a query against a SQLite database file. The spec is
// path?query=SELECT ...; column names become the table header.
func loadSQLite(spec string) (*deck.Table, error) {
	path, rawQuery, ok := strings.Cut(spec, "?")
	if !ok {
		return nil, fmt.Errorf("sqlite source %q has no query, want path?query=SELECT ...", spec)
	}
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("malformed sqlite source params: %w", err)
	}
	query := params.Get("query")
	if query == "" {
		return nil, fmt.Errorf("sqlite source %q has an empty query parameter", spec)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite source %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("sqlite query failed on %s: %w", path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read sqlite columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan sqlite row: %w", err)
		}
		for i, v := range values {
			// Text arrives as []byte from the driver.
			if raw, ok := v.([]byte); ok {
				values[i] = string(raw)
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite row iteration failed: %w", err)
	}

	return &deck.Table{Name: strippedName(path), Columns: columns, Rows: data}, nil
}
