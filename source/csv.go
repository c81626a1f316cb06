package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"deckgen/deck"
)

// loadCSV reads a CSV file whose first record is the header.
func loadCSV(path string) (*deck.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged files are padded later
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv source %s: %w", path, err)
	}
	return tableFromRecords(strippedName(path), records)
}

// strippedName is the file name without directory or extension, used
// as the table (and worksheet) name.
func strippedName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
