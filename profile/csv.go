package profile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// LoadCSV parses a profile table: a header row of "name" followed by
// canonical feature columns, then one row per profile.
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read profile csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("profile csv needs a header and at least one profile row")
	}
	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("profile csv needs at least one feature column")
	}
	cols := header[1:]
	names := make([]string, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("profile row %d has %d fields, want %d", i+1, len(rec), len(header))
		}
		row := make([]float64, len(cols))
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("profile %q column %q: %w", rec[0], cols[j], err)
			}
			row[j] = v
		}
		names = append(names, rec[0])
		rows = append(rows, row)
	}
	return New(names, cols, rows)
}
