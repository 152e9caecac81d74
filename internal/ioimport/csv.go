package ioimport

import (
	"encoding/csv"
	"os"
	"strings"
)

// feedTable is a CSV feed loaded in memory. Headers are matched
// case-insensitively because the spreadsheet exports are not
// consistent about casing.
type feedTable struct {
	header map[string]int
	rows   [][]string
}

// readFeedFile loads a whole CSV feed. The feeds are small enough
// (tens of thousands of rows) that streaming buys nothing.
func readFeedFile(path string) (*feedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &feedTable{header: map[string]int{}}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[normalizeHeader(name)] = i
	}
	return &feedTable{header: header, rows: records[1:]}, nil
}

// cell returns the trimmed value of a named column, trying each
// alternative header in order. Spreadsheet exports disagree on micro
// sign encoding, so callers pass both spellings.
func (t *feedTable) cell(row []string, names ...string) string {
	for _, name := range names {
		idx, ok := t.header[normalizeHeader(name)]
		if !ok || idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
