package ingest

import "strings"

// RawTable is an uploaded file reduced to headers plus string records,
// before any per-source interpretation. Cell typing, date parsing and
// numeric coercion all happen in the reducers.
type RawTable struct {
	Headers []string
	Records [][]string
}

// ColumnIndex returns the position of a header after cleanup, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of one record at a column index, tolerating
// short records.
func (t *RawTable) Cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// CleanHeader strips BOM remnants and surrounding whitespace from a
// column name. Upstream exports prepend either a UTF-8 BOM or its
// latin-1 mojibake form.
func CleanHeader(name string) string {
	name = strings.ReplaceAll(name, "\uFEFF", "")
	name = strings.ReplaceAll(name, "ï»¿", "")
	return strings.TrimSpace(name)
}

func cleanHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = CleanHeader(h)
	}
	return out
}
