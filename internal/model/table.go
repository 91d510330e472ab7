package model

import (
	"encoding/json"
	"strconv"
)

// Cell is a numeric measure that may be undefined. Undefined is not zero:
// a sum-class KPI with no coverage is zero-filled later, while a mean-class
// KPI with no coverage must stay out of every average.
type Cell struct {
	Val   float64
	Valid bool
}

// Num wraps a defined numeric value.
func Num(v float64) Cell {
	return Cell{Val: v, Valid: true}
}

// Undefined is the missing cell value.
var Undefined = Cell{}

// MarshalJSON renders undefined cells as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(c.Val, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Num(v)
	return nil
}

// DailyTable is the output contract of one per-source reducer: a fixed
// column set and at most one row per calendar date. A reducer that cannot
// find its anchor column returns a DailyTable with the right columns and
// zero rows.
type DailyTable struct {
	Columns []string
	Rows    map[Fecha]map[string]Cell
}

// NewDailyTable creates an empty table with the given column order.
func NewDailyTable(columns ...string) *DailyTable {
	return &DailyTable{
		Columns: columns,
		Rows:    make(map[Fecha]map[string]Cell),
	}
}

// Set stores one cell, creating the date row on first use.
func (t *DailyTable) Set(f Fecha, column string, c Cell) {
	row, ok := t.Rows[f]
	if !ok {
		row = make(map[string]Cell, len(t.Columns))
		t.Rows[f] = row
	}
	row[column] = c
}

// Get returns the cell at (date, column); undefined when absent.
func (t *DailyTable) Get(f Fecha, column string) Cell {
	if row, ok := t.Rows[f]; ok {
		return row[column]
	}
	return Undefined
}

// Dates returns the covered dates in ascending order.
func (t *DailyTable) Dates() []Fecha {
	dates := make([]Fecha, 0, len(t.Rows))
	for f := range t.Rows {
		dates = append(dates, f)
	}
	SortFechas(dates)
	return dates
}

// Len returns the number of date rows.
func (t *DailyTable) Len() int {
	return len(t.Rows)
}

// Row is one labeled line of an output table. Header rows are the pivot's
// synthetic section separators and carry no data.
type Row struct {
	Label  string `json:"label"`
	Cells  []Cell `json:"cells"`
	Header bool   `json:"header,omitempty"`
}

// Table is a plain row/column output structure with no embedded formatting.
// LabelHeader names the first (label) column: "fecha", "Semana", "Periodo"
// or "KPI" depending on the resolution.
type Table struct {
	LabelHeader string   `json:"labelHeader"`
	Columns     []string `json:"columns"`
	Rows        []Row    `json:"rows"`
}

// NewTable creates an empty output table.
func NewTable(labelHeader string, columns ...string) *Table {
	return &Table{LabelHeader: labelHeader, Columns: columns}
}

// AddRow appends a data row.
func (t *Table) AddRow(label string, cells []Cell) {
	t.Rows = append(t.Rows, Row{Label: label, Cells: cells})
}

// AddHeaderRow appends a synthetic section header row.
func (t *Table) AddHeaderRow(label string) {
	t.Rows = append(t.Rows, Row{Label: label, Cells: make([]Cell, len(t.Columns)), Header: true})
}

// ColumnIndex returns the position of a column label, or -1.
func (t *Table) ColumnIndex(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}
