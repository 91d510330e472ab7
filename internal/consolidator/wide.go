package consolidator

import (
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// wideTable is the merged daily-resolution table: one row per covered
// date, one column per KPI across every source. It is created fresh per
// consolidation and never aliases the input tables.
type wideTable struct {
	columns []string
	dates   []model.Fecha // ascending
	cells   map[model.Fecha]map[string]model.Cell
}

func newWideTable() *wideTable {
	return &wideTable{cells: make(map[model.Fecha]map[string]model.Cell)}
}

func (w *wideTable) get(f model.Fecha, column string) model.Cell {
	if row, ok := w.cells[f]; ok {
		return row[column]
	}
	return model.Undefined
}

func (w *wideTable) set(f model.Fecha, column string, c model.Cell) {
	row, ok := w.cells[f]
	if !ok {
		row = make(map[string]model.Cell, len(w.columns))
		w.cells[f] = row
	}
	row[column] = c
}

func (w *wideTable) hasColumn(name string) bool {
	for _, c := range w.columns {
		if c == name {
			return true
		}
	}
	return false
}

// merge outer-joins the per-source daily tables on the date key. A date
// present in any source appears in the result; sources without coverage
// on that date leave their columns undefined. Column order follows the
// source order, so the merge is deterministic.
func merge(sources []*model.DailyTable) *wideTable {
	w := newWideTable()
	seen := make(map[model.Fecha]bool)

	for _, src := range sources {
		if src == nil {
			continue
		}
		w.columns = append(w.columns, src.Columns...)
		for f, row := range src.Rows {
			if !seen[f] {
				seen[f] = true
				w.dates = append(w.dates, f)
			}
			for _, col := range src.Columns {
				if c, ok := row[col]; ok {
					w.set(f, col, c)
				}
			}
		}
	}

	model.SortFechas(w.dates)
	return w
}

// filterRange keeps the rows inside [from, to] inclusive and returns a
// fresh table with its rows in ascending date order, the invariant every
// rollup relies on.
func filterRange(w *wideTable, from, to model.Fecha) (*wideTable, error) {
	if from.After(to) {
		return nil, &ConfigurationError{
			Reason: "la fecha inicial " + from.String() + " es posterior a la final " + to.String(),
		}
	}

	out := newWideTable()
	out.columns = append(out.columns, w.columns...)
	for _, f := range w.dates {
		if f.Before(from) || f.After(to) {
			continue
		}
		out.dates = append(out.dates, f)
		row := make(map[string]model.Cell, len(w.columns))
		for col, c := range w.cells[f] {
			row[col] = c
		}
		out.cells[f] = row
	}
	return out, nil
}
