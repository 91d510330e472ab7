package consolidator

import (
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// buildPivot produces the transposed multi-resolution view: one row per
// KPI, one column per day in range, a week-ending column after every
// Sunday and a month-ending column after every month boundary (or the
// final date when the range ends mid-month), with KPI rows grouped under
// the fixed section headers.
func buildPivot(w *wideTable) *model.Table {
	out := model.NewTable("KPI")
	if len(w.dates) == 0 {
		// empty range: no rows, no columns
		return out
	}

	kpis := w.columns
	values := make(map[string][]model.Cell, len(kpis))

	// emitColumn appends one column for every KPI row at once, keeping
	// the rows aligned with the column order.
	emitColumn := func(label string, cellFor func(kpi string) model.Cell) {
		out.Columns = append(out.Columns, label)
		for _, kpi := range kpis {
			values[kpi] = append(values[kpi], cellFor(kpi))
		}
	}

	spanOf := func(from, to model.Fecha) []model.Fecha {
		var span []model.Fecha
		for _, f := range w.dates {
			if !f.Before(from) && !f.After(to) {
				span = append(span, f)
			}
		}
		return span
	}

	for i, d := range w.dates {
		day := d
		emitColumn(d.Slash(), func(kpi string) model.Cell {
			return w.get(day, kpi)
		})

		// week-ending column after each Sunday; the label names the full
		// Monday-Sunday week, the span only covers in-range days
		if d.Weekday() == time.Sunday {
			monday := d.AddDays(-6)
			span := spanOf(monday, d)
			emitColumn(PivotWeekLabel(monday, d), func(kpi string) model.Cell {
				return aggregateSpan(w, span, kpi)
			})
		}

		// month-ending column at the last covered day of each month
		monthEnds := i+1 == len(w.dates)
		if !monthEnds {
			next := w.dates[i+1]
			monthEnds = next.Month != d.Month || next.Year != d.Year
		}
		if monthEnds {
			span := spanOf(d.MonthStart(), d)
			emitColumn(PivotMonthLabel(d), func(kpi string) model.Cell {
				return aggregateSpan(w, span, kpi)
			})
		}
	}

	// regroup KPI rows under their sections, in declaration order, with
	// a synthetic header row ahead of each non-empty section
	present := make(map[string]bool, len(kpis))
	for _, kpi := range kpis {
		present[kpi] = true
	}
	used := make(map[string]bool)

	for _, section := range model.PivotSections {
		var members []string
		for _, kpi := range section.KPIs {
			if present[kpi] {
				members = append(members, kpi)
			}
		}
		if len(members) == 0 {
			continue
		}
		out.AddHeaderRow("=== " + section.Title + " ===")
		for _, kpi := range members {
			out.AddRow(kpi, values[kpi])
			used[kpi] = true
		}
	}

	var leftovers []string
	for _, kpi := range kpis {
		if !used[kpi] {
			leftovers = append(leftovers, kpi)
		}
	}
	if len(leftovers) > 0 {
		out.AddHeaderRow("=== " + model.CatchAllSection + " ===")
		for _, kpi := range leftovers {
			out.AddRow(kpi, values[kpi])
		}
	}

	return out
}
