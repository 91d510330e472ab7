package consolidator

import (
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// aggregateSpan rolls one KPI column up over a span of dates.
// Sum-class sums, mean-class averages the defined values, ratio-class is
// recomputed from the span's own rolled-up numerator and denominator.
// Averaging daily ratios would weight low-volume days like busy ones, so
// it never happens here.
func aggregateSpan(w *wideTable, span []model.Fecha, column string) model.Cell {
	switch model.ClassOf(column) {
	case model.ClassSum:
		total := 0.0
		for _, f := range span {
			if c := w.get(f, column); c.Valid {
				total += c.Val
			}
		}
		return model.Num(total)

	case model.ClassMean:
		sum, n := 0.0, 0
		for _, f := range span {
			if c := w.get(f, column); c.Valid {
				sum += c.Val
				n++
			}
		}
		if n == 0 {
			return model.Undefined
		}
		return model.Num(sum / float64(n))

	case model.ClassRatio:
		numer := aggregateSpan(w, span, model.RatioNumerator(column))
		denom := aggregateSpan(w, span, model.PctDenominator)
		return SafePct(numer.Val, denom)
	}
	return model.Undefined
}

// rollupColumns returns the weekly/period output column order: the
// declared sum columns, then mean columns, then ratio columns, filtered
// to what the merged table actually carries.
func rollupColumns(w *wideTable) []string {
	var cols []string
	for _, c := range model.SumColumns {
		if w.hasColumn(c) {
			cols = append(cols, c)
		}
	}
	for _, c := range model.MeanColumns {
		if w.hasColumn(c) {
			cols = append(cols, c)
		}
	}
	for _, c := range model.RatioColumns() {
		if w.hasColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// rollupSpan materializes one output row for a span of dates.
func rollupSpan(w *wideTable, span []model.Fecha, columns []string) []model.Cell {
	cells := make([]model.Cell, len(columns))
	for i, col := range columns {
		c := aggregateSpan(w, span, col)
		if model.ClassOf(col) == model.ClassRatio {
			c = Round4(c)
		}
		cells[i] = c
	}
	return cells
}

// rollupWeekly groups the filtered table by human week label (Mon-Sun)
// and re-aggregates per KPI class. Partial weeks at the range boundaries
// aggregate whatever days are present. Rows come out in chronological
// order of first appearance.
func rollupWeekly(w *wideTable) *model.Table {
	out := model.NewTable("Semana", rollupColumns(w)...)

	var order []string
	spans := make(map[string][]model.Fecha)
	for _, f := range w.dates {
		label := WeekLabel(f)
		if _, ok := spans[label]; !ok {
			order = append(order, label)
		}
		spans[label] = append(spans[label], f)
	}

	for _, label := range order {
		out.AddRow(label, rollupSpan(w, spans[label], out.Columns))
	}
	return out
}

// rollupPeriod collapses the whole filtered range into a single row
// labeled with the literal date span. An empty range yields no rows.
func rollupPeriod(w *wideTable, from, to model.Fecha) *model.Table {
	out := model.NewTable("Periodo", rollupColumns(w)...)
	if len(w.dates) == 0 {
		return out
	}
	out.AddRow(PeriodLabel(from, to), rollupSpan(w, w.dates, out.Columns))
	return out
}
