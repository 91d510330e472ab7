package consolidator

import (
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// Sources carries the ten per-source daily tables, already reduced to
// one row per calendar date. A nil entry means the source contributes
// neither columns nor coverage.
type Sources struct {
	Ventas       *model.DailyTable
	Performance  *model.DailyTable
	Auditorias   *model.DailyTable
	OffTime      *model.DailyTable
	Duracion90   *model.DailyTable
	Duracion30   *model.DailyTable
	Inspecciones *model.DailyTable
	Abandonados  *model.DailyTable
	Rescates     *model.DailyTable
	WhatsApp     *model.DailyTable
}

// Tables returns the sources in merge order. The order fixes the column
// layout of the daily output and of the pivot rows.
func (s Sources) Tables() []*model.DailyTable {
	return []*model.DailyTable{
		s.Ventas, s.Performance, s.Auditorias,
		s.OffTime, s.Duracion90, s.Duracion30,
		s.Inspecciones, s.Abandonados, s.Rescates, s.WhatsApp,
	}
}

// Result bundles the four output tables of one consolidation.
type Result struct {
	Diario     *model.Table `json:"diario"`
	Semanal    *model.Table `json:"semanal"`
	Periodo    *model.Table `json:"periodo"`
	Traspuesta *model.Table `json:"traspuesta"`
}

// Consolidate merges the ten per-source daily tables, restricts them to
// the inclusive [from, to] window, applies the per-class fill policy,
// derives the ratio KPIs and produces the daily, weekly, period and
// transposed outputs. It fails only on an invalid date range; a missing
// or empty source degrades its own KPIs and nothing else.
func Consolidate(src Sources, from, to model.Fecha) (*Result, error) {
	wide, err := filterRange(merge(src.Tables()), from, to)
	if err != nil {
		return nil, err
	}
	fillDerive(wide)

	return &Result{
		Diario:     dailyTable(wide),
		Semanal:    rollupWeekly(wide),
		Periodo:    rollupPeriod(wide, from, to),
		Traspuesta: buildPivot(wide),
	}, nil
}

// dailyTable materializes the filtered wide table, one labeled row per
// covered date in ascending order.
func dailyTable(w *wideTable) *model.Table {
	out := model.NewTable(model.FechaColumn, w.columns...)
	for _, f := range w.dates {
		cells := make([]model.Cell, len(w.columns))
		for i, col := range w.columns {
			cells[i] = w.get(f, col)
		}
		out.AddRow(f.String(), cells)
	}
	return out
}
