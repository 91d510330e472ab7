package consolidator

import (
	"fmt"

	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// monthNames holds the localized month names used by every grouping label.
var monthNames = [13]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name of a month.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m]
}

// WeekLabel identifies the Monday-Sunday span containing f, in the human
// form used by the weekly rollup, e.g. "2-8 Febrero".
func WeekLabel(f model.Fecha) string {
	monday := f.WeekStart()
	sunday := monday.AddDays(6)
	return fmt.Sprintf("%d-%d %s", monday.Day, sunday.Day, MonthName(int(sunday.Month)))
}

// PivotWeekLabel labels a week-ending pivot column,
// e.g. "Semana 02 al 08 Febrero 2026". The start day always names the
// Monday even when the filtered range truncates the aggregation span.
func PivotWeekLabel(monday, sunday model.Fecha) string {
	return fmt.Sprintf("Semana %02d al %02d %s %d",
		monday.Day, sunday.Day, MonthName(int(sunday.Month)), sunday.Year)
}

// PivotMonthLabel labels a month-ending pivot column, e.g. "Mes Enero 2026".
func PivotMonthLabel(f model.Fecha) string {
	return fmt.Sprintf("Mes %s %d", MonthName(int(f.Month)), f.Year)
}

// PeriodLabel labels the single period rollup row with the literal range.
func PeriodLabel(from, to model.Fecha) string {
	return fmt.Sprintf("%s → %s", from, to)
}

// WeekColumnPrefix is the label prefix the export layer keys its styling
// on; the engine guarantees every week-ending column starts with it.
const WeekColumnPrefix = "Semana "
