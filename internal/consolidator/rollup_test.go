package consolidator

import (
	"testing"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

func TestWeeklyGroupsPartialWeeks(t *testing.T) {
	t.Parallel()

	// 2026-02-05 (Thu) through 2026-02-10 (Tue) straddles two weeks:
	// a 4-day tail of one and a 2-day head of the next
	table := model.NewDailyTable("Q_pasajeros")
	for day := 5; day <= 10; day++ {
		table.Set(model.NewFecha(2026, time.February, day), "Q_pasajeros", model.Num(10))
	}

	result, err := Consolidate(Sources{Ventas: table},
		model.NewFecha(2026, time.February, 5), model.NewFecha(2026, time.February, 10))
	if err != nil {
		t.Fatalf("consolidate failed: %v", err)
	}

	rows := result.Semanal.Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 weekly rows, got %d", len(rows))
	}
	if rows[0].Label != "2-8 Febrero" || rows[1].Label != "9-15 Febrero" {
		t.Fatalf("unexpected week labels %q, %q", rows[0].Label, rows[1].Label)
	}

	idx := result.Semanal.ColumnIndex("Q_pasajeros")
	if c := rows[0].Cells[idx]; !c.Valid || !floatEquals(c.Val, 40) {
		t.Fatalf("partial first week: expected 40, got %+v", c)
	}
	if c := rows[1].Cells[idx]; !c.Valid || !floatEquals(c.Val, 20) {
		t.Fatalf("partial second week: expected 20, got %+v", c)
	}
}

func TestMeanAggregatesOverCoveredDaysOnly(t *testing.T) {
	t.Parallel()

	perf := model.NewDailyTable("Q_Encuestas", "CSAT")
	perf.Set(model.NewFecha(2026, time.February, 2), "Q_Encuestas", model.Num(10))
	perf.Set(model.NewFecha(2026, time.February, 2), "CSAT", model.Num(80))
	perf.Set(model.NewFecha(2026, time.February, 3), "Q_Encuestas", model.Num(5))
	perf.Set(model.NewFecha(2026, time.February, 3), "CSAT", model.Num(90))
	// day without surveys: CSAT zero is the upstream no-data sentinel
	perf.Set(model.NewFecha(2026, time.February, 4), "Q_Encuestas", model.Num(0))
	perf.Set(model.NewFecha(2026, time.February, 4), "CSAT", model.Num(0))

	result, err := Consolidate(Sources{Performance: perf},
		model.NewFecha(2026, time.February, 2), model.NewFecha(2026, time.February, 8))
	if err != nil {
		t.Fatalf("consolidate failed: %v", err)
	}

	row := result.Semanal.Rows[0]
	idx := result.Semanal.ColumnIndex("CSAT")
	// (80+90)/2, not (80+90+0)/3
	if c := row.Cells[idx]; !c.Valid || !floatEquals(c.Val, 85) {
		t.Fatalf("CSAT week mean: expected 85, got %+v", c)
	}
}

func TestRollupColumnOrderByClass(t *testing.T) {
	t.Parallel()

	src := Sources{
		Ventas:   ventasWeek(5, 3),
		Rescates: rescatesWeek(1, 0),
	}
	result, err := Consolidate(src,
		model.NewFecha(2026, time.February, 2), model.NewFecha(2026, time.February, 3))
	if err != nil {
		t.Fatalf("consolidate failed: %v", err)
	}

	// sum columns first, ratios last
	cols := result.Semanal.Columns
	want := []string{"Ventas_Totales", "Q_pasajeros", "Rescates", "Rescates_pct_pasajeros"}
	if len(cols) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d: expected %q, got %q", i, want[i], cols[i])
		}
	}
}
