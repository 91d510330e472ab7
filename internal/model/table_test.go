package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCellJSONNullForUndefined(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal([]Cell{Num(2.5), Undefined})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "[2.5,null]" {
		t.Fatalf("unexpected json %s", data)
	}

	var cells []Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !cells[0].Valid || cells[0].Val != 2.5 {
		t.Fatalf("unexpected first cell %+v", cells[0])
	}
	if cells[1].Valid {
		t.Fatalf("expected undefined second cell")
	}
}

func TestDailyTableDatesSorted(t *testing.T) {
	t.Parallel()

	table := NewDailyTable("Q_pasajeros")
	table.Set(NewFecha(2026, time.February, 5), "Q_pasajeros", Num(1))
	table.Set(NewFecha(2026, time.February, 2), "Q_pasajeros", Num(2))
	table.Set(NewFecha(2026, time.February, 3), "Q_pasajeros", Num(3))

	dates := table.Dates()
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Fatalf("dates out of order: %v", dates)
		}
	}
}

func TestTableHeaderRow(t *testing.T) {
	t.Parallel()

	table := NewTable("KPI", "a", "b")
	table.AddHeaderRow("=== SECTION ===")
	table.AddRow("kpi1", []Cell{Num(1), Undefined})

	if !table.Rows[0].Header || len(table.Rows[0].Cells) != 2 {
		t.Fatalf("header row malformed: %+v", table.Rows[0])
	}
	if table.ColumnIndex("b") != 1 || table.ColumnIndex("missing") != -1 {
		t.Fatalf("unexpected column lookup")
	}
}
