package exporter

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ricardourrutia-support/clairportchile/internal/consolidator"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

func sampleResult(t *testing.T) *consolidator.Result {
	t.Helper()

	ventas := model.NewDailyTable("Ventas_Totales", "Q_pasajeros")
	rescates := model.NewDailyTable("Rescates")
	for day := 2; day <= 8; day++ {
		f := model.NewFecha(2026, time.February, day)
		ventas.Set(f, "Ventas_Totales", model.Num(float64(1000*day)))
		ventas.Set(f, "Q_pasajeros", model.Num(float64(day)))
		rescates.Set(f, "Rescates", model.Num(1))
	}

	result, err := consolidator.Consolidate(
		consolidator.Sources{Ventas: ventas, Rescates: rescates},
		model.NewFecha(2026, time.February, 2),
		model.NewFecha(2026, time.February, 8),
	)
	if err != nil {
		t.Fatalf("building sample result: %v", err)
	}
	return result
}

func TestExportCreatesFourSheets(t *testing.T) {
	t.Parallel()

	f, err := NewExporter().Export(sampleResult(t))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{SheetDiario, SheetSemanal, SheetPeriodo, SheetTraspuesta} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %s (idx %d, err %v)", sheet, idx, err)
		}
	}
}

func TestExportWritesHeadersAndLabels(t *testing.T) {
	t.Parallel()

	f, err := NewExporter().Export(sampleResult(t))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(SheetDiario, "A1"); got != "fecha" {
		t.Fatalf("daily label header: got %q", got)
	}
	if got, _ := f.GetCellValue(SheetDiario, "A2"); got != "2026-02-02" {
		t.Fatalf("first daily label: got %q", got)
	}
	if got, _ := f.GetCellValue(SheetSemanal, "A1"); got != "Semana" {
		t.Fatalf("weekly label header: got %q", got)
	}
	if got, _ := f.GetCellValue(SheetSemanal, "A2"); got != "2-8 Febrero" {
		t.Fatalf("weekly label: got %q", got)
	}
	if got, _ := f.GetCellValue(SheetTraspuesta, "A1"); got != "KPI" {
		t.Fatalf("pivot label header: got %q", got)
	}
}

func TestExportSkipsUndefinedCells(t *testing.T) {
	t.Parallel()

	// a single day with zero passengers leaves its ratio undefined
	ventas := model.NewDailyTable("Q_pasajeros")
	rescates := model.NewDailyTable("Rescates")
	day := model.NewFecha(2026, time.February, 2)
	ventas.Set(day, "Q_pasajeros", model.Num(0))
	rescates.Set(day, "Rescates", model.Num(1))

	result, err := consolidator.Consolidate(
		consolidator.Sources{Ventas: ventas, Rescates: rescates}, day, day)
	if err != nil {
		t.Fatalf("consolidate failed: %v", err)
	}

	f, err := NewExporter().Export(result)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()

	idx := result.Diario.ColumnIndex("Rescates_pct_pasajeros")
	if idx < 0 {
		t.Fatalf("ratio column missing")
	}
	cell, err := excelize.CoordinatesToCellName(idx+2, 2)
	if err != nil {
		t.Fatalf("cell name: %v", err)
	}
	if got, _ := f.GetCellValue(SheetDiario, cell); got != "" {
		t.Fatalf("undefined ratio should leave a blank cell, got %q", got)
	}
}

func TestExportHeaderRowsCarryNoData(t *testing.T) {
	t.Parallel()

	f, err := NewExporter().Export(sampleResult(t))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()

	// first pivot row is a section header; only column A is written
	if got, _ := f.GetCellValue(SheetTraspuesta, "A2"); got != "=== VENTAS (MONTO) ===" {
		t.Fatalf("expected section header in A2, got %q", got)
	}
	if got, _ := f.GetCellValue(SheetTraspuesta, "B2"); got != "" {
		t.Fatalf("section header row must stay empty past column A, got %q", got)
	}
}
