// Package exporter renders the four consolidation outputs as a styled
// workbook. All styling is keyed on column labels, never on data: the
// engine's outputs stay plain tables.
package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ricardourrutia-support/clairportchile/internal/consolidator"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// Sheet names, in workbook order.
const (
	SheetDiario     = "Diario"
	SheetSemanal    = "Semanal"
	SheetPeriodo    = "Periodo"
	SheetTraspuesta = "Vista_Traspuesta"
)

// Exporter builds Consolidado_Global workbooks.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the four output tables into one workbook. On the
// transposed sheet, every column whose label starts with "Semana " is
// highlighted so week rollups stand out between the day columns.
func (e *Exporter) Export(result *consolidator.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creando estilo de cabecera: %w", err)
	}

	sheets := []struct {
		name  string
		table *model.Table
	}{
		{SheetDiario, result.Diario},
		{SheetSemanal, result.Semanal},
		{SheetPeriodo, result.Periodo},
		{SheetTraspuesta, result.Traspuesta},
	}

	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName("Sheet1", sheet.name)
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, fmt.Errorf("creando hoja %s: %w", sheet.name, err)
			}
		}
		if err := writeTable(f, sheet.name, sheet.table, headerStyle); err != nil {
			return nil, err
		}
	}

	if err := highlightWeekColumns(f, result.Traspuesta); err != nil {
		return nil, err
	}
	return f, nil
}

func writeTable(f *excelize.File, sheet string, table *model.Table, headerStyle int) error {
	if err := setCell(f, sheet, 1, 1, table.LabelHeader); err != nil {
		return err
	}
	for j, col := range table.Columns {
		if err := setCell(f, sheet, j+2, 1, col); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("estilo de cabecera en %s: %w", sheet, err)
	}

	for i, row := range table.Rows {
		if err := setCell(f, sheet, 1, i+2, row.Label); err != nil {
			return err
		}
		if row.Header {
			continue
		}
		for j, cell := range row.Cells {
			if !cell.Valid {
				continue
			}
			if err := setCell(f, sheet, j+2, i+2, cell.Val); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 28)
	return nil
}

// highlightWeekColumns applies the purple week style the downstream
// report readers expect, matched purely on the "Semana " label prefix.
func highlightWeekColumns(f *excelize.File, pivot *model.Table) error {
	weekStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4A2B8D"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creando estilo semanal: %w", err)
	}

	for j, label := range pivot.Columns {
		if !strings.HasPrefix(label, consolidator.WeekColumnPrefix) {
			continue
		}
		// +2: column A holds the KPI labels
		name, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			return fmt.Errorf("columna %d: %w", j+2, err)
		}
		if err := f.SetColWidth(SheetTraspuesta, name, name, 22); err != nil {
			return fmt.Errorf("ancho de columna %s: %w", name, err)
		}
		if err := f.SetColStyle(SheetTraspuesta, name, weekStyle); err != nil {
			return fmt.Errorf("estilo de columna %s: %w", name, err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("celda (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("escribiendo %s!%s: %w", sheet, cell, err)
	}
	return nil
}
