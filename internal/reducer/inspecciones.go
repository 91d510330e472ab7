package reducer

import (
	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// InspeccionesColumns is the vehicle-inspection source output contract.
var InspeccionesColumns = []string{
	"Inspecciones_Q",
	"Cump_Exterior", "Incump_Exterior",
	"Cump_Interior", "Incump_Interior",
	"Cump_Conductor", "Incump_Conductor",
}

// inspection compliance areas, raw header -> output column pair
var inspectionAreas = []struct {
	header           string
	cumple, incumple string
}{
	{"Cumplimiento Exterior", "Cump_Exterior", "Incump_Exterior"},
	{"Cumplimiento Interior", "Cump_Interior", "Incump_Interior"},
	{"Cumplimiento Conductor", "Cump_Conductor", "Incump_Conductor"},
}

// ReduceInspecciones reduces the vehicle inspection sheet: per date, how
// many inspections happened and, per area, how many were fully compliant
// (score exactly 100) versus not. A non-numeric score counts to neither
// bucket.
func ReduceInspecciones(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable(InspeccionesColumns...)

	dateIdx := raw.ColumnIndex("Fecha")
	if dateIdx < 0 {
		return out
	}

	areaIdx := make([]int, len(inspectionAreas))
	for i, area := range inspectionAreas {
		areaIdx[i] = raw.ColumnIndex(area.header)
	}

	warnings := newCoercionLog(SourceInspecciones)
	counts := make(map[model.Fecha]map[string]int)

	for _, rec := range raw.Records {
		fecha, ok := parseFecha(raw.Cell(rec, dateIdx), false)
		if !ok {
			if f, serialOK := parseExcelSerial(raw.Cell(rec, dateIdx)); serialOK {
				fecha, ok = f, true
			}
		}
		if !ok {
			continue
		}
		c := counts[fecha]
		if c == nil {
			c = make(map[string]int)
			counts[fecha] = c
		}

		c["Inspecciones_Q"]++
		for i, area := range inspectionAreas {
			if areaIdx[i] < 0 {
				continue
			}
			rawScore := raw.Cell(rec, areaIdx[i])
			score := parseScore(rawScore)
			if !score.Valid {
				warnings.warn(area.header, rawScore)
				continue
			}
			if score.Val == 100 {
				c[area.cumple]++
			} else if score.Val < 100 {
				c[area.incumple]++
			}
		}
	}

	for fecha, c := range counts {
		for _, col := range InspeccionesColumns {
			out.Set(fecha, col, model.Num(float64(c[col])))
		}
	}
	return out
}
