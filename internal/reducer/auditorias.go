package reducer

import (
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// AuditoriasColumns is the quality-audit source output contract.
var AuditoriasColumns = []string{"Q_Auditorias", "Nota_Auditorias"}

// audit date columns as the export names them across versions
var auditDateColumns = []string{"Date Time Reference", "Date Time"}

var auditDateFormats = []string{
	"2/1/2006", "2-1-2006", "2/1/06", "2-1-06",
	"2006-01-02", "2006/01/02",
}

// parseAuditFecha handles the audit export's date zoo: Excel serial
// numbers and half a dozen textual forms, day-first when ambiguous.
func parseAuditFecha(s string) (model.Fecha, bool) {
	if f, ok := parseExcelSerial(s); ok {
		return f, true
	}
	for _, layout := range auditDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return model.FechaOf(t), true
		}
	}
	return parseFecha(s, true)
}

// ReduceAuditorias reduces the audit export to a daily audit count and
// mean score. A score that fails coercion counts as zero rather than
// dropping the audit, matching how the operation reads its reports.
func ReduceAuditorias(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable(AuditoriasColumns...)

	dateIdx := -1
	for _, name := range auditDateColumns {
		if idx := raw.ColumnIndex(name); idx >= 0 {
			dateIdx = idx
			break
		}
	}
	scoreIdx := raw.ColumnIndex("Total Audit Score")
	if dateIdx < 0 || scoreIdx < 0 {
		return out
	}

	warnings := newCoercionLog(SourceAuditorias)

	type auditAcc struct {
		count int
		notas meanAcc
	}
	acc := make(map[model.Fecha]*auditAcc)

	for _, rec := range raw.Records {
		fecha, ok := parseAuditFecha(raw.Cell(rec, dateIdx))
		if !ok {
			continue
		}
		a := acc[fecha]
		if a == nil {
			a = &auditAcc{}
			acc[fecha] = a
		}

		rawScore := raw.Cell(rec, scoreIdx)
		nota := parseScore(rawScore)
		if !nota.Valid {
			warnings.warn("Total Audit Score", rawScore)
			nota = model.Num(0)
		}
		a.count++
		a.notas.add(nota)
	}

	for fecha, a := range acc {
		out.Set(fecha, "Q_Auditorias", model.Num(float64(a.count)))
		out.Set(fecha, "Nota_Auditorias", a.notas.cell())
	}
	return out
}
