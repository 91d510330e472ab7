package reducer

import (
	"strings"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// PerformanceColumns is the support-performance source output contract.
var PerformanceColumns = []string{
	"Q_Encuestas", "CSAT", "NPS Score",
	"Firt (h)", "firt_pct", "Furt (h)", "furt_pct",
	"Reopen", "Q_Ticket", "Q_Tickets_Resueltos",
}

type perfAcc struct {
	encuestas, tickets, resueltos int
	reopen                        float64
	means                         map[string]*meanAcc
}

type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(c model.Cell) {
	if c.Valid {
		m.sum += c.Val
		m.n++
	}
}

func (m *meanAcc) cell() model.Cell {
	if m.n == 0 {
		return model.Undefined
	}
	return model.Num(m.sum / float64(m.n))
}

// perfScoreColumns maps output column -> accepted raw header names
// (the export flips between "% Firt" and "firt_pct" style headers).
var perfScoreColumns = []struct {
	out     string
	headers []string
}{
	{"CSAT", []string{"CSAT"}},
	{"NPS Score", []string{"NPS Score"}},
	{"Firt (h)", []string{"Firt (h)"}},
	{"firt_pct", []string{"firt_pct", "% Firt"}},
	{"Furt (h)", []string{"Furt (h)"}},
	{"furt_pct", []string{"furt_pct", "% Furt"}},
}

// ReducePerformance reduces the support ticket export: ticket counts and
// resolution counts are summed per date, satisfaction and SLA measures
// are averaged over the rows that carry them. A row counts as a survey
// when either CSAT or NPS is present.
func ReducePerformance(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable(PerformanceColumns...)

	dateIdx := raw.ColumnIndex("Fecha de Referencia")
	if dateIdx < 0 {
		return out
	}
	statusIdx := raw.ColumnIndex("Status")
	reopenIdx := raw.ColumnIndex("Reopen")

	scoreIdx := make(map[string]int, len(perfScoreColumns))
	for _, sc := range perfScoreColumns {
		scoreIdx[sc.out] = -1
		for _, h := range sc.headers {
			if idx := raw.ColumnIndex(h); idx >= 0 {
				scoreIdx[sc.out] = idx
				break
			}
		}
	}

	warnings := newCoercionLog(SourcePerformance)
	acc := make(map[model.Fecha]*perfAcc)

	for _, rec := range raw.Records {
		fecha, ok := parseFecha(raw.Cell(rec, dateIdx), false)
		if !ok {
			continue
		}
		a := acc[fecha]
		if a == nil {
			a = &perfAcc{means: make(map[string]*meanAcc)}
			for _, sc := range perfScoreColumns {
				a.means[sc.out] = &meanAcc{}
			}
			acc[fecha] = a
		}

		scores := make(map[string]model.Cell, len(perfScoreColumns))
		for _, sc := range perfScoreColumns {
			idx := scoreIdx[sc.out]
			if idx < 0 {
				scores[sc.out] = model.Undefined
				continue
			}
			rawVal := raw.Cell(rec, idx)
			c := parseScore(rawVal)
			if !c.Valid {
				warnings.warn(sc.out, rawVal)
			}
			scores[sc.out] = c
			a.means[sc.out].add(c)
		}

		a.tickets++
		status := strings.ToLower(strings.TrimSpace(raw.Cell(rec, statusIdx)))
		if status != "pending" {
			a.resueltos++
		}
		if scores["CSAT"].Valid || scores["NPS Score"].Valid {
			a.encuestas++
		}
		if reopenIdx >= 0 {
			if c := parseScore(raw.Cell(rec, reopenIdx)); c.Valid {
				a.reopen += c.Val
			}
		}
	}

	for fecha, a := range acc {
		out.Set(fecha, "Q_Encuestas", model.Num(float64(a.encuestas)))
		for _, sc := range perfScoreColumns {
			out.Set(fecha, sc.out, a.means[sc.out].cell())
		}
		out.Set(fecha, "Reopen", model.Num(a.reopen))
		out.Set(fecha, "Q_Ticket", model.Num(float64(a.tickets)))
		out.Set(fecha, "Q_Tickets_Resueltos", model.Num(float64(a.resueltos)))
	}
	return out
}
