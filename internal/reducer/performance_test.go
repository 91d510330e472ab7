package reducer

import (
	"testing"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

func TestReducePerformance(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Fecha de Referencia", "Status", "CSAT", "NPS Score", "Reopen"},
		Records: [][]string{
			{"2026-02-02", "solved", "80", "50", "1"},
			{"2026-02-02", "pending", "", "", "0"},
			{"2026-02-02", "closed", "90", "", "0"},
		},
	}

	out := ReducePerformance(raw)
	day := model.NewFecha(2026, time.February, 2)

	cellEquals(t, out, day, "Q_Ticket", 3)
	cellEquals(t, out, day, "Q_Tickets_Resueltos", 2)
	// only rows with a CSAT or NPS value are surveys
	cellEquals(t, out, day, "Q_Encuestas", 2)
	cellEquals(t, out, day, "CSAT", 85)
	cellEquals(t, out, day, "NPS Score", 50)
	cellEquals(t, out, day, "Reopen", 1)
}

func TestReducePerformanceAcceptsPercentHeaders(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Fecha de Referencia", "Status", "% Firt", "% Furt"},
		Records: [][]string{
			{"2026-02-02", "solved", "95%", "87,5"},
		},
	}

	out := ReducePerformance(raw)
	day := model.NewFecha(2026, time.February, 2)

	cellEquals(t, out, day, "firt_pct", 95)
	cellEquals(t, out, day, "furt_pct", 87.5)
}

func TestReducePerformanceUndefinedMeansStayUndefined(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Fecha de Referencia", "Status"},
		Records: [][]string{
			{"2026-02-02", "solved"},
		},
	}

	out := ReducePerformance(raw)
	day := model.NewFecha(2026, time.February, 2)

	if c := out.Get(day, "CSAT"); c.Valid {
		t.Fatalf("CSAT without data must stay undefined, got %v", c.Val)
	}
	cellEquals(t, out, day, "Q_Ticket", 1)
}
