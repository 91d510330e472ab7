package consolidator

import (
	"testing"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

func TestFillSumMissingBecomesZero(t *testing.T) {
	t.Parallel()

	// sales covers two days, rescues only the first; the uncovered
	// sum-class cell must come out as a real zero
	ventas := ventasWeek(5, 3)
	rescates := rescatesWeek(1)

	w := merge([]*model.DailyTable{ventas, rescates})
	fillDerive(w)

	day2 := model.NewFecha(2026, time.February, 3)
	if c := w.get(day2, "Rescates"); !c.Valid || c.Val != 0 {
		t.Fatalf("expected zero-filled Rescates, got %+v", c)
	}
}

func TestFillMeanZeroIsSentinel(t *testing.T) {
	t.Parallel()

	day := model.NewFecha(2026, time.February, 2)
	perf := model.NewDailyTable("CSAT", "NPS Score")
	perf.Set(day, "CSAT", model.Num(0))
	perf.Set(day, "NPS Score", model.Num(45))

	w := merge([]*model.DailyTable{perf})
	fillDerive(w)

	if c := w.get(day, "CSAT"); c.Valid {
		t.Fatalf("zero CSAT should become undefined, got %v", c.Val)
	}
	if c := w.get(day, "NPS Score"); !c.Valid || c.Val != 45 {
		t.Fatalf("non-zero mean value should survive, got %+v", c)
	}
}

func TestFillAuditScoreZeroIsReal(t *testing.T) {
	t.Parallel()

	day := model.NewFecha(2026, time.February, 2)
	audit := model.NewDailyTable("Q_Auditorias", "Nota_Auditorias")
	audit.Set(day, "Q_Auditorias", model.Num(3))
	audit.Set(day, "Nota_Auditorias", model.Num(0))

	w := merge([]*model.DailyTable{audit})
	fillDerive(w)

	if c := w.get(day, "Nota_Auditorias"); !c.Valid || c.Val != 0 {
		t.Fatalf("audit score zero is a real score, got %+v", c)
	}
}

func TestFillSkipsRatiosWithoutDenominator(t *testing.T) {
	t.Parallel()

	// no sales source loaded, so Q_pasajeros is absent and no ratio
	// column may appear
	w := merge([]*model.DailyTable{rescatesWeek(1, 2)})
	fillDerive(w)

	if w.hasColumn("Rescates_pct_pasajeros") {
		t.Fatalf("ratio column derived without its denominator")
	}
}
