package reducer

import (
	"testing"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

func TestReduceOffTime(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"tm_start_local_at", "Segment Arrived to Airport vs Requested"},
		Records: [][]string{
			{"2026-02-02 08:00:00", "02. A tiempo (0-20 min antes)"},
			{"2026-02-02 09:00:00", "01. Muy temprano (mas de 20 min antes)"},
			{"2026-02-02 10:00:00", "03. Tarde"},
		},
	}

	out := ReduceOffTime(raw)
	day := model.NewFecha(2026, time.February, 2)
	cellEquals(t, out, day, "OFF_TIME", 2)
}

func TestReduceOffTimeAllOnTimeIsZero(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"tm_start_local_at", "Segment Arrived to Airport vs Requested"},
		Records: [][]string{
			{"2026-02-02 08:00:00", "02. A tiempo (0-20 min antes)"},
		},
	}

	out := ReduceOffTime(raw)
	day := model.NewFecha(2026, time.February, 2)
	// a covered date with no late rides is a real zero, not missing
	cellEquals(t, out, day, "OFF_TIME", 0)
}

func TestReduceDuracion90(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Start At Local Dt", "Duration (Minutes)"},
		Records: [][]string{
			{"2026-02-02", "95"},
			{"2026-02-02", "90"},
			{"2026-02-02", "120,5"},
			{"2026-02-02", "texto"},
		},
	}

	out := ReduceDuracion90(raw)
	day := model.NewFecha(2026, time.February, 2)
	// strictly over 90; the non-numeric row is skipped
	cellEquals(t, out, day, "Duracion_90", 2)
}

func TestReduceDuracion30EnglishDates(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Day of tm_start_local_at"},
		Records: [][]string{
			{"February 2, 2026"},
			{"February 2, 2026"},
			{"2026-02-03"},
		},
	}

	out := ReduceDuracion30(raw)
	cellEquals(t, out, model.NewFecha(2026, time.February, 2), "Duracion_30", 2)
	cellEquals(t, out, model.NewFecha(2026, time.February, 3), "Duracion_30", 1)
}

func TestReduceRescatesDayFirst(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Start At Local Dt"},
		Records: [][]string{
			{"05/02/2026"},
			{"05/02/2026"},
			{"06/02/2026"},
		},
	}

	out := ReduceRescates(raw)
	cellEquals(t, out, model.NewFecha(2026, time.February, 5), "Rescates", 2)
	cellEquals(t, out, model.NewFecha(2026, time.February, 6), "Rescates", 1)
}

func TestReduceAbandonados(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Marca temporal"},
		Records: [][]string{
			{"2026-02-02 14:33:10"},
			{"no es fecha"},
		},
	}

	out := ReduceAbandonados(raw)
	cellEquals(t, out, model.NewFecha(2026, time.February, 2), "Abandonados", 1)
}

func TestReduceWhatsApp(t *testing.T) {
	t.Parallel()

	raw := &ingest.RawTable{
		Headers: []string{"Created At Local Dt"},
		Records: [][]string{
			{"2026-02-02"},
			{"2026-02-02"},
		},
	}

	out := ReduceWhatsApp(raw)
	cellEquals(t, out, model.NewFecha(2026, time.February, 2), "Q_Tickets_WA", 2)
}
