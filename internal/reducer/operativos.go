package reducer

import (
	"strings"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// onTimeSegment is the only arrival bucket that does not count as
// off-time in the punctuality export.
const onTimeSegment = "02. A tiempo (0-20 min antes)"

// ReduceOffTime counts, per date, the rides whose airport arrival fell
// outside the on-time bucket.
func ReduceOffTime(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable("OFF_TIME")

	dateIdx := raw.ColumnIndex("tm_start_local_at")
	segmentIdx := raw.ColumnIndex("Segment Arrived to Airport vs Requested")
	if dateIdx < 0 || segmentIdx < 0 {
		return out
	}

	counts := make(map[model.Fecha]int)
	for _, rec := range raw.Records {
		fecha, ok := parseFecha(raw.Cell(rec, dateIdx), false)
		if !ok {
			continue
		}
		if _, seen := counts[fecha]; !seen {
			counts[fecha] = 0
		}
		if raw.Cell(rec, segmentIdx) != onTimeSegment {
			counts[fecha]++
		}
	}

	for fecha, n := range counts {
		out.Set(fecha, "OFF_TIME", model.Num(float64(n)))
	}
	return out
}

// ReduceDuracion90 counts, per date, the rides lasting more than 90
// minutes. Non-numeric durations are skipped.
func ReduceDuracion90(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable("Duracion_90")

	dateIdx := raw.ColumnIndex("Start At Local Dt")
	durationIdx := raw.ColumnIndex("Duration (Minutes)")
	if dateIdx < 0 || durationIdx < 0 {
		return out
	}

	warnings := newCoercionLog(SourceDuracion90)
	counts := make(map[model.Fecha]int)
	for _, rec := range raw.Records {
		fecha, ok := parseFecha(raw.Cell(rec, dateIdx), false)
		if !ok {
			continue
		}
		if _, seen := counts[fecha]; !seen {
			counts[fecha] = 0
		}
		rawDur := raw.Cell(rec, durationIdx)
		dur := parseScore(rawDur)
		if !dur.Valid {
			warnings.warn("Duration (Minutes)", rawDur)
			continue
		}
		if dur.Val > 90 {
			counts[fecha]++
		}
	}

	for fecha, n := range counts {
		out.Set(fecha, "Duracion_90", model.Num(float64(n)))
	}
	return out
}

// englishDayFormats covers the BI export's verbose date style,
// e.g. "January 5, 2026".
var englishDayFormats = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
}

// ReduceDuracion30 counts, per date, the rides flagged by the >30-minute
// report. Its date column mixes standard forms with English month names.
func ReduceDuracion30(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable("Duracion_30")

	dateIdx := raw.ColumnIndex("Day of tm_start_local_at")
	if dateIdx < 0 {
		return out
	}

	counts := make(map[model.Fecha]int)
	for _, rec := range raw.Records {
		rawDate := raw.Cell(rec, dateIdx)
		fecha, ok := parseFecha(rawDate, false)
		if !ok {
			for _, layout := range englishDayFormats {
				if t, err := time.Parse(layout, strings.TrimSpace(rawDate)); err == nil {
					fecha, ok = model.FechaOf(t), true
					break
				}
			}
		}
		if !ok {
			continue
		}
		counts[fecha]++
	}

	for fecha, n := range counts {
		out.Set(fecha, "Duracion_30", model.Num(float64(n)))
	}
	return out
}

// reduceRowCount implements the simple "one row, one event" sources:
// abandoned rides, rescues and chat tickets.
func reduceRowCount(raw *ingest.RawTable, dateColumn string, dayFirst bool, outColumn string) *model.DailyTable {
	out := model.NewDailyTable(outColumn)

	dateIdx := raw.ColumnIndex(dateColumn)
	if dateIdx < 0 {
		return out
	}

	counts := make(map[model.Fecha]int)
	for _, rec := range raw.Records {
		fecha, ok := parseFecha(raw.Cell(rec, dateIdx), dayFirst)
		if !ok {
			continue
		}
		counts[fecha]++
	}

	for fecha, n := range counts {
		out.Set(fecha, outColumn, model.Num(float64(n)))
	}
	return out
}

// ReduceAbandonados counts abandoned-ride form submissions per date.
func ReduceAbandonados(raw *ingest.RawTable) *model.DailyTable {
	return reduceRowCount(raw, "Marca temporal", false, "Abandonados")
}

// ReduceRescates counts rescue rides per date.
func ReduceRescates(raw *ingest.RawTable) *model.DailyTable {
	return reduceRowCount(raw, "Start At Local Dt", true, "Rescates")
}

// ReduceWhatsApp counts chat tickets per date.
func ReduceWhatsApp(raw *ingest.RawTable) *model.DailyTable {
	return reduceRowCount(raw, "Created At Local Dt", false, "Q_Tickets_WA")
}
