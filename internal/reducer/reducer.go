// Package reducer turns raw uploaded tables into canonical per-source
// daily tables: one row per calendar date, a fixed column set per
// source, numeric cells. Everything locale-specific (comma decimals,
// percent signs, currency marks, Excel serial dates, English month
// names) is absorbed here so the consolidation core only ever sees
// already-coerced values.
package reducer

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// Source identifies one of the ten upload slots.
type Source string

const (
	SourceVentas       Source = "ventas"
	SourcePerformance  Source = "performance"
	SourceAuditorias   Source = "auditorias"
	SourceOffTime      Source = "offtime"
	SourceDuracion90   Source = "duracion90"
	SourceDuracion30   Source = "duracion30"
	SourceInspecciones Source = "inspecciones"
	SourceAbandonados  Source = "abandonados"
	SourceRescates     Source = "rescates"
	SourceWhatsApp     Source = "whatsapp"
)

// AllSources lists the slots in merge order.
var AllSources = []Source{
	SourceVentas, SourcePerformance, SourceAuditorias,
	SourceOffTime, SourceDuracion90, SourceDuracion30,
	SourceInspecciones, SourceAbandonados, SourceRescates, SourceWhatsApp,
}

// Valid reports whether s names a known upload slot.
func (s Source) Valid() bool {
	for _, known := range AllSources {
		if s == known {
			return true
		}
	}
	return false
}

// Reduce dispatches a raw upload to its per-source reducer.
func Reduce(src Source, raw *ingest.RawTable) (*model.DailyTable, error) {
	switch src {
	case SourceVentas:
		return ReduceVentas(raw), nil
	case SourcePerformance:
		return ReducePerformance(raw), nil
	case SourceAuditorias:
		return ReduceAuditorias(raw), nil
	case SourceOffTime:
		return ReduceOffTime(raw), nil
	case SourceDuracion90:
		return ReduceDuracion90(raw), nil
	case SourceDuracion30:
		return ReduceDuracion30(raw), nil
	case SourceInspecciones:
		return ReduceInspecciones(raw), nil
	case SourceAbandonados:
		return ReduceAbandonados(raw), nil
	case SourceRescates:
		return ReduceRescates(raw), nil
	case SourceWhatsApp:
		return ReduceWhatsApp(raw), nil
	}
	return nil, fmt.Errorf("fuente desconocida %q", src)
}

// ---- date coercion ----

var isoFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

var dayFirstFormats = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2-1-06",
}

var monthFirstFormats = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006",
}

// parseFecha coerces a raw date string to a calendar date. ISO forms win;
// slash forms are tried day-first or month-first per the source's export
// convention.
func parseFecha(s string, dayFirst bool) (model.Fecha, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Fecha{}, false
	}
	formats := append(append([]string{}, isoFormats...), pickOrder(dayFirst)...)
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return model.FechaOf(t), true
		}
	}
	return model.Fecha{}, false
}

func pickOrder(dayFirst bool) []string {
	if dayFirst {
		return dayFirstFormats
	}
	return monthFirstFormats
}

// excelEpoch is day zero of the 1900 date system used by .xlsx exports.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseExcelSerial recognizes a numeric Excel serial date. Values below
// 30000 (before 1982) are rejected as ordinary numbers, mirroring the
// audit export's convention.
func parseExcelSerial(s string) (model.Fecha, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || serial <= 30000 {
		return model.Fecha{}, false
	}
	return model.FechaOf(excelEpoch.AddDate(0, 0, int(serial))), true
}

// ---- numeric coercion ----

// parseImporte coerces a monetary amount: thousands commas, spaces and
// currency marks are stripped ("$1,234.50" -> 1234.50). Failures yield
// an undefined cell and the run continues.
func parseImporte(s string) model.Cell {
	s = strings.NewReplacer(",", "", " ", "", "$", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return model.Undefined
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Undefined
	}
	return model.Num(v)
}

// parseScore coerces a score, percentage or duration: percent signs are
// stripped and a comma is a decimal separator ("87,5%" -> 87.5).
func parseScore(s string) model.Cell {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "%", ""), ",", "."))
	if s == "" {
		return model.Undefined
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Undefined
	}
	return model.Num(v)
}

// coercionLog reports each non-coercible column once per reduce call, so
// a column full of text warns a single time instead of per row.
type coercionLog struct {
	source Source
	seen   map[string]bool
}

func newCoercionLog(source Source) *coercionLog {
	return &coercionLog{source: source, seen: make(map[string]bool)}
}

func (l *coercionLog) warn(column, value string) {
	if strings.TrimSpace(value) == "" || l.seen[column] {
		return
	}
	l.seen[column] = true
	log.Printf("aviso [%s]: columna %q con valores no numericos (ej. %q), quedan indefinidos", l.source, column, value)
}
