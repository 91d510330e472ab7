package reducer

import (
	"strings"

	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// VentasColumns is the sales source output contract.
var VentasColumns = []string{
	"Ventas_Totales", "Ventas_Compartidas", "Ventas_Exclusivas",
	"Q_pasajeros", "Q_pasajeros_exclusives", "Q_pasajeros_compartidas",
	"Q_journeys",
}

const dropoffReason = "FINISH_REASON_DROPOFF"

type ventasAcc struct {
	totales, compartidas, exclusivas float64
	pasajeros, exclusives, compart   int
	journeys                         map[string]bool
}

// ReduceVentas reduces the raw sales export to one row per date. A
// passenger is a ride that reached dropoff; sales amounts split by
// product (shared vs exclusive van); journeys count distinct journey ids
// among dropoffs. Without any of the known date columns the result is
// an empty table with the contract columns.
func ReduceVentas(raw *ingest.RawTable) *model.DailyTable {
	out := model.NewDailyTable(VentasColumns...)

	dateIdx, dayFirst := -1, false
	for _, anchor := range []struct {
		name     string
		dayFirst bool
	}{
		{"tm_start_local_at", false},
		{"createdAt_local", false},
		{"date", true},
	} {
		if idx := raw.ColumnIndex(anchor.name); idx >= 0 {
			dateIdx, dayFirst = idx, anchor.dayFirst
			break
		}
	}
	if dateIdx < 0 {
		return out
	}

	priceIdx := raw.ColumnIndex("qt_price_local")
	prodIdx := raw.ColumnIndex("ds_product_name")
	journeyIdx := raw.ColumnIndex("journey_id")
	reasonIdx := -1
	for _, name := range []string{"finishReason", "finisReason", "FinishReason", "finish_reason", "Finish Reason"} {
		if idx := raw.ColumnIndex(name); idx >= 0 {
			reasonIdx = idx
			break
		}
	}

	warnings := newCoercionLog(SourceVentas)
	acc := make(map[model.Fecha]*ventasAcc)

	for _, rec := range raw.Records {
		fecha, ok := parseFecha(raw.Cell(rec, dateIdx), dayFirst)
		if !ok {
			continue
		}
		a := acc[fecha]
		if a == nil {
			a = &ventasAcc{journeys: make(map[string]bool)}
			acc[fecha] = a
		}

		price := model.Undefined
		if priceIdx >= 0 {
			rawPrice := raw.Cell(rec, priceIdx)
			price = parseImporte(rawPrice)
			if !price.Valid {
				warnings.warn("qt_price_local", rawPrice)
			}
		}
		prod := strings.ToLower(strings.TrimSpace(raw.Cell(rec, prodIdx)))

		if price.Valid {
			a.totales += price.Val
			switch prod {
			case "van_compartida":
				a.compartidas += price.Val
			case "van_exclusive":
				a.exclusivas += price.Val
			}
		}

		isDropoff := reasonIdx >= 0 &&
			strings.ToUpper(strings.TrimSpace(raw.Cell(rec, reasonIdx))) == dropoffReason
		if !isDropoff {
			continue
		}
		a.pasajeros++
		switch prod {
		case "van_exclusive":
			a.exclusives++
		case "van_compartida":
			a.compart++
		}
		if journeyIdx >= 0 {
			if jid := strings.TrimSpace(raw.Cell(rec, journeyIdx)); jid != "" {
				a.journeys[jid] = true
			}
		}
	}

	for fecha, a := range acc {
		out.Set(fecha, "Ventas_Totales", model.Num(a.totales))
		out.Set(fecha, "Ventas_Compartidas", model.Num(a.compartidas))
		out.Set(fecha, "Ventas_Exclusivas", model.Num(a.exclusivas))
		out.Set(fecha, "Q_pasajeros", model.Num(float64(a.pasajeros)))
		out.Set(fecha, "Q_pasajeros_exclusives", model.Num(float64(a.exclusives)))
		out.Set(fecha, "Q_pasajeros_compartidas", model.Num(float64(a.compart)))
		out.Set(fecha, "Q_journeys", model.Num(float64(len(a.journeys))))
	}
	return out
}
