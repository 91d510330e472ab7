package model

// KPIClass fixes the aggregation semantics of a column. The class is a
// design-time declaration consulted by every stage; no stage infers it
// from the data.
type KPIClass int

const (
	// ClassUnknown marks a column outside the declared schedule.
	ClassUnknown KPIClass = iota
	// ClassSum marks additive counters and monetary totals; missing
	// values are semantically zero once the sources are merged.
	ClassSum
	// ClassMean marks averaged measures (scores, SLA hours); missing
	// values stay undefined and are excluded from every average.
	ClassMean
	// ClassRatio marks derived percentages, always recomputed from the
	// rolled-up numerator and denominator of the target resolution.
	ClassRatio
)

// FechaColumn is the date key shared by every per-source daily table.
const FechaColumn = "fecha"

// PctSuffix turns an operational counter name into its derived ratio
// column name, e.g. "OFF_TIME" -> "OFF_TIME_pct_pasajeros".
const PctSuffix = "_pct_pasajeros"

// PctDenominator is the common denominator of the five derived ratios.
const PctDenominator = "Q_pasajeros"

// SumColumns lists every sum-class KPI in rollup output order.
var SumColumns = []string{
	"Q_Encuestas", "Reopen", "Q_Ticket", "Q_Tickets_Resueltos", "Q_Tickets_WA",
	"Q_Auditorias",
	"Ventas_Totales", "Ventas_Compartidas", "Ventas_Exclusivas",
	"Q_journeys", "Q_pasajeros", "Q_pasajeros_exclusives", "Q_pasajeros_compartidas",
	"OFF_TIME", "Duracion_90", "Duracion_30", "Abandonados", "Rescates",
	"Inspecciones_Q",
	"Cump_Exterior", "Incump_Exterior",
	"Cump_Interior", "Incump_Interior",
	"Cump_Conductor", "Incump_Conductor",
}

// MeanColumns lists every mean-class KPI in rollup output order.
var MeanColumns = []string{
	"CSAT", "NPS Score", "Firt (h)", "Furt (h)", "firt_pct", "furt_pct",
	"Nota_Auditorias",
}

// OperationalCounters are the sum-class counters that derive the five
// "percent of passengers" ratio KPIs.
var OperationalCounters = []string{
	"OFF_TIME", "Duracion_90", "Duracion_30", "Abandonados", "Rescates",
}

// MeanZeroExempt lists mean-class columns whose zeros are real scores.
// For the rest, a literal zero is an upstream "no data" sentinel and is
// treated as undefined at the fill stage.
var MeanZeroExempt = map[string]bool{
	"Nota_Auditorias": true,
}

// RatioColumns returns the derived ratio column names in declaration order.
func RatioColumns() []string {
	cols := make([]string, len(OperationalCounters))
	for i, op := range OperationalCounters {
		cols[i] = op + PctSuffix
	}
	return cols
}

// RatioNumerator returns the operational counter behind a ratio column,
// e.g. "Rescates_pct_pasajeros" -> "Rescates".
func RatioNumerator(ratioCol string) string {
	return ratioCol[:len(ratioCol)-len(PctSuffix)]
}

var classByName = func() map[string]KPIClass {
	m := make(map[string]KPIClass)
	for _, c := range SumColumns {
		m[c] = ClassSum
	}
	for _, c := range MeanColumns {
		m[c] = ClassMean
	}
	for _, c := range RatioColumns() {
		m[c] = ClassRatio
	}
	return m
}()

// ClassOf returns the declared class of a KPI column.
func ClassOf(column string) KPIClass {
	return classByName[column]
}

// Section groups KPI rows of the transposed pivot under one header.
type Section struct {
	Title string
	KPIs  []string
}

// PivotSections fixes the pivot row grouping. Any KPI not claimed here
// falls into the trailing catch-all section.
var PivotSections = []Section{
	{
		Title: "VENTAS (MONTO)",
		KPIs:  []string{"Ventas_Totales", "Ventas_Compartidas", "Ventas_Exclusivas"},
	},
	{
		Title: "VENTAS (VOLUMEN)",
		KPIs:  []string{"Q_journeys", "Q_pasajeros", "Q_pasajeros_exclusives", "Q_pasajeros_compartidas"},
	},
	{
		Title: "PERFORMANCE",
		KPIs:  []string{"Q_Ticket", "Q_Tickets_WA", "Q_Tickets_Resueltos", "Reopen"},
	},
	{
		Title: "CALIDAD (ENCUESTAS & SLA)",
		KPIs: []string{
			"Q_Encuestas", "CSAT", "NPS Score",
			"Firt (h)", "firt_pct", "Furt (h)", "furt_pct",
			"Q_Auditorias", "Nota_Auditorias",
		},
	},
	{
		Title: "INSPECCIONES",
		KPIs: []string{
			"Inspecciones_Q",
			"Cump_Exterior", "Incump_Exterior",
			"Cump_Interior", "Incump_Interior",
			"Cump_Conductor", "Incump_Conductor",
		},
	},
	{
		Title: "OTROS (OPERATIVOS)",
		KPIs: []string{
			"OFF_TIME", "OFF_TIME" + PctSuffix,
			"Duracion_90", "Duracion_90" + PctSuffix,
			"Duracion_30", "Duracion_30" + PctSuffix,
			"Abandonados", "Abandonados" + PctSuffix,
			"Rescates", "Rescates" + PctSuffix,
		},
	},
}

// CatchAllSection titles the trailing section for unclaimed KPIs.
const CatchAllSection = "OTROS KPI"
