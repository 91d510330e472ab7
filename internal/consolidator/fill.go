package consolidator

import (
	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// fillDerive applies the per-class null policy once, then derives the
// five ratio KPIs. Sum-class cells missing after the merge become zero;
// mean-class cells stay undefined, and a literal zero in a non-exempt
// mean column is an upstream "no data" sentinel, also undefined. Every
// later stage can then aggregate without re-checking null policy.
func fillDerive(w *wideTable) {
	for _, f := range w.dates {
		for _, col := range w.columns {
			c := w.get(f, col)
			switch model.ClassOf(col) {
			case model.ClassSum:
				if !c.Valid {
					w.set(f, col, model.Num(0))
				}
			case model.ClassMean:
				if c.Valid && c.Val == 0 && !model.MeanZeroExempt[col] {
					w.set(f, col, model.Undefined)
				}
			}
		}
	}

	if !w.hasColumn(model.PctDenominator) {
		return
	}

	for _, op := range model.OperationalCounters {
		if !w.hasColumn(op) {
			continue
		}
		pctCol := op + model.PctSuffix
		w.columns = append(w.columns, pctCol)
		for _, f := range w.dates {
			numer := w.get(f, op)
			denom := w.get(f, model.PctDenominator)
			w.set(f, pctCol, Round4(SafePct(numer.Val, denom)))
		}
	}
}
