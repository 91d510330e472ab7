package consolidator

import (
	"math"

	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

// SafePct computes 100*numerator/denominator. A zero or undefined
// denominator yields an undefined cell, never an error and never zero.
func SafePct(numerator float64, denominator model.Cell) model.Cell {
	if !denominator.Valid || denominator.Val == 0 {
		return model.Undefined
	}
	return model.Num(100 * numerator / denominator.Val)
}

// Round4 rounds a defined cell to 4 decimal places. The precision is part
// of the output contract for the daily, weekly and period ratio columns.
func Round4(c model.Cell) model.Cell {
	if !c.Valid {
		return c
	}
	return model.Num(math.Round(c.Val*1e4) / 1e4)
}
