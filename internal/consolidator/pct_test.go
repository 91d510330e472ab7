package consolidator

import (
	"math"
	"testing"

	"github.com/ricardourrutia-support/clairportchile/internal/model"
)

const epsilon = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSafePctZeroDenominatorIsUndefined(t *testing.T) {
	t.Parallel()

	if c := SafePct(3, model.Num(0)); c.Valid {
		t.Fatalf("expected undefined for zero denominator, got %v", c.Val)
	}
	if c := SafePct(3, model.Undefined); c.Valid {
		t.Fatalf("expected undefined for undefined denominator, got %v", c.Val)
	}
}

func TestSafePctComputesPercent(t *testing.T) {
	t.Parallel()

	c := SafePct(3, model.Num(15))
	if !c.Valid || !floatEquals(c.Val, 20.0) {
		t.Fatalf("expected 20.0, got %+v", c)
	}

	// zero numerator over a real denominator is a real zero, not missing
	c = SafePct(0, model.Num(15))
	if !c.Valid || !floatEquals(c.Val, 0.0) {
		t.Fatalf("expected defined 0.0, got %+v", c)
	}
}

func TestRound4(t *testing.T) {
	t.Parallel()

	c := Round4(model.Num(28.571428571))
	if !c.Valid || !floatEquals(c.Val, 28.5714) {
		t.Fatalf("expected 28.5714, got %+v", c)
	}

	if c := Round4(model.Undefined); c.Valid {
		t.Fatalf("expected undefined to pass through, got %+v", c)
	}
}
