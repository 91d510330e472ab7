package store

import (
	"testing"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/consolidator"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
	"github.com/ricardourrutia-support/clairportchile/internal/reducer"
)

func sampleTable() *model.DailyTable {
	t := model.NewDailyTable("Rescates")
	t.Set(model.NewFecha(2026, time.February, 2), "Rescates", model.Num(1))
	t.Set(model.NewFecha(2026, time.February, 3), "Rescates", model.Num(2))
	return t
}

func TestSlotsReportLoadState(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.SetSource(reducer.SourceRescates, "rescates.csv", sampleTable())

	slots := s.Slots()
	if len(slots) != len(reducer.AllSources) {
		t.Fatalf("expected %d slots, got %d", len(reducer.AllSources), len(slots))
	}

	var rescates *Slot
	for i := range slots {
		if slots[i].Source == reducer.SourceRescates {
			rescates = &slots[i]
		} else if slots[i].Loaded {
			t.Fatalf("slot %s should be empty", slots[i].Source)
		}
	}
	if rescates == nil || !rescates.Loaded {
		t.Fatalf("rescates slot not loaded: %+v", rescates)
	}
	if rescates.FileName != "rescates.csv" || rescates.Days != 2 {
		t.Fatalf("unexpected slot payload: %+v", rescates)
	}
	if rescates.DateFrom != "2026-02-02" || rescates.DateTo != "2026-02-03" {
		t.Fatalf("unexpected slot range: %+v", rescates)
	}
}

func TestClearSourceEmptiesSlot(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.SetSource(reducer.SourceRescates, "rescates.csv", sampleTable())
	s.ClearSource(reducer.SourceRescates)

	if s.LoadedCount() != 0 {
		t.Fatalf("expected 0 loaded sources, got %d", s.LoadedCount())
	}
	if s.Sources().Rescates != nil {
		t.Fatalf("cleared slot still feeds the engine")
	}
}

func TestUploadInvalidatesResult(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	s.SetResult("run-1", &consolidator.Result{})

	if _, id, err := s.Result(); err != nil || id != "run-1" {
		t.Fatalf("stored result not readable: id %q err %v", id, err)
	}

	s.SetSource(reducer.SourceRescates, "rescates.csv", sampleTable())
	if _, _, err := s.Result(); err != ErrNoResult {
		t.Fatalf("new upload must invalidate the last result, got %v", err)
	}
}

func TestResultWithoutConsolidation(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	if _, _, err := s.Result(); err != ErrNoResult {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}
