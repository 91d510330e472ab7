// Package store keeps the per-session state of the consolidation tool:
// the ten uploaded per-source daily tables and the latest result.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/ricardourrutia-support/clairportchile/internal/consolidator"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
	"github.com/ricardourrutia-support/clairportchile/internal/reducer"
)

// ErrNoResult is returned when export is requested before consolidating.
var ErrNoResult = errors.New("no hay consolidado generado")

// Slot describes the load state of one upload slot.
type Slot struct {
	Source   reducer.Source `json:"source"`
	Loaded   bool           `json:"loaded"`
	FileName string         `json:"fileName,omitempty"`
	Days     int            `json:"days"`
	DateFrom string         `json:"dateFrom,omitempty"`
	DateTo   string         `json:"dateTo,omitempty"`
	LoadedAt time.Time      `json:"loadedAt,omitempty"`
}

// MemoryStore holds uploads and the last consolidation behind a lock;
// handlers for different sources may run concurrently.
type MemoryStore struct {
	mu sync.RWMutex

	tables   map[reducer.Source]*model.DailyTable
	files    map[reducer.Source]string
	loadedAt map[reducer.Source]time.Time

	result    *consolidator.Result
	lastRunID string
}

// NewMemoryStore creates an empty session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:   make(map[reducer.Source]*model.DailyTable),
		files:    make(map[reducer.Source]string),
		loadedAt: make(map[reducer.Source]time.Time),
	}
}

// SetSource stores one reduced upload, replacing any previous file for
// the slot and invalidating the last result.
func (s *MemoryStore) SetSource(src reducer.Source, fileName string, table *model.DailyTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[src] = table
	s.files[src] = fileName
	s.loadedAt[src] = time.Now()
	s.result = nil
	s.lastRunID = ""
}

// ClearSource empties one slot.
func (s *MemoryStore) ClearSource(src reducer.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, src)
	delete(s.files, src)
	delete(s.loadedAt, src)
	s.result = nil
	s.lastRunID = ""
}

// LoadedCount returns how many slots carry data.
func (s *MemoryStore) LoadedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Slots reports every slot in merge order.
func (s *MemoryStore) Slots() []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]Slot, 0, len(reducer.AllSources))
	for _, src := range reducer.AllSources {
		slot := Slot{Source: src}
		if table, ok := s.tables[src]; ok {
			slot.Loaded = true
			slot.FileName = s.files[src]
			slot.Days = table.Len()
			slot.LoadedAt = s.loadedAt[src]
			if dates := table.Dates(); len(dates) > 0 {
				slot.DateFrom = dates[0].String()
				slot.DateTo = dates[len(dates)-1].String()
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// Sources assembles the engine input from the loaded slots; empty slots
// stay nil and simply contribute no coverage.
func (s *MemoryStore) Sources() consolidator.Sources {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return consolidator.Sources{
		Ventas:       s.tables[reducer.SourceVentas],
		Performance:  s.tables[reducer.SourcePerformance],
		Auditorias:   s.tables[reducer.SourceAuditorias],
		OffTime:      s.tables[reducer.SourceOffTime],
		Duracion90:   s.tables[reducer.SourceDuracion90],
		Duracion30:   s.tables[reducer.SourceDuracion30],
		Inspecciones: s.tables[reducer.SourceInspecciones],
		Abandonados:  s.tables[reducer.SourceAbandonados],
		Rescates:     s.tables[reducer.SourceRescates],
		WhatsApp:     s.tables[reducer.SourceWhatsApp],
	}
}

// SetResult stores the latest consolidation.
func (s *MemoryStore) SetResult(runID string, result *consolidator.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.lastRunID = runID
}

// Result returns the latest consolidation, or ErrNoResult.
func (s *MemoryStore) Result() (*consolidator.Result, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, "", ErrNoResult
	}
	return s.result, s.lastRunID, nil
}

// Clear empties every slot and the last result.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[reducer.Source]*model.DailyTable)
	s.files = make(map[reducer.Source]string)
	s.loadedAt = make(map[reducer.Source]time.Time)
	s.result = nil
	s.lastRunID = ""
}
