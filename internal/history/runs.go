package history

import (
	"fmt"
	"time"
)

// Run records one consolidation request and, once exported, its workbook.
type Run struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	DateFrom      string    `json:"dateFrom"`
	DateTo        string    `json:"dateTo"`
	Days          int       `json:"days"`
	SourcesLoaded int       `json:"sourcesLoaded"`
	ExportFile    string    `json:"exportFile,omitempty"`
}

// InsertRun stores a new run.
func (s *Store) InsertRun(run Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, created_at, date_from, date_to, days, sources_loaded, export_file)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339), run.DateFrom, run.DateTo,
		run.Days, run.SourcesLoaded, run.ExportFile,
	)
	if err != nil {
		return fmt.Errorf("registrando ejecucion: %w", err)
	}
	return nil
}

// SetExportFile attaches the exported workbook name to a run.
func (s *Store) SetExportFile(runID, file string) error {
	_, err := s.db.Exec(`UPDATE runs SET export_file = ? WHERE id = ?`, file, runID)
	if err != nil {
		return fmt.Errorf("actualizando ejecucion %s: %w", runID, err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, date_from, date_to, days, sources_loaded, export_file
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("consultando ejecuciones: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.DateFrom, &run.DateTo,
			&run.Days, &run.SourcesLoaded, &run.ExportFile); err != nil {
			return nil, fmt.Errorf("leyendo ejecucion: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
