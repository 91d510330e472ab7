package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ricardourrutia-support/clairportchile/internal/consolidator"
	"github.com/ricardourrutia-support/clairportchile/internal/exporter"
	"github.com/ricardourrutia-support/clairportchile/internal/history"
	"github.com/ricardourrutia-support/clairportchile/internal/ingest"
	"github.com/ricardourrutia-support/clairportchile/internal/model"
	"github.com/ricardourrutia-support/clairportchile/internal/reducer"
	"github.com/ricardourrutia-support/clairportchile/internal/service/store"
)

// maxUploadSize caps each per-source file at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// Handlers wires the HTTP surface to the session store, the engine, the
// exporter and the run history.
type Handlers struct {
	mem     *store.MemoryStore
	runs    *history.Store
	export  *exporter.Exporter
	dataDir string
	prefix  string

	// export token -> workbook path
	exports   map[string]string
	exportsMu sync.RWMutex
}

// NewHandlers creates the handler set. runs may be nil (history disabled).
func NewHandlers(mem *store.MemoryStore, runs *history.Store, dataDir, filePrefix string) *Handlers {
	return &Handlers{
		mem:     mem,
		runs:    runs,
		export:  exporter.NewExporter(),
		dataDir: dataDir,
		prefix:  filePrefix,
		exports: make(map[string]string),
	}
}

// RegisterRoutes mounts the API.
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/sources", h.GetSources)
	api.POST("/sources/:source/upload", h.UploadSource)
	api.DELETE("/sources/:source", h.DeleteSource)
	api.POST("/consolidate", h.Consolidate)
	api.POST("/export", h.Export)
	api.GET("/export/:token/download", h.DownloadExport)
	api.GET("/runs", h.ListRuns)
}

// Response is the common API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{Code: code, Message: message})
}

// GetSources reports the ten upload slots.
func (h *Handlers) GetSources(c *gin.Context) {
	success(c, h.mem.Slots())
}

// UploadSource ingests one per-source file and reduces it to its daily
// table. A file whose anchor column is missing still loads, as an empty
// table: that source's KPIs degrade, nothing aborts.
func (h *Handlers) UploadSource(c *gin.Context) {
	src := reducer.Source(c.Param("source"))
	if !src.Valid() {
		errorResponse(c, 1001, fmt.Sprintf("fuente desconocida %q", c.Param("source")))
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1002, "debe adjuntar un archivo")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		errorResponse(c, 1003, "archivo demasiado grande, maximo 10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, 1004, "solo se aceptan archivos .csv y .xlsx")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1005, "no se pudo leer el archivo")
		return
	}

	raw, err := h.readRaw(src, ext, content)
	if err != nil {
		errorResponse(c, 1006, "archivo ilegible: "+err.Error())
		return
	}

	table, err := reducer.Reduce(src, raw)
	if err != nil {
		errorResponse(c, 1007, err.Error())
		return
	}

	h.mem.SetSource(src, header.Filename, table)
	success(c, gin.H{
		"source":   src,
		"fileName": header.Filename,
		"days":     table.Len(),
	})
}

func (h *Handlers) readRaw(src reducer.Source, ext string, content []byte) (*ingest.RawTable, error) {
	if ext == ".xlsx" || ext == ".xls" {
		return ingest.ReadExcel(bytes.NewReader(content))
	}
	// the audit export uses ';' with commas inside the scores
	if src == reducer.SourceAuditorias {
		return ingest.ReadCSVWithSeparator(bytes.NewReader(content), ';')
	}
	return ingest.ReadCSV(bytes.NewReader(content))
}

// DeleteSource empties one upload slot.
func (h *Handlers) DeleteSource(c *gin.Context) {
	src := reducer.Source(c.Param("source"))
	if !src.Valid() {
		errorResponse(c, 1001, fmt.Sprintf("fuente desconocida %q", c.Param("source")))
		return
	}
	h.mem.ClearSource(src)
	success(c, gin.H{"source": src, "cleared": true})
}

type consolidateRequest struct {
	DateFrom string `json:"dateFrom" binding:"required"`
	DateTo   string `json:"dateTo" binding:"required"`
}

// Consolidate runs the engine over the loaded sources for the requested
// range and returns the four output tables.
func (h *Handlers) Consolidate(c *gin.Context) {
	var req consolidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 2001, "parametros invalidos: se requieren dateFrom y dateTo")
		return
	}

	from, err := model.ParseFecha(req.DateFrom)
	if err != nil {
		errorResponse(c, 2002, "dateFrom invalida: "+req.DateFrom)
		return
	}
	to, err := model.ParseFecha(req.DateTo)
	if err != nil {
		errorResponse(c, 2002, "dateTo invalida: "+req.DateTo)
		return
	}

	result, err := consolidator.Consolidate(h.mem.Sources(), from, to)
	if err != nil {
		var cfgErr *consolidator.ConfigurationError
		if errors.As(err, &cfgErr) {
			errorResponse(c, 2003, cfgErr.Error())
			return
		}
		errorResponse(c, 2004, err.Error())
		return
	}

	runID := uuid.New().String()
	h.mem.SetResult(runID, result)

	if h.runs != nil {
		run := history.Run{
			ID:            runID,
			CreatedAt:     time.Now(),
			DateFrom:      from.String(),
			DateTo:        to.String(),
			Days:          len(result.Diario.Rows),
			SourcesLoaded: h.mem.LoadedCount(),
		}
		if err := h.runs.InsertRun(run); err != nil {
			// history is best-effort, the consolidation already succeeded
			log.Printf("aviso: no se pudo registrar la ejecucion: %v", err)
		}
	}

	success(c, gin.H{
		"runId":  runID,
		"result": result,
	})
}

// Export renders the last consolidation as a workbook and hands back a
// download token.
func (h *Handlers) Export(c *gin.Context) {
	result, runID, err := h.mem.Result()
	if err != nil {
		errorResponse(c, 3001, err.Error())
		return
	}

	f, err := h.export.Export(result)
	if err != nil {
		errorResponse(c, 3002, "generando excel: "+err.Error())
		return
	}

	shortID := runID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	fileName := fmt.Sprintf("%s_%s.xlsx", h.prefix, shortID)
	path := filepath.Join(h.dataDir, "exports", fileName)
	if err := f.SaveAs(path); err != nil {
		errorResponse(c, 3003, "guardando excel: "+err.Error())
		return
	}

	token := uuid.New().String()
	h.exportsMu.Lock()
	h.exports[token] = path
	h.exportsMu.Unlock()

	if h.runs != nil {
		if err := h.runs.SetExportFile(runID, fileName); err != nil {
			// non-fatal, the workbook is already on disk
			log.Printf("aviso: no se pudo actualizar la ejecucion %s: %v", runID, err)
		}
	}

	success(c, gin.H{
		"token":    token,
		"fileName": fileName,
	})
}

// DownloadExport streams a previously exported workbook.
func (h *Handlers) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	h.exportsMu.RLock()
	path, ok := h.exports[token]
	h.exportsMu.RUnlock()
	if !ok {
		errorResponse(c, 3004, "descarga no encontrada o expirada")
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// ListRuns returns the recent consolidation history.
func (h *Handlers) ListRuns(c *gin.Context) {
	if h.runs == nil {
		success(c, []history.Run{})
		return
	}
	runs, err := h.runs.ListRuns(20)
	if err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, runs)
}
