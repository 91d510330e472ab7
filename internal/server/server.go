package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ricardourrutia-support/clairportchile/internal/config"
	"github.com/ricardourrutia-support/clairportchile/internal/history"
	"github.com/ricardourrutia-support/clairportchile/internal/server/handlers"
	"github.com/ricardourrutia-support/clairportchile/internal/service/store"
)

// Server is the HTTP surface of the consolidation tool.
type Server struct {
	router   *gin.Engine
	history  *history.Store
	handlers *handlers.Handlers
}

// NewServer builds the router, the session store and the sqlite history.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	hist, err := history.New(filepath.Join(dataDir, "clairport.db"))
	if err != nil {
		// the tool is usable without history, only the runs list is lost
		log.Printf("aviso: historial deshabilitado: %v", err)
		hist = nil
	}

	s := &Server{
		router:   gin.Default(),
		history:  hist,
		handlers: handlers.NewHandlers(store.NewMemoryStore(), hist, dataDir, cfg.Export.FilePrefix),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "clairport-consolidador",
			"status":  "ok",
		})
	})
}

// Run starts the server on addr, blocking until it stops.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close releases the history database.
func (s *Server) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}
