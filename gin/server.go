// Package gin provides the web upload interface: archive upload,
// result display, and CSV/JSON export download.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peekay/feedex"
)

// DefaultMaxUploadSize caps uploads at 50MB; activity exports are
// typically a few megabytes.
const DefaultMaxUploadSize = 50 << 20

// Config holds server settings, loaded once at startup and immutable
// afterwards.
type Config struct {
	Addr          string
	UploadDir     string
	MaxUploadSize int64
	Debug         bool
}

// SetDefaults fills unset fields with defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = DefaultMaxUploadSize
	}
}

// Server serves the upload interface. Each request runs an independent
// pipeline pass; the only shared state is the result store.
type Server struct {
	config   Config
	pipeline *feedex.Pipeline
	results  feedex.ResultService
	logger   *slog.Logger

	router *gin.Engine
	server *http.Server
}

// NewServer creates a new Server.
func NewServer(cfg Config, pipeline *feedex.Pipeline, results feedex.ResultService, logger *slog.Logger) *Server {
	cfg.SetDefaults()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:   cfg,
		pipeline: pipeline,
		results:  results,
		logger:   logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.MaxMultipartMemory = 8 << 20

	router.SetHTMLTemplate(pageTemplates())

	router.GET("/", s.handleIndex)
	router.POST("/upload", s.handleUpload)
	router.GET("/results/:id", s.handleResults)
	router.POST("/api/process", s.handleAPIProcess)
	router.GET("/export/:id/csv", s.handleExportCSV)
	router.GET("/export/:id/json", s.handleExportJSON)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router = router
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}
	return s
}

// Router returns the underlying Gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens and serves until Shutdown is called. Returns nil on
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting web interface", "addr", s.config.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// requestLogger logs one line per request on the shared logger.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// statusFromError maps application error codes onto HTTP status codes.
func statusFromError(err error) int {
	switch feedex.ErrorCode(err) {
	case feedex.EINVALID:
		return http.StatusBadRequest
	case feedex.ENOTFOUND:
		return http.StatusNotFound
	case feedex.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
