// Package server exposes ledgers over HTTP so several machines can share
// one.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngthgila/Taxi/internal/ledger"
	"github.com/ngthgila/Taxi/internal/record"
)

// ListResponse is the body of GET /api/ledgers/:ledger/records.
type ListResponse struct {
	Records  []record.Record `json:"records"`
	Revision uint64          `json:"revision"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server serves a record.Store.
type Server struct {
	store     record.Store
	log       *slog.Logger
	accessLog io.Writer

	mu        sync.Mutex
	revisions map[string]uint64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithAccessLog sets where request lines are written; nil disables them.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// New creates a server over store.
func New(store record.Store, opts ...Option) *Server {
	s := &Server{
		store:     store,
		log:       slog.Default(),
		accessLog: gin.DefaultWriter,
		revisions: map[string]uint64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	if s.accessLog != nil {
		r.Use(gin.LoggerWithWriter(s.accessLog))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/ledgers/:ledger")
	api.Use(s.requireLedger)
	{
		api.GET("/records", s.listRecords)
		api.POST("/records", s.saveRecord)
		api.GET("/records/:id", s.getRecord)
		api.DELETE("/records/:id", s.deleteRecord)
	}
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("sync server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("sync server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Revision returns the change counter of a ledger. It starts at zero when
// the server starts and grows with every successful write.
func (s *Server) Revision(ledgerID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revisions[ledgerID]
}

func (s *Server) bump(ledgerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revisions[ledgerID]++
}

const ledgerKey = "ledgerID"

func (s *Server) requireLedger(c *gin.Context) {
	id := ledger.Normalize(c.Param("ledger"))
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ledger"})
		return
	}
	c.Set(ledgerKey, id)
	c.Next()
}

func (s *Server) listRecords(c *gin.Context) {
	id := c.GetString(ledgerKey)
	records, err := s.store.List(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if records == nil {
		records = []record.Record{}
	}
	record.SortByDateDesc(records)
	c.JSON(http.StatusOK, ListResponse{Records: records, Revision: s.Revision(id)})
}

func (s *Server) getRecord(c *gin.Context) {
	r, err := s.store.Get(c.Request.Context(), c.GetString(ledgerKey), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) saveRecord(c *gin.Context) {
	var in record.Record
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid record: " + err.Error()})
		return
	}

	id := c.GetString(ledgerKey)
	saved, err := s.store.Save(c.Request.Context(), id, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.bump(id)
	s.log.Debug("record saved", "ledger", id, "id", saved.ID, "date", saved.Date)

	status := http.StatusOK
	if in.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

func (s *Server) deleteRecord(c *gin.Context) {
	id := c.GetString(ledgerKey)
	if err := s.store.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.bump(id)
	s.log.Debug("record deleted", "ledger", id, "id", c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, err error) {
	var verr *record.ValidationError
	switch {
	case errors.Is(err, record.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		s.log.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
