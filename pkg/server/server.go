// Package server exposes the tag cloud pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                 liveness and build info
//	POST /v1/clouds               arrange a cloud, store it, return it
//	GET  /v1/clouds/{id}          stored layout as JSON
//	GET  /v1/clouds/{id}.{format} stored layout re-rendered (svg, png, pdf, ...)
//
// POST bodies are [pipeline.Options] in JSON plus an optional "format". With
// no format (or "json") the response is {"id": ..., "layout": ...}; any other
// format returns the rendered artifact with the cloud ID in the X-Cloud-ID
// header.
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}}. Input
// errors map to 400, unknown clouds to 404, clouds that cannot be arranged to
// 422 and everything else to 500.
//
// [pipeline.Options]: github.com/matzehuels/tagcloud/pkg/pipeline.Options
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/store"
)

// Defaults for Config.
const (
	DefaultMaxBodyBytes   = 8 << 20
	DefaultRequestTimeout = 60 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner         *pipeline.Runner
	Store          store.Store
	Logger         *log.Logger
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// New builds a server. A nil Runner, Store or Logger is replaced by an
// uncached runner, a MemoryStore and the default logger.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/clouds", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{ref}", s.handleGet)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
