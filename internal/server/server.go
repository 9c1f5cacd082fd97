// Package server exposes the assessment collection over HTTP: a public
// submission and insights surface plus a token-gated administrative surface
// for the full collection, exports, and store maintenance.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/utechsu/councilpulse/internal/assessment/store"
	"github.com/utechsu/councilpulse/internal/platform/timeouts"
)

// Config carries the HTTP process settings.
type Config struct {
	HTTPAddr      string `env:"COUNCILPULSE_HTTP_ADDR" envDefault:":8080"`
	AdminPassword string `env:"COUNCILPULSE_ADMIN_PASSWORD"`
	JWTSecret     string `env:"COUNCILPULSE_JWT_SECRET"`
}

// Server hosts the assessment HTTP API over a persistence facade.
type Server struct {
	cfg        Config
	store      *store.Store
	httpServer *http.Server
}

// New wires the router and returns a server ready to listen. The admin
// surface requires both a password and a signing secret; without them the
// admin routes stay registered but every login attempt fails.
func New(cfg Config, st *store.Store) (*Server, error) {
	if st == nil {
		return nil, errors.New("server requires a store")
	}
	if cfg.AdminPassword != "" && cfg.JWTSecret == "" {
		return nil, errors.New("admin password set without a jwt secret")
	}

	s := &Server{cfg: cfg, store: st}
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(recovery)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/responses", s.handleSubmit)
		r.Get("/insights", s.handleInsights)
		r.Get("/healthz", s.handleHealthz)
		r.Post("/admin/login", s.handleAdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/responses", s.handleListResponses)
			r.Post("/responses/refresh", s.handleRefresh)
			r.Post("/responses/sync", s.handleSync)
			r.Delete("/responses", s.handleClear)
			r.Get("/export/csv", s.handleExportCSV)
			r.Get("/export/json", s.handleExportJSON)
			r.Post("/import", s.handleImport)
		})
	})

	return r
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until the context ends, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("assessment api listening on %s", s.cfg.HTTPAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
