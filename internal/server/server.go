// Package server serves the interactive dashboard and a JSON API over a
// loaded dataset.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KaramelBytes/happiness-cli/internal/chart"
	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	applog "github.com/KaramelBytes/happiness-cli/internal/log"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
)

// Config holds server settings.
type Config struct {
	Addr      string
	TopN      int
	Bins      int
	ChartSize chart.Size
	Logger    *applog.Logger
}

// Server is the dashboard HTTP server. The table is shared read-only by all
// requests.
type Server struct {
	table   *dataset.Table
	cfg     Config
	logger  *applog.Logger
	router  *chi.Mux
	started time.Time
}

// New builds a server over a loaded table.
func New(t *dataset.Table, cfg Config) *Server {
	if cfg.TopN <= 0 {
		cfg.TopN = metrics.DefaultTopN
	}
	if cfg.Bins <= 0 {
		cfg.Bins = metrics.DefaultBins
	}
	if cfg.ChartSize.Width <= 0 || cfg.ChartSize.Height <= 0 {
		cfg.ChartSize = chart.SizeInches(0, 0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	s := &Server{
		table:   t,
		cfg:     cfg,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		router:  chi.NewRouter(),
		started: time.Now(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(s.requestID)
	s.router.Use(s.accessLog)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/years", s.handleYears)
		r.Get("/regions", s.handleRegions)
		r.Get("/countries", s.handleCountries)
		r.Get("/countries/{name}", s.handleCountry)
		r.Get("/factors", s.handleFactors)
		r.Get("/profile", s.handleProfile)
		r.Get("/overview", s.handleOverview)
		r.Get("/drivers", s.handleDrivers)
	})

	s.router.Get("/charts/{name}.png", s.handleChart)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
