// Package server exposes the funding dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/session"
)

// DefaultMaxSessions caps live sessions when Config.MaxSessions is unset.
// Each session holds its own copy of the dataset.
const DefaultMaxSessions = 64

// Config controls the server runtime behavior.
type Config struct {
	Addr          string
	DataFile      string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	MaxSessions   int
	Horizon       int
	Logger        *slog.Logger

	// Loader overrides pipeline.Load. Tests use it to count loads.
	Loader session.LoaderFunc
}

// Service owns the session cache and the HTTP API.
type Service struct {
	cfg       Config
	log       *slog.Logger
	sessions  *session.Cache
	validate  *validator.Validate
	metrics   *metrics
	startedAt time.Time
}

// New returns a service with the provided config, filling in defaults.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8501"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = forecast.DefaultHorizon
	}
	cfg.Horizon = min(cfg.Horizon, forecast.MaxHorizon)
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Service{
		cfg:       cfg,
		log:       cfg.Logger.With("component", "server"),
		validate:  newValidator(),
		startedAt: time.Now(),
	}
	s.sessions = session.NewCache(s.countingLoader(cfg.Loader), cfg.DataFile, cfg.SessionTTL)
	s.sessions.SetLimit(cfg.MaxSessions)
	s.metrics = newMetrics(s.sessions)
	return s
}

// Handler builds the chi router.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/session", s.handleSession)
		r.Delete("/session", s.handleEndSession)
		r.Get("/options", s.handleOptions)
		r.Get("/records", s.handleRecords)
		r.Get("/summary", s.handleSummary)
		r.Get("/charts/{kind}", s.handleChart)
		r.Get("/forecast", s.handleForecast)
	})
	return r
}

// Run serves HTTP and sweeps idle sessions until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", "addr", s.cfg.Addr, "data_file", s.cfg.DataFile)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.sweep()
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	}
}

func (s *Service) sweep() {
	if n := s.sessions.Sweep(); n > 0 {
		s.metrics.evicted.Add(float64(n))
		s.log.Debug("swept idle sessions", "removed", n, "live", s.sessions.Len())
	}
}
