// Package server provides the HTTP server for the sensorsim service.
//
// The server simulates a flaky sensor and exposes metrics about itself, so
// that scrapers, dashboards and alerting rules have a realistic target.
//
// # Endpoints
//
//   - GET /sensor - Simulated sensor read (200 ok, 200 large payload, or 500 disconnected)
//   - GET /metrics - Prometheus exposition of the sensor metrics
//   - GET /health - Health check with build properties
//   - GET /config - Returns the effective configuration as YAML
//
// # Architecture
//
// A single metrics registry is created in New and shared by the sensor
// simulator and the metrics exporter. When a push URL is configured, a cron
// trigger periodically gathers the same registry and sends it to a
// Prometheus remote write endpoint.
//
// # Example
//
//	srv, err := server.New(config.Default())
//	if err != nil {
//	    return err
//	}
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nomis52/sensorsim/config"
	"github.com/nomis52/sensorsim/metrics"
	"github.com/nomis52/sensorsim/sensor"
	"github.com/nomis52/sensorsim/server/cron"
	"github.com/nomis52/sensorsim/server/handlers"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Server is the HTTP server for the sensorsim service.
type Server struct {
	config      *config.Config
	logger      *slog.Logger
	rand        sensor.RandomSource
	registry    *metrics.ScrapeRegistry
	simulator   *sensor.Simulator
	exporter    *sensor.Exporter
	pushTrigger *cron.CronTrigger
	httpServer  *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger. The default logs JSON to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithRandomSource replaces the random source used by the simulator and exporter.
func WithRandomSource(rand sensor.RandomSource) Option {
	return func(s *Server) error {
		s.rand = rand
		return nil
	}
}

// New creates a new Server from the given config. The metrics are registered
// here, exactly once; a registration failure aborts construction.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		config: cfg,
		logger: slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		rand:   sensor.NewRandomSource(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	var scrapeOpts []metrics.ScrapeOption
	if cfg.Metrics.RuntimeCollectors {
		scrapeOpts = append(scrapeOpts, metrics.WithRuntimeCollectors())
	}
	registry, err := metrics.NewScrapeRegistry(scrapeOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating metrics registry: %w", err)
	}
	s.registry = registry

	m, err := sensor.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("registering sensor metrics: %w", err)
	}
	s.simulator = sensor.NewSimulator(m, s.rand)
	s.exporter = sensor.NewExporter(m, registry.Handler(), s.rand)

	if cfg.Push.Enabled() {
		if err := s.configurePush(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Server) configurePush() error {
	instance := s.config.Push.Instance
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("getting hostname: %w", err)
		}
		instance = hostname
	}

	pusher := metrics.NewPusher(metrics.PushConfig{
		URL:      s.config.Push.URL,
		Prefix:   s.config.Push.Prefix,
		Job:      s.config.Push.Job,
		Instance: instance,
		Timeout:  s.config.Push.Timeout,
	}, s.registry.Gatherer())

	trigger, err := cron.NewCronTrigger(s.config.Push.Schedule, pusher, s.logger)
	if err != nil {
		return fmt.Errorf("creating push trigger: %w", err)
	}
	s.pushTrigger = trigger
	return nil
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Config returns the server configuration.
func (s *Server) Config() *config.Config {
	return s.config
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It performs a graceful shutdown when the context is done.
// If pushing is configured, the push trigger is started automatically.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.Listener.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	if s.pushTrigger != nil {
		s.logger.Info("starting push trigger",
			"url", s.config.Redacted().Push.URL,
			"next_run", s.pushTrigger.NextRun(),
		)
		s.pushTrigger.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.config.Listener.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.Handle("GET /sensor", handlers.NewSensorHandler(s.logger, s.simulator))
	mux.Handle("GET /metrics", s.exporter)
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("GET /config", handlers.NewConfigHandler(s))
}
