package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/edgesentry/edgesentry/pkg/config"
	"github.com/edgesentry/edgesentry/pkg/sandbox"
	"github.com/edgesentry/edgesentry/pkg/telemetry/metrics"
)

// Server owns the HTTP listener for the edge policy service. It wires
// the registry and coordinator into handlers and wraps every route with
// the request-ID, logging, and recovery middleware chain.
type Server struct {
	config      config.ServerConfig
	httpServer  *http.Server
	logger      *slog.Logger
	shutdownMu  sync.Once
	shutdownErr error
}

// NewServer builds the route table and underlying http.Server. The
// collector may be nil, in which case evaluation and reload outcomes are
// simply not recorded.
func NewServer(cfg config.ServerConfig, registry *sandbox.Registry, coordinator *sandbox.Coordinator, collector *metrics.Collector, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/evaluate", evaluateHandler(registry, collector, logger))
	mux.HandleFunc("/reload", reloadHandler(coordinator, collector))
	mux.HandleFunc("/metrics", metricsHandler)
	if collector != nil {
		mux.Handle("/metrics/prom", collector.Handler())
	}

	var handler http.Handler = mux
	handler = recoveryMiddleware(logger, handler)
	handler = loggingMiddleware(logger, handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.ListenAddress,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Run starts the listener and blocks until ctx is cancelled or SIGINT/
// SIGTERM is received, then shuts down gracefully within
// config.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case <-sigChan:
		s.logger.Info("received shutdown signal")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown stops accepting new connections and waits for in-flight
// requests to finish, up to config.ShutdownTimeout. Safe to call more
// than once; only the first call's result is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownMu.Do(func() {
		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		s.shutdownErr = s.httpServer.Shutdown(shutdownCtx)
	})
	return s.shutdownErr
}
