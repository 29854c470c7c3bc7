// Package server exposes the analysis engine over HTTP and, optionally, NATS
// request/reply. The HTTP surface is a thin shell: every endpoint decodes a
// request, calls the engine or catalog store, and encodes the result. All
// state lives in the engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/c360studio/readyspec/analysis"
)

// shutdownTimeout bounds how long in-flight requests may run after the serve
// context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server hosts the HTTP API and metrics endpoint.
type Server struct {
	engine  *analysis.Engine
	metrics *Metrics
	logger  *slog.Logger

	addr   string
	prefix string
}

// New creates a server for the given engine. A nil logger uses slog.Default;
// prefix is the API path segment (e.g. "api/v1").
func New(engine *analysis.Engine, addr, prefix string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:  engine,
		metrics: NewMetrics(),
		logger:  logger,
		addr:    addr,
		prefix:  prefix,
	}
}

// Metrics returns the server's metric set, for sharing with a NATS responder.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	s.RegisterHTTPHandlers(s.prefix, mux)
	mux.Handle("/metrics", s.metrics.Handler())

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", slog.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
