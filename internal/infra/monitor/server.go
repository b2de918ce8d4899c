// Package monitor serves the reader's Prometheus metrics and health probes.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether one dependency is usable.
type ReadinessCheck struct {
	Name  string
	Ready func() bool
}

// Server provides the monitoring endpoints:
//   - GET /metrics: Prometheus exposition
//   - GET /health: Liveness probe (always 200 OK)
//   - GET /health/ready: Readiness probe (200 when every check passes, 503 otherwise)
//
// Example usage:
//
//	srv := monitor.NewServer(":9090", logger, monitor.ReadinessCheck{
//	    Name:  "news-api",
//	    Ready: client.Available,
//	})
//	g.Go(func() error { return srv.Start(ctx) })
type Server struct {
	addr   string
	logger *slog.Logger
	checks []ReadinessCheck
}

type healthResponse struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks,omitempty"`
}

// NewServer creates a monitoring server. It does not listen until Start.
func NewServer(addr string, logger *slog.Logger, checks ...ReadinessCheck) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{addr: addr, logger: logger, checks: checks}
}

// Handler returns the routing of the monitoring endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.handleLiveness)
	mux.HandleFunc("/health/ready", s.handleReadiness)
	return mux
}

// Start serves until ctx is cancelled, then shuts down within 5 seconds.
// A graceful shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("monitor server starting", slog.String("addr", s.addr))
		errChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("monitor server shutdown failed", slog.Any("error", err))
			return err
		}
		s.logger.Info("monitor server stopped")
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("monitor server failed", slog.Any("error", err))
		return err
	}
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok", Checks: make(map[string]bool, len(s.checks))}
	code := http.StatusOK
	for _, c := range s.checks {
		ready := c.Ready()
		resp.Checks[c.Name] = ready
		if !ready {
			resp.Status = "not ready"
			code = http.StatusServiceUnavailable
		}
	}
	s.write(w, code, resp)
}

func (s *Server) write(w http.ResponseWriter, code int, body healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
