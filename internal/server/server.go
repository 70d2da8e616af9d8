// Package server exposes the Prometheus metrics endpoint over HTTP. The
// server is optional: it only starts when a listen address is configured,
// and it shuts down cleanly when the analysis context is canceled.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/logreen/gridsum/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// MetricsServer serves /metrics from a dedicated Prometheus gatherer.
type MetricsServer struct {
	addr    string
	handler http.Handler
	logger  logging.Logger
}

// New creates a MetricsServer exposing the given gatherer at addr.
func New(addr string, gatherer prometheus.Gatherer, logger logging.Logger) *MetricsServer {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &MetricsServer{
		addr:    addr,
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		logger:  logger,
	}
}

// handleMetrics serves the Prometheus exposition. Only GET is allowed.
func (s *MetricsServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Warn("rejected metrics request",
			logging.String("method", r.Method),
			logging.String("remote", r.RemoteAddr))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.handler.ServeHTTP(w, r)
}

// Run serves until ctx is canceled, then shuts down gracefully. It returns
// nil on clean shutdown and the listen error otherwise.
func (s *MetricsServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleMetrics)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("metrics server shutdown", logging.Err(err))
		}
		return nil
	})

	return g.Wait()
}
