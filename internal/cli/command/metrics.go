package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/csrftok/internal/infra/shutdown"
	"github.com/yndnr/csrftok/internal/telemetry/logger"
	"github.com/yndnr/csrftok/internal/telemetry/metric"
)

// serveMetrics exposes reg on GET /metrics at addr until h shuts down and
// returns the address actually bound.
func serveMetrics(addr string, reg *metric.Registry, h *shutdown.Handler, log logger.Logger) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen metrics %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", reg.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "addr", ln.Addr().String(), "error", err)
		}
	}()
	h.OnShutdown(func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	})

	log.Info("serving metrics", "addr", ln.Addr().String())
	return ln.Addr().String(), nil
}
