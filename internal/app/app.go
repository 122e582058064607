// Package app is the shared service template. Issuance and verification are
// structurally identical services with different single operations, so the
// router assembly, middleware chain, and server lifecycle live here once;
// each entrypoint supplies only its own business route registration.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"credforge/internal/platform/config"
	"credforge/internal/platform/health"
	"credforge/pkg/platform/middleware/request"
)

// App owns one service instance's HTTP surface and lifecycle.
type App struct {
	cfg    config.Service
	logger *slog.Logger
	srv    *http.Server
}

// New assembles the router: shared middleware, health and metrics endpoints,
// then the service-specific routes via register.
func New(cfg config.Service, logger *slog.Logger, healthHandler *health.Handler, reqMetrics *request.Metrics, register func(chi.Router)) *App {
	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.BodyLimit(cfg.MaxBodyBytes))
	r.Use(request.ContentTypeJSON)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(reqMetrics))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	register(r)

	return &App{
		cfg:    cfg,
		logger: logger,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout. In-flight requests are allowed to finish.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting http server", "addr", a.cfg.Addr)
		if err := a.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
