package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/atelier"
	"github.com/aretw0/atelier/internal/config"
	httpadapter "github.com/aretw0/atelier/pkg/adapters/http"
	"github.com/aretw0/atelier/pkg/observability"
	"github.com/aretw0/atelier/pkg/session"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// App is the wired design server: studio, document backend, session
// manager and HTTP handler.
type App struct {
	Config   config.Config
	Studio   *atelier.Studio
	Backend  *Backend
	Sessions *session.Manager
	Registry *prometheus.Registry
	Handler  http.Handler

	logger *slog.Logger
}

// NewApp wires the components described by cfg and seeds the configured documents.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	studio, err := atelier.New(
		atelier.WithMetrics(metrics),
		atelier.WithLogger(logger),
		atelier.WithNamespace(cfg.Namespace),
		atelier.WithAuditLog(cfg.AuditLog),
	)
	if err != nil {
		return nil, err
	}

	backend, err := OpenBackend(cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{session.WithLogger(logger)}
	if cfg.Store.LockTTL > 0 {
		opts = append(opts, session.WithLockTTL(cfg.Store.LockTTL))
	}
	if backend.Locker != nil {
		opts = append(opts, session.WithLocker(backend.Locker))
	}
	sessions := session.NewManager(backend.Store, studio, opts...)

	ids, err := Seed(ctx, backend.Store, studio.Validate, cfg.Documents...)
	if err != nil {
		return nil, errors.Join(err, backend.Close())
	}
	if len(ids) > 0 {
		logger.Info("Seeded documents", "ids", ids)
	}

	return &App{
		Config:   cfg,
		Studio:   studio,
		Backend:  backend,
		Sessions: sessions,
		Registry: reg,
		Handler: httpadapter.NewHandler(sessions,
			httpadapter.WithMetrics(reg),
			httpadapter.WithLogger(logger),
			httpadapter.WithVersion(atelier.Version),
		),
		logger: logger,
	}, nil
}

// Serve listens on the configured address until ctx is done, then shuts the
// server down and closes every open document.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Listen,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting atelier server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return errors.Join(fmt.Errorf("server error: %w", err), a.Close(context.Background()))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
		errs = append(errs, srv.Close())
	}
	errs = append(errs, a.Close(shutdownCtx))
	a.logger.Info("Atelier server stopped")
	return errors.Join(errs...)
}

// Close disposes the open documents and releases the backend.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Sessions.Shutdown(ctx), a.Backend.Close())
}
