package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-report/internal/adapter/http"
	"github.com/couchcryptid/quake-report/internal/config"
	"github.com/couchcryptid/quake-report/internal/observability"
	"github.com/couchcryptid/quake-report/internal/render"
	"github.com/couchcryptid/quake-report/internal/report"
	"github.com/couchcryptid/quake-report/internal/store/sqlite"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One read-only handle for the process lifetime, shared by every request.
	store, err := sqlite.Open(ctx, cfg.DBPath, cfg.DBMaxOpenConns, logger, metrics)
	if err != nil {
		logger.Error("failed to open event store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	renderer, err := render.Load(os.DirFS(cfg.TemplateDir))
	if err != nil {
		logger.Error("failed to load templates", "dir", cfg.TemplateDir, "error", err)
		store.Close()
		os.Exit(1)
	}
	for _, name := range []string{report.TemplateIndex, report.TemplateLocation, report.TemplateMagnitude, report.TemplateDepth} {
		if !renderer.Has(name) {
			logger.Warn("template missing, route will fail", "template", name, "dir", cfg.TemplateDir)
		}
	}

	svc := report.NewService(store, renderer, logger)

	var opts []httpadapter.Option
	if cfg.PublicDir != "" {
		opts = append(opts, httpadapter.WithPublicDir(cfg.PublicDir))
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, store, metrics, logger, opts...)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("event store close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// newLogger builds the service logger and installs it as the slog default,
// so package-level slog calls honour LOG_LEVEL and LOG_FORMAT too.
func newLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}
