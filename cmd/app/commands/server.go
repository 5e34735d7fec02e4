package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/wopihost/internal/app"
	"github.com/allisson/wopihost/internal/config"
)

// runnable is a server started and stopped by RunServer.
type runnable interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// worker is a background loop that runs until its context is cancelled.
type worker interface {
	Start(ctx context.Context) error
}

// RunServer starts the API server, the metrics server when enabled and the access token
// janitor. It blocks until SIGINT/SIGTERM or until one of them fails, then shuts everything
// down within SHUTDOWN_TIMEOUT.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []runnable{server}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	janitor, err := container.TokenJanitor()
	if err != nil {
		return fmt.Errorf("failed to initialize token janitor: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, logger, cfg.ShutdownTimeout, servers, []worker{janitor})
}

// serve runs servers and workers under one errgroup. The first failure, or cancellation of
// ctx, triggers a graceful shutdown of every server.
func serve(
	ctx context.Context,
	logger *slog.Logger,
	shutdownTimeout time.Duration,
	servers []runnable,
	workers []worker,
) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}

	for _, w := range workers {
		g.Go(func() error {
			if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Any("cause", context.Cause(gctx)))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var errs []error
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
