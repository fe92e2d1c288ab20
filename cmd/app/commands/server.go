package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/graphql-secrets/internal/app"
	"github.com/allisson/graphql-secrets/internal/config"
)

// RunServer starts the GraphQL API server and, when enabled, the metrics
// server. It blocks until SIGINT/SIGTERM or until either server fails, then
// shuts both down within the configured timeout.
//
// A fresh process key is generated at startup; secrets sealed by a previous
// process cannot be read.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	container.Logger().Info("starting server", slog.String("version", version))

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, container, cfg.ShutdownTimeout)
}

// serve runs the container's servers until ctx is done or one of them fails.
// The container is shut down exactly once, on every return path.
func serve(ctx context.Context, container *app.Container, shutdownTimeout time.Duration) error {
	logger := container.Logger()

	// Building the server loads the dataset and generates the key.
	server, err := container.HTTPServer()
	if err != nil {
		closeContainer(container, logger)
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		closeContainer(container, logger)
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(gctx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown initiated")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return container.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
