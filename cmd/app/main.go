package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vendorbot/cmd"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("vendorbot stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// stdout stays free for protocol use; all logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(configs.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close storage", "error", closeErr)
		}
	}()

	if configs.SeedMenu {
		if err = app.SeedMenu(ctx); err != nil {
			return err
		}
	}

	router, err := app.CreateHTTPRouter(ctx)
	if err != nil {
		return err
	}
	mcpServer, err := app.CreateMCPServer()
	if err != nil {
		return err
	}
	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}

	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Dispatcher().Run(gctx)
	})
	g.Go(func() error {
		return startWebServer(gctx, router, configs.HTTPPort, logger)
	})
	g.Go(func() error {
		return mcpServer.Serve(gctx, fmt.Sprintf("0.0.0.0:%s", configs.MCPPort))
	})

	logger.InfoContext(ctx, "vendorbot started", "http_port", configs.HTTPPort, "mcp_port", configs.MCPPort)
	return g.Wait()
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server listening", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
