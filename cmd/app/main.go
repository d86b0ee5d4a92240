package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelmybox/cmd"
	httpin "parcelmybox/internal/adapters/in/http"
	"parcelmybox/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := cmd.NewLogger(configs, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDatabase(ctx, configs, logger)

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)

	jobManager.StopAll()
	if err = app.Close(); err != nil {
		logger.Error("Failed to close connections", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Stopped")
}

func mustOpenDatabase(ctx context.Context, configs cmd.Config, logger *slog.Logger) *gorm.DB {
	gormDB, err := postgres.Open(configs.DSN())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	applied, err := postgres.Migrate(ctx, gormDB)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	for _, m := range applied {
		logger.InfoContext(ctx, "Applied migration", "version", m.Version, "source", m.Source)
	}
	return gormDB
}

// startWebServer serves until ctx is cancelled, then drains in-flight requests.
func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := httpin.NewRouter(app.CreateServer(), logger)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		logger.Info("HTTP server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
