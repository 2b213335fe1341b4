package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"mercado/internal/cli"
	apphttp "mercado/internal/http"
	applog "mercado/internal/log"
	"mercado/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), applog.ComponentApp)
	logger.Info("Starting mercado-server")

	cfg := cli.LoadAndValidateConfig(logger)
	res := cli.InitBackend(context.Background(), logger, cfg)
	publisher := cli.InitAMQP(logger, cfg)

	repo := storage.NewRepository(res.Store, cfg.StorageKeyPrefix, logger)
	planner := cli.NewPlanner(logger, cfg, repo, publisher)
	if err := planner.Load(context.Background()); err != nil {
		logger.Error("Failed to load planner state", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, planner, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logger.Warn("Failed to close AMQP client", applog.FieldError, err)
			}
		}
		if err := res.Cleanup(); err != nil {
			logger.Warn("Failed to close store", applog.FieldError, err)
		}
	})

	logger.Info("Listening", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
