package main

import (
	"context"
	"errors"
	"os"
	"time"

	"mercado/internal/amqp"
	"mercado/internal/cli"
	applog "mercado/internal/log"
	"mercado/internal/sheets"
	gsheet "mercado/internal/sheets/google"
	"mercado/internal/sheets/memory"
	"mercado/internal/storage"
	"mercado/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), applog.ComponentWorker)
	logger.Info("Starting mercado-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	// The CLI writes the same store from another process, so every event
	// must read through to it.
	cfg.CacheSize = 0

	res := cli.InitBackend(context.Background(), logger, cfg)
	repo := storage.NewRepository(res.Store, cfg.StorageKeyPrefix, logger)

	var exporter sheets.SummaryExporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		exporter = memory.New()
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, exporting in memory")
	}

	var consumer *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		consumer, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
	} else {
		logger.Info("AMQP disabled - relying on periodic export only")
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logger.Warn("Failed to close AMQP client", applog.FieldError, err)
			}
		}
		if err := res.Cleanup(); err != nil {
			logger.Warn("Failed to close store", applog.FieldError, err)
		}
	})

	exportWorker := worker.NewExportWorker(repo, exporter)

	logger.Info("Performing startup export")
	if err := exportWorker.ExportAll(ctx); err != nil {
		logger.Error("Startup export failed", applog.FieldError, err)
	}

	if consumer != nil {
		go func() {
			err := consumer.ConsumeListChanged(ctx, exportWorker.HandleListChanged)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", applog.FieldError, err)
			}
		}()
	}

	go func() {
		if err := exportWorker.Run(ctx, cfg.ExportInterval); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Periodic export stopped", applog.FieldError, err)
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
