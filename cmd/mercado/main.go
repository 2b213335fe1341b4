package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mercado/internal/cli"
	applog "mercado/internal/log"
	"mercado/internal/storage"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), applog.ComponentCLI)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Failed to close store", applog.FieldError, err)
		}
	}()

	pub := cli.InitAMQP(logger, cfg)
	if pub != nil {
		defer pub.Close()
	}

	repo := storage.NewRepository(res.Store, cfg.StorageKeyPrefix, logger)
	planner := cli.NewPlanner(logger, cfg, repo, pub)
	if err := planner.Load(ctx); err != nil {
		logger.Error("Failed to load state", applog.FieldError, err)
		return 1
	}

	a := &app{planner: planner, out: os.Stdout}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			if err != errUsage {
				fmt.Fprintln(os.Stderr, err)
			}
			printUsage(os.Stderr)
			return 2
		}
		fmt.Fprintln(os.Stderr, "mercado:", err)
		return 1
	}
	return 0
}
