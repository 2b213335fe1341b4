package cli

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"mercado/internal/blob/memory"
	"mercado/internal/config"
	applog "mercado/internal/log"
	"mercado/internal/services"
	"mercado/internal/storage"
)

type failingStore struct {
	*memory.Store
}

func (f failingStore) SetMany(context.Context, map[string][]byte) error {
	return errors.New("disk full")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := SetupLogger("debug", applog.ComponentCLI)
	if logger.Component() != applog.ComponentCLI {
		t.Fatalf("component = %q", logger.Component())
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("debug level not enabled")
	}
}

func TestInitAMQPDisabledWithoutURL(t *testing.T) {
	if c := InitAMQP(applog.Discard(), &config.Config{}); c != nil {
		t.Fatalf("expected nil client without AMQP_URL")
	}
}

func TestInitBackendMemory(t *testing.T) {
	cfg := &config.Config{DataBackend: "memory"}
	res := InitBackend(context.Background(), applog.Discard(), cfg)
	if res.Store == nil {
		t.Fatalf("nil store")
	}
	if err := res.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
}

func TestNewPlannerAppliesConfig(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{SeedOnLoad: true}
	repo := storage.NewRepository(memory.New(), storage.DefaultPrefix, applog.Discard())
	p := NewPlanner(applog.Discard(), cfg, repo, nil)
	if err := p.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Lists()) != 1 || len(p.Categories()) == 0 {
		t.Fatalf("seed on load not applied: %d lists", len(p.Lists()))
	}

	cfg = &config.Config{RollbackOnPersistFailure: true}
	repo = storage.NewRepository(failingStore{memory.New()}, storage.DefaultPrefix, applog.Discard())
	p = NewPlanner(applog.Discard(), cfg, repo, nil)
	if err := p.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := p.CreateList(ctx, "Weekly", 0); !errors.Is(err, services.ErrPersist) {
		t.Fatalf("CreateList error = %v, want ErrPersist", err)
	}
	if len(p.Lists()) != 0 {
		t.Fatalf("rollback not applied, %d lists", len(p.Lists()))
	}
}
