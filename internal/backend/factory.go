package backend

import (
	"context"
	"fmt"

	"mercado/internal/blob"
	"mercado/internal/blob/file"
	"mercado/internal/blob/memory"
	"mercado/internal/blob/sqlite"
	"mercado/internal/cache"
	applog "mercado/internal/log"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		store blob.Store
		err   error
	)
	switch config.Type {
	case MemoryBackend:
		store = memory.New()
		f.logger.Info("Initialized memory backend")
	case FileBackend:
		store, err = file.New(config.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		f.logger.Info("Initialized file backend", "data_directory", config.DataDirectory)
	case SQLiteBackend:
		store, err = sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	return f.withCache(store, config), nil
}

// withCache wraps store in the LRU read-through cache when enabled and builds
// the cleanup func that stops the eviction loop and releases the store.
func (f *DefaultFactory) withCache(store blob.Store, config Config) *BackendResult {
	if config.CacheSize <= 0 {
		return &BackendResult{Store: store, Cleanup: closeStore(store)}
	}

	lru := cache.NewLRUCache[[]byte](config.CacheSize, config.CacheTTL)
	manager := cache.NewManager()
	manager.Register(lru)
	manager.StartCleanup(config.CacheTTL)

	cached := blob.NewCached(store, lru)
	f.logger.Debug("Enabled store cache", "size", config.CacheSize, "ttl", config.CacheTTL)

	return &BackendResult{
		Store: cached,
		Cleanup: func() error {
			manager.Stop()
			return cached.Close()
		},
	}
}

func closeStore(store blob.Store) CleanupFunc {
	return func() error {
		if cl, ok := store.(blob.Closer); ok {
			return cl.Close()
		}
		return nil
	}
}
