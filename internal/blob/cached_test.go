package blob_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercado/internal/blob"
	"mercado/internal/blob/memory"
	"mercado/internal/cache"
)

type countingStore struct {
	*memory.Store
	gets    int
	failSet bool
}

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.gets++
	return s.Store.Get(ctx, key)
}

func (s *countingStore) SetMany(ctx context.Context, values map[string][]byte) error {
	if s.failSet {
		return errors.New("disk full")
	}
	return s.Store.SetMany(ctx, values)
}

func TestCachedServesRepeatReadsFromCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: memory.NewWithValues(map[string][]byte{"k": []byte("v")})}
	c := blob.NewCached(inner, cache.NewLRUCache[[]byte](10, time.Minute))

	for i := 0; i < 3; i++ {
		v, ok, err := c.Get(ctx, "k")
		if err != nil || !ok || string(v) != "v" {
			t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
		}
	}
	if inner.gets != 1 {
		t.Fatalf("underlying Get called %d times, want 1", inner.gets)
	}

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatalf("missing key reported present")
	}
}

func TestCachedWriteThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: memory.New()}
	c := blob.NewCached(inner, cache.NewLRUCache[[]byte](10, time.Minute))

	if err := c.SetMany(ctx, map[string][]byte{"a": []byte("1")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if v, _, _ := c.Get(ctx, "a"); string(v) != "1" || inner.gets != 0 {
		t.Fatalf("written value not cached: %q gets=%d", v, inner.gets)
	}

	inner.failSet = true
	if err := c.SetMany(ctx, map[string][]byte{"a": []byte("2")}); err == nil {
		t.Fatalf("expected write failure")
	}
	v, _, _ := c.Get(ctx, "a")
	if string(v) != "1" || inner.gets != 1 {
		t.Fatalf("failed write must invalidate cache and fall back to store: %q gets=%d", v, inner.gets)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("deleted key still served")
	}
}

func TestCachedInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: memory.New()}
	c := blob.NewCached(inner, cache.NewLRUCache[[]byte](10, time.Minute))

	if err := c.Set(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// another writer updates the store behind the cache
	if err := inner.Store.Set(ctx, "a", []byte("2")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _, _ := c.Get(ctx, "a"); string(v) != "1" {
		t.Fatalf("expected stale cached value, got %q", v)
	}

	var _ blob.Invalidator = c
	c.Invalidate()
	if v, _, _ := c.Get(ctx, "a"); string(v) != "2" {
		t.Fatalf("Get after Invalidate = %q, want 2", v)
	}
}
