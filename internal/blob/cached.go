package blob

import (
	"context"

	"mercado/internal/cache"
)

// Cached is a read-through, write-through cache in front of a Store.
// Successful writes refresh the cached copy; failed writes invalidate it so
// the next read goes back to the underlying store.
type Cached struct {
	next  Store
	cache cache.Cache[[]byte]
}

func NewCached(next Store, c cache.Cache[[]byte]) *Cached {
	return &Cached{next: next, cache: c}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := c.cache.Get(key); ok {
		return clone(v), true, nil
	}
	v, ok, err := c.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	c.cache.Set(key, clone(v))
	return v, true, nil
}

func (c *Cached) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.Set(key, clone(value))
	return nil
}

func (c *Cached) SetMany(ctx context.Context, values map[string][]byte) error {
	if err := c.next.SetMany(ctx, values); err != nil {
		for k := range values {
			c.cache.Delete(k)
		}
		return err
	}
	for k, v := range values {
		c.cache.Set(k, clone(v))
	}
	return nil
}

func (c *Cached) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Delete(k)
	}
	return c.next.Delete(ctx, keys...)
}

// Invalidate drops every cached value.
func (c *Cached) Invalidate() {
	c.cache.Purge()
}

// Close closes the underlying store when it holds a resource.
func (c *Cached) Close() error {
	c.cache.Purge()
	if cl, ok := c.next.(Closer); ok {
		return cl.Close()
	}
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
