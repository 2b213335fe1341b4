// Package blob defines the key/value persistence port the planner stores its
// collections in, together with a read-through cache wrapper.
//
// Each key maps to one serialized collection. Implementations live in the
// subpackages (memory, file, sqlite).
package blob

import "context"

// Store is the storage collaborator. Values are opaque bytes; a missing key
// is reported with ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes several keys. Implementations that can make the write
	// atomic do so.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Closer is implemented by stores holding an external resource.
type Closer interface {
	Close() error
}

// Invalidator is implemented by stores that keep a local copy of values,
// which must be dropped when another process may have written the store.
type Invalidator interface {
	Invalidate()
}
