package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get for an absent key. Callers must be able to
// tell a miss from a backend failure: the session tracker treats a miss as
// "never submitted" but has to fail closed on a real error, or a Redis blip
// would let a submitted session re-enter the pipeline.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheProvider defines the interface for ephemeral key-value storage. The
// session tracker is built on top of it; nothing correctness-critical about
// the queue itself is ever cached.
type CacheProvider interface {
	// Get retrieves a value. A missing key yields ErrCacheMiss; any other
	// error is a backend failure.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetIfAbsent stores a value only when the key does not exist and
	// reports whether the write happened. Used as the in-flight submission
	// lock, so the check and the write must be atomic.
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
