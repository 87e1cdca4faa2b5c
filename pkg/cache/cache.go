// Package cache provides the byte-oriented cache abstraction the solver
// uses to memoise column-state counts across runs, plus the pluggable
// backends (in-process no-op, on-disk, Redis) that implement it.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key, if present. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources (connections, file handles) held by the cache.
	Close() error
}

// Keyer builds cache keys for the two things the solver ever caches: a
// column-state count (scoped to a run configuration, since the same state
// hash under a different --decompose or --algorithm setting is not
// comparable) and a run record lookup.
type Keyer interface {
	MemoKey(scope string, stateHash uint64) string
	RunKey(runID string) string
}

// DefaultKeyer builds keys as "prefix:scope:hash" / "run:id" with no
// namespacing; wrap it in a ScopedKeyer for multi-tenant isolation.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the zero-value DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) MemoKey(scope string, stateHash uint64) string {
	return hashKey("memo:"+scope, stateHash)
}

func (DefaultKeyer) RunKey(runID string) string {
	return "run:" + runID
}
