package cache

// ScopedKeyer wraps a Keyer with a prefix, so a shared Redis instance can
// serve multiple solver deployments (or a multi-tenant API) without key
// collisions between them.
//
// Example usage:
//
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix prepended to every generated
// key. A nil inner falls back to NewDefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) MemoKey(scope string, stateHash uint64) string {
	return k.prefix + k.inner.MemoKey(scope, stateHash)
}

func (k *ScopedKeyer) RunKey(runID string) string {
	return k.prefix + k.inner.RunKey(runID)
}
