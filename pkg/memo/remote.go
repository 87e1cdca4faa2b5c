package memo

import (
	"context"

	"github.com/dxdlab/dxd/pkg/cache"
	"github.com/dxdlab/dxd/pkg/count"
	"github.com/dxdlab/dxd/pkg/observability"
)

// RemoteAccelerator checks a distributed cache.Cache for a state's count
// before falling back to the caller's own search, letting multiple serve
// replicas behind a load balancer share memoised counts for repeated
// sub-instances of the same large matrix. It never carries DAG node
// identities across the wire: those are process-local arena indices with no
// meaning outside the Table that allocated them.
type RemoteAccelerator struct {
	backend cache.Cache
	keyer   cache.Keyer
	scope   string
}

// NewRemoteAccelerator wraps backend for the given scope, typically an
// input descriptor or hash identifying which matrix the memoised counts
// belong to, so unrelated matrices with coincidentally equal state hashes
// never collide.
func NewRemoteAccelerator(backend cache.Cache, keyer cache.Keyer, scope string) *RemoteAccelerator {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &RemoteAccelerator{backend: backend, keyer: keyer, scope: scope}
}

// Lookup consults the remote backend for state, decoding the stored count
// on a hit. A remote error is treated as a miss; the search proceeds
// on-process rather than fail the run over an optional accelerator.
func (r *RemoteAccelerator) Lookup(ctx context.Context, state uint64) (count.Result, bool) {
	if r == nil || r.backend == nil {
		return count.Result{}, false
	}
	data, ok, err := r.backend.Get(ctx, r.keyer.MemoKey(r.scope, state))
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "memo")
		return count.Result{}, false
	}
	var result count.Result
	if err := result.UnmarshalBinary(data); err != nil {
		observability.Cache().OnCacheMiss(ctx, "memo")
		return count.Result{}, false
	}
	observability.Cache().OnCacheHit(ctx, "memo")
	return result, true
}

// Store publishes state's count to the remote backend. Failures are
// swallowed for the same reason Lookup treats errors as misses: the
// accelerator is strictly optional.
func (r *RemoteAccelerator) Store(ctx context.Context, state uint64, result count.Result) {
	if r == nil || r.backend == nil {
		return
	}
	data, err := result.MarshalBinary()
	if err != nil {
		return
	}
	if err := r.backend.Set(ctx, r.keyer.MemoKey(r.scope, state), data, 0); err == nil {
		observability.Cache().OnCacheSet(ctx, "memo", len(data))
	}
}
