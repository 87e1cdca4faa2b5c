package engine

import (
	"github.com/dxdlab/dxd/pkg/memo"
	"github.com/dxdlab/dxd/pkg/rowgraph"
)

// Options tunes a single solve run.
type Options struct {
	// Parallel enables the worker-pool/errgroup fan-out over decomposed
	// blocks; when false every recursion runs serially on the caller's
	// goroutine.
	Parallel bool
	// Threads bounds concurrent block solves. Zero means unbounded (limited
	// only by the number of sibling blocks).
	Threads int
	// DecomposeThreshold is the minimum row count a block must exceed
	// before the detector is even consulted for a split.
	DecomposeThreshold int
	// Target biases SelectClosestToTarget's column choice in serial mode.
	Target int32
	// BuildDAG controls whether the search materialises Decision/Decomposed
	// DAG nodes. When false, node ids returned by Solve are meaningless
	// (only the terminals dagnode.True or dagnode.False, never a built
	// Decision or Decomposed node) and a Remote accelerator may short-circuit a
	// state entirely on a cache hit, since no node needs reconstructing.
	// When true, DAG node identity is process-local by construction, so
	// Remote lookups are skipped and only Store publishes counts upstream.
	BuildDAG bool
	// DisableNestedSync arms the run-wide graph_sync latch (see
	// engine.syncGate and DESIGN.md): when true, the first time a
	// parallel, ETT-detector decomposition actually splits a block, every
	// fork for the rest of the run stops building its own detector, so no
	// further decomposition is attempted below that point. This mirrors
	// DancingMatrix::turnOffGraphSync, which the source trips the same
	// way and never re-arms. Set false to keep every fork decomposing as
	// deep as the row-graph allows, at the cost of maintaining a detector
	// per fork for the whole run.
	DisableNestedSync bool
	// Remote is an optional distributed accelerator consulted (BuildDAG
	// false only) before falling back to local search, and always used to
	// publish freshly computed counts for other replicas.
	Remote *memo.RemoteAccelerator
	// NewDetector constructs a fresh Detector of the configured kind for a
	// forked sub-engine. Required when Parallel is true and decomposition
	// is enabled; ignored otherwise.
	NewDetector func() rowgraph.Detector
}

// DefaultOptions returns the engine's default tuning: decomposition once a
// block exceeds 2 rows, single-threaded, DAG construction on (matching
// "dxd graph" and "dxd solve" both wanting a countable, exportable result
// unless the caller explicitly turns BuildDAG off for a bare count).
func DefaultOptions() Options {
	return Options{DecomposeThreshold: 2, Target: 5, BuildDAG: true, DisableNestedSync: true}
}

func (o Options) normalized() Options {
	if o.DecomposeThreshold <= 0 {
		o.DecomposeThreshold = 2
	}
	if o.Target <= 0 {
		o.Target = 5
	}
	return o
}
