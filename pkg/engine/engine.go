// Package engine implements the DXD search: it ties the dancing matrix,
// row-graph detector, DAG node table and column-state memo together into
// the recursive dxd(block, depth) procedure that returns an exact-cover
// count and, incidentally, the DAG rooted at that count.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dxdlab/dxd/pkg/block"
	"github.com/dxdlab/dxd/pkg/count"
	"github.com/dxdlab/dxd/pkg/dagnode"
	"github.com/dxdlab/dxd/pkg/matrix"
	"github.com/dxdlab/dxd/pkg/memo"
	"github.com/dxdlab/dxd/pkg/observability"
	"github.com/dxdlab/dxd/pkg/rowgraph"
	"github.com/dxdlab/dxd/pkg/stopwatch"
)

// Engine holds everything one solve (or one forked sub-solve) needs. The
// dag and memo tables are shared and lock-guarded internally; the matrix
// and detector are never shared across goroutines, so a fork clones them.
type Engine struct {
	m          *matrix.Matrix
	dag        *dagnode.Table
	memoTbl    *memo.Table
	detector   rowgraph.Detector
	sw         *stopwatch.Stopwatch
	opts       Options
	stats      *Stats
	nestedSync *syncGate
}

// syncGate is the run-wide latch behind Options.DisableNestedSync. It
// starts armed and trips at most once per Run, mirroring
// DancingMatrix::turnOffGraphSync in DXDSolver.cpp: the instant a parallel,
// ETT-backed decomposition first splits a block, every engine sharing the
// gate (the top-level one and every fork descended from it) stops handing
// out detectors to further forks for the rest of the run.
type syncGate struct {
	tripped atomic.Bool
}

func (g *syncGate) trip()           { g.tripped.Store(true) }
func (g *syncGate) isTripped() bool { return g.tripped.Load() }

// New builds the top-level engine for a solve run. det may be nil to run
// with decomposition permanently disabled.
func New(m *matrix.Matrix, det rowgraph.Detector, dag *dagnode.Table, memoTbl *memo.Table, sw *stopwatch.Stopwatch, opts Options) *Engine {
	return &Engine{
		m:          m,
		dag:        dag,
		memoTbl:    memoTbl,
		detector:   det,
		sw:         sw,
		opts:       opts.normalized(),
		stats:      &Stats{},
		nestedSync: &syncGate{},
	}
}

// NestedSyncDisabled reports whether the run-wide graph_sync latch has
// tripped, i.e. whether forks are still being handed their own detector.
func (e *Engine) NestedSyncDisabled() bool { return e.nestedSync.isTripped() }

// Stats returns the run's live counters (peak concurrent blocks, timeout
// flag), safe to read concurrently while a solve is in flight.
func (e *Engine) Stats() *Stats { return e.stats }

// DAG returns the shared node table Solve has been extending.
func (e *Engine) DAG() *dagnode.Table { return e.dag }

// InitializeDetector derives the row-graph adjacency implied by blk's rows
// and columns in m and initializes det with it. Callers use this once,
// before the first Solve call, to seed the top-level detector; Engine uses
// it again internally to seed a forked sub-engine's detector.
func InitializeDetector(m *matrix.Matrix, det rowgraph.Detector, blk *block.Block) {
	var edges []rowgraph.Edge
	for _, col := range blk.Cols() {
		edges = append(edges, rowgraph.EdgesFromColumn(m.RowsIn(col))...)
	}
	det.Initialize(blk.Rows(), edges)
}

// Run recovers a panic from a malformed cover/uncover pairing into an
// invariant-violation error, wraps it with pkg/errors, and otherwise
// delegates to Solve at depth 0. Every entry point that runs untrusted or
// externally-driven search state should call Run rather than Solve directly.
func (e *Engine) Run(ctx context.Context, blk *block.Block) (result count.Result, node int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, node, err = count.Zero, dagnode.False, invariantViolation(r)
		}
	}()
	return e.Solve(ctx, blk, 0)
}

// Solve returns the exact-cover count of the submatrix induced by blk's
// columns, extending the shared DAG as a side effect (unless
// Options.BuildDAG is false).
func (e *Engine) Solve(ctx context.Context, blk *block.Block, depth int) (count.Result, int32, error) {
	if err := ctx.Err(); err != nil {
		return count.Zero, dagnode.False, err
	}
	if err := e.sw.Check(); err != nil {
		e.stats.markTimedOut()
		observability.Solve().OnTimeout(ctx, e.sw.Elapsed())
		return count.Zero, dagnode.False, err
	}

	if blk.NumCols() == 0 {
		return count.One, dagnode.True, nil
	}

	state := memo.StateHash(blk.Cols())
	if entry, ok := e.memoTbl.Get(state); ok {
		return entry.Count, entry.Node, nil
	}
	if !e.opts.BuildDAG && e.opts.Remote != nil {
		if c, ok := e.opts.Remote.Lookup(ctx, state); ok {
			e.memoTbl.Put(state, memo.Entry{Count: c, Node: dagnode.False})
			return c, dagnode.False, nil
		}
	}

	e.stats.enterBlock()
	defer e.stats.exitBlock()
	observability.Solve().OnBlockStart(ctx, int64(depth), blk.NumRows(), blk.NumCols())
	start := time.Now()
	var blockErr error
	defer func() {
		observability.Solve().OnBlockComplete(ctx, int64(depth), time.Since(start), blockErr)
	}()

	if e.detector != nil && blk.NumRows() > e.opts.DecomposeThreshold {
		if blocks := e.detector.GetBlocks(blk.Rows()); len(blocks) >= 2 {
			total, node, err := e.solveDecomposed(ctx, blk, blocks, depth)
			if err != nil {
				blockErr = err
				return count.Zero, dagnode.False, err
			}
			e.memoize(ctx, state, total, node)
			return total, node, nil
		}
	}

	total, node, err := e.branch(ctx, blk, depth)
	if err != nil {
		blockErr = err
		return count.Zero, dagnode.False, err
	}
	e.memoize(ctx, state, total, node)
	return total, node, nil
}

func (e *Engine) memoize(ctx context.Context, state uint64, total count.Result, node int32) {
	e.memoTbl.Put(state, memo.Entry{Count: total, Node: node})
	if e.opts.Remote != nil {
		e.opts.Remote.Store(ctx, state, total)
	}
}

// selectColumn picks the branching column per the mode-dependent heuristic:
// the parallel path favours the smallest column to bound branching factor
// per worker, the serial path biases toward a productive middle size.
func (e *Engine) selectColumn(blk *block.Block) int32 {
	cols := blk.Cols()
	if e.opts.Parallel {
		return e.m.SelectMinSize(cols)
	}
	return e.m.SelectClosestToTarget(cols, e.opts.Target)
}

// branch covers the chosen column and recurses over each of its live rows
// in turn, building the interned decision chain that represents "select
// this row, or don't" for every row in the column.
func (e *Engine) branch(ctx context.Context, blk *block.Block, depth int) (count.Result, int32, error) {
	col := e.selectColumn(blk)
	if e.m.Size(col) == 0 {
		return count.Zero, dagnode.False, nil
	}

	cells := e.m.ColumnCells(col)
	colStack := &matrix.BlockCoverStack{}
	e.coverColumn(col, blk, colStack)
	defer e.uncoverColumn(blk, colStack)

	running := count.Zero
	node := dagnode.False

	for _, cellID := range cells {
		row := e.m.RowOf(cellID)
		stack := &matrix.BlockCoverStack{}
		otherCols := e.m.RowOtherCols(cellID)

		for _, j := range otherCols {
			e.coverColumn(j, blk, stack)
		}

		sub, subNode, err := e.Solve(ctx, blk, depth+1)

		for range otherCols {
			e.uncoverColumn(blk, stack)
		}

		if err != nil {
			return count.Zero, dagnode.False, err
		}

		running = running.Add(sub)
		if e.opts.BuildDAG {
			node = e.dag.Decision(row, node, subNode)
		}
	}

	return running, node, nil
}

// coverColumn covers col within blk's bookkeeping and, if a detector is
// active, deletes the edges that col's (pre-cover) row list induced.
func (e *Engine) coverColumn(col int32, blk *block.Block, stack *matrix.BlockCoverStack) {
	var edges []rowgraph.Edge
	if e.detector != nil {
		edges = rowgraph.EdgesFromColumn(e.m.RowsIn(col))
	}
	var deleted []int32
	e.m.CoverInBlock(col, blk, stack, &deleted)
	if e.detector != nil {
		e.detector.DeleteEdges(edges)
	}
}

// uncoverColumn reverses the most recent coverColumn call, restoring
// whichever edges the column's row list re-establishes.
func (e *Engine) uncoverColumn(blk *block.Block, stack *matrix.BlockCoverStack) {
	col := e.m.UncoverInBlock(blk, stack)
	if e.detector != nil {
		edges := rowgraph.EdgesFromColumn(e.m.RowsIn(col))
		e.detector.AddEdges(edges)
	}
}

// deriveSubBlock builds the (rows, cols) block for one decomposition
// component: cols is every column of a member row that is still uncovered
// in parent, i.e. still present in parent's own column set.
func (e *Engine) deriveSubBlock(parent *block.Block, rows []int32) *block.Block {
	seen := make(map[int32]struct{})
	cols := make([]int32, 0, len(rows))
	for _, r := range rows {
		for _, c := range e.m.RowCols(r) {
			if !parent.HasCol(c) {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}
	return block.New(rows, cols)
}

// solveDecomposed dispatches a >=2-way component split to the serial or
// parallel fan-out path and combines the results into one Decomposed node.
func (e *Engine) solveDecomposed(ctx context.Context, parent *block.Block, blocks [][]int32, depth int) (count.Result, int32, error) {
	subs := make([]*block.Block, len(blocks))
	for i, rows := range blocks {
		subs[i] = e.deriveSubBlock(parent, rows)
	}

	// Components share no uncovered column, so if their column sets together
	// fall short of parent's, some parent column has no live row left to
	// cover it and the block has no exact cover.
	covered := 0
	for _, sub := range subs {
		covered += sub.NumCols()
	}
	if covered < parent.NumCols() {
		return count.Zero, dagnode.False, nil
	}

	// The source only ever trips graph_sync off from its ETT-backed parallel
	// path (DXD(), gated on useETT && isParallelSearch); its union-find
	// fallback path (MDLX()) trips unconditionally on any split, but that
	// function is never reached once ETT is available. We follow the
	// ETT-gated path since this engine's own detector kind
	// (usesETTDetector) determines which one applies.
	if e.opts.DisableNestedSync && e.opts.Parallel && e.usesETTDetector() {
		e.nestedSync.trip()
	}

	var counts []count.Result
	var nodes []int32
	var err error
	if e.opts.Parallel {
		counts, nodes, err = e.solveParallel(ctx, subs, depth)
	} else {
		counts, nodes, err = e.solveSerial(ctx, subs, depth)
	}
	if err != nil {
		return count.Zero, dagnode.False, err
	}

	total := count.One
	for _, c := range counts {
		total = total.Mul(c)
	}
	var node int32 = dagnode.True
	if e.opts.BuildDAG {
		node = e.dag.Decomposed(nodes)
	}
	observability.Solve().OnDecompose(ctx, int64(depth), len(subs))
	return total, node, nil
}

// solveSerial solves each sub-block to completion in turn, safe to do
// without cloning the matrix or detector because each sibling's mutations
// are fully unwound before the next sibling starts.
func (e *Engine) solveSerial(ctx context.Context, subs []*block.Block, depth int) ([]count.Result, []int32, error) {
	counts := make([]count.Result, len(subs))
	nodes := make([]int32, len(subs))
	for i, sub := range subs {
		c, node, err := e.Solve(ctx, sub, depth+1)
		if err != nil {
			return nil, nil, err
		}
		counts[i], nodes[i] = c, node
	}
	return counts, nodes, nil
}

// usesETTDetector reports whether this engine's detector is the
// Euler-tour-tree kind, the only one the source's toggle condition names.
func (e *Engine) usesETTDetector() bool {
	_, ok := e.detector.(*rowgraph.ETTDetector)
	return ok
}

// forkForBlock builds an independent sub-engine over a cloned matrix for a
// parallel worker to solve one component of a decomposition. The clone
// shares the DAG and memo tables (both lock-guarded) and the run-wide
// nestedSync gate, but gets its own detector, seeded from just that
// component's edges, unless the gate has already tripped -- see
// syncGate's doc comment.
func (e *Engine) forkForBlock(sub *block.Block) *Engine {
	mClone := e.m.Clone()

	var det rowgraph.Detector
	if e.detector != nil && !e.nestedSync.isTripped() && e.opts.NewDetector != nil {
		det = e.opts.NewDetector()
		InitializeDetector(mClone, det, sub)
	}

	return &Engine{
		m:          mClone,
		dag:        e.dag,
		memoTbl:    e.memoTbl,
		detector:   det,
		sw:         e.sw,
		opts:       e.opts,
		stats:      e.stats,
		nestedSync: e.nestedSync,
	}
}
