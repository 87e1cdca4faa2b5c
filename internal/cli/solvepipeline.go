package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dxdlab/dxd/pkg/block"
	"github.com/dxdlab/dxd/pkg/config"
	"github.com/dxdlab/dxd/pkg/count"
	"github.com/dxdlab/dxd/pkg/dagnode"
	"github.com/dxdlab/dxd/pkg/engine"
	"github.com/dxdlab/dxd/pkg/matrix"
	"github.com/dxdlab/dxd/pkg/memo"
	"github.com/dxdlab/dxd/pkg/parse"
	"github.com/dxdlab/dxd/pkg/rowgraph"
	"github.com/dxdlab/dxd/pkg/stopwatch"
)

// solveRequest carries the parameters shared by the solve and graph
// commands: an input file, its legacy format, and the engine tuning knobs
// a caller has layered from config defaults and CLI flags.
type solveRequest struct {
	InputPath          string
	Format             parse.Format
	Detector           string
	Threads            int
	TimeBudget         time.Duration
	Decompose          bool
	DecomposeThreshold int
	Target             int32
	BuildDAG           bool
	Cfg                config.Config
}

// solveOutcome is everything a caller needs to report a completed run.
type solveOutcome struct {
	Rows       int
	Cols       int
	Count      count.Result
	Node       int32
	DAG        *dagnode.Table
	Elapsed    time.Duration
	PeakBlocks int64
	TimedOut   bool
}

func newDetector(kind string) rowgraph.Detector {
	if kind == config.DetectorUnionFind {
		return rowgraph.NewUnionFindDetector()
	}
	return rowgraph.NewETTDetector()
}

// runSolve loads the input file, builds the matrix, detector, DAG and memo
// tables, and runs the engine to completion (or timeout).
func runSolve(ctx context.Context, req solveRequest) (*solveOutcome, error) {
	f, err := os.Open(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", req.InputPath, err)
	}
	defer f.Close()

	m, err := parseInput(req.Format, f)
	if err != nil {
		return nil, err
	}

	allRows := make([]int32, m.NumRows)
	for i := range allRows {
		allRows[i] = int32(i)
	}
	allCols := make([]int32, m.NumCols)
	for i := range allCols {
		allCols[i] = int32(i)
	}
	blk := block.New(allRows, allCols)

	threshold := req.DecomposeThreshold
	if !req.Decompose {
		threshold = m.NumRows + 1 // never decompose
	}

	var det rowgraph.Detector
	if req.Decompose {
		det = newDetector(req.Detector)
		engine.InitializeDetector(m, det, blk)
	}

	opts := engine.DefaultOptions()
	opts.Threads = req.Threads
	opts.Parallel = req.Threads != 1
	opts.DecomposeThreshold = threshold
	opts.BuildDAG = req.BuildDAG
	if req.Target > 0 {
		opts.Target = req.Target
	}
	if opts.Parallel {
		opts.NewDetector = func() rowgraph.Detector { return newDetector(req.Detector) }
	}

	budget := req.TimeBudget
	if budget <= 0 {
		budget = time.Duration(req.Cfg.TimeBudget)
	}

	dag := dagnode.New()
	memoTbl := memo.New()
	sw := stopwatch.New(budget)

	e := engine.New(m, det, dag, memoTbl, sw, opts)

	start := time.Now()
	result, node, err := e.Run(ctx, blk)
	elapsed := time.Since(start)
	if err != nil && !e.Stats().TimedOut() {
		return nil, err
	}

	return &solveOutcome{
		Rows:       m.NumRows,
		Cols:       m.NumCols,
		Count:      result,
		Node:       node,
		DAG:        dag,
		Elapsed:    elapsed,
		PeakBlocks: e.Stats().PeakBlocks(),
		TimedOut:   e.Stats().TimedOut(),
	}, nil
}

func parseInput(format parse.Format, r io.Reader) (*matrix.Matrix, error) {
	return parse.Parse(format, r)
}

func defaultThreads(cfg config.Config) int {
	if cfg.DefaultThreads > 0 {
		return cfg.DefaultThreads
	}
	return runtime.GOMAXPROCS(0)
}
