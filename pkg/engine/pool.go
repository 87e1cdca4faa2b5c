package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dxdlab/dxd/pkg/block"
	"github.com/dxdlab/dxd/pkg/count"
)

// smallFanoutThreshold is the block count below which decomposition fans
// out via golang.org/x/sync/errgroup; at or above it, the bounded
// jobs/results worker pool amortises goroutine setup cost better across
// many small components.
const smallFanoutThreshold = 4

// solveParallel fans a decomposition's sub-blocks out across goroutines and
// waits for all of them, choosing the fan-out strategy by block count.
func (e *Engine) solveParallel(ctx context.Context, subs []*block.Block, depth int) ([]count.Result, []int32, error) {
	if len(subs) >= smallFanoutThreshold {
		return e.runFanoutPool(ctx, subs, depth)
	}
	return e.runFanoutErrgroup(ctx, subs, depth)
}

// runFanoutErrgroup solves every sub-block concurrently under an errgroup,
// capped at Options.Threads concurrent goroutines when set. The first
// error cancels the group's context, and every sibling checks it on its
// next recursion entry.
func (e *Engine) runFanoutErrgroup(ctx context.Context, subs []*block.Block, depth int) ([]count.Result, []int32, error) {
	g, gctx := errgroup.WithContext(ctx)
	if e.opts.Threads > 0 {
		g.SetLimit(e.opts.Threads)
	}

	counts := make([]count.Result, len(subs))
	nodes := make([]int32, len(subs))
	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			child := e.forkForBlock(sub)
			c, node, err := child.Solve(gctx, sub, depth+1)
			if err != nil {
				return err
			}
			counts[i], nodes[i] = c, node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return counts, nodes, nil
}

type fanoutJob struct {
	index int
	block *block.Block
}

type fanoutResult struct {
	index int
	count count.Result
	node  int32
	err   error
}

// runFanoutPool solves sub-blocks on a fixed pool of worker goroutines
// pulling from a jobs channel and publishing to a results channel, in the
// shape of a bounded producer/consumer crawler: a fixed worker count,
// buffered channels sized to the job count, and a WaitGroup closing the
// results channel once every worker has drained its jobs.
func (e *Engine) runFanoutPool(ctx context.Context, subs []*block.Block, depth int) ([]count.Result, []int32, error) {
	workers := e.opts.Threads
	if workers <= 0 || workers > len(subs) {
		workers = len(subs)
	}

	fctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan fanoutJob, len(subs))
	results := make(chan fanoutResult, len(subs))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if fctx.Err() != nil {
					results <- fanoutResult{index: j.index, err: fctx.Err()}
					continue
				}
				child := e.forkForBlock(j.block)
				c, node, err := child.Solve(fctx, j.block, depth+1)
				results <- fanoutResult{index: j.index, count: c, node: node, err: err}
			}
		}()
	}

	for i, sub := range subs {
		jobs <- fanoutJob{index: i, block: sub}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	counts := make([]count.Result, len(subs))
	nodes := make([]int32, len(subs))
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		counts[r.index] = r.count
		nodes[r.index] = r.node
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return counts, nodes, nil
}
