package rowgraph

import (
	"math/bits"

	"github.com/dxdlab/dxd/pkg/rowgraph/ett"
	"github.com/dxdlab/dxd/pkg/rowgraph/layered"
)

// ETTDetector is the Euler-Tour-Tree-backed Detector: it maintains a
// spanning forest of the row-graph plus a layered index of the remaining
// non-tree edges, so a deleted tree edge triggers a replacement-edge search
// over O(log n) levels rather than a full component rebuild.
type ETTDetector struct {
	refcount map[Edge]int
	forest   *ett.Forest
	tree     map[Edge]struct{}
	idx      *layered.Index
}

// NewETTDetector returns a detector with no rows or edges.
func NewETTDetector() *ETTDetector {
	return &ETTDetector{refcount: make(map[Edge]int), tree: make(map[Edge]struct{})}
}

func maxLevelFor(numVertices int) int {
	if numVertices <= 1 {
		return 0
	}
	return bits.Len(uint(numVertices - 1))
}

func (d *ETTDetector) Initialize(rows []int32, edges []Edge) {
	d.forest = ett.NewForest(rows)
	d.idx = layered.New(maxLevelFor(len(rows)))
	d.tree = make(map[Edge]struct{})
	d.refcount = make(map[Edge]int, len(edges))

	for _, e := range edges {
		d.refcount[normalizeEdge(e)]++
	}
	for e := range d.refcount {
		d.insertStructural(e.U, e.V)
	}
}

// insertStructural adds (u,v) to either the spanning forest or the
// non-tree index at its top level, assuming the edge is not already
// represented in either.
func (d *ETTDetector) insertStructural(u, v int32) {
	if d.forest.Link(u, v) {
		d.tree[Edge{u, v}] = struct{}{}
		return
	}
	d.idx.AddEdge(u, v)
	for l := 0; l < d.idx.MaxLevel(); l++ {
		d.idx.PromoteEdge(u, v)
	}
}

func (d *ETTDetector) removeStructural(u, v int32) {
	e := Edge{u, v}
	if _, isTree := d.tree[e]; isTree {
		delete(d.tree, e)
		d.forest.Cut(u, v)
		if repl, ok := d.findReplacement(u, v); ok {
			d.idx.RemoveEdge(repl.A, repl.B)
			d.forest.Link(repl.A, repl.B)
			d.tree[Edge{repl.A, repl.B}] = struct{}{}
		}
		return
	}
	d.idx.RemoveEdge(u, v)
}

// findReplacement scans non-tree edges from the top level down, looking for
// one edge with exactly one endpoint still connected to u after the cut.
// Edges examined and rejected at a level are demoted, so future searches
// see them at their true level sooner.
func (d *ETTDetector) findReplacement(u, v int32) (layered.EdgeKey, bool) {
	for level := d.idx.MaxLevel(); level >= 0; level-- {
		for _, cand := range d.idx.GetEdgesAtLevel(level) {
			connA := d.forest.Connected(cand.A, u)
			connB := d.forest.Connected(cand.B, u)
			if connA != connB {
				return cand, true
			}
			d.idx.DemoteEdge(cand.A, cand.B)
		}
	}
	return layered.EdgeKey{}, false
}

func (d *ETTDetector) DeleteEdges(edges []Edge) {
	for _, e := range edges {
		key := normalizeEdge(e)
		if d.refcount[key] <= 1 {
			delete(d.refcount, key)
			d.removeStructural(key.U, key.V)
			continue
		}
		d.refcount[key]--
	}
}

func (d *ETTDetector) AddEdges(edges []Edge) {
	for _, e := range edges {
		key := normalizeEdge(e)
		d.refcount[key]++
		if d.refcount[key] == 1 {
			d.insertStructural(key.U, key.V)
		}
	}
}

func (d *ETTDetector) GetBlocks(rows []int32) [][]int32 {
	groups := make(map[int32][]int32, len(rows))
	for _, r := range rows {
		id := d.forest.ComponentID(r)
		groups[id] = append(groups[id], r)
	}
	out := make([][]int32, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}
