// Package rowgraph tracks the connected components of the row-graph
// implicit in a dancing matrix: two rows are adjacent iff they share a
// currently-uncovered column. As the search engine covers and uncovers
// columns, edges vanish and reappear; a Detector answers "which currently
// active rows are reachable from which" so the engine can split a block
// into independent sub-blocks the moment its row-graph disconnects.
package rowgraph

// Edge is an unordered pair of row labels sharing a column.
type Edge struct{ U, V int32 }

// EdgesFromColumn returns every pairwise edge induced by rows sharing one
// column, i.e. C(len(rows), 2) edges.
func EdgesFromColumn(rows []int32) []Edge {
	if len(rows) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(rows)*(len(rows)-1)/2)
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			edges = append(edges, Edge{rows[i], rows[j]})
		}
	}
	return edges
}

// Detector maintains row-graph connectivity under edge deletion and
// insertion (insertion only ever undoes a prior deletion, mirroring
// Cover/Uncover) and reports the connected components restricted to a
// caller-supplied active row set.
type Detector interface {
	// Initialize resets the detector to the graph induced by rows and
	// edges, discarding any prior state.
	Initialize(rows []int32, edges []Edge)

	// DeleteEdges removes edges from the graph. Removing an edge that is
	// not present is a no-op.
	DeleteEdges(edges []Edge)

	// AddEdges reinserts edges into the graph, undoing prior DeleteEdges
	// calls. Callers must restore edges in the reverse order they were
	// deleted, mirroring the cover/uncover stack discipline.
	AddEdges(edges []Edge)

	// GetBlocks partitions rows (a subset of the rows passed to
	// Initialize) into its connected components under the current edge
	// set, each returned as a slice of row labels.
	GetBlocks(rows []int32) [][]int32
}
