// Package pkg has no code of its own; it is the parent of dxd's libraries.
//
// # Overview
//
// dxd counts the exact covers of a sparse 0/1 matrix using Algorithm X
// (Dancing Links), augmented with dynamic connected-component splitting of
// the row graph (Dancing-X-with-Decomposition). The packages below form a
// pipeline from raw input to a counted, optionally visualized, result:
//
//	input file (pkg/parse)
//	         ↓
//	    sparse matrix (pkg/matrix) + block (pkg/block)
//	         ↓
//	    row-graph detector (pkg/rowgraph, pkg/rowgraph/ett, pkg/rowgraph/layered)
//	         ↓
//	    search engine (pkg/engine), memoized by pkg/memo and pkg/dagnode
//	         ↓
//	    count (pkg/count) + compiled DAG (pkg/dagnode)
//	         ↓
//	    DOT/SVG/PNG export (pkg/render) or a persisted run summary (pkg/store)
//
// # Core packages
//
// [matrix] implements the toroidal doubly-linked cover/uncover structure.
// [block] tracks which rows and columns of the matrix are live within one
// recursive decomposition. [rowgraph] detects connected components of the
// row graph incrementally, backed by either an Euler-tour-tree
// implementation ([rowgraph/ett], [rowgraph/layered]) or a simpler
// rebuild-on-demand union-find. [dagnode] hash-conses the AND/OR DAG the
// search compiles. [engine] ties these together into the recursive search,
// fanning decompositions out across goroutines. [memo] and [count] handle
// state memoization and overflow-safe counting.
//
// # Supporting packages
//
// [parse] reads the three legacy benchmark input formats. [config] loads
// layered TOML configuration. [cache] and [store] back the optional Redis
// memo accelerator and MongoDB run history used by serve mode. [render]
// exports a compiled DAG to Graphviz. [errors], [observability] and
// [stopwatch] are the ambient error-taxonomy, instrumentation-hook and
// cooperative-timeout packages every other package depends on.
//
// [matrix]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/matrix
// [block]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/block
// [rowgraph]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/rowgraph
// [rowgraph/ett]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/rowgraph/ett
// [rowgraph/layered]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/rowgraph/layered
// [dagnode]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/dagnode
// [engine]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/engine
// [memo]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/memo
// [count]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/count
// [parse]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/parse
// [config]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/config
// [cache]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/cache
// [store]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/store
// [render]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/render
// [errors]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/errors
// [observability]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/observability
// [stopwatch]: https://pkg.go.dev/github.com/dxdlab/dxd/pkg/stopwatch
package pkg
