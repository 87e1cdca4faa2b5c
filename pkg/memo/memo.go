// Package memo implements the column-state memoisation table the search
// engine consults at every recursion entry, keyed on a hash of the block's
// uncovered column set. This is distinct from the DAG node table's own
// per-node memoisation (pkg/dagnode): this table remembers, for a given
// state, both the count and the interned DAG node id already built for it,
// so a repeated subproblem skips both the search and the DAG extension.
package memo

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/dxdlab/dxd/pkg/count"
)

// StateHash returns the memoisation key for a block's column set. Two
// subproblems with identical active-column sets are assumed to have
// identical counts regardless of row order, so the hash is computed over
// the sorted columns.
func StateHash(cols []int32) uint64 {
	sorted := append([]int32(nil), cols...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := fnv.New64a()
	var buf [4]byte
	for _, c := range sorted {
		binary.LittleEndian.PutUint32(buf[:], uint32(c))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Entry pairs a memoised count with the DAG node id built for it.
type Entry struct {
	Count count.Result
	Node  int32
}

// Table is the in-process state -> Entry memo. Lookups take a read lock,
// inserts a write lock; per the locking discipline, no lock is ever held
// across a recursive call.
type Table struct {
	mu      sync.RWMutex
	entries map[uint64]Entry
}

// New returns an empty memo table.
func New() *Table {
	return &Table{entries: make(map[uint64]Entry)}
}

// Get looks up the memoised entry for state.
func (t *Table) Get(state uint64) (Entry, bool) {
	t.mu.RLock()
	e, ok := t.entries[state]
	t.mu.RUnlock()
	return e, ok
}

// Put records the entry for state. Racing writers computing the same state
// independently is expected (see the engine's decomposition fan-out); both
// arrive at the same count and node, so whichever write wins is correct.
func (t *Table) Put(state uint64, e Entry) {
	t.mu.Lock()
	t.entries[state] = e
	t.mu.Unlock()
}

// Len returns the number of memoised states, mainly for diagnostics.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
