// Package dagnode implements the hash-consed AND/OR DAG the search engine
// compiles a matrix into: two Terminal singletons, Decision nodes branching
// on whether a row is selected, and Decomposed nodes multiplying together
// the independent counts of a row-graph split. Nodes are addressed by
// int32 arena index, never by pointer, so a compiled DAG is a handful of
// slices that can be walked, counted, or exported to Graphviz without
// touching the garbage collector.
package dagnode

import "sync"

// Kind discriminates the three node shapes a Table can hold.
type Kind int8

const (
	KindTerminal Kind = iota
	KindDecision
	KindDecomposed
)

// False and True are the two permanent terminal ids, always present at
// index 0 and 1 of every Table.
const (
	False int32 = 0
	True  int32 = 1
)

type decisionKey struct {
	row    int32
	lo, hi int32
}

// Table is a hash-consing arena of DAG nodes. The zero value is not usable;
// call New.
type Table struct {
	mu sync.RWMutex

	kind []Kind
	// Decision fields, valid when kind[id] == KindDecision.
	row    []int32
	lo, hi []int32
	// Decomposed fields, valid when kind[id] == KindDecomposed.
	children [][]int32

	decisionIndex map[decisionKey]int32
}

// New returns a Table pre-populated with the False and True terminals.
func New() *Table {
	t := &Table{
		kind:          make([]Kind, 2, 64),
		row:           make([]int32, 2, 64),
		lo:            make([]int32, 2, 64),
		hi:            make([]int32, 2, 64),
		children:      make([][]int32, 2, 64),
		decisionIndex: make(map[decisionKey]int32),
	}
	t.kind[False], t.kind[True] = KindTerminal, KindTerminal
	return t
}

// Terminal returns the terminal id for a boolean value.
func Terminal(v bool) int32 {
	if v {
		return True
	}
	return False
}

// Kind returns id's node shape.
func (t *Table) Kind(id int32) Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.kind[id]
}

// IsTerminal reports whether id names one of the two terminals.
func (t *Table) IsTerminal(id int32) bool { return id == False || id == True }

// Row returns the branching row label of a Decision node.
func (t *Table) Row(id int32) int32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.row[id]
}

// Branches returns the (lo, hi) children of a Decision node: lo is reached
// by leaving the row out of the exact cover, hi by selecting it.
func (t *Table) Branches(id int32) (lo, hi int32) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lo[id], t.hi[id]
}

// Children returns the independent factors of a Decomposed node.
func (t *Table) Children(id int32) []int32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]int32(nil), t.children[id]...)
}

// NumNodes returns the number of distinct nodes ever allocated, including
// the two terminals.
func (t *Table) NumNodes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.kind)
}

func (t *Table) alloc(k Kind) int32 {
	id := int32(len(t.kind))
	t.kind = append(t.kind, k)
	t.row = append(t.row, 0)
	t.lo = append(t.lo, 0)
	t.hi = append(t.hi, 0)
	t.children = append(t.children, nil)
	return id
}

// Decision returns the (interned) node for branching on row: hi if row is
// selected, lo otherwise. Selecting a row that can never lead to a solution
// is equivalent to never selecting it, so hi == False collapses the node to
// lo without allocating anything.
func (t *Table) Decision(row int32, lo, hi int32) int32 {
	if hi == False {
		return lo
	}
	key := decisionKey{row: row, lo: lo, hi: hi}

	t.mu.RLock()
	if id, ok := t.decisionIndex[key]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.decisionIndex[key]; ok { // re-check under write lock
		return id
	}
	id := t.alloc(KindDecision)
	t.row[id] = row
	t.lo[id] = lo
	t.hi[id] = hi
	t.decisionIndex[key] = id
	return id
}

// Decomposed builds the node representing the product of independent
// factors. Factors equal to True (the empty count) drop out since they
// contribute nothing to the product; any factor equal to False collapses
// the whole node to False, since one component with zero completions means
// the combined block has zero completions. A single surviving factor is
// returned directly rather than wrapped. Decomposed nodes are never
// interned: the same child set rarely recurs, since it is tied to a
// specific block split.
func (t *Table) Decomposed(factors []int32) int32 {
	kept := make([]int32, 0, len(factors))
	for _, f := range factors {
		if f == False {
			return False
		}
		if f == True {
			continue
		}
		kept = append(kept, f)
	}
	switch len(kept) {
	case 0:
		return True
	case 1:
		return kept[0]
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.alloc(KindDecomposed)
	t.children[id] = kept
	return id
}
