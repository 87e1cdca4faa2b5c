// Package ett implements a splay-tree Euler Tour Tree over a dynamic
// forest, supporting link, cut, connectivity and stable component
// identification in O(log n) amortised time per operation.
//
// Each tree edge contributes two occurrence nodes (an entry marker and an
// exit marker) to its endpoints' combined Euler tour; each vertex owns
// exactly one occurrence node for its whole lifetime. Rerooting a tour to
// make a given occurrence its first element is a split followed by a
// remerge, which keeps every operation within the splay tree's native
// split/merge vocabulary without a separate lazy-reversal tag.
package ett

// node is one occurrence in a tour's splay tree. vertex is the vertex this
// occurrence represents, or -1 if the occurrence is an edge marker.
type node struct {
	parent, left, right int32
	vertex              int32
	size                int32 // subtree occurrence count
	vcount              int32 // subtree count of vertex-owning occurrences
}

const nilRef int32 = -1

type tree struct {
	nodes []node
}

func newTreeArena(capHint int) *tree {
	return &tree{nodes: make([]node, 0, capHint)}
}

func (t *tree) alloc(vertex int32) int32 {
	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{parent: nilRef, left: nilRef, right: nilRef, vertex: vertex, size: 1, vcount: boolToI32(vertex >= 0)})
	return id
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (t *tree) size(x int32) int32 {
	if x == nilRef {
		return 0
	}
	return t.nodes[x].size
}

func (t *tree) vcount(x int32) int32 {
	if x == nilRef {
		return 0
	}
	return t.nodes[x].vcount
}

func (t *tree) update(x int32) {
	n := &t.nodes[x]
	n.size = 1 + t.size(n.left) + t.size(n.right)
	n.vcount = boolToI32(n.vertex >= 0) + t.vcount(n.left) + t.vcount(n.right)
}

func (t *tree) rotate(x int32) {
	p := t.nodes[x].parent
	g := t.nodes[p].parent
	if t.nodes[p].left == x {
		t.nodes[p].left = t.nodes[x].right
		if t.nodes[x].right != nilRef {
			t.nodes[t.nodes[x].right].parent = p
		}
		t.nodes[x].right = p
	} else {
		t.nodes[p].right = t.nodes[x].left
		if t.nodes[x].left != nilRef {
			t.nodes[t.nodes[x].left].parent = p
		}
		t.nodes[x].left = p
	}
	t.nodes[p].parent = x
	t.nodes[x].parent = g
	if g != nilRef {
		if t.nodes[g].left == p {
			t.nodes[g].left = x
		} else {
			t.nodes[g].right = x
		}
	}
	t.update(p)
	t.update(x)
}

// splay rotates x to the root of its splay tree.
func (t *tree) splay(x int32) {
	for {
		p := t.nodes[x].parent
		if p == nilRef {
			return
		}
		g := t.nodes[p].parent
		if g == nilRef {
			t.rotate(x)
			return
		}
		if (t.nodes[g].left == p) == (t.nodes[p].left == x) {
			t.rotate(p)
		} else {
			t.rotate(x)
		}
		t.rotate(x)
	}
}

// findRoot walks parent pointers to the top of x's splay tree without
// splaying; the result identifies which tour (and hence which forest
// component) x currently belongs to.
func (t *tree) findRoot(x int32) int32 {
	for t.nodes[x].parent != nilRef {
		x = t.nodes[x].parent
	}
	return x
}

// splitBefore splays x to the root and detaches its left subtree, so
// (before, atAndAfter) partitions the in-order sequence at x: everything
// strictly before x, and x together with everything after it.
func (t *tree) splitBefore(x int32) (before, atAndAfter int32) {
	t.splay(x)
	before = t.nodes[x].left
	if before != nilRef {
		t.nodes[before].parent = nilRef
	}
	t.nodes[x].left = nilRef
	t.update(x)
	return before, x
}

// merge concatenates a (in order) followed by b, returning the new root.
func (t *tree) merge(a, b int32) int32 {
	if a == nilRef {
		return b
	}
	if b == nilRef {
		return a
	}
	r := a
	for t.nodes[r].right != nilRef {
		r = t.nodes[r].right
	}
	t.splay(r)
	t.nodes[r].right = b
	t.nodes[b].parent = r
	t.update(r)
	return r
}

// reroot cyclically rotates x's tour so x becomes its first occurrence,
// leaving x splayed to the root.
func (t *tree) reroot(x int32) {
	t.splay(x)
	before := t.nodes[x].left
	if before != nilRef {
		t.nodes[before].parent = nilRef
	}
	t.nodes[x].left = nilRef
	t.update(x)
	t.merge(x, before)
	t.splay(x)
}
