// Package layered implements the Holm-Lichtenberg-Thorup layered index of
// non-tree edges used by decremental connectivity: every edge is assigned a
// level in [0, maxLevel], DemoteEdge and PromoteEdge move an edge one level
// down or up, and a
// replacement-edge search after a cut scans levels top-down so the total
// work amortises to O(log^2 n) per deletion.
package layered

// EdgeKey identifies an edge by its unordered endpoint pair.
type EdgeKey struct{ A, B int32 }

func normalize(u, v int32) EdgeKey {
	if u <= v {
		return EdgeKey{u, v}
	}
	return EdgeKey{v, u}
}

// Index tracks, for every known edge, the level it currently occupies, plus
// a per-level per-vertex incidence index so a replacement search can
// enumerate "edges incident to v at level l" without a full scan.
type Index struct {
	maxLevel int
	levelOf  map[EdgeKey]int
	incident []map[int32]map[EdgeKey]struct{} // [level][vertex] -> edges
}

// New builds an empty index with levels 0..maxLevel inclusive.
func New(maxLevel int) *Index {
	if maxLevel < 0 {
		maxLevel = 0
	}
	inc := make([]map[int32]map[EdgeKey]struct{}, maxLevel+1)
	for l := range inc {
		inc[l] = make(map[int32]map[EdgeKey]struct{})
	}
	return &Index{maxLevel: maxLevel, levelOf: make(map[EdgeKey]int), incident: inc}
}

// MaxLevel returns the highest level this index will assign edges to.
func (idx *Index) MaxLevel() int { return idx.maxLevel }

func (idx *Index) linkIncidence(level int, u, v int32, e EdgeKey) {
	for _, vertex := range [2]int32{u, v} {
		m := idx.incident[level][vertex]
		if m == nil {
			m = make(map[EdgeKey]struct{})
			idx.incident[level][vertex] = m
		}
		m[e] = struct{}{}
	}
}

func (idx *Index) unlinkIncidence(level int, u, v int32, e EdgeKey) {
	for _, vertex := range [2]int32{u, v} {
		if m := idx.incident[level][vertex]; m != nil {
			delete(m, e)
			if len(m) == 0 {
				delete(idx.incident[level], vertex)
			}
		}
	}
}

// AddEdge inserts a new edge at level 0. A no-op if the edge is already
// present.
func (idx *Index) AddEdge(u, v int32) {
	e := normalize(u, v)
	if _, ok := idx.levelOf[e]; ok {
		return
	}
	idx.levelOf[e] = 0
	idx.linkIncidence(0, u, v, e)
}

// RemoveEdge deletes an edge entirely, regardless of its current level.
func (idx *Index) RemoveEdge(u, v int32) {
	e := normalize(u, v)
	level, ok := idx.levelOf[e]
	if !ok {
		return
	}
	idx.unlinkIncidence(level, u, v, e)
	delete(idx.levelOf, e)
}

// DemoteEdge moves an edge to level-1, clamped at 0. Demotion happens when
// an edge is discovered not to be needed at its current level.
func (idx *Index) DemoteEdge(u, v int32) {
	e := normalize(u, v)
	level, ok := idx.levelOf[e]
	if !ok || level == 0 {
		return
	}
	idx.unlinkIncidence(level, u, v, e)
	idx.levelOf[e] = level - 1
	idx.linkIncidence(level-1, u, v, e)
}

// PromoteEdge moves an edge to level+1, clamped at maxLevel.
func (idx *Index) PromoteEdge(u, v int32) {
	e := normalize(u, v)
	level, ok := idx.levelOf[e]
	if !ok || level >= idx.maxLevel {
		return
	}
	idx.unlinkIncidence(level, u, v, e)
	idx.levelOf[e] = level + 1
	idx.linkIncidence(level+1, u, v, e)
}

// GetLevel returns the current level of an edge, if known.
func (idx *Index) GetLevel(u, v int32) (int, bool) {
	level, ok := idx.levelOf[normalize(u, v)]
	return level, ok
}

// GetEdgesAtLevel returns every edge currently assigned to level.
func (idx *Index) GetEdgesAtLevel(level int) []EdgeKey {
	if level < 0 || level > idx.maxLevel {
		return nil
	}
	seen := make(map[EdgeKey]struct{})
	for _, edges := range idx.incident[level] {
		for e := range edges {
			seen[e] = struct{}{}
		}
	}
	out := make([]EdgeKey, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	return out
}

// IncidentAt returns the edges touching vertex at exactly level, used by the
// replacement-edge search to walk the smaller side's incident edges.
func (idx *Index) IncidentAt(level int, vertex int32) []EdgeKey {
	if level < 0 || level > idx.maxLevel {
		return nil
	}
	m := idx.incident[level][vertex]
	if len(m) == 0 {
		return nil
	}
	out := make([]EdgeKey, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	return out
}

// Clear removes every edge from the index.
func (idx *Index) Clear() {
	idx.levelOf = make(map[EdgeKey]int)
	for l := range idx.incident {
		idx.incident[l] = make(map[int32]map[EdgeKey]struct{})
	}
}
