// Package matrix implements the toroidal doubly-linked "dancing links"
// representation of a sparse 0/1 matrix, supporting O(deg) reversible
// cover/uncover of a column.
//
// Cells and column headers live in two disjoint arenas (the c* and h*
// slices of Matrix); every link is an arena index, never a pointer, so the
// circular lists have no cycles for the garbage collector to trace and
// cloning a matrix is a handful of slice copies.
package matrix

import (
	"fmt"

	"github.com/dxdlab/dxd/pkg/block"
)

// vref is a reference into either the cell arena or the header arena,
// distinguished by sign: non-negative values are cellIDs, negative values
// encode a headerID as -(headerID)-1. This lets a column's vertical circular
// list mix header and cell nodes without a polymorphic base type.
type vref int32

func refOfCell(c int32) vref     { return vref(c) }
func refOfHeader(h int32) vref   { return vref(-h - 1) }
func (v vref) isHeader() bool    { return v < 0 }
func (v vref) cell() int32       { return int32(v) }
func (v vref) header() int32     { return int32(-v - 1) }

// Matrix is the dancing-links representation of a sparse 0/1 matrix.
type Matrix struct {
	// cell arena, indexed by cellID
	cUp, cDown     []vref
	cLeft, cRight  []int32 // row-circular neighbors, cellIDs
	cCol           []int32 // owning column header id
	cRow           []int32 // 0-indexed row label

	// header arena, indexed by columnID; root is numCols
	hUp, hDown    []vref
	hLeft, hRight []int32 // column-circular neighbors among live headers
	hSize         []int32

	root int32

	// rowCols is the fixed (never mutated) column set of each row, indexed
	// by row label, computed once at construction. Cover/Uncover splice
	// cells in and out of the header/row circular lists but never change
	// which row or column a cell belongs to, so this stays valid for the
	// life of the matrix and lets callers recover a row's full column set
	// even while some of its cells are currently spliced out.
	rowCols [][]int32

	NumRows int
	NumCols int
}

// New builds a Matrix from numCols columns and, for each row, the (sorted or
// unsorted) 0-indexed columns it sets to 1. Rows may be empty (dead rows,
// e.g. a row satisfying no active column) but every column index must lie in
// [0, numCols).
func New(numCols int, rows [][]int32) (*Matrix, error) {
	if len(rows) > MaxRows {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRows, len(rows), MaxRows)
	}

	m := &Matrix{
		hUp:    make([]vref, numCols+1),
		hDown:  make([]vref, numCols+1),
		hLeft:  make([]int32, numCols+1),
		hRight: make([]int32, numCols+1),
		hSize:  make([]int32, numCols+1),
		root:   int32(numCols),
		NumRows: len(rows),
		NumCols: numCols,
	}

	for c := 0; c <= numCols; c++ {
		m.hUp[c] = refOfHeader(int32(c))
		m.hDown[c] = refOfHeader(int32(c))
		m.hLeft[c] = int32(c-1+numCols+1) % int32(numCols+1)
		m.hRight[c] = int32(c+1) % int32(numCols+1)
	}

	numCells := 0
	for _, r := range rows {
		numCells += len(r)
	}
	m.cUp = make([]vref, 0, numCells)
	m.cDown = make([]vref, 0, numCells)
	m.cLeft = make([]int32, 0, numCells)
	m.cRight = make([]int32, 0, numCells)
	m.cCol = make([]int32, 0, numCells)
	m.cRow = make([]int32, 0, numCells)

	for row, cols := range rows {
		seen := make(map[int32]struct{}, len(cols))
		first := int32(-1)
		var prev int32 = -1
		for _, c := range cols {
			if c < 0 || int(c) >= numCols {
				return nil, fmt.Errorf("%w: row %d col %d", ErrColumnOutOfRange, row, c)
			}
			if _, dup := seen[c]; dup {
				return nil, fmt.Errorf("%w: row %d col %d", ErrDuplicateCellInRow, row, c)
			}
			seen[c] = struct{}{}

			id := int32(len(m.cCol))
			m.cUp = append(m.cUp, 0)
			m.cDown = append(m.cDown, 0)
			m.cLeft = append(m.cLeft, 0)
			m.cRight = append(m.cRight, 0)
			m.cCol = append(m.cCol, c)
			m.cRow = append(m.cRow, int32(row))

			// append to bottom of column c's vertical list
			last := m.hUp[c]
			m.cUp[id] = last
			m.cDown[id] = refOfHeader(c)
			m.setDown(last, refOfCell(id))
			m.hUp[c] = refOfCell(id)
			m.hSize[c]++

			// append to row's horizontal circular list
			if first == -1 {
				first = id
				m.cLeft[id] = id
				m.cRight[id] = id
			} else {
				m.cLeft[id] = prev
				m.cRight[id] = first
				m.cRight[prev] = id
				m.cLeft[first] = id
			}
			prev = id
		}
	}

	m.rowCols = make([][]int32, len(rows))
	for row, cols := range rows {
		m.rowCols[row] = append([]int32(nil), cols...)
	}
	return m, nil
}

// RowCols returns row's full, fixed column set, independent of which cells
// are currently spliced out by a cover in progress.
func (m *Matrix) RowCols(row int32) []int32 { return m.rowCols[row] }

// Clone returns an independent copy of m in its current cover state, for a
// parallel worker to mutate without racing the original. Every field is
// arena-index slices, so cloning is a handful of slice copies rather than a
// graph walk.
func (m *Matrix) Clone() *Matrix {
	clone := &Matrix{
		cUp:     append([]vref(nil), m.cUp...),
		cDown:   append([]vref(nil), m.cDown...),
		cLeft:   append([]int32(nil), m.cLeft...),
		cRight:  append([]int32(nil), m.cRight...),
		cCol:    append([]int32(nil), m.cCol...),
		cRow:    append([]int32(nil), m.cRow...),
		hUp:     append([]vref(nil), m.hUp...),
		hDown:   append([]vref(nil), m.hDown...),
		hLeft:   append([]int32(nil), m.hLeft...),
		hRight:  append([]int32(nil), m.hRight...),
		hSize:   append([]int32(nil), m.hSize...),
		root:    m.root,
		rowCols: m.rowCols, // immutable after New, safe to share
		NumRows: m.NumRows,
		NumCols: m.NumCols,
	}
	return clone
}

func (m *Matrix) getDown(r vref) vref {
	if r.isHeader() {
		return m.hDown[r.header()]
	}
	return m.cDown[r.cell()]
}

func (m *Matrix) getUp(r vref) vref {
	if r.isHeader() {
		return m.hUp[r.header()]
	}
	return m.cUp[r.cell()]
}

func (m *Matrix) setDown(r, to vref) {
	if r.isHeader() {
		m.hDown[r.header()] = to
	} else {
		m.cDown[r.cell()] = to
	}
}

func (m *Matrix) setUp(r, to vref) {
	if r.isHeader() {
		m.hUp[r.header()] = to
	} else {
		m.cUp[r.cell()] = to
	}
}

// RowOf returns the 0-indexed row label owning cell id.
func (m *Matrix) RowOf(cell int32) int32 { return m.cRow[cell] }

// ColOf returns the column header id owning cell id.
func (m *Matrix) ColOf(cell int32) int32 { return m.cCol[cell] }

// Size returns the current live-cell count of column col.
func (m *Matrix) Size(col int32) int32 { return m.hSize[col] }

// unlinkVertical splices cell out of its column's vertical list without
// touching hSize (callers update the count themselves, once per cell).
func (m *Matrix) unlinkVertical(cell int32) {
	u, d := m.cUp[cell], m.cDown[cell]
	m.setDown(u, d)
	m.setUp(d, u)
}

// relinkVertical restores cell into its column's vertical list, reversing a
// prior unlinkVertical.
func (m *Matrix) relinkVertical(cell int32) {
	u, d := m.cUp[cell], m.cDown[cell]
	m.setDown(u, refOfCell(cell))
	m.setUp(d, refOfCell(cell))
}

// Cover removes col from the root list of uncovered columns and, for every
// live row in col, splices that row's other cells out of their column
// lists. Covering an already-covered column is a caller error (undefined
// behaviour, per the DLX cover/uncover pairing contract).
func (m *Matrix) Cover(col int32) {
	l, r := m.hLeft[col], m.hRight[col]
	m.hRight[l] = r
	m.hLeft[r] = l

	for i := m.hDown[col]; !i.isHeader(); i = m.cDown[i.cell()] {
		ci := i.cell()
		for j := m.cRight[ci]; j != ci; j = m.cRight[j] {
			m.unlinkVertical(j)
			m.hSize[m.cCol[j]]--
		}
	}
}

// Uncover exactly reverses the most recent Cover(col) not yet undone. The
// caller must pair cover/uncover calls in strict LIFO (stack) order.
func (m *Matrix) Uncover(col int32) {
	for i := m.hUp[col]; !i.isHeader(); i = m.cUp[i.cell()] {
		ci := i.cell()
		for j := m.cLeft[ci]; j != ci; j = m.cLeft[j] {
			m.hSize[m.cCol[j]]++
			m.relinkVertical(j)
		}
	}
	l, r := m.hLeft[col], m.hRight[col]
	m.hRight[l] = col
	m.hLeft[r] = col
}

// ColumnCells returns the cell ids currently linked into col's vertical
// list, top-to-bottom.
func (m *Matrix) ColumnCells(col int32) []int32 {
	var out []int32
	for i := m.hDown[col]; !i.isHeader(); i = m.cDown[i.cell()] {
		out = append(out, i.cell())
	}
	return out
}

// RowsIn returns the current row labels linked into col's vertical list,
// top-to-bottom.
func (m *Matrix) RowsIn(col int32) []int32 {
	cells := m.ColumnCells(col)
	out := make([]int32, len(cells))
	for i, c := range cells {
		out[i] = m.cRow[c]
	}
	return out
}

// RowOtherCols returns the column ids of every other cell in cell's row,
// i.e. the columns that must also be covered when the search engine commits
// to the row containing cell.
func (m *Matrix) RowOtherCols(cell int32) []int32 {
	var out []int32
	for j := m.cRight[cell]; j != cell; j = m.cRight[j] {
		out = append(out, m.cCol[j])
	}
	return out
}

// removedRow records a row spliced out of a block by a CoverInBlock call, so
// UncoverInBlock can restore it at the same index.
type removedRow struct {
	row   int32
	index int
}

// blockCoverFrame remembers, per Cover call issued through CoverInBlock, the
// column and rows it evicted from the block -- needed because UncoverInBlock
// must restore exactly those, in reverse order, mirroring Cover/Uncover's own
// stack discipline.
type blockCoverFrame struct {
	col      int32
	colIndex int
	colInBlk bool
	removed  []removedRow
}

// BlockCoverStack accumulates the frames produced by CoverInBlock calls on a
// single Block, so the engine can unwind them exactly in reverse (LIFO)
// order via UncoverInBlock.
type BlockCoverStack struct {
	frames []blockCoverFrame
}

// CoverInBlock covers col as Cover does, and additionally removes col itself
// from b's column set and every row in col's (pre-cover) vertical list that
// is still active in b from b's row set, appending those rows to
// outDeletedRows. col and those rows are exactly what the cover operation
// disconnects from the remaining active row-graph; leaving either one in b
// would let the search keep branching on a column the matrix already
// considers satisfied.
func (m *Matrix) CoverInBlock(col int32, b *block.Block, stack *BlockCoverStack, outDeletedRows *[]int32) {
	rows := m.RowsIn(col)
	m.Cover(col)

	frame := blockCoverFrame{col: col}
	if idx, ok := b.RemoveCol(col); ok {
		frame.colIndex, frame.colInBlk = idx, true
	}
	for _, row := range rows {
		if idx, ok := b.RemoveRow(row); ok {
			frame.removed = append(frame.removed, removedRow{row: row, index: idx})
			*outDeletedRows = append(*outDeletedRows, row)
		}
	}
	stack.frames = append(stack.frames, frame)
}

// UncoverInBlock reverses the most recent CoverInBlock call on stack,
// restoring both the matrix and b to their prior state. It returns the
// column that was uncovered, so a caller that also maintains row-graph
// state (see pkg/engine) can recompute which edges the restored column
// re-establishes.
func (m *Matrix) UncoverInBlock(b *block.Block, stack *BlockCoverStack) int32 {
	n := len(stack.frames)
	frame := stack.frames[n-1]
	stack.frames = stack.frames[:n-1]

	for i := len(frame.removed) - 1; i >= 0; i-- {
		rr := frame.removed[i]
		b.RestoreRow(rr.index, rr.row)
	}
	if frame.colInBlk {
		b.RestoreCol(frame.colIndex, frame.col)
	}
	m.Uncover(frame.col)
	return frame.col
}

// SelectMinSize returns the column of minimum live size among cols,
// tie-breaking on first encountered. Used by the parallel search path.
func (m *Matrix) SelectMinSize(cols []int32) int32 {
	best := cols[0]
	bestSize := m.hSize[best]
	for _, c := range cols[1:] {
		if s := m.hSize[c]; s < bestSize {
			best, bestSize = c, s
		}
	}
	return best
}

// SelectClosestToTarget returns the column whose live size is closest to
// target (default 5), tie-breaking on first encountered. Used by the
// single-threaded search path to bias toward productive branching factor.
func (m *Matrix) SelectClosestToTarget(cols []int32, target int32) int32 {
	best := cols[0]
	bestDist := abs32(m.hSize[best] - target)
	for _, c := range cols[1:] {
		if d := abs32(m.hSize[c] - target); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// DefaultTarget is the default column size the closest-to-target heuristic
// aims for.
const DefaultTarget = 5
