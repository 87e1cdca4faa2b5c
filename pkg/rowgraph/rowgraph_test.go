package rowgraph

import (
	"reflect"
	"sort"
	"testing"
)

func sortedBlocks(blocks [][]int32) [][]int32 {
	out := make([][]int32, len(blocks))
	for i, b := range blocks {
		c := append([]int32(nil), b...)
		sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
		out[i] = c
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func newDetectors() []Detector {
	return []Detector{NewUnionFindDetector(), NewETTDetector()}
}

func TestEdgesFromColumn(t *testing.T) {
	got := EdgesFromColumn([]int32{1, 2, 3})
	want := []Edge{{1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EdgesFromColumn = %v, want %v", got, want)
	}
	if got := EdgesFromColumn([]int32{1}); got != nil {
		t.Errorf("single row should induce no edges, got %v", got)
	}
}

func TestDetectorsAgreeOnInitialComponents(t *testing.T) {
	rows := []int32{0, 1, 2, 3, 4}
	edges := []Edge{{0, 1}, {1, 2}, {3, 4}}
	for _, d := range newDetectors() {
		d.Initialize(rows, edges)
		got := sortedBlocks(d.GetBlocks(rows))
		want := [][]int32{{0, 1, 2}, {3, 4}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: GetBlocks = %v, want %v", d, got, want)
		}
	}
}

func TestDetectorsSplitOnEdgeDeletion(t *testing.T) {
	rows := []int32{0, 1, 2}
	edges := []Edge{{0, 1}, {1, 2}}
	for _, d := range newDetectors() {
		d.Initialize(rows, edges)
		d.DeleteEdges([]Edge{{1, 2}})
		got := sortedBlocks(d.GetBlocks(rows))
		want := [][]int32{{0, 1}, {2}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: GetBlocks after delete = %v, want %v", d, got, want)
		}
	}
}

func TestDetectorsRestoreOnEdgeReAddition(t *testing.T) {
	rows := []int32{0, 1, 2}
	edges := []Edge{{0, 1}, {1, 2}}
	for _, d := range newDetectors() {
		d.Initialize(rows, edges)
		d.DeleteEdges([]Edge{{1, 2}})
		d.AddEdges([]Edge{{1, 2}})
		got := sortedBlocks(d.GetBlocks(rows))
		want := [][]int32{{0, 1, 2}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: GetBlocks after re-add = %v, want %v", d, got, want)
		}
	}
}

func TestDetectorsHonorEdgeMultiplicity(t *testing.T) {
	// rows 0 and 1 share two columns, so deleting one shared column's
	// edge should not disconnect them until the second is also deleted.
	rows := []int32{0, 1}
	edges := []Edge{{0, 1}, {0, 1}}
	for _, d := range newDetectors() {
		d.Initialize(rows, edges)
		d.DeleteEdges([]Edge{{0, 1}})
		got := sortedBlocks(d.GetBlocks(rows))
		want := [][]int32{{0, 1}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: still-connected via 2nd shared column = %v, want %v", d, got, want)
		}
		d.DeleteEdges([]Edge{{0, 1}})
		got = sortedBlocks(d.GetBlocks(rows))
		want = [][]int32{{0}, {1}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: should split after last shared column removed = %v, want %v", d, got, want)
		}
	}
}

func TestDetectorsIgnoreInactiveRows(t *testing.T) {
	rows := []int32{0, 1, 2}
	edges := []Edge{{0, 1}, {1, 2}}
	for _, d := range newDetectors() {
		d.Initialize(rows, edges)
		got := sortedBlocks(d.GetBlocks([]int32{0, 2}))
		want := [][]int32{{0}, {2}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: GetBlocks over row subset = %v, want %v", d, got, want)
		}
	}
}

func TestETTDetectorSurvivesReplacementSearch(t *testing.T) {
	// a 4-cycle: cutting one tree edge must find the remaining edge as a
	// replacement rather than splitting the component.
	rows := []int32{0, 1, 2, 3}
	edges := []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	d := NewETTDetector()
	d.Initialize(rows, edges)
	d.DeleteEdges([]Edge{{0, 1}})
	got := sortedBlocks(d.GetBlocks(rows))
	want := [][]int32{{0, 1, 2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GetBlocks after cycle-edge deletion = %v, want %v (replacement should keep it connected)", got, want)
	}
}
