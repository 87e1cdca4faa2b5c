package dagnode

import "testing"

func TestTerminalsPreallocated(t *testing.T) {
	tbl := New()
	if tbl.Kind(False) != KindTerminal || tbl.Kind(True) != KindTerminal {
		t.Fatal("both terminals should be present after New")
	}
	if tbl.NumNodes() != 2 {
		t.Fatalf("NumNodes() = %d, want 2", tbl.NumNodes())
	}
}

func TestDecisionInterning(t *testing.T) {
	tbl := New()
	a := tbl.Decision(3, False, True)
	b := tbl.Decision(3, False, True)
	if a != b {
		t.Fatal("identical Decision(row,lo,hi) calls should return the same id")
	}
	c := tbl.Decision(4, False, True)
	if a == c {
		t.Fatal("different rows should not intern to the same node")
	}
}

func TestDecisionCollapsesWhenSelectingIsDeadEnd(t *testing.T) {
	tbl := New()
	lo := tbl.Decision(1, False, True)
	id := tbl.Decision(2, lo, False) // selecting row 2 always fails
	if id != lo {
		t.Fatalf("Decision with hi=False should collapse to lo, got a new node")
	}
}

func TestDecomposedDropsIdentityFactors(t *testing.T) {
	tbl := New()
	d := tbl.Decision(1, False, True)
	id := tbl.Decomposed([]int32{True, d, True})
	if id != d {
		t.Fatalf("Decomposed should drop True factors and unwrap the sole survivor, got %d want %d", id, d)
	}
}

func TestDecomposedCollapsesOnZeroFactor(t *testing.T) {
	tbl := New()
	d := tbl.Decision(1, False, True)
	id := tbl.Decomposed([]int32{d, False})
	if id != False {
		t.Fatalf("Decomposed with a False factor should collapse to False, got %d", id)
	}
}

func TestDecomposedEmptyProductIsTrue(t *testing.T) {
	tbl := New()
	id := tbl.Decomposed([]int32{True, True})
	if id != True {
		t.Fatalf("Decomposed of only True factors should be True, got %d", id)
	}
}

func TestCountSingleDecision(t *testing.T) {
	tbl := New()
	// row chosen or not, both lead to a solution: 2 total covers.
	id := tbl.Decision(1, True, True)
	got, exact := tbl.Count(id).Exact64()
	if !exact || got != 2 {
		t.Fatalf("Count = %v, exact=%v, want 2, true", got, exact)
	}
}

func TestCountDecomposedMultipliesIndependentCounts(t *testing.T) {
	tbl := New()
	left := tbl.Decision(1, True, True)  // 2 solutions
	right := tbl.Decision(2, True, True) // 2 solutions
	id := tbl.Decomposed([]int32{left, right})
	got, exact := tbl.Count(id).Exact64()
	if !exact || got != 4 {
		t.Fatalf("Count = %v, exact=%v, want 4, true", got, exact)
	}
}

func TestCountFalseIsZero(t *testing.T) {
	tbl := New()
	got, exact := tbl.Count(False).Exact64()
	if !exact || got != 0 {
		t.Fatalf("Count(False) = %v, want 0", got)
	}
}
