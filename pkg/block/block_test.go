package block

import "testing"

func TestRemoveRestoreRowPreservesOrder(t *testing.T) {
	b := New([]int32{1, 2, 3, 4}, []int32{10, 20})
	idx, ok := b.RemoveRow(2)
	if !ok || idx != 1 {
		t.Fatalf("RemoveRow(2) = %d, %v; want 1, true", idx, ok)
	}
	if b.HasRow(2) {
		t.Errorf("row 2 should no longer be active")
	}
	b.RestoreRow(idx, 2)
	got := b.Rows()
	want := []int32{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Rows() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rows() = %v, want %v", got, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New([]int32{1, 2}, []int32{5})
	c := b.Clone()
	c.RemoveRow(1)
	if !b.HasRow(1) {
		t.Errorf("mutating the clone should not affect the original")
	}
	if c.HasRow(1) {
		t.Errorf("clone should have removed row 1")
	}
}

func TestRemoveMissingRow(t *testing.T) {
	b := New([]int32{1}, nil)
	if _, ok := b.RemoveRow(99); ok {
		t.Errorf("removing an absent row should report false")
	}
}
