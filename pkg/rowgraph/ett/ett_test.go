package ett

import "testing"

func TestLinkConnectsVertices(t *testing.T) {
	f := NewForest([]int32{0, 1, 2, 3})
	if f.Connected(0, 1) {
		t.Fatal("isolated vertices should not be connected")
	}
	if !f.Link(0, 1) {
		t.Fatal("Link(0,1) should succeed")
	}
	if !f.Connected(0, 1) {
		t.Fatal("0 and 1 should be connected after Link")
	}
	if f.Connected(0, 2) {
		t.Fatal("0 and 2 should not be connected yet")
	}
	f.Link(1, 2)
	if !f.Connected(0, 2) {
		t.Fatal("0 and 2 should be connected transitively via 1")
	}
}

func TestLinkRejectsAlreadyConnected(t *testing.T) {
	f := NewForest([]int32{0, 1, 2})
	f.Link(0, 1)
	f.Link(1, 2)
	if f.Link(0, 2) {
		t.Fatal("linking already-connected vertices should fail (would create a cycle)")
	}
}

func TestCutSplitsComponent(t *testing.T) {
	f := NewForest([]int32{0, 1, 2, 3})
	f.Link(0, 1)
	f.Link(1, 2)
	f.Link(2, 3)

	if !f.Cut(1, 2) {
		t.Fatal("Cut(1,2) should report success")
	}
	if !f.Connected(0, 1) {
		t.Fatal("0 and 1 should remain connected")
	}
	if !f.Connected(2, 3) {
		t.Fatal("2 and 3 should remain connected")
	}
	if f.Connected(1, 2) {
		t.Fatal("1 and 2 should be disconnected after the cut")
	}
	if f.Connected(0, 3) {
		t.Fatal("0 and 3 should be disconnected after the cut")
	}
}

func TestCutMissingEdgeIsNoop(t *testing.T) {
	f := NewForest([]int32{0, 1, 2})
	f.Link(0, 1)
	if f.Cut(0, 2) {
		t.Fatal("cutting a nonexistent edge should report false")
	}
}

func TestRelinkAfterCut(t *testing.T) {
	f := NewForest([]int32{0, 1, 2})
	f.Link(0, 1)
	f.Link(1, 2)
	f.Cut(1, 2)
	if !f.Link(0, 2) {
		t.Fatal("relinking a separate component should succeed")
	}
	if !f.Connected(0, 2) || !f.Connected(1, 2) {
		t.Fatal("all three vertices should be connected again")
	}
}

func TestComponentIDStableWithinComponent(t *testing.T) {
	f := NewForest([]int32{0, 1, 2, 3})
	f.Link(0, 1)
	f.Link(2, 3)
	if f.ComponentID(0) != f.ComponentID(1) {
		t.Fatal("0 and 1 should share a component id")
	}
	if f.ComponentID(0) == f.ComponentID(2) {
		t.Fatal("0 and 2 should not share a component id")
	}
}

func TestComponentSizeCountsVerticesOnly(t *testing.T) {
	f := NewForest([]int32{0, 1, 2})
	if got := f.ComponentSize(0); got != 1 {
		t.Fatalf("ComponentSize of isolated vertex = %d, want 1", got)
	}
	f.Link(0, 1)
	f.Link(1, 2)
	if got := f.ComponentSize(0); got != 3 {
		t.Fatalf("ComponentSize after joining 3 vertices = %d, want 3", got)
	}
}

func TestManyLinksAndCutsPreserveConnectivity(t *testing.T) {
	n := int32(20)
	verts := make([]int32, n)
	for i := range verts {
		verts[i] = int32(i)
	}
	f := NewForest(verts)
	for i := int32(0); i < n-1; i++ {
		if !f.Link(i, i+1) {
			t.Fatalf("Link(%d,%d) should succeed on a fresh path", i, i+1)
		}
	}
	for i := int32(0); i < n; i++ {
		for j := int32(0); j < n; j++ {
			if !f.Connected(i, j) {
				t.Fatalf("%d and %d should be connected on the full path", i, j)
			}
		}
	}
	mid := n / 2
	f.Cut(mid-1, mid)
	for i := int32(0); i < mid; i++ {
		for j := mid; j < n; j++ {
			if f.Connected(i, j) {
				t.Fatalf("%d and %d should be disconnected after cutting the midpoint", i, j)
			}
		}
	}
}
