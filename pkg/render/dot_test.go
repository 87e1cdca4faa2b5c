package render

import (
	"strings"
	"testing"

	"github.com/dxdlab/dxd/pkg/dagnode"
)

func TestToDOTIncludesEveryReachableNode(t *testing.T) {
	dag := dagnode.New()
	d := dag.Decision(2, dagnode.False, dagnode.True)
	root := dag.Decision(1, d, dagnode.True)

	dot := ToDOT(dag, root, Options{})

	for _, want := range []string{"digraph dxd", "row 1", "row 2", `label="1"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTRendersDecomposedNodesAsDiamonds(t *testing.T) {
	dag := dagnode.New()
	a := dag.Decision(1, dagnode.False, dagnode.True)
	b := dag.Decision(2, dagnode.False, dagnode.True)
	root := dag.Decomposed([]int32{a, b})

	dot := ToDOT(dag, root, Options{})
	if !strings.Contains(dot, "shape=diamond") {
		t.Errorf("expected a diamond-shaped Decomposed node:\n%s", dot)
	}
}

func TestToDOTHonorsMaxNodes(t *testing.T) {
	dag := dagnode.New()
	root := dag.Decision(1, dagnode.False, dagnode.True)
	for i := int32(2); i < 20; i++ {
		root = dag.Decision(i, dagnode.False, root)
	}

	dot := ToDOT(dag, root, Options{MaxNodes: 3})
	if !strings.Contains(dot, "truncated at MaxNodes") {
		t.Errorf("expected a truncation marker:\n%s", dot)
	}
}
