package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/dxdlab/dxd/pkg/dagnode"
)

// Options configures DAG-to-DOT conversion.
type Options struct {
	// MaxNodes caps how many nodes ToDOT will walk before giving up and
	// truncating the graph; zero means unlimited. Compiled DAGs for large
	// matrices can have millions of nodes, far past what Graphviz can lay
	// out usefully.
	MaxNodes int
}

// ToDOT walks every node reachable from root and renders it as a Graphviz
// DOT digraph: Decision nodes as boxes labelled with their row, Decomposed
// nodes as diamonds, and the two terminals as filled boxes.
func ToDOT(t *dagnode.Table, root int32, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dxd {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n\n")

	visited := make(map[int32]bool)
	var edges bytes.Buffer
	stack := []int32{root}
	truncated := false

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		if opts.MaxNodes > 0 && len(visited) >= opts.MaxNodes {
			truncated = true
			break
		}
		visited[id] = true

		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(id), nodeAttrs(t, id))

		switch t.Kind(id) {
		case dagnode.KindDecision:
			lo, hi := t.Branches(id)
			fmt.Fprintf(&edges, "  %s -> %s [label=\"0\", style=dashed];\n", nodeName(id), nodeName(lo))
			fmt.Fprintf(&edges, "  %s -> %s [label=\"1\"];\n", nodeName(id), nodeName(hi))
			stack = append(stack, lo, hi)
		case dagnode.KindDecomposed:
			for _, c := range t.Children(id) {
				fmt.Fprintf(&edges, "  %s -> %s;\n", nodeName(id), nodeName(c))
				stack = append(stack, c)
			}
		}
	}

	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	if truncated {
		buf.WriteString("\n  \"...\" [shape=plaintext, label=\"truncated at MaxNodes\"];\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int32) string {
	return fmt.Sprintf("n%d", id)
}

func nodeAttrs(t *dagnode.Table, id int32) string {
	switch t.Kind(id) {
	case dagnode.KindTerminal:
		label := "0"
		if id == dagnode.True {
			label = "1"
		}
		return fmt.Sprintf("label=%q, shape=box, fillcolor=lightgrey", label)
	case dagnode.KindDecision:
		return fmt.Sprintf("label=\"row %d\"", t.Row(id))
	case dagnode.KindDecomposed:
		return fmt.Sprintf("label=\"x %d\", shape=diamond, fillcolor=lightyellow", len(t.Children(id)))
	default:
		return fmt.Sprintf("label=%q", nodeName(id))
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
