// Package render exports a compiled dagnode.Table as a Graphviz DOT graph
// and rasterizes it to SVG, PNG or PDF for the `dxd graph` command.
//
// # DOT export
//
// [ToDOT] walks every node reachable from a root id and emits one Decision
// node per row branch and one diamond-shaped node per Decomposed split.
// [RenderSVG] hands that DOT text to github.com/goccy/go-graphviz.
//
//	dot := render.ToDOT(dag, root, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x resolution
//
// # Format conversion
//
// [ToPDF] and [ToPNG] convert SVG bytes to other formats by shelling out to
// rsvg-convert (from librsvg), the same external dependency the teacher's
// visualization pipeline uses for output formats Graphviz itself does not
// need to produce directly.
package render
