// Package dot renders small CSR graphs with Graphviz.
//
// [ToDOT] converts a graph into DOT source: directed graphs become a
// digraph, undirected graphs a graph with each edge drawn once. Vertices
// with a self-loop are filled grey. [RenderSVG] and [RenderPNG] lay the
// source out with the embedded Graphviz build of go-graphviz, so no dot
// binary is needed.
//
//	src, err := dot.ToDOT(g, dot.Options{Detailed: true})
//	if err != nil {
//	    return err
//	}
//	svg, err := dot.RenderSVG(ctx, src)
//
// Layout cost grows quickly with the vertex count, so ToDOT refuses graphs
// above [Options.MaxVertices] (default [DefaultMaxVertices]).
package dot
