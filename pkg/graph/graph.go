package graph

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

// adjacency owns one CSR: offsets (V+1), neighbors (E) and degrees (V).
type adjacency[V, E Integer] struct {
	offsets []E
	edges   []V
	degrees []E
}

func (a *adjacency[V, E]) release() {
	a.offsets, a.edges, a.degrees = nil, nil, nil
}

func (a *adjacency[V, E]) view() View[V, E] {
	if a == nil {
		return View[V, E]{}
	}
	return View[V, E]{Offsets: a.offsets, Edges: a.edges, Degrees: a.degrees}
}

// View is a non-owning handle on one adjacency of a graph. The slices must
// not be modified; they stay valid until [Graph.Release].
type View[V, E Integer] struct {
	Offsets []E
	Edges   []V
	Degrees []E
}

// Neighbors returns the neighbor range of u.
func (v View[V, E]) Neighbors(u V) []V {
	return v.Edges[v.Offsets[u]:v.Offsets[u+1]]
}

// Degree returns the number of neighbors of u.
func (v View[V, E]) Degree(u V) E { return v.Degrees[u] }

// IsZero reports whether the view has no backing arrays.
func (v View[V, E]) IsZero() bool { return v.Offsets == nil }

// Graph is a CSR graph built from an edge list.
//
// The out-adjacency is always present and owned by the graph. For undirected
// graphs the in-adjacency is the very same object; for directed graphs with
// a reverse view it is a second, independently owned one; otherwise absent.
// Graph is not safe for concurrent mutation; concurrent reads are fine.
type Graph[V, E Integer] struct {
	structure   Structure
	numVertices int
	numEdges    int

	out  *adjacency[V, E]
	in   *adjacency[V, E]
	coo  []Edge[V]
	perm []V
}

// Structure returns the final structure of the graph.
func (g *Graph[V, E]) Structure() Structure { return g.structure }

// IsDirected reports whether the graph is directed.
func (g *Graph[V, E]) IsDirected() bool { return g.structure.IsDirected() }

// IsUndirected reports whether the graph is undirected.
func (g *Graph[V, E]) IsUndirected() bool { return g.structure.IsUndirected() }

// NumVertices returns the vertex count.
func (g *Graph[V, E]) NumVertices() int { return g.numVertices }

// NumEdges returns the edge count after all reductions.
func (g *Graph[V, E]) NumEdges() int { return g.numEdges }

// Out returns the out-adjacency.
func (g *Graph[V, E]) Out() View[V, E] { return g.out.view() }

// In returns the in-adjacency. For undirected graphs this is the out
// adjacency; for directed graphs without a reverse view it is the zero View.
func (g *Graph[V, E]) In() View[V, E] { return g.in.view() }

// HasInView reports whether In returns a usable adjacency.
func (g *Graph[V, E]) HasInView() bool { return g.in != nil }

// SharesAdjacency reports whether the in and out names refer to one buffer.
func (g *Graph[V, E]) SharesAdjacency() bool { return g.in != nil && g.in == g.out }

// COO returns the retained edge list, or nil unless Structure.COO was requested.
func (g *Graph[V, E]) COO() []Edge[V] { return g.coo }

// Permutation returns the vertex relabeling applied by randomization:
// new id = p[old id]. It is nil when the graph was not randomized.
func (g *Graph[V, E]) Permutation() []V { return g.perm }

// SetPermutation records p as the relabeling applied to g, for graphs
// restored from a serialized image. The adjacency is not touched.
func (g *Graph[V, E]) SetPermutation(p []V) error {
	if uint64(len(p)) != uint64(g.numVertices) {
		return errors.New(errors.ErrCodeInvalidInput, "permutation has %d entries, graph has %d vertices", len(p), g.numVertices)
	}
	if _, err := InversePermutation(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid permutation")
	}
	g.perm = p
	return nil
}

// HasEdge reports whether (u, v) is an edge of the out-adjacency.
// The lookup scans the neighbor range of u.
func (g *Graph[V, E]) HasEdge(u, v V) bool {
	if uint64(u) >= uint64(g.numVertices) {
		return false
	}
	for _, w := range g.out.view().Neighbors(u) {
		if w == v {
			return true
		}
	}
	return false
}

// Release drops the adjacency buffers. A shared adjacency is released once.
// The graph must not be used afterwards.
func (g *Graph[V, E]) Release() {
	if g.in != nil && g.in != g.out {
		g.in.release()
	}
	if g.out != nil {
		g.out.release()
	}
	g.in, g.out = nil, nil
	g.coo, g.perm = nil, nil
}

// Validate checks the CSR invariants of every adjacency: offsets start at 0,
// end at the edge count and never decrease, degrees match offset
// differences and neighbor ids are in range.
func (g *Graph[V, E]) Validate() error {
	if g.out == nil {
		return errors.New(errors.ErrCodeInvalidInput, "graph has been released")
	}
	if err := g.validateAdjacency("out", g.out); err != nil {
		return err
	}
	if g.in != nil && g.in != g.out {
		return g.validateAdjacency("in", g.in)
	}
	return nil
}

func (g *Graph[V, E]) validateAdjacency(name string, a *adjacency[V, E]) error {
	nv, ne := g.numVertices, g.numEdges
	if len(a.offsets) != nv+1 || len(a.degrees) != nv || len(a.edges) != ne {
		return errors.New(errors.ErrCodeInternal, "%s: array lengths %d/%d/%d, want %d/%d/%d",
			name, len(a.offsets), len(a.degrees), len(a.edges), nv+1, nv, ne)
	}
	if a.offsets[0] != 0 {
		return errors.New(errors.ErrCodeInternal, "%s: offset[0] = %d", name, a.offsets[0])
	}
	if int(a.offsets[nv]) != ne {
		return errors.New(errors.ErrCodeInternal, "%s: offset[%d] = %d, want %d", name, nv, a.offsets[nv], ne)
	}
	for v := 0; v < nv; v++ {
		if a.offsets[v+1] < a.offsets[v] {
			return errors.New(errors.ErrCodeInternal, "%s: offsets decrease at vertex %d", name, v)
		}
		if a.offsets[v+1]-a.offsets[v] != a.degrees[v] {
			return errors.New(errors.ErrCodeInternal, "%s: degree[%d] = %d, offsets span %d",
				name, v, a.degrees[v], a.offsets[v+1]-a.offsets[v])
		}
	}
	for i, w := range a.edges {
		if uint64(w) >= uint64(nv) {
			return errors.New(errors.ErrCodeInternal, "%s: edge %d points to vertex %d out of range", name, i, w)
		}
	}
	return nil
}

// FromCSR builds an undirected graph by copying existing CSR arrays.
// Degrees are derived from the offsets.
func FromCSR[V, E Integer](offsets []E, edges []V) (*Graph[V, E], error) {
	if len(offsets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "offsets must hold at least one entry")
	}
	nv, ne := len(offsets)-1, len(edges)
	if err := checkOverflow[V]("vertex count", uint64(nv), uint64(nv), uint64(ne)); err != nil {
		return nil, err
	}
	if err := checkOverflow[E]("edge count", uint64(ne), uint64(nv), uint64(ne)); err != nil {
		return nil, err
	}

	a := &adjacency[V, E]{
		offsets: append([]E(nil), offsets...),
		edges:   append([]V(nil), edges...),
		degrees: make([]E, nv),
	}
	for v := 0; v < nv; v++ {
		a.degrees[v] = offsets[v+1] - offsets[v]
	}
	g := &Graph[V, E]{
		structure:   Structure{Direction: Undirected},
		numVertices: nv,
		numEdges:    ne,
		out:         a,
		in:          a,
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid CSR")
	}
	return g, nil
}

// FromViews assembles a graph around arrays produced elsewhere (for example
// a binary reader). in must be the zero View unless s has a reverse view.
func FromViews[V, E Integer](s Structure, out, in View[V, E]) (*Graph[V, E], error) {
	if len(out.Offsets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "offsets must hold at least one entry")
	}
	g := &Graph[V, E]{
		structure:   s,
		numVertices: len(out.Offsets) - 1,
		numEdges:    len(out.Edges),
		out:         &adjacency[V, E]{offsets: out.Offsets, edges: out.Edges, degrees: out.Degrees},
	}
	if g.out.degrees == nil {
		g.out.degrees = degreesOf(out.Offsets)
	}
	switch {
	case s.IsUndirected():
		g.in = g.out
	case s.HasReverse():
		if in.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "reverse structure without in-view")
		}
		g.in = &adjacency[V, E]{offsets: in.Offsets, edges: in.Edges, degrees: in.Degrees}
		if g.in.degrees == nil {
			g.in.degrees = degreesOf(in.Offsets)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptFile, err, "invalid CSR")
	}
	return g, nil
}

func degreesOf[E Integer](offsets []E) []E {
	d := make([]E, len(offsets)-1)
	for v := range d {
		d[v] = offsets[v+1] - offsets[v]
	}
	return d
}

// Print writes the out-adjacency, one "[ v ] : n1 n2 ..." line per vertex.
func (g *Graph[V, E]) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	out := g.Out()
	for v := 0; v < g.numVertices; v++ {
		fmt.Fprintf(bw, "[ %d ] :", v)
		for _, n := range out.Neighbors(V(v)) {
			fmt.Fprintf(bw, " %d", n)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// PrintRaw writes the raw offset, edge and degree arrays of each adjacency.
func (g *Graph[V, E]) PrintRaw(w io.Writer) error {
	bw := bufio.NewWriter(w)
	out := g.Out()
	fmt.Fprintf(bw, "Out-Offsets  %v\n", out.Offsets)
	fmt.Fprintf(bw, "Out-Edges    %v\n", out.Edges)
	fmt.Fprintf(bw, "Out-Degrees  %v\n", out.Degrees)
	if g.structure.HasReverse() {
		in := g.In()
		fmt.Fprintf(bw, "In-Offsets   %v\n", in.Offsets)
		fmt.Fprintf(bw, "In-Edges     %v\n", in.Edges)
		fmt.Fprintf(bw, "In-Degrees   %v\n", in.Degrees)
	}
	return bw.Flush()
}
