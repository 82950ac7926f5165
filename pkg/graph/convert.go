package graph

import (
	"slices"
	"time"

	"github.com/soniakeys/bits"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

// Build reduces the edge buffer and fills the CSR arrays. The buffer is
// released afterwards unless the structure retains the COO.
func (b *Builder[V, E]) Build() (*Graph[V, E], error) {
	if b.built {
		return nil, errors.New(errors.ErrCodeInternal, "builder already used")
	}
	b.built = true
	start := time.Now()
	log := b.opts.logger()

	edges := b.Edges()
	if err := checkEndpoints(edges, b.plan.numVertices); err != nil {
		return nil, err
	}

	sorted := false
	if b.plan.mirror {
		var loops int
		edges, loops = mirror(b.buf, len(edges))
		if b.opts.Print {
			log.Info("mirrored edges", "edges", len(edges), "self_loops", loops)
		}
	}

	switch b.plan.mode {
	case ModeDirectedToUndirected:
		before := len(edges)
		edges = dedup(edges)
		sorted = true
		if b.opts.Print {
			log.Info("removed duplicate edges", "count", before-len(edges))
		}
	case ModeUndirectedToDirected:
		edges = compactSelected(edges, b.selection)
		b.selection = bits.Bits{}
		if b.opts.Print {
			log.Info("selected directed edges", "edges", len(edges))
		}
	}

	var perm []V
	if b.opts.Randomize {
		perm = NewPermutation[V](int(b.plan.numVertices), newRand(b.opts.Seed))
		RemapEdges(edges, perm)
		sorted = false
		if b.opts.Print {
			log.Info("randomized vertex ids")
		}
	}

	if b.opts.Sort && !sorted {
		slices.SortFunc(edges, CompareEdges[V])
		if b.opts.Print {
			log.Info("sorted edges")
		}
	}

	g, err := b.fill(edges)
	if err != nil {
		return nil, err
	}
	g.perm = perm
	if b.plan.structure.COO {
		g.coo = slices.Clip(edges)
	}
	b.buf = nil

	log.Debug("csr built", "mode", b.plan.mode, "V", g.numVertices, "E", g.numEdges,
		"structure", g.structure, "elapsed", time.Since(start))
	return g, nil
}

func checkEndpoints[V Integer](edges []Edge[V], numVertices uint64) error {
	for i, e := range edges {
		if uint64(e.Src) >= numVertices || uint64(e.Dst) >= numVertices {
			return errors.New(errors.ErrCodeInvalidInput,
				"edge %d (%d, %d) out of range for %d vertices", i, e.Src, e.Dst, numVertices)
		}
	}
	return nil
}

// mirror appends the reverse of every non-loop edge among buf[:n] and
// returns the extended list with the number of loops skipped.
func mirror[V Integer](buf []Edge[V], n int) ([]Edge[V], int) {
	k, loops := n, 0
	for i := 0; i < n; i++ {
		if buf[i].IsLoop() {
			loops++
			continue
		}
		buf[k] = buf[i].Reverse()
		k++
	}
	return buf[:k], loops
}

// dedup sorts edges and drops exact duplicates.
func dedup[V Integer](edges []Edge[V]) []Edge[V] {
	slices.SortFunc(edges, CompareEdges[V])
	return slices.Compact(edges)
}

// compactSelected keeps edge i iff bit i of sel is set, preserving order.
func compactSelected[V Integer](edges []Edge[V], sel bits.Bits) []Edge[V] {
	j := 0
	for i := range edges {
		if sel.Bit(i) == 1 {
			edges[j] = edges[i]
			j++
		}
	}
	return edges[:j]
}

// fill allocates the adjacency arrays for the final edge count and fills
// them by degree counting, exclusive prefix sum and bucket fill.
func (b *Builder[V, E]) fill(edges []Edge[V]) (*Graph[V, E], error) {
	nv, ne := int(b.plan.numVertices), len(edges)
	s := b.plan.structure

	out, err := newAdjacency[V, E](nv, ne, b.plan)
	if err != nil {
		return nil, err
	}
	g := &Graph[V, E]{structure: s, numVertices: nv, numEdges: ne, out: out}
	switch {
	case s.IsUndirected():
		g.in = out
	case s.HasReverse():
		if g.in, err = newAdjacency[V, E](nv, ne, b.plan); err != nil {
			return nil, err
		}
	}
	reverse := g.in != nil && g.in != out

	for _, e := range edges {
		out.degrees[e.Src]++
		if reverse {
			g.in.degrees[e.Dst]++
		}
	}
	prefixSum(out)
	if reverse {
		prefixSum(g.in)
	}

	cursor, err := makeSlice[E](nv, b.plan)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		out.edges[out.offsets[e.Src]+cursor[e.Src]] = e.Dst
		cursor[e.Src]++
	}
	if reverse {
		clear(cursor)
		for _, e := range edges {
			g.in.edges[g.in.offsets[e.Dst]+cursor[e.Dst]] = e.Src
			cursor[e.Dst]++
		}
	}
	return g, nil
}

func prefixSum[V, E Integer](a *adjacency[V, E]) {
	for v, d := range a.degrees {
		a.offsets[v+1] = a.offsets[v] + d
	}
}
