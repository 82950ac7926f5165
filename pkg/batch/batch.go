package batch

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
)

// Kind is the operation a batch applies.
type Kind uint8

const (
	Insert Kind = iota
	Remove
)

// String returns "insert" or "remove".
func (k Kind) String() string {
	if k == Remove {
		return "remove"
	}
	return "insert"
}

// ParseKind converts "insert" or "remove" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "insert", "":
		return Insert, nil
	case "remove":
		return Remove, nil
	}
	return Insert, errors.New(errors.ErrCodeInvalidInput, "invalid batch kind %q (allowed: insert, remove)", s)
}

// Flags modify how a batch is generated.
type Flags uint8

const (
	// Weighted picks sources in proportion to their out-degree.
	Weighted Flags = 1 << iota
	// Print logs the batch size at info level.
	Print
	// Unique drops duplicate edges, and existing edges from insertions.
	Unique
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Options configures [Generate].
type Options struct {
	Kind  Kind
	Flags Flags
	Seed  *uint64     // nil seeds from the clock
	Log   *log.Logger // receives Print output; nil discards it
}

// Generate fills src[:capacity] and dst[:capacity] with a batch against g
// and returns the number of edges written.
func Generate[V, E graph.Integer](g *graph.Graph[V, E], capacity int, src, dst []V, opts Options) (int, error) {
	if capacity < 0 || len(src) < capacity || len(dst) < capacity {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"batch capacity %d exceeds output arrays (%d, %d)", capacity, len(src), len(dst))
	}
	nv, ne := g.NumVertices(), g.NumEdges()
	if opts.Kind == Insert && nv == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cannot insert into a graph without vertices")
	}
	if opts.Kind == Remove && ne == 0 && capacity > 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cannot remove from a graph without edges")
	}

	seed := uint64(time.Now().UnixNano())
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	gen := generator[V, E]{g: g, rng: rng, weighted: opts.Flags.Has(Weighted)}

	for i := 0; i < capacity; i++ {
		if opts.Kind == Remove {
			src[i], dst[i] = gen.existing()
		} else {
			src[i], dst[i] = gen.source(), V(rng.IntN(nv))
		}
	}

	n := capacity
	if opts.Flags.Has(Unique) {
		n = unique(g, src[:capacity], dst[:capacity], opts.Kind == Insert)
	}
	if opts.Flags.Has(Print) && opts.Log != nil {
		opts.Log.Info("generated batch", "kind", opts.Kind, "requested", capacity, "edges", n)
	}
	return n, nil
}

type generator[V, E graph.Integer] struct {
	g        *graph.Graph[V, E]
	rng      *rand.Rand
	weighted bool
}

// source returns a uniform vertex, or the source of a uniform edge when
// weighted.
func (gen generator[V, E]) source() V {
	if gen.weighted && gen.g.NumEdges() > 0 {
		return gen.owner(gen.rng.IntN(gen.g.NumEdges()))
	}
	return V(gen.rng.IntN(gen.g.NumVertices()))
}

// existing returns an edge of the graph.
func (gen generator[V, E]) existing() (V, V) {
	out := gen.g.Out()
	if gen.weighted {
		i := gen.rng.IntN(gen.g.NumEdges())
		return gen.owner(i), out.Edges[i]
	}
	for {
		u := V(gen.rng.IntN(gen.g.NumVertices()))
		if nb := out.Neighbors(u); len(nb) > 0 {
			return u, nb[gen.rng.IntN(len(nb))]
		}
	}
}

// owner returns the vertex whose neighbor range holds edge index i.
func (gen generator[V, E]) owner(i int) V {
	offsets := gen.g.Out().Offsets
	v := sort.Search(len(offsets)-1, func(v int) bool { return int(offsets[v+1]) > i })
	return V(v)
}

// unique sorts the batch, drops duplicates and, for insertions, edges that
// already exist. It returns the new length.
func unique[V, E graph.Integer](g *graph.Graph[V, E], src, dst []V, insert bool) int {
	edges := make([]graph.Edge[V], len(src))
	for i := range src {
		edges[i] = graph.Edge[V]{Src: src[i], Dst: dst[i]}
	}
	slices.SortFunc(edges, graph.CompareEdges[V])
	edges = slices.Compact(edges)
	if insert {
		edges = slices.DeleteFunc(edges, func(e graph.Edge[V]) bool { return g.HasEdge(e.Src, e.Dst) })
	}
	for i, e := range edges {
		src[i], dst[i] = e.Src, e.Dst
	}
	return len(edges)
}

// Write writes a batch as a 0-indexed "src dst" edge list.
func Write[V graph.Integer](w io.Writer, src, dst []V) error {
	if len(src) != len(dst) {
		return fmt.Errorf("batch arrays differ in length: %d and %d", len(src), len(dst))
	}
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 48)
	for i := range src {
		line = strconv.AppendUint(line[:0], uint64(src[i]), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(dst[i]), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
	}
	return bw.Flush()
}
