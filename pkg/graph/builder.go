package graph

import (
	"github.com/soniakeys/bits"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

// Builder holds the buffers of one build between allocation and conversion.
// A Builder is used once.
type Builder[V, E Integer] struct {
	plan      plan
	opts      Options
	buf       []Edge[V]
	selection bits.Bits
	built     bool
}

// NewBuilder resolves the conversion mode, range-checks the counts and
// allocates the edge buffer. numEdges is the number of edges the reader will
// store; halfStored marks an undirected list holding each edge once.
func NewBuilder[V, E Integer](numVertices, numEdges uint64, native Direction, halfStored bool, requested Structure, opts Options) (*Builder[V, E], error) {
	if native != Directed && native != Undirected {
		return nil, errors.New(errors.ErrCodeInvalidInput, "native direction must be directed or undirected, got %s", native)
	}
	p := newPlan(numVertices, numEdges, native, halfStored, requested)
	b := &Builder[V, E]{plan: p, opts: opts}

	if p.mode == ModeUndirectedToDirected {
		sel, n, err := selectEdges(b.opts.selector(), numEdges)
		if err != nil {
			return nil, err
		}
		b.selection, b.plan.provisional = sel, n
	}
	if err := checkSizes[V, E](b.plan, opts.MemoryLimit); err != nil {
		return nil, err
	}

	log := b.opts.logger()
	if opts.Print {
		log.Info("file graph", "V", numVertices, "E", numEdges, "structure", native,
			"avg_degree", avgDegree(numVertices, numEdges))
		if p.mode.Converts() {
			log.Info("user graph", "V", numVertices, "E", b.plan.provisional, "structure", p.structure,
				"avg_degree", avgDegree(numVertices, b.plan.provisional))
		}
	}
	log.Debug("allocating", "mode", p.mode, "edges", b.plan.provisional,
		"bytes", estimate[V, E](b.plan))

	buf, err := makeSlice[Edge[V]](int(p.bufferLen()), b.plan)
	if err != nil {
		return nil, err
	}
	b.buf = buf
	return b, nil
}

// Edges returns the buffer a reader fills with the native edge list.
func (b *Builder[V, E]) Edges() []Edge[V] { return b.buf[:b.plan.nativeEdges] }

// Mode returns the resolved conversion mode.
func (b *Builder[V, E]) Mode() Mode { return b.plan.mode }

// Structure returns the final structure of the graph being built.
func (b *Builder[V, E]) Structure() Structure { return b.plan.structure }

// NumVertices returns the vertex count.
func (b *Builder[V, E]) NumVertices() uint64 { return b.plan.numVertices }

// Build is the one-call form of [NewBuilder] and [Builder.Build]. It copies
// the edges of coo and leaves coo unchanged.
func Build[V, E Integer](coo COO[V], requested Structure, opts Options) (*Graph[V, E], error) {
	b, err := NewBuilder[V, E](coo.NumVertices, uint64(len(coo.Edges)), coo.Direction, coo.HalfStored, requested, opts)
	if err != nil {
		return nil, err
	}
	copy(b.Edges(), coo.Edges)
	return b.Build()
}
