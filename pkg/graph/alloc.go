package graph

import (
	"math"
	"runtime"

	"github.com/soniakeys/bits"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

// plan holds the sizes chosen for one build.
type plan struct {
	mode        Mode
	structure   Structure
	numVertices uint64
	nativeEdges uint64
	provisional uint64 // edge count before reductions
	mirror      bool   // phase 1 appends reversed edges
}

func newPlan(numVertices, nativeEdges uint64, native Direction, halfStored bool, requested Structure) plan {
	mode, final := Resolve(native, requested)
	p := plan{
		mode:        mode,
		structure:   final,
		numVertices: numVertices,
		nativeEdges: nativeEdges,
		provisional: nativeEdges,
	}
	switch mode {
	case ModeDirectedToUndirected:
		p.mirror = true
	case ModeUndirectedToDirected:
		// a half-stored list already holds one orientation per edge
	default:
		p.mirror = halfStored && native == Undirected
	}
	if p.mirror {
		p.provisional = 2 * nativeEdges
	}
	return p
}

// bufferLen is the length of the edge buffer handed to readers plus the room
// phase 1 needs to append reversed edges.
func (p plan) bufferLen() uint64 {
	if p.mirror {
		return 2 * p.nativeEdges
	}
	return p.nativeEdges
}

// estimate returns the peak number of bytes a build reserves.
func estimate[V, E Integer](p plan) uint64 {
	sv, se := uint64(SizeOf[V]()), uint64(SizeOf[E]())
	coo := p.bufferLen() * 2 * sv
	adj := (p.numVertices+1)*se + p.provisional*sv + p.numVertices*se
	if p.structure.HasReverse() {
		adj *= 2
	}
	cursors := p.numVertices * se
	return coo + adj + cursors
}

// checkSizes range-checks the counts of p against V and E and the memory
// limit. It runs before the first allocation.
func checkSizes[V, E Integer](p plan, limit uint64) error {
	nv, ne := p.numVertices, p.provisional
	if nv > 0 {
		if err := checkOverflow[V]("largest vertex id", nv-1, nv, ne); err != nil {
			return err
		}
	}
	if err := checkOverflow[E]("edge count", ne, nv, ne); err != nil {
		return err
	}
	if nv >= math.MaxInt || p.bufferLen() > math.MaxInt {
		return errors.Wrap(errors.ErrCodeOverflow,
			&errors.SizeError{Vertices: nv, Edges: ne, Limit: math.MaxInt},
			"graph exceeds addressable size")
	}
	if limit > 0 {
		if need := estimate[V, E](p); need > limit {
			return outOfMemory(nv, ne, limit)
		}
	}
	return nil
}

// makeSlice allocates n elements and turns a failed allocation into an
// OUT_OF_MEMORY error carrying the graph size.
func makeSlice[T any](n int, p plan) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			s, err = nil, outOfMemory(p.numVertices, p.provisional, 0)
		}
	}()
	return make([]T, n), nil
}

func newAdjacency[V, E Integer](numVertices, numEdges int, p plan) (*adjacency[V, E], error) {
	offsets, err := makeSlice[E](numVertices+1, p)
	if err != nil {
		return nil, err
	}
	edges, err := makeSlice[V](numEdges, p)
	if err != nil {
		return nil, err
	}
	degrees, err := makeSlice[E](numVertices, p)
	if err != nil {
		return nil, err
	}
	return &adjacency[V, E]{offsets: offsets, edges: edges, degrees: degrees}, nil
}

// selectEdges builds the selection vector of an undirected-to-directed
// conversion and returns it with its population count.
func selectEdges(sel EdgeSelector, n uint64) (bits.Bits, uint64, error) {
	b, err := sel.Select(int(n))
	if err != nil {
		return bits.Bits{}, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "select edges")
	}
	return b, uint64(b.OnesCount()), nil
}

func avgDegree(vertices, edges uint64) float64 {
	if vertices == 0 {
		return 0
	}
	return float64(edges) / float64(vertices)
}
