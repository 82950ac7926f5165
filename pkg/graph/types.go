package graph

import (
	"cmp"
	"fmt"
)

// Integer is the set of integer types usable as vertex ids and edge counts.
// Vertex ids and edge offsets are instantiated independently, so a graph with
// fewer than 2^31 vertices but more than 2^31 edges can use Graph[int32, int64].
type Integer interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

// Edge is a COO entry. Edges compare lexicographically on (Src, Dst).
type Edge[V Integer] struct {
	Src V
	Dst V
}

// Reverse returns the edge with its endpoints swapped.
func (e Edge[V]) Reverse() Edge[V] { return Edge[V]{Src: e.Dst, Dst: e.Src} }

// IsLoop reports whether the edge is a self-loop (a "ring").
func (e Edge[V]) IsLoop() bool { return e.Src == e.Dst }

// CompareEdges orders edges by source, then destination.
func CompareEdges[V Integer](a, b Edge[V]) int {
	if c := cmp.Compare(a.Src, b.Src); c != 0 {
		return c
	}
	return cmp.Compare(a.Dst, b.Dst)
}

// Direction is the directedness of an edge list or of a built graph.
type Direction uint8

const (
	// DirectionUnset adopts the native direction of the input.
	DirectionUnset Direction = iota
	Undirected
	Directed
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Undirected:
		return "undirected"
	case Directed:
		return "directed"
	default:
		return "unset"
	}
}

// ParseDirection converts "undirected", "directed" or "native"/"" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "native":
		return DirectionUnset, nil
	case "undirected":
		return Undirected, nil
	case "directed":
		return Directed, nil
	}
	return DirectionUnset, fmt.Errorf("unknown direction %q", s)
}

// Structure flags, as stored in the binary layout.
const (
	FlagUndirected uint32 = 1 << iota
	FlagDirected
	FlagReverse
	FlagCOO
)

// Structure describes the requested (or final) shape of a graph.
// Reverse is only meaningful for directed graphs: undirected graphs expose
// their single adjacency under both the out and the in name.
type Structure struct {
	Direction Direction
	Reverse   bool // keep an independent in-edge adjacency
	COO       bool // keep the reduced edge list after conversion
}

// IsDirected reports whether the direction is Directed.
func (s Structure) IsDirected() bool { return s.Direction == Directed }

// IsUndirected reports whether the direction is Undirected.
func (s Structure) IsUndirected() bool { return s.Direction == Undirected }

// HasReverse reports whether an independent in-view exists.
func (s Structure) HasReverse() bool { return s.Direction == Directed && s.Reverse }

// Flags encodes the structure as a bit set.
func (s Structure) Flags() uint32 {
	var f uint32
	switch s.Direction {
	case Undirected:
		f |= FlagUndirected
	case Directed:
		f |= FlagDirected
	}
	if s.HasReverse() {
		f |= FlagReverse
	}
	if s.COO {
		f |= FlagCOO
	}
	return f
}

// StructureFromFlags decodes a bit set produced by [Structure.Flags].
func StructureFromFlags(f uint32) (Structure, error) {
	var s Structure
	switch {
	case f&FlagUndirected != 0 && f&FlagDirected != 0:
		return s, fmt.Errorf("structure flags %#x: both directions set", f)
	case f&FlagUndirected != 0:
		s.Direction = Undirected
	case f&FlagDirected != 0:
		s.Direction = Directed
	default:
		return s, fmt.Errorf("structure flags %#x: no direction set", f)
	}
	s.Reverse = f&FlagReverse != 0
	s.COO = f&FlagCOO != 0
	if s.Reverse && s.Direction != Directed {
		return s, fmt.Errorf("structure flags %#x: reverse on undirected graph", f)
	}
	return s, nil
}

// String describes the structure, e.g. "directed+reverse".
func (s Structure) String() string {
	out := s.Direction.String()
	if s.HasReverse() {
		out += "+reverse"
	}
	if s.COO {
		out += "+coo"
	}
	return out
}

// COO is a native edge list as produced by a reader.
//
// When HalfStored is set the list holds each undirected edge once and the
// converter mirrors it. HalfStored is only meaningful with Direction Undirected.
type COO[V Integer] struct {
	NumVertices uint64
	Direction   Direction
	HalfStored  bool
	Edges       []Edge[V]
}
