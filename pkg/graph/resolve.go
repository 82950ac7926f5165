package graph

// Mode is the structural conversion applied while building a graph.
// It is resolved once by [Resolve] and switched on explicitly afterwards.
type Mode uint8

const (
	// ModeIdentity keeps the native direction, without an in-view.
	ModeIdentity Mode = iota
	// ModeDirectedToUndirected mirrors every edge and removes exact duplicates.
	ModeDirectedToUndirected
	// ModeUndirectedToDirected keeps a random subset of the native edges.
	ModeUndirectedToDirected
	// ModeIdentityWithReverse keeps the native direction and builds an
	// independent in-view.
	ModeIdentityWithReverse
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDirectedToUndirected:
		return "directed-to-undirected"
	case ModeUndirectedToDirected:
		return "undirected-to-directed"
	case ModeIdentityWithReverse:
		return "identity-with-reverse"
	default:
		return "identity"
	}
}

// Converts reports whether the mode changes the direction of the input.
func (m Mode) Converts() bool {
	return m == ModeDirectedToUndirected || m == ModeUndirectedToDirected
}

// Resolve classifies the conversion from the native direction of an edge
// list to the requested structure. An unset requested direction adopts the
// native one. The returned structure is the final one: its direction is
// always set and Reverse is cleared on undirected graphs.
//
// Resolve is pure; native must be Undirected or Directed.
func Resolve(native Direction, requested Structure) (Mode, Structure) {
	final := requested
	if final.Direction == DirectionUnset {
		final.Direction = native
	}
	if final.Direction == Undirected {
		final.Reverse = false
	}

	switch {
	case native == Undirected && final.Direction == Directed:
		return ModeUndirectedToDirected, final
	case native == Directed && final.Direction == Undirected:
		return ModeDirectedToUndirected, final
	case final.HasReverse():
		return ModeIdentityWithReverse, final
	default:
		return ModeIdentity, final
	}
}
