// Package graph converts edge lists (COO) into compressed sparse row (CSR)
// graphs.
//
// # Overview
//
// A build runs in three steps:
//
//  1. [Resolve] classifies the conversion from the native direction of the
//     edge list to the requested [Structure] into a [Mode].
//  2. [NewBuilder] sizes every buffer for that mode and checks the counts
//     against the vertex and edge integer widths. The returned [Builder]
//     exposes the edge buffer for a reader to fill.
//  3. [Builder.Build] reduces the edge list in place (mirroring, duplicate
//     removal, random subset selection, vertex relabeling, sorting) and
//     fills the CSR arrays by counting, prefix sum and bucket fill.
//
// [Build] runs all three steps over an existing [COO].
//
// # Ownership
//
// A [Graph] owns its adjacency arrays. Undirected graphs have one adjacency
// that [Graph.Out] and [Graph.In] both return; directed graphs built with
// Reverse own a second, independent one. [View] values never own anything
// and must not be used after [Graph.Release].
//
// # Integer widths
//
// Vertex ids (V) and edge offsets (E) are independent type parameters. The
// degree type is E. Counts that do not fit fail with an OVERFLOW error
// before anything is allocated:
//
//	g, err := graph.Build[int32, int64](coo, graph.Structure{Direction: graph.Undirected}, graph.Options{})
//	if errors.Is(err, errors.ErrCodeOverflow) {
//	    // retry with wider types
//	}
//
// # Randomness
//
// Vertex relabeling and the undirected-to-directed edge sampling use
// separate generators. Both are seeded from the clock unless a seed is
// given through [Options.Seed] or [RandomSelector.Seed].
package graph
