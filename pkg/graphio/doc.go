// Package graphio reads edge lists and writes built CSR graphs.
//
// # Formats
//
// Three export formats are supported, all read-only over a built graph:
//
//   - Binary: a little-endian image of the CSR arrays (see below), written
//     through a memory-mapped file on unix systems
//   - Market: a Matrix Market coordinate pattern file, one 1-indexed
//     "row col" line per edge
//   - Dimacs10th: a "V E 100" header followed by one line of 1-indexed
//     neighbors per vertex
//
// Edge lists are read from Matrix Market files (general or symmetric) and
// from whitespace separated "src dst" lists. Both produce a [graph.COO].
// Binary files are read back directly into a [graph.Graph].
//
// # Binary Layout
//
//	tag length     uint8
//	type tag       e.g. "int32int64" (vertex type, then edge type)
//	vertex count   uint64
//	edge count     uint64
//	flags          uint32 (see graph.Structure.Flags)
//	out offsets    E × (V+1)
//	in offsets     E × (V+1), only with a reverse view
//	out edges      V × E
//	in edges       V × E, only with a reverse view
//
// Degrees are not stored; readers derive them from the offsets. A file
// written with one pair of integer types can only be read with the same
// pair.
//
// # Usage
//
//	coo, err := graphio.ReadFile[int32]("web.mtx", graphio.FormatAuto)
//	if err != nil {
//	    return err
//	}
//	g, err := graph.Build[int32, int32](coo, graph.Structure{}, graph.Options{})
//	if err != nil {
//	    return err
//	}
//	err = graphio.WriteBinaryFile("web.csr", g)
package graphio
