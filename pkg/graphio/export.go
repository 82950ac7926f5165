package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/csrgraph/pkg/graph"
)

// MarketHeader is the banner line of every Market file this package writes.
const MarketHeader = "%%MatrixMarket matrix coordinate pattern general"

// WriteBinaryFile writes the binary image of g to path. The image is
// written into a temporary file in the same directory and renamed into
// place, so readers never observe a partial file.
func WriteBinaryFile[V, E graph.Integer](path string, g *graph.Graph[V, E]) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	err := writeMapped(tmp, BinarySize(g), func(dst []byte) error {
		return encode(dst, g)
	})
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// WriteMarket writes g as a Matrix Market pattern matrix: a V × V header
// with E entries, then one 1-indexed "src dst" line per out-edge.
func WriteMarket[V, E graph.Integer](w io.Writer, g *graph.Graph[V, E]) error {
	bw := bufio.NewWriter(w)
	nv := g.NumVertices()
	fmt.Fprintf(bw, "%s\n%d %d %d\n", MarketHeader, nv, nv, g.NumEdges())

	out := g.Out()
	line := make([]byte, 0, 48)
	for u := 0; u < nv; u++ {
		for _, v := range out.Neighbors(V(u)) {
			line = strconv.AppendUint(line[:0], uint64(u)+1, 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(v)+1, 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("write market: %w", err)
			}
		}
	}
	return bw.Flush()
}

// WriteDimacs10th writes g in the DIMACS 10th challenge format: a
// "V E 100" header, then the 1-indexed neighbors of each vertex on one line.
func WriteDimacs10th[V, E graph.Integer](w io.Writer, g *graph.Graph[V, E]) error {
	bw := bufio.NewWriter(w)
	nv := g.NumVertices()
	fmt.Fprintf(bw, "%d %d 100\n", nv, g.NumEdges())

	out := g.Out()
	line := make([]byte, 0, 256)
	for u := 0; u < nv; u++ {
		line = line[:0]
		for i, v := range out.Neighbors(V(u)) {
			if i > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(v)+1, 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write dimacs: %w", err)
		}
	}
	return bw.Flush()
}

// ExportMarket writes g to a Market file at path.
func ExportMarket[V, E graph.Integer](path string, g *graph.Graph[V, E]) error {
	return exportText(path, func(w io.Writer) error { return WriteMarket(w, g) })
}

// ExportDimacs10th writes g to a Dimacs10th file at path.
func ExportDimacs10th[V, E graph.Integer](path string, g *graph.Graph[V, E]) error {
	return exportText(path, func(w io.Writer) error { return WriteDimacs10th(w, g) })
}

func exportText(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
