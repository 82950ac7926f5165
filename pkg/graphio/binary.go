package graphio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
)

// headerFixed is the size of the counts and flags after the type tag.
const headerFixed = 8 + 8 + 4

// TypeTag identifies the vertex and edge integer types of a binary file.
func TypeTag[V, E graph.Integer]() string {
	return graph.TypeName[V]() + graph.TypeName[E]()
}

// BinarySize returns the exact byte size of the binary image of g.
func BinarySize[V, E graph.Integer](g *graph.Graph[V, E]) int {
	nv, ne := g.NumVertices(), g.NumEdges()
	sv, se := graph.SizeOf[V](), graph.SizeOf[E]()
	views := 1
	if g.Structure().HasReverse() {
		views = 2
	}
	return 1 + len(TypeTag[V, E]()) + headerFixed + views*((nv+1)*se+ne*sv)
}

// MarshalBinary returns the binary image of g.
func MarshalBinary[V, E graph.Integer](g *graph.Graph[V, E]) ([]byte, error) {
	buf := make([]byte, BinarySize(g))
	if err := encode(buf, g); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBinary writes the binary image of g to w.
func WriteBinary[V, E graph.Integer](w io.Writer, g *graph.Graph[V, E]) error {
	buf, err := MarshalBinary(g)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write binary: %w", err)
	}
	return nil
}

// encode fills dst, which must be exactly BinarySize(g) bytes long.
func encode[V, E graph.Integer](dst []byte, g *graph.Graph[V, E]) error {
	if len(dst) != BinarySize(g) {
		return errors.New(errors.ErrCodeInternal, "binary buffer is %d bytes, want %d", len(dst), BinarySize(g))
	}
	tag := TypeTag[V, E]()
	dst[0] = byte(len(tag))
	n := 1 + copy(dst[1:], tag)

	binary.LittleEndian.PutUint64(dst[n:], uint64(g.NumVertices()))
	binary.LittleEndian.PutUint64(dst[n+8:], uint64(g.NumEdges()))
	binary.LittleEndian.PutUint32(dst[n+16:], g.Structure().Flags())
	n += headerFixed

	reverse := g.Structure().HasReverse()
	n += putInts(dst[n:], g.Out().Offsets)
	if reverse {
		n += putInts(dst[n:], g.In().Offsets)
	}
	n += putInts(dst[n:], g.Out().Edges)
	if reverse {
		putInts(dst[n:], g.In().Edges)
	}
	return nil
}

// UnmarshalBinary decodes a binary image. The returned graph copies data.
func UnmarshalBinary[V, E graph.Integer](data []byte) (*graph.Graph[V, E], error) {
	corrupt := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeCorruptFile, format, args...)
	}
	if len(data) < 1 {
		return nil, corrupt("empty binary graph")
	}
	tagLen := int(data[0])
	if len(data) < 1+tagLen+headerFixed {
		return nil, corrupt("truncated header")
	}
	tag := string(data[1 : 1+tagLen])
	if want := TypeTag[V, E](); tag != want {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "binary graph has types %q, want %q", tag, want)
	}
	n := 1 + tagLen
	nv := binary.LittleEndian.Uint64(data[n:])
	ne := binary.LittleEndian.Uint64(data[n+8:])
	s, err := graph.StructureFromFlags(binary.LittleEndian.Uint32(data[n+16:]))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptFile, err, "invalid structure")
	}
	n += headerFixed

	views := uint64(1)
	if s.HasReverse() {
		views = 2
	}
	sv, se := uint64(graph.SizeOf[V]()), uint64(graph.SizeOf[E]())
	if nv > graph.MaxOf[V]() || ne > graph.MaxOf[E]() {
		return nil, corrupt("counts V: %d E: %d do not fit %s", nv, ne, tag)
	}
	// bound the counts by the payload so the size below cannot wrap
	payload := uint64(len(data) - n)
	if nv >= payload/se || ne > payload/sv {
		return nil, corrupt("counts V: %d E: %d exceed a %d byte payload", nv, ne, payload)
	}
	if want := views * ((nv+1)*se + ne*sv); payload != want {
		return nil, corrupt("payload is %d bytes, want %d", payload, want)
	}

	var out, in graph.View[V, E]
	out.Offsets, n = getInts[E](data, n, int(nv+1))
	if s.HasReverse() {
		in.Offsets, n = getInts[E](data, n, int(nv+1))
	}
	out.Edges, n = getInts[V](data, n, int(ne))
	if s.HasReverse() {
		in.Edges, _ = getInts[V](data, n, int(ne))
	}
	return graph.FromViews(s, out, in)
}

// ReadBinary decodes a binary image from r.
func ReadBinary[V, E graph.Integer](r io.Reader) (*graph.Graph[V, E], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read binary: %w", err)
	}
	return UnmarshalBinary[V, E](data)
}

// ReadBinaryFile decodes the binary graph stored at path.
func ReadBinaryFile[V, E graph.Integer](path string) (*graph.Graph[V, E], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalBinary[V, E](data)
}

func putInts[T graph.Integer](dst []byte, xs []T) int {
	if graph.SizeOf[T]() == 4 {
		for i, x := range xs {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(x))
		}
		return 4 * len(xs)
	}
	for i, x := range xs {
		binary.LittleEndian.PutUint64(dst[8*i:], uint64(x))
	}
	return 8 * len(xs)
}

func getInts[T graph.Integer](src []byte, off, count int) ([]T, int) {
	xs := make([]T, count)
	if graph.SizeOf[T]() == 4 {
		for i := range xs {
			xs[i] = T(binary.LittleEndian.Uint32(src[off+4*i:]))
		}
		return xs, off + 4*count
	}
	for i := range xs {
		xs[i] = T(binary.LittleEndian.Uint64(src[off+8*i:]))
	}
	return xs, off + 8*count
}
