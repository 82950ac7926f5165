package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
)

// Format names an on-disk graph format.
type Format string

// Supported formats.
const (
	FormatAuto     Format = "auto"
	FormatMarket   Format = "market"
	FormatEdgeList Format = "edgelist"
	FormatBinary   Format = "binary"
)

// Formats lists the formats accepted by [ParseFormat].
var Formats = []string{string(FormatAuto), string(FormatMarket), string(FormatEdgeList), string(FormatBinary)}

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatAuto, nil
	}
	if err := errors.ValidateChoice("format", s, Formats...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// DetectFormat guesses the format of path from its extension, falling back
// to the first line of the file.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mtx":
		return FormatMarket, nil
	case ".csr", ".bin":
		return FormatBinary, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", openError(path, err)
	}
	defer f.Close()

	head := make([]byte, len("%%MatrixMarket"))
	n, _ := io.ReadFull(f, head)
	if string(head[:n]) == "%%MatrixMarket" {
		return FormatMarket, nil
	}
	return FormatEdgeList, nil
}

// ReadFile reads a text edge list from path. Binary files hold built
// graphs; use [ReadBinaryFile] for them.
func ReadFile[V graph.Integer](path string, format Format) (graph.COO[V], error) {
	if format == FormatAuto || format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return graph.COO[V]{}, err
		}
	}
	if format == FormatBinary {
		return graph.COO[V]{}, errors.New(errors.ErrCodeUnsupported, "%s is a binary graph, not an edge list", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return graph.COO[V]{}, openError(path, err)
	}
	defer f.Close()

	var coo graph.COO[V]
	switch format {
	case FormatMarket:
		coo, err = ReadMarket[V](f)
	default:
		coo, err = ReadEdgeList[V](f, graph.Directed)
	}
	if err != nil {
		return graph.COO[V]{}, errors.Wrap(codeOf(err), err, "read %s", path)
	}
	return coo, nil
}

// ReadMarket reads a Matrix Market coordinate file. General matrices are
// read as directed edge lists; symmetric matrices as undirected lists with
// each edge stored once. Entry values are ignored.
func ReadMarket[V graph.Integer](r io.Reader) (graph.COO[V], error) {
	sc := newScanner(r)
	if !sc.Scan() {
		return graph.COO[V]{}, invalid(1, "missing %%%%MatrixMarket banner")
	}
	banner := strings.Fields(strings.ToLower(sc.Text()))
	if len(banner) != 5 || banner[0] != "%%matrixmarket" {
		return graph.COO[V]{}, invalid(1, "missing %%%%MatrixMarket banner")
	}
	if banner[1] != "matrix" || banner[2] != "coordinate" {
		return graph.COO[V]{}, errors.New(errors.ErrCodeUnsupported, "market %s %s is not supported", banner[1], banner[2])
	}

	coo := graph.COO[V]{Direction: graph.Directed}
	switch banner[4] {
	case "general":
	case "symmetric":
		coo.Direction, coo.HalfStored = graph.Undirected, true
	default:
		return graph.COO[V]{}, errors.New(errors.ErrCodeUnsupported, "market symmetry %q is not supported", banner[4])
	}

	line := 1
	var nnz uint64
	sized := false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '%' {
			continue
		}
		fields := strings.Fields(text)
		if !sized {
			if len(fields) != 3 {
				return graph.COO[V]{}, invalid(line, "size line needs rows, columns and entries")
			}
			nums, err := parseUints(fields)
			if err != nil {
				return graph.COO[V]{}, invalid(line, "%v", err)
			}
			coo.NumVertices = max(nums[0], nums[1])
			nnz = nums[2]
			coo.Edges = make([]graph.Edge[V], 0, min(nnz, 1<<24))
			sized = true
			continue
		}
		if len(fields) < 2 {
			return graph.COO[V]{}, invalid(line, "entry needs row and column")
		}
		if coo.NumVertices == 0 {
			return graph.COO[V]{}, invalid(line, "entry in an empty matrix")
		}
		e, err := parseEdge[V](fields, 1, coo.NumVertices)
		if err != nil {
			return graph.COO[V]{}, lineError(line, err)
		}
		coo.Edges = append(coo.Edges, e)
	}
	if err := sc.Err(); err != nil {
		return graph.COO[V]{}, fmt.Errorf("scan: %w", err)
	}
	if !sized {
		return graph.COO[V]{}, invalid(line, "missing size line")
	}
	if uint64(len(coo.Edges)) != nnz {
		return graph.COO[V]{}, invalid(line, "expected %d entries, found %d", nnz, len(coo.Edges))
	}
	return coo, nil
}

// ReadEdgeList reads whitespace separated 0-indexed "src dst" pairs, one per
// line. Lines starting with '#' or '%' are comments; extra columns are
// ignored. The vertex count is one more than the largest id.
func ReadEdgeList[V graph.Integer](r io.Reader, dir graph.Direction) (graph.COO[V], error) {
	if dir == graph.DirectionUnset {
		dir = graph.Directed
	}
	coo := graph.COO[V]{Direction: dir}
	sc := newScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return graph.COO[V]{}, invalid(line, "edge needs source and destination")
		}
		e, err := parseEdge[V](fields, 0, 0)
		if err != nil {
			return graph.COO[V]{}, lineError(line, err)
		}
		coo.NumVertices = max(coo.NumVertices, uint64(e.Src)+1, uint64(e.Dst)+1)
		coo.Edges = append(coo.Edges, e)
	}
	if err := sc.Err(); err != nil {
		return graph.COO[V]{}, fmt.Errorf("scan: %w", err)
	}
	return coo, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return sc
}

// parseEdge parses the first two fields as vertex ids counted from base.
// A non-zero numVertices bounds the rebased ids.
func parseEdge[V graph.Integer](fields []string, base, numVertices uint64) (graph.Edge[V], error) {
	nums, err := parseUints(fields[:2])
	if err != nil {
		return graph.Edge[V]{}, err
	}
	for i, n := range nums {
		if n < base {
			return graph.Edge[V]{}, fmt.Errorf("vertex id %d below %d", n, base)
		}
		nums[i] = n - base
		if numVertices > 0 && nums[i] >= numVertices {
			return graph.Edge[V]{}, fmt.Errorf("vertex id %d out of range", n)
		}
		if nums[i] > graph.MaxOf[V]() {
			return graph.Edge[V]{}, errors.New(errors.ErrCodeOverflow, "vertex id %d does not fit in %s", n, graph.TypeName[V]())
		}
	}
	return graph.Edge[V]{Src: V(nums[0]), Dst: V(nums[1])}, nil
}

func parseUints(fields []string) ([]uint64, error) {
	out := make([]uint64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out[i] = n
	}
	return out, nil
}

func invalid(line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "line %d: %s", line, fmt.Sprintf(format, args...))
}

// lineError attaches a line number, keeping the code of coded errors.
func lineError(line int, err error) error {
	return errors.Wrap(codeOf(err), err, "line %d", line)
}

func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInvalidFormat
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}
