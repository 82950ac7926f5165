package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/csrgraph/pkg/errors"
	"github.com/matzehuels/csrgraph/pkg/graph"
)

func build(t *testing.T, s graph.Structure) *graph.Graph[int32, int32] {
	t.Helper()
	coo := graph.COO[int32]{
		NumVertices: 3,
		Direction:   graph.Directed,
		Edges:       []graph.Edge[int32]{{Src: 0, Dst: 1}, {Src: 1, Dst: 2}, {Src: 2, Dst: 2}},
	}
	g, err := graph.Build[int32, int32](coo, s, graph.Options{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return g
}

func TestToDOTDirected(t *testing.T) {
	src, err := ToDOT(build(t, graph.Structure{}), Options{})
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}
	for _, want := range []string{"digraph G {", "  0 -> 1;\n", "  1 -> 2;\n", "  2 -> 2;\n", `2 [label="2", fillcolor=lightgrey]`} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in:\n%s", want, src)
		}
	}
}

func TestToDOTUndirected(t *testing.T) {
	src, err := ToDOT(build(t, graph.Structure{Direction: graph.Undirected}), Options{Detailed: true})
	if err != nil {
		t.Fatalf("ToDOT error: %v", err)
	}
	if !strings.HasPrefix(src, "graph G {") {
		t.Errorf("expected undirected graph:\n%s", src)
	}
	if strings.Count(src, "--") != 3 {
		t.Errorf("each undirected edge should be drawn once:\n%s", src)
	}
	if !strings.Contains(src, `label="1\nout: 2\nin: 2"`) {
		t.Errorf("missing detailed label:\n%s", src)
	}
}

func TestToDOTLimit(t *testing.T) {
	_, err := ToDOT(build(t, graph.Structure{}), Options{MaxVertices: 2})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected UNSUPPORTED, got %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("unchanged input expected, got %s", got)
	}
}
