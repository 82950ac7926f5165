package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/csrgraph/pkg/graph"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// degreeGraph returns an undirected CSR whose out-degrees are [0, 1, 1, 2, 4]
// with a ring on vertex 4.
func degreeGraph(t *testing.T) *graph.Graph[int32, int32] {
	t.Helper()
	g, err := graph.FromCSR[int32, int32](
		[]int32{0, 0, 1, 2, 4, 8},
		[]int32{4, 4, 4, 4, 1, 2, 3, 4},
	)
	if err != nil {
		t.Fatalf("FromCSR error: %v", err)
	}
	return g
}

func TestDegreeDistribution(t *testing.T) {
	d := DegreeDistribution(degreeGraph(t))

	if d.Isolated != 1 {
		t.Errorf("Isolated = %d, want 1", d.Isolated)
	}
	want := []struct {
		vertices int
		edges    uint64
	}{{2, 2}, {1, 2}, {1, 4}}
	if len(d.Buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(d.Buckets), len(want))
	}
	for i, w := range want {
		b := d.Buckets[i]
		if b.Vertices != w.vertices || b.Edges != w.edges {
			t.Errorf("bucket %d = %d vertices / %d edges, want %d / %d", i, b.Vertices, b.Edges, w.vertices, w.edges)
		}
		if b.Degree() != 1<<i {
			t.Errorf("bucket %d degree = %d", i, b.Degree())
		}
	}
	if !approx(d.Buckets[0].VertexPercent, 40) || !approx(d.Buckets[2].EdgePercent, 50) {
		t.Errorf("percentages = %v / %v", d.Buckets[0].VertexPercent, d.Buckets[2].EdgePercent)
	}
	if d.Edges != 8 {
		t.Errorf("Edges = %d, want 8", d.Edges)
	}
}

func TestDegreeDistributionEmpty(t *testing.T) {
	g, err := graph.FromCSR[int32, int32]([]int32{0, 0, 0}, nil)
	if err != nil {
		t.Fatalf("FromCSR error: %v", err)
	}
	d := DegreeDistribution(g)
	if len(d.Buckets) != 0 || d.Isolated != 2 {
		t.Errorf("got %d buckets, %d isolated", len(d.Buckets), d.Isolated)
	}
}

func TestAnalyzeUndirected(t *testing.T) {
	a := Analyze(degreeGraph(t))

	if a.Directed {
		t.Error("expected undirected analysis")
	}
	if !approx(a.Average, 1.6) {
		t.Errorf("Average = %v, want 1.6", a.Average)
	}
	// degrees 0,1,1,2,4: variance = (2.56+0.36+0.36+0.16+5.76)/5 = 1.84
	if !approx(a.StdDev, math.Sqrt(1.84)) {
		t.Errorf("StdDev = %v", a.StdDev)
	}
	if !approx(a.CoeffVariation, math.Sqrt(1.84)/1.6) {
		t.Errorf("CoeffVariation = %v", a.CoeffVariation)
	}
	// sorted 0,1,1,2,4: 2*(0+2+3+8+20)/(5*8) - 6/5 = 0.45
	if !approx(a.Gini, 0.45) {
		t.Errorf("Gini = %v, want 0.45", a.Gini)
	}
	if !approx(a.Density, 8.0/25) {
		t.Errorf("Density = %v", a.Density)
	}
	if a.MaxOutDegree != 4 || a.Rings.N != 1 {
		t.Errorf("MaxOutDegree = %d, Rings = %d", a.MaxOutDegree, a.Rings.N)
	}
	if a.OutDegree0.N != 1 || a.OutDegree1.N != 2 {
		t.Errorf("OutDegree0 = %d, OutDegree1 = %d", a.OutDegree0.N, a.OutDegree1.N)
	}
}

func TestAnalyzeDirected(t *testing.T) {
	// 0 -> 0 (ring), 1 -> 2, 2 -> 3, 3 isolated on the out side
	coo := graph.COO[int32]{
		NumVertices: 5,
		Direction:   graph.Directed,
		Edges:       []graph.Edge[int32]{{Src: 0, Dst: 0}, {Src: 1, Dst: 2}, {Src: 2, Dst: 3}},
	}
	for _, reverse := range []bool{false, true} {
		g, err := graph.Build[int32, int32](coo, graph.Structure{Direction: graph.Directed, Reverse: reverse}, graph.Options{})
		if err != nil {
			t.Fatalf("Build error: %v", err)
		}
		a := Analyze(g)

		if !a.Directed {
			t.Fatal("expected directed analysis")
		}
		if a.Rings.N != 1 || !approx(a.Rings.Percent, 20) {
			t.Errorf("reverse=%v: Rings = %+v", reverse, a.Rings)
		}
		if a.OutDegree0.N != 2 || a.InDegree0.N != 2 {
			t.Errorf("reverse=%v: OutDegree0 = %d, InDegree0 = %d", reverse, a.OutDegree0.N, a.InDegree0.N)
		}
		if a.OutDegree1.N != 3 || a.InDegree1.N != 3 {
			t.Errorf("reverse=%v: OutDegree1 = %d, InDegree1 = %d", reverse, a.OutDegree1.N, a.InDegree1.N)
		}
		// vertex 4 is isolated, vertex 0 only has its ring
		if a.Leaves.N != 2 {
			t.Errorf("reverse=%v: Leaves = %d, want 2", reverse, a.Leaves.N)
		}
		if a.OutLeaves.N != 1 || a.InLeaves.N != 1 {
			t.Errorf("reverse=%v: OutLeaves = %d, InLeaves = %d", reverse, a.OutLeaves.N, a.InLeaves.N)
		}
		if a.MaxInDegree != 1 {
			t.Errorf("reverse=%v: MaxInDegree = %d", reverse, a.MaxInDegree)
		}
	}
}

func TestWriteReports(t *testing.T) {
	g := degreeGraph(t)

	var buf bytes.Buffer
	if err := WriteDistribution(&buf, DegreeDistribution(g)); err != nil {
		t.Fatalf("WriteDistribution error: %v", err)
	}
	if !strings.Contains(buf.String(), "        4  (2^2)              1   20.0 %") {
		t.Errorf("distribution output:\n%s", buf.String())
	}

	buf.Reset()
	if err := WriteAnalysis(&buf, Analyze(g)); err != nil {
		t.Fatalf("WriteAnalysis error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Gini Coeff:") || strings.Contains(out, "In-Degree = 0") {
		t.Errorf("analysis output:\n%s", out)
	}
}
