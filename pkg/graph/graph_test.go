package graph

import (
	"bytes"
	"slices"
	"testing"

	"github.com/soniakeys/bits"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

type e32 = Edge[int32]

func coo(nv uint64, dir Direction, edges ...e32) COO[int32] {
	return COO[int32]{NumVertices: nv, Direction: dir, Edges: edges}
}

func mustBuild(t *testing.T, c COO[int32], s Structure, opts Options) *Graph[int32, int32] {
	t.Helper()
	g, err := Build[int32, int32](c, s, opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	return g
}

func checkInvariants(t *testing.T, g *Graph[int32, int32]) {
	t.Helper()
	views := []View[int32, int32]{g.Out()}
	if g.HasInView() {
		views = append(views, g.In())
	}
	for _, v := range views {
		if v.Offsets[0] != 0 {
			t.Errorf("offset[0] = %d, want 0", v.Offsets[0])
		}
		if int(v.Offsets[g.NumVertices()]) != g.NumEdges() {
			t.Errorf("offset[V] = %d, want %d", v.Offsets[g.NumVertices()], g.NumEdges())
		}
		var sum int32
		for u := 0; u < g.NumVertices(); u++ {
			if v.Offsets[u+1] < v.Offsets[u] {
				t.Errorf("offsets decrease at %d", u)
			}
			if v.Offsets[u+1]-v.Offsets[u] != v.Degrees[u] {
				t.Errorf("degree[%d] = %d, offsets span %d", u, v.Degrees[u], v.Offsets[u+1]-v.Offsets[u])
			}
			sum += v.Degrees[u]
		}
		if int(sum) != g.NumEdges() {
			t.Errorf("sum of degrees = %d, want %d", sum, g.NumEdges())
		}
	}
}

func TestBuildDirected(t *testing.T) {
	c := coo(3, Directed, e32{0, 1}, e32{1, 2}, e32{0, 2})
	g := mustBuild(t, c, Structure{}, Options{})
	checkInvariants(t, g)

	if !g.IsDirected() || g.HasInView() {
		t.Fatalf("structure = %s, in-view %v", g.Structure(), g.HasInView())
	}
	out := g.Out()
	if want := []int32{0, 2, 3, 3}; !slices.Equal(out.Offsets, want) {
		t.Errorf("offsets = %v, want %v", out.Offsets, want)
	}
	if want := []int32{1, 2, 2}; !slices.Equal(out.Edges, want) {
		t.Errorf("edges = %v, want %v", out.Edges, want)
	}
	if !g.In().IsZero() {
		t.Error("directed graph without reverse should have no in-view")
	}
	if g.COO() != nil {
		t.Error("COO should be dropped unless retained")
	}
}

func TestBuildDirectedReverse(t *testing.T) {
	c := coo(3, Directed, e32{0, 1}, e32{1, 2}, e32{0, 2})
	g := mustBuild(t, c, Structure{Direction: Directed, Reverse: true}, Options{})
	checkInvariants(t, g)

	if g.SharesAdjacency() {
		t.Fatal("reverse view must be independent")
	}
	in := g.In()
	if want := []int32{0, 0, 1, 3}; !slices.Equal(in.Offsets, want) {
		t.Errorf("in offsets = %v, want %v", in.Offsets, want)
	}
	if want := []int32{0, 1, 0}; !slices.Equal(in.Edges, want) {
		t.Errorf("in edges = %v, want %v", in.Edges, want)
	}
	if want := []int32{0, 1, 2}; !slices.Equal(in.Degrees, want) {
		t.Errorf("in degrees = %v, want %v", in.Degrees, want)
	}
}

func TestBuildDirectedToUndirected(t *testing.T) {
	c := coo(3, Directed, e32{0, 1}, e32{1, 0}, e32{2, 2})
	g := mustBuild(t, c, Structure{Direction: Undirected, COO: true}, Options{Sort: true})
	checkInvariants(t, g)

	if g.NumEdges() != 3 {
		t.Fatalf("NumEdges = %d, want 3", g.NumEdges())
	}
	if !g.SharesAdjacency() {
		t.Error("undirected graph must share its adjacency")
	}
	out := g.Out()
	if want := []int32{1, 0, 2}; !slices.Equal(out.Edges, want) {
		t.Errorf("edges = %v, want %v", out.Edges, want)
	}
	if &g.In().Edges[0] != &out.Edges[0] {
		t.Error("in and out must reference the same buffer")
	}

	// running duplicate removal again removes nothing
	again := dedup(slices.Clone(g.COO()))
	if len(again) != len(g.COO()) {
		t.Errorf("second dedup removed %d edges", len(g.COO())-len(again))
	}
}

func TestBuildUndirectedIdentity(t *testing.T) {
	c := coo(3, Undirected, e32{0, 1}, e32{1, 0}, e32{2, 2})
	g := mustBuild(t, c, Structure{}, Options{})
	checkInvariants(t, g)

	if g.NumEdges() != 3 {
		t.Errorf("NumEdges = %d, want 3", g.NumEdges())
	}
	if !g.IsUndirected() || !g.SharesAdjacency() {
		t.Error("expected undirected graph with shared adjacency")
	}
	if !g.HasEdge(2, 2) {
		t.Error("self-loop should survive")
	}
}

func TestBuildHalfStored(t *testing.T) {
	c := coo(3, Undirected, e32{0, 1}, e32{1, 2}, e32{2, 2})
	c.HalfStored = true
	g := mustBuild(t, c, Structure{}, Options{})
	checkInvariants(t, g)

	out := g.Out()
	if want := []int32{0, 1, 3, 5}; !slices.Equal(out.Offsets, want) {
		t.Errorf("offsets = %v, want %v", out.Offsets, want)
	}
	if want := []int32{1, 2, 0, 2, 1}; !slices.Equal(out.Edges, want) {
		t.Errorf("edges = %v, want %v", out.Edges, want)
	}
}

func TestBuildUndirectedToDirected(t *testing.T) {
	c := coo(3, Undirected, e32{0, 1}, e32{1, 0}, e32{1, 2}, e32{2, 1})

	mask := bits.New(4)
	mask.SetBit(0, 1)
	mask.SetBit(3, 1)
	g := mustBuild(t, c, Structure{Direction: Directed, COO: true}, Options{Selector: MaskSelector{Mask: mask}})
	checkInvariants(t, g)

	if want := []e32{{0, 1}, {2, 1}}; !slices.Equal(g.COO(), want) {
		t.Errorf("COO = %v, want %v", g.COO(), want)
	}

	for seed := uint64(0); seed < 8; seed++ {
		sel := RandomSelector{Density: 0.5, Seed: Seed(seed)}
		g := mustBuild(t, c, Structure{Direction: Directed}, Options{Selector: sel})
		if g.NumEdges() > len(c.Edges) {
			t.Errorf("seed %d: %d edges exceed native %d", seed, g.NumEdges(), len(c.Edges))
		}
	}
}

func TestBuildSort(t *testing.T) {
	c := coo(3, Directed, e32{2, 0}, e32{0, 2}, e32{0, 1})
	g := mustBuild(t, c, Structure{}, Options{Sort: true})
	if want := []int32{1, 2, 0}; !slices.Equal(g.Out().Edges, want) {
		t.Errorf("edges = %v, want %v", g.Out().Edges, want)
	}
}

func TestRandomizeRoundTrip(t *testing.T) {
	orig := []e32{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}, {4, 4}}
	c := coo(5, Directed, orig...)
	g := mustBuild(t, c, Structure{COO: true}, Options{Randomize: true, Seed: Seed(42)})
	checkInvariants(t, g)

	inv, err := InversePermutation(g.Permutation())
	if err != nil {
		t.Fatalf("InversePermutation error: %v", err)
	}
	restored := slices.Clone(g.COO())
	RemapEdges(restored, inv)

	want := slices.Clone(orig)
	slices.SortFunc(want, CompareEdges[int32])
	slices.SortFunc(restored, CompareEdges[int32])
	if !slices.Equal(restored, want) {
		t.Errorf("restored = %v, want %v", restored, want)
	}

	// same seed, same graph
	h := mustBuild(t, c, Structure{}, Options{Randomize: true, Seed: Seed(42)})
	if !slices.Equal(g.Out().Edges, h.Out().Edges) {
		t.Error("seeded randomization should be reproducible")
	}
}

func TestSeededPermutation(t *testing.T) {
	c := coo(5, Directed, e32{0, 1}, e32{1, 2}, e32{3, 4})
	g := mustBuild(t, c, Structure{}, Options{Randomize: true, Seed: Seed(42)})

	p := SeededPermutation[int32](5, 42)
	if !slices.Equal(p, g.Permutation()) {
		t.Errorf("SeededPermutation = %v, build applied %v", p, g.Permutation())
	}

	h := mustBuild(t, c, Structure{}, Options{})
	if err := h.SetPermutation(p); err != nil {
		t.Fatalf("SetPermutation error: %v", err)
	}
	if !slices.Equal(h.Permutation(), p) {
		t.Errorf("Permutation() = %v, want %v", h.Permutation(), p)
	}
	if err := h.SetPermutation([]int32{0, 1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("short permutation: got %v, want INVALID_INPUT", err)
	}
	if err := h.SetPermutation([]int32{0, 0, 1, 2, 3}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("repeated entry: got %v, want INVALID_INPUT", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
		code errors.Code
	}{
		{
			name: "vertex out of range",
			run: func() error {
				_, err := Build[int32, int32](coo(2, Directed, e32{0, 5}), Structure{}, Options{})
				return err
			},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "negative vertex",
			run: func() error {
				_, err := Build[int32, int32](coo(2, Directed, e32{-1, 0}), Structure{}, Options{})
				return err
			},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "vertex overflow",
			run: func() error {
				_, err := NewBuilder[int32, int64](1<<31+1, 0, Directed, false, Structure{}, Options{})
				return err
			},
			code: errors.ErrCodeOverflow,
		},
		{
			name: "edge overflow",
			run: func() error {
				_, err := NewBuilder[int32, int32](4, 1<<32, Directed, false, Structure{}, Options{})
				return err
			},
			code: errors.ErrCodeOverflow,
		},
		{
			name: "mirrored edge overflow",
			run: func() error {
				_, err := NewBuilder[int32, int32](4, 1<<30+1, Directed, false, Structure{Direction: Undirected}, Options{})
				return err
			},
			code: errors.ErrCodeOverflow,
		},
		{
			name: "memory limit",
			run: func() error {
				_, err := NewBuilder[int32, int32](1000, 1000, Directed, false, Structure{}, Options{MemoryLimit: 64})
				return err
			},
			code: errors.ErrCodeOutOfMemory,
		},
		{
			name: "bad native direction",
			run: func() error {
				_, err := NewBuilder[int32, int32](1, 0, DirectionUnset, false, Structure{}, Options{})
				return err
			},
			code: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestSizeErrorReportsCounts(t *testing.T) {
	_, err := NewBuilder[int32, int32](10, 20, Directed, false, Structure{}, Options{MemoryLimit: 1})
	if !errors.IsFatal(err) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	var se *errors.SizeError
	if !asSizeError(err, &se) || se.Vertices != 10 || se.Edges != 20 {
		t.Errorf("size error = %+v", se)
	}
}

func asSizeError(err error, target **errors.SizeError) bool {
	for err != nil {
		if se, ok := err.(*errors.SizeError); ok {
			*target = se
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func TestBuilderReuse(t *testing.T) {
	b, err := NewBuilder[int32, int32](2, 1, Directed, false, Structure{}, Options{})
	if err != nil {
		t.Fatalf("NewBuilder error: %v", err)
	}
	b.Edges()[0] = e32{0, 1}
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Error("second Build should fail")
	}
}

func TestRelease(t *testing.T) {
	for _, s := range []Structure{
		{Direction: Undirected},
		{Direction: Directed},
		{Direction: Directed, Reverse: true},
	} {
		g := mustBuild(t, coo(2, Directed, e32{0, 1}), s, Options{})
		g.Release()
		if !g.Out().IsZero() || !g.In().IsZero() {
			t.Errorf("%s: views should be empty after Release", s)
		}
		if err := g.Validate(); err == nil {
			t.Errorf("%s: Validate should fail after Release", s)
		}
		g.Release()
	}
}

func TestFromCSR(t *testing.T) {
	g, err := FromCSR[int32, int32]([]int32{0, 1, 2, 2}, []int32{1, 0})
	if err != nil {
		t.Fatalf("FromCSR error: %v", err)
	}
	checkInvariants(t, g)
	if !g.SharesAdjacency() || g.NumVertices() != 3 || g.NumEdges() != 2 {
		t.Errorf("unexpected graph: V=%d E=%d", g.NumVertices(), g.NumEdges())
	}

	if _, err := FromCSR[int32, int32]([]int32{0, 2, 1}, []int32{1}); err == nil {
		t.Error("expected error for decreasing offsets")
	}
	if _, err := FromCSR[int32, int32](nil, nil); err == nil {
		t.Error("expected error for empty offsets")
	}
}

func TestPrint(t *testing.T) {
	g := mustBuild(t, coo(3, Directed, e32{0, 1}, e32{1, 0}, e32{2, 2}), Structure{Direction: Undirected}, Options{})

	var buf bytes.Buffer
	if err := g.Print(&buf); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	want := "[ 0 ] : 1\n[ 1 ] : 0\n[ 2 ] : 2\n"
	if buf.String() != want {
		t.Errorf("Print = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := g.PrintRaw(&buf); err != nil {
		t.Fatalf("PrintRaw error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Out-Offsets  [0 1 2 3]")) {
		t.Errorf("PrintRaw = %q", buf.String())
	}
}
