package stats

import (
	"math"
	mathbits "math/bits"
	"slices"

	"github.com/soniakeys/bits"

	"github.com/matzehuels/csrgraph/pkg/graph"
)

// Bucket holds the vertices whose out-degree d satisfies 2^Exponent <= d < 2^(Exponent+1).
type Bucket struct {
	Exponent      int
	Vertices      int
	VertexPercent float64
	Edges         uint64 // sum of the out-degrees in the bucket
	EdgePercent   float64
}

// Degree returns the lower bound 2^Exponent of the bucket.
func (b Bucket) Degree() uint64 { return 1 << b.Exponent }

// Distribution is the log2 out-degree distribution of a graph.
type Distribution struct {
	// Buckets runs from exponent 0 up to the highest non-empty bucket.
	Buckets []Bucket
	// Isolated counts the vertices of out-degree 0, which fall in no bucket.
	Isolated int
	// Edges is the total of all bucket edge sums.
	Edges uint64
}

// DegreeDistribution buckets every vertex of g by the base-2 logarithm of
// its out-degree. There is one potential bucket per bit of the degree type.
func DegreeDistribution[V, E graph.Integer](g *graph.Graph[V, E]) Distribution {
	nv, ne := g.NumVertices(), g.NumEdges()
	buckets := make([]Bucket, graph.SizeOf[E]()*8)
	for i := range buckets {
		buckets[i].Exponent = i
	}

	var d Distribution
	top := -1
	for _, deg := range g.Out().Degrees {
		if deg == 0 {
			d.Isolated++
			continue
		}
		i := mathbits.Len64(uint64(deg)) - 1
		buckets[i].Vertices++
		buckets[i].Edges += uint64(deg)
		d.Edges += uint64(deg)
		top = max(top, i)
	}

	d.Buckets = buckets[:top+1]
	for i := range d.Buckets {
		b := &d.Buckets[i]
		b.VertexPercent = percent(uint64(b.Vertices), uint64(nv))
		b.EdgePercent = percent(b.Edges, uint64(ne))
	}
	return d
}

// Count is a vertex count with its share of all vertices.
type Count struct {
	N       int
	Percent float64
}

// Analysis summarizes the degree sequence and structure of a graph.
type Analysis struct {
	Directed bool

	Average        float64 // edges per vertex
	StdDev         float64 // population standard deviation of the out-degrees
	CoeffVariation float64
	Gini           float64
	Density        float64 // E / V²

	MaxOutDegree uint64
	MaxInDegree  uint64

	Rings      Count // vertices with a self-loop
	OutDegree0 Count
	InDegree0  Count
	OutDegree1 Count
	InDegree1  Count
	Leaves     Count // isolated vertices and vertices whose only edge is a self-loop
	OutLeaves  Count
	InLeaves   Count
}

// Analyze computes the degree analysis of g.
func Analyze[V, E graph.Integer](g *graph.Graph[V, E]) Analysis {
	nv, ne := g.NumVertices(), g.NumEdges()
	out := g.Out()
	in := inDegrees(g)

	a := Analysis{Directed: g.IsDirected()}
	if nv > 0 {
		a.Average = float64(ne) / float64(nv)
		a.Density = float64(ne) / (float64(nv) * float64(nv))
	}
	a.StdDev = stdDev(out.Degrees, a.Average)
	if a.Average != 0 {
		a.CoeffVariation = a.StdDev / math.Abs(a.Average)
	}
	a.Gini = gini(out.Degrees)

	rings := bits.New(nv)
	for v := 0; v < nv; v++ {
		if slices.Contains(out.Neighbors(V(v)), V(v)) {
			rings.SetBit(v, 1)
		}
	}

	leafDegree := uint64(2)
	if a.Directed {
		leafDegree = 1
	}
	var outDeg0, inDeg0, outDeg1, inDeg1, leaves, outLeaves, inLeaves int
	for v := 0; v < nv; v++ {
		od, id := uint64(out.Degrees[v]), uint64(in[v])
		ring := rings.Bit(v) == 1
		a.MaxOutDegree = max(a.MaxOutDegree, od)
		a.MaxInDegree = max(a.MaxInDegree, id)
		if od == 0 {
			outDeg0++
		}
		if od == 1 {
			outDeg1++
		}
		if id == 0 {
			inDeg0++
		}
		if id == 1 {
			inDeg1++
		}
		if (od == 0 && id == 0) || (od == 1 && id == 1 && ring) {
			leaves++
		}
		if ring && od == leafDegree {
			outLeaves++
		}
		if ring && id == leafDegree {
			inLeaves++
		}
	}

	count := func(n int) Count { return Count{N: n, Percent: percent(uint64(n), uint64(nv))} }
	a.Rings = count(rings.OnesCount())
	a.OutDegree0, a.InDegree0 = count(outDeg0), count(inDeg0)
	a.OutDegree1, a.InDegree1 = count(outDeg1), count(inDeg1)
	a.Leaves = count(leaves)
	a.OutLeaves, a.InLeaves = count(outLeaves), count(inLeaves)
	return a
}

// inDegrees returns the in-degree of every vertex, counting them from the
// out-adjacency when g has no in-view.
func inDegrees[V, E graph.Integer](g *graph.Graph[V, E]) []E {
	if g.HasInView() {
		return g.In().Degrees
	}
	in := make([]E, g.NumVertices())
	for _, w := range g.Out().Edges {
		in[w]++
	}
	return in
}

func stdDev[E graph.Integer](xs []E, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := float64(x) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// gini returns the Gini coefficient of xs: 0 when all values are equal,
// approaching 1 when one value holds the whole total.
func gini[E graph.Integer](xs []E) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	var total, weighted float64
	for i, x := range sorted {
		total += float64(x)
		weighted += float64(i+1) * float64(x)
	}
	if total == 0 {
		return 0
	}
	return 2*weighted/(float64(n)*total) - float64(n+1)/float64(n)
}

func percent(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
