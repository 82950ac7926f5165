package graph

import (
	"fmt"
	"math/rand/v2"
)

// NewPermutation returns a uniformly random permutation of 0..n-1.
func NewPermutation[V Integer](n int, rng *rand.Rand) []V {
	p := make([]V, n)
	for i := range p {
		p[i] = V(i)
	}
	rng.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// SeededPermutation returns the permutation a build with Randomize and
// the given seed applies to n vertices.
func SeededPermutation[V Integer](n int, seed uint64) []V {
	return NewPermutation[V](n, newRand(&seed))
}

// InversePermutation returns q such that q[p[i]] == i.
func InversePermutation[V Integer](p []V) ([]V, error) {
	q := make([]V, len(p))
	seen := make([]bool, len(p))
	for i, v := range p {
		if uint64(v) >= uint64(len(p)) || seen[v] {
			return nil, fmt.Errorf("not a permutation: entry %d = %d", i, v)
		}
		seen[v] = true
		q[v] = V(i)
	}
	return q, nil
}

// RemapEdges replaces both endpoints of every edge by their image under p.
func RemapEdges[V Integer](edges []Edge[V], p []V) {
	for i := range edges {
		edges[i].Src = p[edges[i].Src]
		edges[i].Dst = p[edges[i].Dst]
	}
}
