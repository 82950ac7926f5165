package graph

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDensity is the fraction of native edges kept by an
// undirected-to-directed conversion when no selector is configured.
const DefaultDensity = 0.5

// Options controls conversion side effects. None of them change the
// structure of the result; see [Structure] for that.
type Options struct {
	// Print reports reductions and phase progress to Logger at info level.
	Print bool

	// Sort orders the edge list by (source, destination) before the CSR is
	// filled, which makes every adjacency range sorted.
	Sort bool

	// Randomize relabels vertices through a uniformly random permutation.
	Randomize bool

	// Seed seeds the vertex permutation. Nil derives a seed from the clock,
	// so two builds of the same input differ.
	Seed *uint64

	// Selector picks the edges kept by an undirected-to-directed
	// conversion. Nil uses RandomSelector{Density: DefaultDensity}.
	Selector EdgeSelector

	// MemoryLimit bounds the bytes the allocator may reserve (0 = no limit).
	MemoryLimit uint64

	// Logger receives print-mode output. Nil discards it.
	Logger *log.Logger
}

// Seed returns a pointer to v, for use as [Options.Seed].
func Seed(v uint64) *uint64 { return &v }

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

func (o *Options) selector() EdgeSelector {
	if o.Selector == nil {
		return RandomSelector{Density: DefaultDensity}
	}
	return o.Selector
}

// newRand returns a PCG generator seeded from seed, or from the clock when
// seed is nil.
func newRand(seed *uint64) *rand.Rand {
	s := uint64(time.Now().UnixNano())
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}
