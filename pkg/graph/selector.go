package graph

import (
	"fmt"

	"github.com/soniakeys/bits"
)

// EdgeSelector builds the selection vector of an undirected-to-directed
// conversion: bit i set keeps native edge i.
type EdgeSelector interface {
	Select(n int) (bits.Bits, error)
}

// RandomSelector sets each bit independently with probability Density.
// It owns its randomness so that edge sampling can be reproduced without
// fixing the vertex permutation, and vice versa.
type RandomSelector struct {
	Density float64
	Seed    *uint64 // nil seeds from the clock
}

// Select returns a random selection vector of length n.
func (s RandomSelector) Select(n int) (bits.Bits, error) {
	if s.Density <= 0 || s.Density > 1 {
		return bits.Bits{}, fmt.Errorf("density must be in (0, 1], got %g", s.Density)
	}
	b := bits.New(n)
	rng := newRand(s.Seed)
	for i := 0; i < n; i++ {
		if rng.Float64() < s.Density {
			b.SetBit(i, 1)
		}
	}
	return b, nil
}

// MaskSelector returns a fixed selection vector.
type MaskSelector struct {
	Mask bits.Bits
}

// Select returns the configured mask; its length must equal n.
func (s MaskSelector) Select(n int) (bits.Bits, error) {
	if s.Mask.Num != n {
		return bits.Bits{}, fmt.Errorf("mask has %d bits, want %d", s.Mask.Num, n)
	}
	return s.Mask, nil
}
