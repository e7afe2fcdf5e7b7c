// Package rng provides the explicit random source threaded through the engine.
//
// Every function that needs randomness takes an *RNG argument. There is no
// package-level generator, so a cloned game state paired with a forked RNG
// can be simulated independently of the original.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// golden is the increment used to derive the second PCG word from a seed.
const golden = 0x9e3779b97f4a7c15

// RNG is a seedable, clonable pseudo-random generator.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// New returns a generator seeded deterministically from seed.
func New(seed uint64) *RNG {
	src := rand.NewPCG(seed, seed^golden)
	return &RNG{src: src, r: rand.New(src)}
}

// Clone returns a generator with an identical, independent state. The clone
// produces the same sequence as the original from this point on.
func (g *RNG) Clone() *RNG {
	src := *g.src
	return &RNG{src: &src, r: rand.New(&src)}
}

// Fork returns a new generator seeded from the next value of g. Forking
// advances g, so successive forks diverge from each other.
func (g *RNG) Fork() *RNG {
	return New(g.r.Uint64())
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (g *RNG) IntN(n int) int {
	return g.r.IntN(n)
}

// IntRange returns a uniform integer in [lo, hi].
func (g *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Uint64 returns a uniform 64-bit value.
func (g *RNG) Uint64() uint64 {
	return g.r.Uint64()
}

// Weighted draws index i with probability weights[i] / sum(weights).
// Negative weights are treated as zero. It panics if no weight is positive.
func (g *RNG) Weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		panic(fmt.Sprintf("rng: weighted draw over non-positive total %d", total))
	}
	sample := g.r.IntN(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if sample < w {
			return i
		}
		sample -= w
	}
	return len(weights) - 1
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
