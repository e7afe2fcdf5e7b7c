package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneReplaysSameSequence(t *testing.T) {
	g := New(42)
	g.IntN(10)
	c := g.Clone()
	for i := 0; i < 100; i++ {
		require.Equal(t, g.Uint64(), c.Uint64(), "draw %d", i)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(7)
	c := g.Clone()
	for i := 0; i < 5; i++ {
		g.Uint64()
	}
	fresh := New(7)
	assert.Equal(t, fresh.Uint64(), c.Uint64(), "advancing the original must not move the clone")
}

func TestForkDiverges(t *testing.T) {
	g := New(1)
	a := g.Fork()
	b := g.Fork()
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestWeightedDistribution(t *testing.T) {
	g := New(99)
	weights := []int{45, 30, 25}
	counts := make([]int, len(weights))
	const n = 100000
	for i := 0; i < n; i++ {
		counts[g.Weighted(weights)]++
	}
	for i, w := range weights {
		got := float64(counts[i]) / n
		want := float64(w) / 100
		assert.LessOrEqual(t, math.Abs(got-want), 0.01, "index %d: got %.4f want %.4f", i, got, want)
	}
}

func TestWeightedSkipsZero(t *testing.T) {
	g := New(3)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, 1, g.Weighted([]int{0, 5, 0}))
	}
}

func TestWeightedPanicsOnEmptyTotal(t *testing.T) {
	assert.Panics(t, func() { New(1).Weighted([]int{0, 0}) })
}

func TestIntRange(t *testing.T) {
	g := New(5)
	for i := 0; i < 1000; i++ {
		v := g.IntRange(3, 7)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 7)
	}
	assert.Equal(t, 4, g.IntRange(4, 4))
}
