package policy

import (
	"testing"

	"github.com/samuelfneumann/cliffwalk/environment/gridworld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centre(t *testing.T) *gridworld.Cell {
	t.Helper()
	g, err := gridworld.New(3, 3, nil, 8)
	require.NoError(t, err)
	return g.Cell(4)
}

func TestGreedyNeverExplores(t *testing.T) {
	c := centre(t)
	c.Edge(gridworld.Left).Update(-1, 0, 1, 1)
	c.Edge(gridworld.Right).Update(-3, 0, 1, 1)

	p := NewGreedy(1)
	for i := 0; i < 1000; i++ {
		e, err := p.SelectEdge(c)
		require.NoError(t, err)
		assert.Same(t, c.Edge(gridworld.Up), e)
	}
}

func TestZeroWeightFallbackIsUniform(t *testing.T) {
	c := centre(t)
	p := NewEGreedy(1.0, 42)

	counts := make(map[*gridworld.Edge]int)
	for i := 0; i < 4000; i++ {
		e, err := p.SelectEdge(c)
		require.NoError(t, err)
		counts[e]++
	}

	require.Len(t, counts, 4)
	for _, e := range c.Edges() {
		assert.Greater(t, counts[e], 700, "edge %v", e)
	}
}

func TestExplorationWeightedByMagnitude(t *testing.T) {
	c := centre(t)
	c.Edge(gridworld.Down).Update(-10, 0, 1, 1)
	c.Edge(gridworld.Left).Update(-1, 0, 1, 1)

	p := NewEGreedy(1.0, 7)
	counts := make(map[*gridworld.Edge]int)
	n := 11000
	for i := 0; i < n; i++ {
		e, err := p.SelectEdge(c)
		require.NoError(t, err)
		counts[e]++
	}

	// Zero-valued edges carry no weight once another edge is non-zero
	assert.Zero(t, counts[c.Edge(gridworld.Up)])
	assert.Zero(t, counts[c.Edge(gridworld.Right)])
	assert.InDelta(t, 10.0/11.0, float64(counts[c.Edge(gridworld.Down)])/
		float64(n), 0.02)
}

func TestNoEdges(t *testing.T) {
	g, err := gridworld.New(1, 1, nil, 0)
	require.NoError(t, err)

	_, err = NewEGreedy(0.5, 1).SelectEdge(g.Cell(0))
	assert.ErrorIs(t, err, ErrNoEdges)

	_, err = Greedy(g.Cell(0))
	assert.ErrorIs(t, err, ErrNoEdges)
}

func TestSeedReproducible(t *testing.T) {
	c := centre(t)
	p1, p2 := NewEGreedy(0.5, 99), NewEGreedy(0.5, 99)

	var first []*gridworld.Edge
	for i := 0; i < 200; i++ {
		e1, err := p1.SelectEdge(c)
		require.NoError(t, err)
		e2, err := p2.SelectEdge(c)
		require.NoError(t, err)
		assert.Same(t, e1, e2)
		first = append(first, e1)
	}

	p1.Reset()
	for i := 0; i < 200; i++ {
		e, err := p1.SelectEdge(c)
		require.NoError(t, err)
		assert.Same(t, first[i], e)
	}
}

func TestSetEpsilon(t *testing.T) {
	p := NewEGreedy(0.3, 1)
	assert.Equal(t, 0.3, p.Epsilon())
	p.SetEpsilon(0)
	assert.Zero(t, p.Epsilon())
}

func BenchmarkSelectEdge(b *testing.B) {
	g, _ := gridworld.New(3, 3, nil, 8)
	c := g.Cell(4)
	c.Edge(gridworld.Left).Update(-1, 0, 1, 1)
	p := NewEGreedy(0.5, 1)

	for i := 0; i < b.N; i++ {
		p.SelectEdge(c)
	}
}
