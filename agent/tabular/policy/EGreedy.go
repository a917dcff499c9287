// Package policy implements action selection over the edges of a
// tabular gridworld
package policy

import (
	"errors"
	"fmt"
	"math"

	"github.com/samuelfneumann/cliffwalk/environment/gridworld"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrNoEdges is returned when an action is requested in a cell that
// has no outgoing edges. This only happens for a malformed grid and
// should abort the run.
var ErrNoEdges = errors.New("cell has no outgoing edges")

// EGreedy implements an ε-greedy policy over the edges of a cell.
//
// With probability ε the policy explores, choosing an edge at random
// with probability proportional to the magnitude of its value. Edges
// that have never been updated have weight 0, so once some edges have
// been learned, exploration favours the edges with the largest
// magnitude. If every edge has weight 0, an edge is chosen uniformly
// at random. Otherwise the policy acts greedily.
type EGreedy struct {
	epsilon float64
	seed    uint64 // Seed for random number generation
	source  rand.Source
	rng     *rand.Rand
}

// NewEGreedy returns a new EGreedy policy which explores with
// probability e
func NewEGreedy(e float64, seed uint64) *EGreedy {
	source := rand.NewSource(seed)
	return &EGreedy{
		epsilon: e,
		seed:    seed,
		source:  source,
		rng:     rand.New(source),
	}
}

// NewGreedy returns an EGreedy policy that never explores
func NewGreedy(seed uint64) *EGreedy {
	return NewEGreedy(0.0, seed)
}

// Epsilon returns the probability of exploring
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the probability of exploring. The new value is used
// from the next call to SelectEdge onward.
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// Reset reseeds the policy's random number generator with its
// original seed
func (p *EGreedy) Reset() {
	p.source.Seed(p.seed)
}

// SelectEdge selects an outgoing edge of c to traverse.
//
// A uniform random number r in [0, 1) is drawn on every call. If
// r <= ε the policy explores, otherwise it returns the best edge of c.
// An ε of 0 never explores.
func (p *EGreedy) SelectEdge(c *gridworld.Cell) (*gridworld.Edge, error) {
	edges := c.Edges()
	if len(edges) == 0 {
		return nil, fmt.Errorf("selectEdge: %w", ErrNoEdges)
	}

	if r := p.rng.Float64(); p.epsilon > 0 && r <= p.epsilon {
		return p.sample(edges), nil
	}
	return c.BestEdge(), nil
}

// sample draws one of edges with probability proportional to the
// absolute value of each edge
func (p *EGreedy) sample(edges []*gridworld.Edge) *gridworld.Edge {
	weights := make([]float64, len(edges))
	for i, e := range edges {
		weights[i] = math.Abs(e.Value())
	}

	if floats.Sum(weights) == 0 {
		return edges[p.rng.Intn(len(edges))]
	}

	dist := distuv.NewCategorical(weights, p.source)
	return edges[int(dist.Rand())]
}

// Greedy returns the best edge of c without drawing any random
// numbers
func Greedy(c *gridworld.Cell) (*gridworld.Edge, error) {
	e := c.BestEdge()
	if e == nil {
		return nil, fmt.Errorf("greedy: %w", ErrNoEdges)
	}
	return e, nil
}
