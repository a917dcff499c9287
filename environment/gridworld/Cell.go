package gridworld

import "math"

// Direction is one of the four cardinal moves out of a cell. The
// ordering of the constants is the order in which ties between equally
// valued edges are broken.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists every Direction in tie-breaking order
var Directions = [...]Direction{Left, Up, Right, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Up:
		return "T"
	case Right:
		return "R"
	case Down:
		return "B"
	default:
		return "?"
	}
}

// Cell is a single position in a Grid. A Cell holds the reward for
// entering it and up to one outgoing Edge per Direction. Directions
// which would leave the Grid have no Edge.
type Cell struct {
	reward int
	edges  [len(Directions)]*Edge
}

// Reward returns the reward for entering the Cell
func (c *Cell) Reward() int {
	return c.reward
}

// Edge returns the outgoing Edge in direction d, or nil if moving in
// direction d is not possible from the Cell
func (c *Cell) Edge(d Direction) *Edge {
	return c.edges[d]
}

// Edges returns all outgoing edges of the Cell in Direction order
func (c *Cell) Edges() []*Edge {
	edges := make([]*Edge, 0, len(c.edges))
	for _, e := range c.edges {
		if e != nil {
			edges = append(edges, e)
		}
	}
	return edges
}

// NumEdges returns the number of outgoing edges of the Cell
func (c *Cell) NumEdges() int {
	n := 0
	for _, e := range c.edges {
		if e != nil {
			n++
		}
	}
	return n
}

// BestEdge returns the outgoing Edge with the strictly greatest value.
// If multiple edges share the greatest value, the first one in
// Direction order is returned. BestEdge returns nil if the Cell has no
// outgoing edges.
func (c *Cell) BestEdge() *Edge {
	var best *Edge
	for _, e := range c.edges {
		if e != nil && (best == nil || e.value > best.value) {
			best = e
		}
	}
	return best
}

// BestValue returns the greatest value of all outgoing edges of the
// Cell, or negative infinity if the Cell has no outgoing edges
func (c *Cell) BestValue() float64 {
	max := math.Inf(-1)
	for _, e := range c.edges {
		if e != nil && e.value > max {
			max = e.value
		}
	}
	return max
}
