// Package gridworld implements 2D gridworlds of cells connected by
// learnable action-value edges.
//
// A Grid is a flattened row-major arrangement of Cells. Cell i sits at
// column x = i % width and row y = i / width, with row 0 at the top of
// the grid. Each Cell has an Edge to each of its horizontal and
// vertical neighbours; moves off the grid do not exist and the grid
// does not wrap around.
package gridworld

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrOutOfRange is returned when a grid is configured with a cell
// index that lies outside of the grid
var ErrOutOfRange = errors.New("index out of range")

// Rewards determines the reward of each kind of cell in a Grid
type Rewards struct {
	// Default is the reward of every cell without an override
	Default int

	// Goal is the reward of the goal cell. It takes precedence over
	// any override for the goal index.
	Goal int

	// Cliff is the reward of a cliff. Any cell whose configured reward
	// is at or below Cliff is a hazard.
	Cliff int
}

// DefaultRewards are the rewards of the classic cliff walking task
var DefaultRewards = Rewards{Default: -1, Goal: 0, Cliff: -100}

// Grid is a gridworld of Cells in row-major order with a single goal
// cell. The structure of a Grid never changes after construction; only
// the values of its edges are modified by learning.
type Grid struct {
	cells []*Cell
	w, h  int
	goal  int
}

// New creates a new Grid with the given width and height using
// DefaultRewards. The overrides map sets the reward of specific cells,
// for example to mark cliffs. The goal cell always receives the goal
// reward, even if it also appears in overrides.
func New(width, height int, overrides map[int]int, goal int) (*Grid, error) {
	return NewWithRewards(width, height, overrides, goal, DefaultRewards)
}

// NewWithRewards is like New but uses r as the reward scheme
func NewWithRewards(width, height int, overrides map[int]int, goal int,
	r Rewards) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("new: invalid dimensions (%d, %d)", width,
			height)
	}

	n := width * height
	for i := range overrides {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("new: override at cell %d: %w", i,
				ErrOutOfRange)
		}
	}
	if goal < 0 || goal >= n {
		return nil, fmt.Errorf("new: goal at cell %d: %w", goal,
			ErrOutOfRange)
	}

	g := &Grid{cells: make([]*Cell, 0, n), w: width, h: height, goal: goal}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := g.Index(x, y)
			cell := &Cell{reward: r.Default}

			if y > 0 {
				cell.edges[Up] = newEdge(i, i-width)
			}
			if y < height-1 {
				cell.edges[Down] = newEdge(i, i+width)
			}
			if x > 0 {
				cell.edges[Left] = newEdge(i, i-1)
			}
			if x < width-1 {
				cell.edges[Right] = newEdge(i, i+1)
			}
			g.cells = append(g.cells, cell)
		}
	}

	// Goal is applied last so that it wins over any override
	for i, reward := range overrides {
		g.cells[i].reward = reward
	}
	g.cells[goal].reward = r.Goal

	return g, nil
}

// Hazards returns the sorted indices of cells in overrides whose
// reward is at or below threshold
func Hazards(overrides map[int]int, threshold int) []int {
	hazards := make([]int, 0, len(overrides))
	for i, reward := range overrides {
		if reward <= threshold {
			hazards = append(hazards, i)
		}
	}
	sort.Ints(hazards)
	return hazards
}

// Cell returns the Cell at index i. Cell panics if i is not an index
// in the Grid.
func (g *Grid) Cell(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		panic(fmt.Sprintf("cell: index %d out of range [0, %d)", i,
			len(g.cells)))
	}
	return g.cells[i]
}

// Len returns the number of cells in the Grid
func (g *Grid) Len() int {
	return len(g.cells)
}

// Dims returns the width and height of the Grid
func (g *Grid) Dims() (width, height int) {
	return g.w, g.h
}

// Goal returns the index of the goal cell
func (g *Grid) Goal() int {
	return g.goal
}

// Index converts (x, y) coordinates to a cell index
func (g *Grid) Index(x, y int) int {
	return y*g.w + x
}

// Coordinates converts a cell index to (x, y) coordinates
func (g *Grid) Coordinates(i int) (x, y int) {
	y = i / g.w
	x = i - (y * g.w)
	return x, y
}

// Reset sets the value of every edge in the Grid back to 0
func (g *Grid) Reset() {
	for _, cell := range g.cells {
		for _, e := range cell.edges {
			if e != nil {
				e.Reset()
			}
		}
	}
}

// Values returns a height x width matrix of the best action value in
// each cell. Cells without edges have value 0.
func (g *Grid) Values() *mat.Dense {
	values := mat.NewDense(g.h, g.w, nil)
	for i, cell := range g.cells {
		if cell.NumEdges() == 0 {
			continue
		}
		x, y := g.Coordinates(i)
		values.Set(y, x, cell.BestValue())
	}
	return values
}

func (g *Grid) String() string {
	str := "GridWorld | Goal: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.goal, g.w, g.h)
}
