package gridworld

import "fmt"

// Edge is a directed action from one cell of a Grid to an adjacent
// cell, carrying the learned action value for taking that action.
//
// The origin and destination of an Edge never change. The value of an
// Edge starts at 0 and is only modified by Update, or set back to 0
// by Reset.
type Edge struct {
	origin      int
	destination int
	value       float64
}

func newEdge(origin, destination int) *Edge {
	return &Edge{origin: origin, destination: destination}
}

// Origin returns the index of the cell that owns the Edge
func (e *Edge) Origin() int {
	return e.origin
}

// Destination returns the index of the cell the Edge moves to
func (e *Edge) Destination() int {
	return e.destination
}

// Value returns the current action value of the Edge
func (e *Edge) Value() float64 {
	return e.value
}

// Update moves the value of the Edge toward the one-step target
//
//	reward + discount * bestNext
//
// with step size learningRate, where reward is the reward observed on
// entering the destination cell and bestNext is the largest action
// value available from the destination cell.
func (e *Edge) Update(reward, bestNext, learningRate, discount float64) {
	target := reward + discount*bestNext
	e.value = (1-learningRate)*e.value + learningRate*target
}

// Reset sets the value of the Edge back to 0
func (e *Edge) Reset() {
	e.value = 0
}

func (e *Edge) String() string {
	return fmt.Sprintf("Q(%d,%d){S:%.3f}", e.origin, e.destination, e.value)
}
