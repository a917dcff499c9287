// Package timestep implements timesteps of the agent-gridworld
// interaction
package timestep

import "fmt"

// StepType denotes the type of step that a TimeStep can be, either the
// first step of an episode, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single step of an episode. Cell is the
// index of the cell the agent occupies after the step and Reward is
// the reward observed on entering it. The First TimeStep of an episode
// has zero reward and Number 0.
type TimeStep struct {
	StepType
	Reward float64
	Cell   int
	Number int
}

// New returns a new TimeStep
func New(t StepType, r float64, cell, n int) TimeStep {
	return TimeStep{t, r, cell, n}
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Cell: %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Cell, t.Number)
}
