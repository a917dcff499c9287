// Package agent defines the interfaces implemented by gridworld
// learning agents and their configurations
package agent

import "github.com/samuelfneumann/cliffwalk/timestep"

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values by
// running episodes, and an Evaluator, which checks whether the policy
// implied by the current action values solves the task.
type Agent interface {
	Learner
	Evaluator
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// RunEpisode runs a single training episode from the start state
	// until a terminal state is reached, updating action values
	// online. An error is returned only for a malformed environment.
	RunEpisode() error
}

// Evaluator evaluates the greedy policy of an agent without changing
// what the agent has learned
type Evaluator interface {
	// EvaluatesToGoal returns whether the greedy policy reaches the
	// goal in exactly steps steps without entering a hazard
	EvaluatesToGoal(steps int) bool
}

// StepTracker receives each TimeStep of the episodes an agent runs
type StepTracker interface {
	Track(t timestep.TimeStep)
}
