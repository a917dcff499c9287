// Package qlearning implements the tabular Q-Learning algorithm on
// gridworlds.
//
// Action values live on the edges of a gridworld.Grid. Each training
// episode starts at a fixed start cell and ends when the agent enters
// the goal or a hazard. Every traversed edge is updated online toward
// the reward of its destination plus the discounted best value
// available from the destination.
package qlearning

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/cliffwalk/agent"
	"github.com/samuelfneumann/cliffwalk/agent/tabular/policy"
	"github.com/samuelfneumann/cliffwalk/environment/gridworld"
	"github.com/samuelfneumann/cliffwalk/timestep"
)

// QLearning implements the Q-Learning algorithm. A QLearning agent
// exclusively owns its Grid and random number generator.
type QLearning struct {
	grid      *gridworld.Grid
	behaviour *policy.EGreedy
	config    Config
	seed      uint64

	start, goal int
	hazard      []bool // hazard[i] is true if cell i is a hazard
	hazards     []int

	trackers []agent.StepTracker
}

// New creates a new QLearning agent which learns on g, starting each
// episode at cell start. Episodes end on entering the goal cell or any
// of the hazard cells. The goal must be the goal cell of g.
func New(g *gridworld.Grid, start, goal int, hazards []int, c Config,
	seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	n := g.Len()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("new: start at cell %d: %w", start,
			gridworld.ErrOutOfRange)
	}
	if goal < 0 || goal >= n {
		return nil, fmt.Errorf("new: goal at cell %d: %w", goal,
			gridworld.ErrOutOfRange)
	}
	if goal != g.Goal() {
		return nil, fmt.Errorf("new: goal at cell %d but grid goal is %d",
			goal, g.Goal())
	}

	hazard := make([]bool, n)
	for _, i := range hazards {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("new: hazard at cell %d: %w", i,
				gridworld.ErrOutOfRange)
		}
		hazard[i] = true
	}

	return &QLearning{
		grid:      g,
		behaviour: policy.NewEGreedy(c.Epsilon, seed),
		config:    c,
		seed:      seed,
		start:     start,
		goal:      goal,
		hazard:    hazard,
		hazards:   append([]int(nil), hazards...),
	}, nil
}

// Register registers a StepTracker which will be sent every TimeStep
// of every subsequent episode
func (q *QLearning) Register(t agent.StepTracker) {
	q.trackers = append(q.trackers, t)
}

// RunEpisode runs a single training episode.
//
// Starting at the start cell, the behaviour policy selects an edge,
// the edge is updated with the reward of its destination and the
// destination's best value, and the agent moves to the destination.
// This repeats until the goal or a hazard is entered. There is no step
// limit: callers must guard against a policy that never terminates.
//
// An error is returned if the agent reaches a cell with no outgoing
// edges, which indicates a malformed gridworld.
func (q *QLearning) RunEpisode() error {
	current := q.start
	number := 0

	stepType := timestep.First
	if q.terminal(current) {
		stepType = timestep.Last
	}
	q.track(timestep.New(stepType, 0, current, number))

	for !q.terminal(current) {
		edge, err := q.behaviour.SelectEdge(q.grid.Cell(current))
		if err != nil {
			return fmt.Errorf("runEpisode: cell %d: %w", current, err)
		}

		next := q.grid.Cell(edge.Destination())
		reward := float64(next.Reward())
		edge.Update(reward, bestValue(next), q.config.LearningRate,
			q.config.Discount)

		current = edge.Destination()
		number++

		stepType = timestep.Mid
		if q.terminal(current) {
			stepType = timestep.Last
		}
		q.track(timestep.New(stepType, reward, current, number))
	}

	return nil
}

// EvaluatesToGoal returns whether the greedy policy reaches the goal in
// exactly steps steps without entering a hazard. Reaching the goal in
// fewer or more steps counts as failure. The walk is abandoned once it
// takes more than steps steps.
//
// EvaluatesToGoal does not update any action values or draw any random
// numbers, so it can be called any number of times between episodes.
func (q *QLearning) EvaluatesToGoal(steps int) bool {
	current, count := q.start, 0

	for !q.terminal(current) && count <= steps {
		edge := q.grid.Cell(current).BestEdge()
		if edge == nil {
			return false
		}
		count++
		current = edge.Destination()
	}

	return current == q.goal && count == steps
}

// GreedyPath returns the cells visited by the greedy policy from the
// start cell, including the start cell itself. The path ends at the
// first terminal cell or after limit steps, whichever comes first.
func (q *QLearning) GreedyPath(limit int) []int {
	current := q.start
	path := []int{current}

	for len(path) <= limit && !q.terminal(current) {
		edge := q.grid.Cell(current).BestEdge()
		if edge == nil {
			break
		}
		current = edge.Destination()
		path = append(path, current)
	}
	return path
}

// Config returns the current configuration of the agent
func (q *QLearning) Config() Config {
	return q.config
}

// SetConfig changes the learning rate, discount, and exploration
// probability of the agent. Learned values are kept; the new values
// are used from the next update and action selection onward.
func (q *QLearning) SetConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("setConfig: %w", err)
	}
	q.config = c
	q.behaviour.SetEpsilon(c.Epsilon)
	return nil
}

// Reset forgets all learned values and reseeds the agent so that
// subsequent episodes repeat those of a newly constructed agent
func (q *QLearning) Reset() {
	q.grid.Reset()
	q.behaviour.Reset()
}

// Grid returns the gridworld the agent learns on
func (q *QLearning) Grid() *gridworld.Grid {
	return q.grid
}

// Start returns the index of the start cell
func (q *QLearning) Start() int {
	return q.start
}

// Goal returns the index of the goal cell
func (q *QLearning) Goal() int {
	return q.goal
}

// Hazards returns the indices of the hazard cells
func (q *QLearning) Hazards() []int {
	return append([]int(nil), q.hazards...)
}

// IsHazard returns whether cell i is a hazard
func (q *QLearning) IsHazard(i int) bool {
	return q.hazard[i]
}

func (q *QLearning) terminal(i int) bool {
	return i == q.goal || q.hazard[i]
}

func (q *QLearning) track(t timestep.TimeStep) {
	for _, tracker := range q.trackers {
		tracker.Track(t)
	}
}

// bestValue returns the best action value of c, or 0 if c has no
// outgoing edges
func bestValue(c *gridworld.Cell) float64 {
	if v := c.BestValue(); !math.IsInf(v, -1) {
		return v
	}
	return 0
}
