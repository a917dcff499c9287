// Package experiment implements functionality for running experiments
// with gridworld agents: training until the greedy policy follows the
// optimal path, estimating how many episodes that safely takes, and
// searching over agent configurations for the fewest such episodes.
package experiment

import (
	"errors"
	"fmt"
	"time"

	"github.com/samuelfneumann/cliffwalk/agent"
	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
)

// ErrNotConverged is returned when an agent's greedy policy does not
// follow the optimal path within the allowed number of episodes
var ErrNotConverged = errors.New("policy did not converge")

// Type is the type of an experiment
type Type string

const (
	SafeEpisodesExp Type = "SafeEpisodes"
)

// Config represents a configuration of an experiment.
//
// Every agent Config in AgentConf is run for Trials independent
// trials. Each trial builds a new gridworld from EnvConf and a new
// agent seeded with Seed plus the trial number, then trains until the
// greedy policy reaches the goal in EnvConf.OptimalSteps steps or
// MaxEpisodes episodes have been run.
type Config struct {
	Type
	Trials      int
	MaxEpisodes int
	Seed        uint64
	EnvConf     envconfig.Config
	AgentConf   agent.TypedConfigList
}

// Validate returns an error if the Config cannot describe an
// experiment
func (c Config) Validate() error {
	if c.Type != SafeEpisodesExp {
		return fmt.Errorf("validate: no such experiment type %q", c.Type)
	}
	if c.Trials < 1 {
		return fmt.Errorf("validate: trials must be positive, got %d",
			c.Trials)
	}
	if c.MaxEpisodes < 0 {
		return fmt.Errorf("validate: max episodes cannot be negative")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.AgentConf.ConfigList == nil {
		return fmt.Errorf("validate: no agent configurations")
	}
	for i := 0; i < c.AgentConf.Len(); i++ {
		if err := c.AgentConf.At(i).Validate(); err != nil {
			return fmt.Errorf("validate: agent config %d: %w", i, err)
		}
	}
	return nil
}

// Result is the outcome of running many trials of a single agent
// Config
type Result struct {
	Config agent.Config

	// Counts holds the number of episodes each trial took to converge.
	// Trials that did not converge are recorded as the episode cap.
	Counts []int

	// Max is the largest number of episodes any trial took, a safe
	// upper bound on the episodes needed to trust the learned path
	Max int

	// Mean is the average number of episodes over all trials
	Mean float64

	// Failures is the number of trials which did not converge
	Failures int
}

// Converged returns whether every trial converged
func (r Result) Converged() bool {
	return r.Failures == 0 && len(r.Counts) > 0
}

// ResultTracker keeps track of the Results of an experiment and saves
// them after the experiment has finished
type ResultTracker interface {
	TrackResult(r Result)
	Save() error
}

// Convergence runs episodes with a until its greedy policy reaches the
// goal in exactly optimal steps, and returns the number of episodes
// that were run. If the greedy policy already does so, no episodes are
// run.
//
// If maxEpisodes > 0 and the policy has not converged after that many
// episodes, Convergence returns maxEpisodes and ErrNotConverged. With
// maxEpisodes <= 0 there is no limit.
func Convergence(a agent.Agent, optimal, maxEpisodes int) (int, error) {
	episodes := 0
	for !a.EvaluatesToGoal(optimal) {
		if maxEpisodes > 0 && episodes >= maxEpisodes {
			return episodes, ErrNotConverged
		}
		if err := a.RunEpisode(); err != nil {
			return episodes, fmt.Errorf("convergence: episode %d: %w",
				episodes, err)
		}
		episodes++
	}
	return episodes, nil
}

// Train runs a fixed number of episodes with a
func Train(a agent.Learner, episodes int) error {
	for i := 0; i < episodes; i++ {
		if err := a.RunEpisode(); err != nil {
			return fmt.Errorf("train: episode %d: %w", i, err)
		}
	}
	return nil
}

// Laps runs laps consecutive blocks of episodesPerLap episodes with a
// and returns the wall-clock duration of each block
func Laps(a agent.Learner, laps, episodesPerLap int) ([]time.Duration,
	error) {
	durations := make([]time.Duration, 0, laps)
	for i := 0; i < laps; i++ {
		start := time.Now()
		if err := Train(a, episodesPerLap); err != nil {
			return durations, fmt.Errorf("laps: lap %d: %w", i+1, err)
		}
		durations = append(durations, time.Since(start))
	}
	return durations, nil
}
