package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/samuelfneumann/cliffwalk/agent"
	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// registerer is implemented by agents which accept StepTrackers
type registerer interface {
	Register(agent.StepTracker)
}

// SafeEpisodes estimates how many episodes an agent described by c
// needs before its greedy policy follows the optimal path of env.
//
// Each of the trials builds a fresh gridworld and agent, seeded with
// seed plus the trial number, and trains it until convergence or until
// maxEpisodes episodes have been run. The Result holds the number of
// episodes each trial took, with failed trials counted as maxEpisodes.
//
// Trackers are registered with each trial's agent if the agent
// accepts them. The context is checked between trials.
func SafeEpisodes(ctx context.Context, env envconfig.Config, c agent.Config,
	trials, maxEpisodes int, seed uint64,
	trackers ...agent.StepTracker) (Result, error) {
	if trials < 1 {
		return Result{}, fmt.Errorf("safeEpisodes: trials must be "+
			"positive, got %d", trials)
	}

	result := Result{Config: c, Counts: make([]int, 0, trials)}
	for trial := 0; trial < trials; trial++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("safeEpisodes: trial %d: %w", trial,
				err)
		}

		a, err := c.CreateAgent(env, seed+uint64(trial))
		if err != nil {
			return result, fmt.Errorf("safeEpisodes: %w", err)
		}
		if r, ok := a.(registerer); ok {
			for _, t := range trackers {
				r.Register(t)
			}
		}

		episodes, err := Convergence(a, env.OptimalSteps, maxEpisodes)
		if errors.Is(err, ErrNotConverged) {
			result.Failures++
		} else if err != nil {
			return result, fmt.Errorf("safeEpisodes: trial %d: %w", trial,
				err)
		}
		result.Counts = append(result.Counts, episodes)
	}

	counts := make([]float64, len(result.Counts))
	for i, n := range result.Counts {
		counts[i] = float64(n)
	}
	result.Max = int(floats.Max(counts))
	result.Mean = stat.Mean(counts, nil)

	return result, nil
}
