package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/samuelfneumann/cliffwalk/agent"
	"github.com/samuelfneumann/cliffwalk/agent/tabular/qlearning"
	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
	"github.com/samuelfneumann/cliffwalk/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countdown converges after a fixed number of episodes
type countdown struct {
	remaining int
	episodes  int
	err       error
}

func (c *countdown) RunEpisode() error {
	if c.err != nil {
		return c.err
	}
	c.episodes++
	if c.remaining > 0 {
		c.remaining--
	}
	return nil
}

func (c *countdown) EvaluatesToGoal(int) bool {
	return c.remaining == 0
}

type stepCounter struct {
	firsts int
}

func (s *stepCounter) Track(t timestep.TimeStep) {
	if t.First() {
		s.firsts++
	}
}

func TestConvergence(t *testing.T) {
	n, err := Convergence(&countdown{remaining: 7}, 13, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	a := &countdown{}
	n, err = Convergence(a, 13, 10)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, a.episodes)

	n, err = Convergence(&countdown{remaining: 50}, 13, 10)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Equal(t, 10, n)

	boom := errors.New("boom")
	_, err = Convergence(&countdown{remaining: 1, err: boom}, 13, 10)
	assert.ErrorIs(t, err, boom)
}

func TestTrainAndLaps(t *testing.T) {
	a := &countdown{remaining: 100}
	require.NoError(t, Train(a, 12))
	assert.Equal(t, 12, a.episodes)

	laps, err := Laps(a, 3, 5)
	require.NoError(t, err)
	assert.Len(t, laps, 3)
	assert.Equal(t, 27, a.episodes)

	a.err = errors.New("boom")
	laps, err = Laps(a, 3, 5)
	assert.Error(t, err)
	assert.Empty(t, laps)
}

func TestSafeEpisodes(t *testing.T) {
	env := envconfig.NewCliffWalk()
	tracker := &stepCounter{}

	r, err := SafeEpisodes(context.Background(), env, qlearning.DefaultConfig,
		3, 10_000, 0, tracker)
	require.NoError(t, err)

	require.Len(t, r.Counts, 3)
	assert.True(t, r.Converged())
	assert.Equal(t, qlearning.DefaultConfig, r.Config)

	total := 0
	for _, n := range r.Counts {
		assert.Positive(t, n)
		assert.LessOrEqual(t, n, r.Max)
		total += n
	}
	assert.Equal(t, total, tracker.firsts)
	assert.InDelta(t, float64(total)/3, r.Mean, 1e-9)

	// Greedy learning does not depend on the seed
	assert.Equal(t, r.Counts[0], r.Counts[1])
	assert.Equal(t, r.Counts[0], r.Counts[2])
}

func TestSafeEpisodesFailures(t *testing.T) {
	env := envconfig.NewCliffWalk()
	r, err := SafeEpisodes(context.Background(), env, qlearning.DefaultConfig,
		2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Failures)
	assert.Equal(t, []int{1, 1}, r.Counts)
	assert.False(t, r.Converged())

	_, err = SafeEpisodes(context.Background(), env, qlearning.DefaultConfig,
		0, 1, 0)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = SafeEpisodes(ctx, env, qlearning.DefaultConfig, 2, 1, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Type:        SafeEpisodesExp,
		Trials:      1,
		MaxEpisodes: 10,
		EnvConf:     envconfig.NewCliffWalk(),
		AgentConf: qlearning.NewConfigList([]float64{0.6}, []float64{0.9},
			[]float64{0}),
	}
	require.NoError(t, valid.Validate())

	invalid := map[string]func(c *Config){
		"type":     func(c *Config) { c.Type = "Online" },
		"trials":   func(c *Config) { c.Trials = 0 },
		"episodes": func(c *Config) { c.MaxEpisodes = -1 },
		"env":      func(c *Config) { c.EnvConf.Width = 0 },
		"agents":   func(c *Config) { c.AgentConf = agent.TypedConfigList{} },
		"alpha": func(c *Config) {
			c.AgentConf = qlearning.NewConfigList([]float64{2},
				[]float64{0.9}, []float64{0})
		},
	}
	for name, modify := range invalid {
		c := valid
		modify(&c)
		assert.Error(t, c.Validate(), name)
	}
}
