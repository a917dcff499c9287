package qlearning

import (
	"testing"

	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
	"github.com/samuelfneumann/cliffwalk/environment/gridworld"
	"github.com/samuelfneumann/cliffwalk/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathTracker records the cells visited in each episode
type pathTracker struct {
	steps []timestep.TimeStep
	paths [][]int
}

func (p *pathTracker) Track(t timestep.TimeStep) {
	p.steps = append(p.steps, t)
	if t.Number == 0 {
		p.paths = append(p.paths, nil)
	}
	last := len(p.paths) - 1
	p.paths[last] = append(p.paths[last], t.Cell)
}

func newCliffWalk(t *testing.T, c Config, seed uint64) *QLearning {
	t.Helper()
	a, err := c.CreateAgent(envconfig.NewCliffWalk(), seed)
	require.NoError(t, err)
	return a.(*QLearning)
}

func values(g *gridworld.Grid) []float64 {
	var v []float64
	for i := 0; i < g.Len(); i++ {
		for _, e := range g.Cell(i).Edges() {
			v = append(v, e.Value())
		}
	}
	return v
}

func TestNoEpisodesNoLearning(t *testing.T) {
	q := newCliffWalk(t, DefaultConfig, 0)
	for _, v := range values(q.Grid()) {
		assert.Zero(t, v)
	}
	assert.False(t, q.EvaluatesToGoal(13))
}

func TestEvaluatesToGoalHasNoSideEffects(t *testing.T) {
	q := newCliffWalk(t, Config{LearningRate: 0.6, Discount: 0.9,
		Epsilon: 0.3}, 11)
	for i := 0; i < 25; i++ {
		require.NoError(t, q.RunEpisode())
	}

	before := values(q.Grid())
	first := q.EvaluatesToGoal(13)
	second := q.EvaluatesToGoal(13)

	assert.Equal(t, first, second)
	assert.Equal(t, before, values(q.Grid()))
}

func TestGreedyEpisodesAreDeterministic(t *testing.T) {
	c := Config{LearningRate: 0.6, Discount: 0.9, Epsilon: 0}
	q1, q2 := newCliffWalk(t, c, 1), newCliffWalk(t, c, 2)

	p1, p2 := &pathTracker{}, &pathTracker{}
	q1.Register(p1)
	q2.Register(p2)

	for i := 0; i < 20; i++ {
		require.NoError(t, q1.RunEpisode())
		require.NoError(t, q2.RunEpisode())
	}

	assert.Equal(t, p1.paths, p2.paths)
	assert.Equal(t, values(q1.Grid()), values(q2.Grid()))
}

func TestCliffWalkConverges(t *testing.T) {
	q := newCliffWalk(t, DefaultConfig, 0)
	optimal := envconfig.NewCliffWalk().OptimalSteps
	require.Equal(t, 13, optimal)

	episodes := 0
	for !q.EvaluatesToGoal(optimal) {
		require.Less(t, episodes, 10_000, "no convergence")
		require.NoError(t, q.RunEpisode())
		episodes++
	}
	assert.Positive(t, episodes)

	for steps := 0; steps <= 20; steps++ {
		if steps != optimal {
			assert.False(t, q.EvaluatesToGoal(steps), "steps = %d", steps)
		}
	}

	want := []int{36, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 47}
	assert.Equal(t, want, q.GreedyPath(100))
	assert.Equal(t, want[:4], q.GreedyPath(3))
}

func TestSingleCellGrid(t *testing.T) {
	g, err := gridworld.New(1, 1, nil, 0)
	require.NoError(t, err)

	q, err := New(g, 0, 0, nil, DefaultConfig, 0)
	require.NoError(t, err)

	assert.True(t, q.EvaluatesToGoal(0))
	assert.False(t, q.EvaluatesToGoal(1))

	tracker := &pathTracker{}
	q.Register(tracker)
	require.NoError(t, q.RunEpisode())
	require.Len(t, tracker.steps, 1)
	assert.True(t, tracker.steps[0].Last())
	assert.Equal(t, []int{0}, q.GreedyPath(10))
}

func TestBoxedInStartTerminates(t *testing.T) {
	// Start in the centre of a 3x3 grid with hazards on three sides
	// and the goal on the fourth
	overrides := map[int]int{1: -100, 3: -100, 7: -100}
	g, err := gridworld.New(3, 3, overrides, 5)
	require.NoError(t, err)
	hazards := gridworld.Hazards(overrides, gridworld.DefaultRewards.Cliff)

	for _, e := range []float64{0, 0.5, 1} {
		g.Reset()
		q, err := New(g, 4, 5, hazards, Config{LearningRate: 0.6,
			Discount: 0.9, Epsilon: e}, 3)
		require.NoError(t, err)

		tracker := &pathTracker{}
		q.Register(tracker)
		for i := 0; i < 50; i++ {
			require.NoError(t, q.RunEpisode())
		}

		// Every episode is a single step
		for _, step := range tracker.steps {
			if !step.First() {
				assert.Equal(t, 1, step.Number)
				assert.True(t, step.Last())
			}
		}
	}

	g.Reset()
	q, err := New(g, 4, 5, hazards, DefaultConfig, 3)
	require.NoError(t, err)
	for i := 0; i < 10 && !q.EvaluatesToGoal(1); i++ {
		require.NoError(t, q.RunEpisode())
	}
	assert.True(t, q.EvaluatesToGoal(1))
}

func TestTrackedTimeSteps(t *testing.T) {
	q := newCliffWalk(t, Config{LearningRate: 0.5, Discount: 0.9,
		Epsilon: 0.2}, 5)
	tracker := &pathTracker{}
	q.Register(tracker)

	require.NoError(t, q.RunEpisode())
	require.NotEmpty(t, tracker.steps)

	first := tracker.steps[0]
	assert.True(t, first.First())
	assert.Equal(t, 36, first.Cell)
	assert.Zero(t, first.Number)

	for i, step := range tracker.steps {
		assert.Equal(t, i, step.Number)
		if i > 0 && i < len(tracker.steps)-1 {
			assert.True(t, step.Mid())
			assert.Equal(t, -1.0, step.Reward)
		}
	}

	last := tracker.steps[len(tracker.steps)-1]
	assert.True(t, last.Last())
	assert.True(t, last.Cell == q.Goal() || q.IsHazard(last.Cell))
}

func TestResetRepeatsEpisodes(t *testing.T) {
	q := newCliffWalk(t, Config{LearningRate: 0.6, Discount: 0.9,
		Epsilon: 0.5}, 17)

	run := func() [][]int {
		tracker := &pathTracker{}
		q.trackers = nil
		q.Register(tracker)
		for i := 0; i < 15; i++ {
			require.NoError(t, q.RunEpisode())
		}
		return tracker.paths
	}

	first := run()
	q.Reset()
	for _, v := range values(q.Grid()) {
		require.Zero(t, v)
	}
	assert.Equal(t, first, run())
}

func TestSetConfig(t *testing.T) {
	q := newCliffWalk(t, DefaultConfig, 0)
	require.NoError(t, q.RunEpisode())

	c := Config{LearningRate: 0.1, Discount: 0.5, Epsilon: 1}
	require.NoError(t, q.SetConfig(c))
	assert.Equal(t, c, q.Config())
	assert.Equal(t, 1.0, q.behaviour.Epsilon())

	assert.Error(t, q.SetConfig(Config{LearningRate: 2}))
	assert.Equal(t, c, q.Config())
}

func TestNewRejectsInvalid(t *testing.T) {
	g, err := gridworld.New(3, 3, nil, 8)
	require.NoError(t, err)

	_, err = New(g, 9, 8, nil, DefaultConfig, 0)
	assert.ErrorIs(t, err, gridworld.ErrOutOfRange)

	_, err = New(g, 0, -1, nil, DefaultConfig, 0)
	assert.ErrorIs(t, err, gridworld.ErrOutOfRange)

	_, err = New(g, 0, 8, []int{12}, DefaultConfig, 0)
	assert.ErrorIs(t, err, gridworld.ErrOutOfRange)

	_, err = New(g, 0, 8, nil, Config{Epsilon: -0.1}, 0)
	assert.Error(t, err)

	// Episodes must end where the goal reward is
	_, err = New(g, 0, 4, nil, DefaultConfig, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, gridworld.ErrOutOfRange)
}

func TestAccessors(t *testing.T) {
	q := newCliffWalk(t, DefaultConfig, 0)
	assert.Equal(t, 36, q.Start())
	assert.Equal(t, 47, q.Goal())
	assert.Len(t, q.Hazards(), 10)
	assert.True(t, q.IsHazard(40))
	assert.False(t, q.IsHazard(36))
	assert.True(t, DefaultConfig.ValidAgent(q))
}

func BenchmarkRunEpisode(b *testing.B) {
	a, _ := DefaultConfig.CreateAgent(envconfig.NewCliffWalk(), 0)
	for i := 0; i < b.N; i++ {
		a.RunEpisode()
	}
}
