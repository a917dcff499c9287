package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/cliffwalk/agent/tabular/qlearning"
	"github.com/samuelfneumann/cliffwalk/config"
	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
	"github.com/samuelfneumann/cliffwalk/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(config.Default)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color"))

	err := cmd.Execute()
	return out.String(), err
}

func TestTrain(t *testing.T) {
	out, err := execute(t, "train", "--alpha", "0.6", "--gamma", "0.9",
		"--epsilon", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "episodes to find the optimal path")
	assert.Contains(t, out,
		"Greedy path: [36 24 25 26 27 28 29 30 31 32 33 34 35 47]")
	assert.Contains(t, out, "^ X X X X X X X X X X G")
}

func TestTrainRejectsZeroLearningRate(t *testing.T) {
	_, err := execute(t, "train", "--alpha", "0")
	assert.Error(t, err)

	_, err = execute(t, "train", "--preset", "Nowhere")
	assert.Error(t, err)
}

func TestSafe(t *testing.T) {
	out, err := execute(t, "safe", "--trials", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Safe number of episodes:")
}

func TestSweepFromConfig(t *testing.T) {
	dir := t.TempDir()
	c := experiment.Config{
		Type:        experiment.SafeEpisodesExp,
		Trials:      2,
		MaxEpisodes: 20_000,
		EnvConf:     envconfig.NewCliffWalk(),
		AgentConf: qlearning.NewConfigList([]float64{0.5, 0.9},
			[]float64{0.9}, []float64{0}),
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	configFile := filepath.Join(dir, "experiment.json")
	require.NoError(t, os.WriteFile(configFile, data, 0o600))
	csvFile := filepath.Join(dir, "sweep.csv")
	chartFile := filepath.Join(dir, "sweep.html")

	out, err := execute(t, "sweep", "--config", configFile, "--csv", csvFile,
		"--chart", chartFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Number of safe episodes:")
	assert.Contains(t, out, "Gamma: 0.9")

	rows, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(rows)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "alpha,gamma,epsilon,max", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.5,0.9,0,"))
	assert.True(t, strings.HasPrefix(lines[2], "0.9,0.9,0,"))

	_, err = os.Stat(chartFile)
	assert.NoError(t, err)
}

func TestSweepRejectsZeroLearningRate(t *testing.T) {
	c := experiment.Config{
		Type:      experiment.SafeEpisodesExp,
		Trials:    1,
		EnvConf:   envconfig.NewCliffWalk(),
		AgentConf: qlearning.NewConfigList([]float64{0}, []float64{0.9}, []float64{0}),
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	configFile := filepath.Join(t.TempDir(), "experiment.json")
	require.NoError(t, os.WriteFile(configFile, data, 0o600))

	_, err = execute(t, "sweep", "--config", configFile)
	assert.Error(t, err)
}

func TestDefaultSweep(t *testing.T) {
	list := defaultSweep()
	assert.Equal(t, 10*10*11, list.Len())
	assert.Equal(t, qlearning.Config{LearningRate: 0.1, Discount: 0.1,
		Epsilon: 0}, list.At(0))
	assert.Equal(t, qlearning.Config{LearningRate: 1, Discount: 1,
		Epsilon: 1}, list.At(list.Len()-1))
}

func TestLaps(t *testing.T) {
	out, err := execute(t, "laps", "--laps", "2", "--episodes", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Lap 1:")
	assert.Contains(t, out, "Lap 2:")
}

func TestDump(t *testing.T) {
	out, err := execute(t, "dump", "--preset", "CustomCliffs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "TABLE:\n"))
	assert.Contains(t, out, "Index[28] Reward[-50]")
}

func TestTrainFixedEpisodes(t *testing.T) {
	out, err := execute(t, "train", "--episodes", "3", "--epsilon", "0.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Ran 3 episodes.")
	assert.Contains(t, out, "Last episode took")
}
