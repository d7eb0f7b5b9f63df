package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gamelearn/environment/envconfig"
	"github.com/samuelfneumann/gamelearn/experiment"
	"github.com/samuelfneumann/gamelearn/experiment/checkpointer"
	"github.com/samuelfneumann/gamelearn/experiment/store"
	"github.com/samuelfneumann/gamelearn/solver"
)

func TestLoadConfig(t *testing.T) {
	c, err := loadConfig(filepath.Join("configs", "gridworld.json"))
	require.NoError(t, err)

	require.Equal(t, envconfig.GridWorld, c.Game.Environment)
	require.Equal(t, uint64(192382), c.Seed)
	require.Equal(t, 500, c.Experiment.MaxEpisodes)
	require.Equal(t, []int{64, 64}, c.QNetwork.HiddenLayers)
	require.Equal(t, solver.RMSProp, c.Optimizer.Type)
	require.Equal(t, 32.0, c.Parameters["batch_size"])
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{"), 0644))
	_, err = loadConfig(malformed)
	require.Error(t, err)

	noOptimizer := filepath.Join(dir, "optimizer.json")
	require.NoError(t, os.WriteFile(noOptimizer, []byte(`{"seed": 1}`),
		0644))
	_, err = loadConfig(noOptimizer)
	require.Error(t, err)
}

func smallConfig(t *testing.T) Config {
	c, err := loadConfig(filepath.Join("configs", "gridworld.json"))
	require.NoError(t, err)

	c.Game = envconfig.NewConfig(envconfig.GridWorld, 1, 3, 0, 2, 10)
	c.Experiment = experiment.Config{MaxEpisodes: 4, MaxSteps: 10,
		TestEvery: 2}
	c.Parameters["batch_size"] = 4.0
	c.Parameters["replay_buffer_size"] = 50.0
	c.Parameters["anneal_steps"] = 100.0
	c.Parameters["target_update_rate"] = 5.0
	c.Parameters["test_size"] = 2.0
	c.QNetwork.HiddenLayers = []int{8}
	c.QNetwork.Activations = c.QNetwork.Activations[:1]
	c.CheckpointEvery = 2
	return c
}

func TestRun(t *testing.T) {
	c := smallConfig(t)
	logDir, err := run(c, t.TempDir(), "", io.Discard, false)
	require.NoError(t, err)

	m, err := experiment.ReadMetadata(logDir)
	require.NoError(t, err)
	require.Equal(t, "DQN", m.ModelName)
	require.Equal(t, "GridWorld", m.Game)
	require.Equal(t, 4.0, m.Parameters["batch_size"])

	_, err = os.Stat(filepath.Join(logDir, "curves.html"))
	require.NoError(t, err)

	db, err := store.NewSQLite(filepath.Join(logDir, "episodes.db"))
	require.NoError(t, err)
	defer db.Close()

	episodes, err := db.Episodes()
	require.NoError(t, err)
	require.Len(t, episodes, 4)
	for i, e := range episodes {
		require.Equal(t, i, e.Episode)
		require.LessOrEqual(t, e.Steps, 10)
	}

	// Tests after episodes 0 and 2, each of test_size games
	tests, err := db.Tests()
	require.NoError(t, err)
	require.Len(t, tests, 2)
	for _, test := range tests {
		require.Equal(t, 2, test.Games)
	}

	// Checkpoints after episodes 1 and 3
	for _, name := range []string{"q1.bin", "q2.bin"} {
		_, err := checkpointer.Load(filepath.Join(logDir, "checkpoints",
			name))
		require.NoError(t, err)
	}
}

func TestRunRestore(t *testing.T) {
	c := smallConfig(t)
	logDir, err := run(c, t.TempDir(), "", io.Discard, false)
	require.NoError(t, err)

	checkpoint := filepath.Join(logDir, "checkpoints", "q2.bin")
	c.Experiment.MaxEpisodes = 1
	_, err = run(c, t.TempDir(), checkpoint, io.Discard, false)
	require.NoError(t, err)

	_, err = run(c, t.TempDir(), filepath.Join(logDir, "missing.bin"),
		io.Discard, false)
	require.Error(t, err)
}

func TestRunInvalidParameters(t *testing.T) {
	c := smallConfig(t)
	delete(c.Parameters, "discount_factor")

	_, err := run(c, t.TempDir(), "", io.Discard, false)
	require.Error(t, err)
}
