package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func dqn() DQN {
	return DQN{
		BatchSize:        32,
		InitExp:          0.5,
		FinalExp:         0.1,
		AnnealSteps:      10000,
		ReplayBufferSize: 10000,
		StoreReplayEvery: 5,
		DiscountFactor:   0.9,
		TargetUpdateRate: 1000,
		RegParam:         0.01,
		MaxGradient:      5,
		DoubleQLearning:  true,
		TestSize:         100,
	}
}

// throughJSON encodes and decodes m, turning every number into a float64
func throughJSON(t *testing.T, m map[string]interface{}) map[string]interface{} {
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestDQNFromMap(t *testing.T) {
	want := dqn()

	got, err := DQNFromMap(want.Map())
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = DQNFromMap(throughJSON(t, want.Map()))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDQNFromMapMissingKey(t *testing.T) {
	for key := range dqn().Map() {
		t.Run(key, func(t *testing.T) {
			m := dqn().Map()
			delete(m, key)
			_, err := DQNFromMap(m)
			require.Error(t, err)
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestDQNFromMapWrongType(t *testing.T) {
	m := dqn().Map()
	m[BatchSize] = "32"
	_, err := DQNFromMap(m)
	require.Error(t, err)

	m = dqn().Map()
	m[BatchSize] = 32.5
	_, err = DQNFromMap(m)
	require.Error(t, err)

	m = dqn().Map()
	m[DoubleQLearning] = 1
	_, err = DQNFromMap(m)
	require.Error(t, err)

	m = dqn().Map()
	m[DiscountFactor] = 1
	d, err := DQNFromMap(m)
	require.NoError(t, err)
	require.Equal(t, 1.0, d.DiscountFactor)
}

func TestDQNFromMapTargetUpdateFrequency(t *testing.T) {
	m := dqn().Map()
	delete(m, TargetUpdateRate)
	m["target_update_frequency"] = 250

	d, err := DQNFromMap(m)
	require.NoError(t, err)
	require.Equal(t, 250, d.TargetUpdateRate)
}

func TestDQNString(t *testing.T) {
	s := dqn().String()
	require.Contains(t, s, "batch_size: 32")
	require.Contains(t, s, "anneal_steps: 10000")
	require.Contains(t, s, "target_update_rate: 1000")
	require.Contains(t, s, "double_q_learning: true")
}

func TestGreedyFromMap(t *testing.T) {
	want := Greedy{
		BatchSize:    16,
		Episodes:     500,
		Gamma:        0.99,
		Optimizer:    "adam",
		Epsilon:      0.05,
		TestSize:     10,
		LearningRate: 0.001,
	}

	got, err := GreedyFromMap(throughJSON(t, want.Map()))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Contains(t, got.String(), "optimizer: adam")

	m := want.Map()
	delete(m, LearningRate)
	_, err = GreedyFromMap(m)
	require.Error(t, err)
}

func TestDDPGFromMap(t *testing.T) {
	want := DDPG{
		BatchSize:        64,
		ReplayBufferSize: 100000,
		DiscountFactor:   0.99,
		Episodes:         1000,
		TestSize:         20,
	}

	got, err := DDPGFromMap(throughJSON(t, want.Map()))
	require.NoError(t, err)
	require.Equal(t, want, got)

	m := want.Map()
	delete(m, Episodes)
	_, err = DDPGFromMap(m)
	require.Error(t, err)
}

func TestEvolutionaryAlgorithmFromMap(t *testing.T) {
	want := EvolutionaryAlgorithm{
		Pop:           50,
		CxPb:          0.5,
		Mut:           0.2,
		NGen:          100,
		GameBatchSize: 10,
		CxIndPb:       0.25,
		HofSize:       5,
		Elite:         2,
		Selection:     "tournament",
	}

	got, err := EvolutionaryAlgorithmFromMap(throughJSON(t, want.Map()))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "pop_size: 50, xover: 0.5/0.25, mut: 0.2, hof: 5, "+
		"elite: 2, sel: tournament", got.String())

	m := want.Map()
	delete(m, Selection)
	_, err = EvolutionaryAlgorithmFromMap(m)
	require.Error(t, err)
}

func TestEvolutionStrategyFromMap(t *testing.T) {
	want := EvolutionStrategy{
		Pop:           30,
		NGen:          40,
		GameBatchSize: 8,
		HofSize:       3,
		Elite:         1,
		Sigma:         0.1,
	}

	got, err := EvolutionStrategyFromMap(throughJSON(t, want.Map()))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "Evolution Strategy - pop_size: 30, hof: 3, elite: 1, "+
		"sigma: 0.1", got.String())

	m := want.Map()
	delete(m, Sigma)
	_, err = EvolutionStrategyFromMap(m)
	require.Error(t, err)
}

func TestDifferentialEvolutionFromMap(t *testing.T) {
	want := DifferentialEvolution{
		Pop:           20,
		NGen:          60,
		GameBatchSize: 4,
		HofSize:       2,
		CR:            0.9,
		F:             0.8,
	}

	got, err := DifferentialEvolutionFromMap(throughJSON(t, want.Map()))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, 0, got.Elite())
	require.NotContains(t, got.Map(), Elite)

	m := want.Map()
	delete(m, F)
	_, err = DifferentialEvolutionFromMap(m)
	require.Error(t, err)
}

func TestEvolutionAccessors(t *testing.T) {
	params := []Evolution{
		EvolutionaryAlgorithm{Pop: 1, NGen: 2, GameBatchSize: 3, HofSize: 4},
		EvolutionStrategy{Pop: 1, NGen: 2, GameBatchSize: 3, HofSize: 4},
		DifferentialEvolution{Pop: 1, NGen: 2, GameBatchSize: 3, HofSize: 4},
	}

	for _, p := range params {
		require.Equal(t, 1, p.PopSize())
		require.Equal(t, 2, p.Generations())
		require.Equal(t, 3, p.FitRepetitions())
		require.Equal(t, 4, p.HallOfFame())
		require.NotEmpty(t, p.String())
		require.Equal(t, 1, p.Map()[PopSize])
	}
}
