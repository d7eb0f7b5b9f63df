package spec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Keys of a DQN parameter map
const (
	BatchSize        = "batch_size"
	InitExp          = "init_exp"
	FinalExp         = "final_exp"
	AnnealSteps      = "anneal_steps"
	ReplayBufferSize = "replay_buffer_size"
	StoreReplayEvery = "store_replay_every"
	DiscountFactor   = "discount_factor"
	TargetUpdateRate = "target_update_rate"
	RegParam         = "reg_param"
	MaxGradient      = "max_gradient"
	DoubleQLearning  = "double_q_learning"
	TestSize         = "test_size"

	// Older experiment files name the target update interval this way
	targetUpdateFrequency = "target_update_frequency"
)

// DQN represents the parameters of a deep Q-learning agent
type DQN struct {
	BatchSize        int
	InitExp          float64 // Initial exploration probability
	FinalExp         float64 // Final exploration probability
	AnnealSteps      int     // Decision steps to anneal exploration over
	ReplayBufferSize int
	StoreReplayEvery int // Only every n-th transition is stored
	DiscountFactor   float64
	TargetUpdateRate int // Updates between target synchronizations
	RegParam         float64
	MaxGradient      float64
	DoubleQLearning  bool
	TestSize         int // Greedy episodes per evaluation
}

// DQNFromMap constructs a DQN from a map of parameter names to values.
// Every key is required.
func DQNFromMap(m map[string]interface{}) (DQN, error) {
	f := fields{m: m}

	targetKey := TargetUpdateRate
	if _, ok := m[TargetUpdateRate]; !ok {
		if _, ok := m[targetUpdateFrequency]; ok {
			targetKey = targetUpdateFrequency
		}
	}

	d := DQN{
		BatchSize:        f.getInt(BatchSize),
		InitExp:          f.getFloat(InitExp),
		FinalExp:         f.getFloat(FinalExp),
		AnnealSteps:      f.getInt(AnnealSteps),
		ReplayBufferSize: f.getInt(ReplayBufferSize),
		StoreReplayEvery: f.getInt(StoreReplayEvery),
		DiscountFactor:   f.getFloat(DiscountFactor),
		TargetUpdateRate: f.getInt(targetKey),
		RegParam:         f.getFloat(RegParam),
		MaxGradient:      f.getFloat(MaxGradient),
		DoubleQLearning:  f.getBool(DoubleQLearning),
		TestSize:         f.getInt(TestSize),
	}
	if f.err != nil {
		return DQN{}, errors.Wrap(f.err, "dqnFromMap")
	}
	return d, nil
}

// Map returns the parameters as a map of parameter names to values
func (d DQN) Map() map[string]interface{} {
	return map[string]interface{}{
		BatchSize:        d.BatchSize,
		InitExp:          d.InitExp,
		FinalExp:         d.FinalExp,
		AnnealSteps:      d.AnnealSteps,
		ReplayBufferSize: d.ReplayBufferSize,
		StoreReplayEvery: d.StoreReplayEvery,
		DiscountFactor:   d.DiscountFactor,
		TargetUpdateRate: d.TargetUpdateRate,
		RegParam:         d.RegParam,
		MaxGradient:      d.MaxGradient,
		DoubleQLearning:  d.DoubleQLearning,
		TestSize:         d.TestSize,
	}
}

func (d DQN) String() string {
	return fmt.Sprintf("batch_size: %v, init_exp: %v, final_exp: %v, "+
		"anneal_steps: %v, replay_buffer_size: %v, store_replay_every: %v, "+
		"discount_factor: %v, target_update_rate: %v, reg_param: %v, "+
		"max_gradient: %v, double_q_learning: %v", d.BatchSize, d.InitExp,
		d.FinalExp, d.AnnealSteps, d.ReplayBufferSize, d.StoreReplayEvery,
		d.DiscountFactor, d.TargetUpdateRate, d.RegParam, d.MaxGradient,
		d.DoubleQLearning)
}
