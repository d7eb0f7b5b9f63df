package spec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Keys of policy gradient parameter maps not shared with DQN
const (
	Episodes     = "episodes"
	Gamma        = "gamma"
	Optimizer    = "optimizer"
	Epsilon      = "epsilon"
	LearningRate = "learning_rate"
)

// Greedy represents the parameters of a learner with a greedy policy
// trained by a named optimizer
type Greedy struct {
	BatchSize    int
	Episodes     int
	Gamma        float64
	Optimizer    string
	Epsilon      float64
	TestSize     int
	LearningRate float64
}

// GreedyFromMap constructs a Greedy from a map of parameter names to
// values. Every key is required.
func GreedyFromMap(m map[string]interface{}) (Greedy, error) {
	f := fields{m: m}
	g := Greedy{
		BatchSize:    f.getInt(BatchSize),
		Episodes:     f.getInt(Episodes),
		Gamma:        f.getFloat(Gamma),
		Optimizer:    f.getString(Optimizer),
		Epsilon:      f.getFloat(Epsilon),
		TestSize:     f.getInt(TestSize),
		LearningRate: f.getFloat(LearningRate),
	}
	if f.err != nil {
		return Greedy{}, errors.Wrap(f.err, "greedyFromMap")
	}
	return g, nil
}

// Map returns the parameters as a map of parameter names to values
func (g Greedy) Map() map[string]interface{} {
	return map[string]interface{}{
		BatchSize:    g.BatchSize,
		Episodes:     g.Episodes,
		Gamma:        g.Gamma,
		Optimizer:    g.Optimizer,
		Epsilon:      g.Epsilon,
		TestSize:     g.TestSize,
		LearningRate: g.LearningRate,
	}
}

func (g Greedy) String() string {
	return fmt.Sprintf("gamma: %v, optimizer: %v, learning rate: %v, "+
		"epsilon: %v, batch_size: %v, episodes: %v, test_size: %v", g.Gamma,
		g.Optimizer, g.LearningRate, g.Epsilon, g.BatchSize, g.Episodes,
		g.TestSize)
}

// DDPG represents the parameters of a deep deterministic policy
// gradient learner
type DDPG struct {
	BatchSize        int
	ReplayBufferSize int
	DiscountFactor   float64
	Episodes         int
	TestSize         int
}

// DDPGFromMap constructs a DDPG from a map of parameter names to values.
// Every key is required.
func DDPGFromMap(m map[string]interface{}) (DDPG, error) {
	f := fields{m: m}
	d := DDPG{
		BatchSize:        f.getInt(BatchSize),
		ReplayBufferSize: f.getInt(ReplayBufferSize),
		DiscountFactor:   f.getFloat(DiscountFactor),
		Episodes:         f.getInt(Episodes),
		TestSize:         f.getInt(TestSize),
	}
	if f.err != nil {
		return DDPG{}, errors.Wrap(f.err, "ddpgFromMap")
	}
	return d, nil
}

// Map returns the parameters as a map of parameter names to values
func (d DDPG) Map() map[string]interface{} {
	return map[string]interface{}{
		BatchSize:        d.BatchSize,
		ReplayBufferSize: d.ReplayBufferSize,
		DiscountFactor:   d.DiscountFactor,
		Episodes:         d.Episodes,
		TestSize:         d.TestSize,
	}
}

func (d DDPG) String() string {
	return fmt.Sprintf("batch_size: %v, replay_buffer_size: %v, "+
		"discount_factor: %v, episodes: %v, test_size: %v", d.BatchSize,
		d.ReplayBufferSize, d.DiscountFactor, d.Episodes, d.TestSize)
}
