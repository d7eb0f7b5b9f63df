package deepq

import (
	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/spec"
)

// Config implements a configuration for a DeepQ agent. Every field is
// required; DeepQ never substitutes a default value.
type Config struct {
	BatchSize int // Transitions per update

	// Exploration schedule
	InitExp     float64 // Exploration probability at decision step 0
	FinalExp    float64 // Exploration probability after annealing
	AnnealSteps int     // Decision steps to anneal over

	// Experience replay parameters
	ReplayBufferSize int // Maximum number of transitions stored
	StoreReplayEvery int // Only every n-th transition is stored

	// Target net updates. Despite the name, TargetUpdateRate is an
	// interval: the target estimator is overwritten with the online
	// estimator's parameters every TargetUpdateRate updates.
	TargetUpdateRate int

	DiscountFactor float64
	RegParam       float64 // L2 regularization of the online estimator
	MaxGradient    float64 // Gradient clipping of the online estimator

	DoubleQLearning bool
}

// ConfigFromSpec returns the Config described by a DQN parameter set
func ConfigFromSpec(s spec.DQN) Config {
	return Config{
		BatchSize:        s.BatchSize,
		InitExp:          s.InitExp,
		FinalExp:         s.FinalExp,
		AnnealSteps:      s.AnnealSteps,
		ReplayBufferSize: s.ReplayBufferSize,
		StoreReplayEvery: s.StoreReplayEvery,
		TargetUpdateRate: s.TargetUpdateRate,
		DiscountFactor:   s.DiscountFactor,
		RegParam:         s.RegParam,
		MaxGradient:      s.MaxGradient,
		DoubleQLearning:  s.DoubleQLearning,
	}
}

// Validate checks a Config to ensure it is a valid configuration of a
// DeepQ agent.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"batch size", c.BatchSize},
		{"anneal steps", c.AnnealSteps},
		{"replay buffer size", c.ReplayBufferSize},
		{"store replay every", c.StoreReplayEvery},
		{"target update rate", c.TargetUpdateRate},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.Errorf("validate: %v must be > 0 \n\twant(>0) "+
				"\n\thave(%v)", p.name, p.value)
		}
	}

	if c.BatchSize > c.ReplayBufferSize {
		return errors.Errorf("validate: cannot have batch size (%v) > "+
			"replay buffer size (%v)", c.BatchSize, c.ReplayBufferSize)
	}

	probabilities := []struct {
		name  string
		value float64
	}{
		{"initial exploration", c.InitExp},
		{"final exploration", c.FinalExp},
		{"discount factor", c.DiscountFactor},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 {
			return errors.Errorf("validate: %v must be in [0, 1] "+
				"\n\thave(%v)", p.name, p.value)
		}
	}

	if c.RegParam < 0 {
		return errors.Errorf("validate: regularization must be >= 0 "+
			"\n\thave(%v)", c.RegParam)
	}
	if c.MaxGradient <= 0 {
		return errors.Errorf("validate: max gradient must be > 0 "+
			"\n\thave(%v)", c.MaxGradient)
	}

	return nil
}
