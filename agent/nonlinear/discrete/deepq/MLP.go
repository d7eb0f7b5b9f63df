package deepq

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/agent"
	"github.com/samuelfneumann/gamelearn/initwfn"
	"github.com/samuelfneumann/gamelearn/network"
	"github.com/samuelfneumann/gamelearn/solver"
)

// NetworkConfig describes the Q-network of a DeepQ agent. If Biases is
// nil, every hidden layer has a bias unit. If InitWFn is nil, weights
// are drawn from a Gaussian with mean 0 and standard deviation 0.01.
type NetworkConfig struct {
	HiddenLayers []int                 `json:"hidden_layers"`
	Biases       []bool                `json:"biases,omitempty"`
	Activations  []*network.Activation `json:"activations"`
	InitWFn      *initwfn.InitWFn      `json:"init,omitempty"`
}

// Validate checks that the NetworkConfig describes a valid network
func (n NetworkConfig) Validate() error {
	if len(n.Activations) != len(n.HiddenLayers) {
		return errors.Errorf("validate: need one activation per hidden "+
			"layer \n\twant(%v) \n\thave(%v)", len(n.HiddenLayers),
			len(n.Activations))
	}
	if n.Biases != nil && len(n.Biases) != len(n.HiddenLayers) {
		return errors.Errorf("validate: need one bias per hidden layer "+
			"\n\twant(%v) \n\thave(%v)", len(n.HiddenLayers), len(n.Biases))
	}
	if n.InitWFn != nil {
		if err := n.InitWFn.Validate(); err != nil {
			return errors.Wrap(err, "validate")
		}
	}
	return nil
}

// NewMLP returns a DeepQ agent whose online and target estimators are
// multi-layered perceptrons described by net. The online estimator
// learns with opt, with the gradient clipping and L2 regularization of
// config. Initial weights are drawn from rng, which the agent then uses
// for all its random draws.
func NewMLP(config Config, net NetworkConfig, opt *solver.Solver, features,
	actions int, rng *rand.Rand, summarizer agent.Summarizer) (*DeepQ,
	error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "newMLP")
	}
	if err := net.Validate(); err != nil {
		return nil, errors.Wrap(err, "newMLP")
	}
	if opt == nil {
		return nil, errors.New("newMLP: nil solver")
	}
	if err := opt.Validate(); err != nil {
		return nil, errors.Wrap(err, "newMLP")
	}
	if rng == nil {
		return nil, errors.New("newMLP: nil rng")
	}

	biases := net.Biases
	if biases == nil {
		biases = make([]bool, len(net.HiddenLayers))
		for i := range biases {
			biases[i] = true
		}
	}

	init := net.InitWFn
	if init == nil {
		init = initwfn.Default()
	}

	online, err := network.NewMultiHeadMLP(features, actions,
		config.BatchSize, net.HiddenLayers, biases, net.Activations,
		init.InitWFn(rng), opt.Create(config.BatchSize, config.MaxGradient,
			config.RegParam))
	if err != nil {
		return nil, errors.Wrap(err, "newMLP: could not create online "+
			"network")
	}

	target, err := online.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "newMLP: could not create target "+
			"network")
	}

	return New(config, online, target, rng, summarizer)
}
