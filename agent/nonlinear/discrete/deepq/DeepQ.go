// Package deepq implements the deep Q-learning algorithm with
// experience replay, a periodically synchronized target estimator and
// optional double Q-learning targets.
package deepq

import (
	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/agent"
	"github.com/samuelfneumann/gamelearn/agent/nonlinear/discrete/policy"
	"github.com/samuelfneumann/gamelearn/expreplay"
	ts "github.com/samuelfneumann/gamelearn/timestep"
	"github.com/samuelfneumann/gamelearn/utils/floatutils"
)

// ErrDiverged is returned by Update when the update targets or the loss
// stop being finite. Training cannot continue once this happens.
var ErrDiverged = errors.New("deepq: training diverged")

// DeepQ implements the deep Q-learning algorithm. This algorithm is
// conceptually similar to DQN, but uses the MSE loss.
//
// DeepQ owns two value estimators. The online estimator selects actions
// and receives every gradient step. The target estimator only provides
// update targets and is overwritten with the online estimator's
// parameters every TargetUpdateRate updates.
type DeepQ struct {
	// Action selection policy
	behaviourPolicy *policy.EGreedy

	online agent.ValueEstimator
	target agent.ValueEstimator

	replay           *expreplay.Memory
	storeReplayEvery int
	batchSize        int

	// Variables to track target network updates
	targetUpdateRate int
	gradientSteps    int

	decisionSteps int
	storeCalls    int

	discount   float64
	doubleQ    bool
	numActions int

	summarizer agent.Summarizer
}

// New creates and returns a new DeepQ agent learning with the online and
// target estimators, which must be distinct instances. Every random
// draw of the agent, for exploration and for sampling from its replay
// memory, is taken from rng. The summarizer is optional and may be nil.
func New(config Config, online, target agent.ValueEstimator, rng *rand.Rand,
	summarizer agent.Summarizer) (*DeepQ, error) {
	// Ensure the configuration is valid
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}

	if online == nil || target == nil {
		return nil, errors.New("new: online and target estimators must " +
			"not be nil")
	}
	if rng == nil {
		return nil, errors.New("new: nil rng")
	}

	numActions := online.NumActions()
	if target.NumActions() != numActions {
		return nil, errors.Errorf("new: online and target estimators "+
			"value a different number of actions (%d != %d)", numActions,
			target.NumActions())
	}
	features := online.Features()
	if target.Features() != features {
		return nil, errors.Errorf("new: online and target estimators "+
			"expect a different number of features (%d != %d)", features,
			target.Features())
	}

	schedule, err := policy.NewLinearDecay(config.InitExp, config.FinalExp,
		config.AnnealSteps)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}
	behaviourPolicy, err := policy.NewEGreedy(schedule, numActions, rng)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	replay, err := expreplay.New(config.ReplayBufferSize, features,
		expreplay.NewUniformSelector(rng))
	if err != nil {
		return nil, errors.Wrap(err, "new: could not create experience "+
			"replay buffer")
	}

	return &DeepQ{
		behaviourPolicy:  behaviourPolicy,
		online:           online,
		target:           target,
		replay:           replay,
		storeReplayEvery: config.StoreReplayEvery,
		batchSize:        config.BatchSize,
		targetUpdateRate: config.TargetUpdateRate,
		discount:         config.DiscountFactor,
		doubleQ:          config.DoubleQLearning,
		numActions:       numActions,
		summarizer:       summarizer,
	}, nil
}

// SelectAction selects an action in state using the ε-greedy behaviour
// policy. Each call advances the decision step counter, and with it the
// exploration schedule.
func (d *DeepQ) SelectAction(state []float64) (int, error) {
	d.decisionSteps++

	action, err := d.behaviourPolicy.SelectAction(d.decisionSteps,
		d.actionValues(state))
	if err != nil {
		return 0, errors.Wrap(err, "selectAction")
	}
	return action, nil
}

// GreedyAction returns the action of maximum estimated value in state.
// It is used to evaluate the learned policy and does not advance the
// decision step counter.
func (d *DeepQ) GreedyAction(state []float64) (int, error) {
	action, err := d.behaviourPolicy.Greedy(d.actionValues(state))
	if err != nil {
		return 0, errors.Wrap(err, "greedyAction")
	}
	return action, nil
}

// actionValues returns a function that predicts the online action
// values of a single state
func (d *DeepQ) actionValues(state []float64) policy.ActionValuer {
	return func() ([]float64, error) {
		return d.online.Predict(state)
	}
}

// Exploration returns the probability of selecting a random action at
// the current decision step
func (d *DeepQ) Exploration() float64 {
	return d.behaviourPolicy.Epsilon(d.decisionSteps)
}

// Store stores a transition in the replay buffer. Only every
// StoreReplayEvery-th call stores its transition, all other
// transitions are dropped.
func (d *DeepQ) Store(t ts.Transition) error {
	d.storeCalls++
	if d.storeCalls%d.storeReplayEvery != 0 {
		return nil
	}

	if err := d.replay.Add(t); err != nil {
		return errors.Wrap(err, "store")
	}
	return nil
}

// Update samples a batch of transitions from the replay buffer and takes
// a single gradient step on the online estimator towards the batch's
// update targets. Update does nothing while fewer than BatchSize
// transitions are stored.
func (d *DeepQ) Update() error {
	// Don't update if replay buffer has insufficient samples to sample
	if d.replay.Len() < d.batchSize {
		return nil
	}

	batch, err := d.replay.Sample(d.batchSize)
	if err != nil {
		return errors.Wrap(err, "update")
	}

	// Predict the action values in the next states
	nextTarget, err := d.target.Predict(batch.NextStates)
	if err != nil {
		return errors.Wrap(err, "update: could not predict target "+
			"action values")
	}

	var nextOnline []float64
	if d.doubleQ {
		nextOnline, err = d.online.Predict(batch.NextStates)
		if err != nil {
			return errors.Wrap(err, "update: could not predict online "+
				"action values")
		}
	}

	targets, err := computeTargets(batch.Rewards, batch.Terminals,
		nextOnline, nextTarget, d.numActions, d.discount, d.doubleQ)
	if err != nil {
		return errors.Wrap(err, "update")
	}
	if !floatutils.Finite(targets...) {
		return errors.Wrapf(ErrDiverged, "update %d: non-finite update "+
			"target", d.gradientSteps+1)
	}

	// Run the learning step
	loss, err := d.online.ApplyGradient(batch.States, batch.Actions, targets)
	if errors.Cause(err) == agent.ErrNonFiniteLoss ||
		(err == nil && !floatutils.Finite(loss)) {
		return errors.Wrapf(ErrDiverged, "update %d: non-finite loss %v",
			d.gradientSteps+1, loss)
	} else if err != nil {
		return errors.Wrap(err, "update")
	}
	d.gradientSteps++

	// Update the target network by setting its weights to the newly
	// learned weights
	synced := false
	if d.gradientSteps%d.targetUpdateRate == 0 {
		if err := d.target.SetParameters(d.online.Parameters()); err != nil {
			return errors.Wrap(err, "update: could not synchronize target "+
				"estimator")
		}
		synced = true
		log.V(1).Infof("deepq: synchronized target estimator after %d "+
			"updates", d.gradientSteps)
	}

	if d.summarizer != nil {
		d.summarizer.Summarize(agent.UpdateSummary{
			Update: d.gradientSteps,
			Loss:   loss,
			Synced: synced,
		})
	}
	return nil
}

// DecisionSteps returns the number of times SelectAction was called
func (d *DeepQ) DecisionSteps() int {
	return d.decisionSteps
}

// Updates returns the number of gradient steps taken
func (d *DeepQ) Updates() int {
	return d.gradientSteps
}

// MemorySize returns the number of transitions in the replay buffer
func (d *DeepQ) MemorySize() int {
	return d.replay.Len()
}

// OnlineParameters returns a copy of the online estimator's parameters
func (d *DeepQ) OnlineParameters() agent.Parameters {
	return d.online.Parameters()
}

// TargetParameters returns a copy of the target estimator's parameters
func (d *DeepQ) TargetParameters() agent.Parameters {
	return d.target.Parameters()
}

// SetParameters sets both the online and target estimators' parameters,
// for example to restore a trained agent
func (d *DeepQ) SetParameters(params agent.Parameters) error {
	if err := d.online.SetParameters(params); err != nil {
		return errors.Wrap(err, "setParameters: online")
	}
	if err := d.target.SetParameters(params); err != nil {
		return errors.Wrap(err, "setParameters: target")
	}
	return nil
}
