// Package agent defines the interfaces shared by learning agents and
// the value estimators they learn with
package agent

import (
	"github.com/samuelfneumann/gamelearn/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the Policy.
//
// Agents are not safe for concurrent use. The caller must serialize
// every call, usually by running action selection, storage and
// updating one after the other on each step of a game.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Store records a transition the agent experienced
	Store(t timestep.Transition) error

	// Update performs a single update to the learner
	Update() error
}

// Policy represents the way an agent selects actions
type Policy interface {
	// SelectAction selects an action in the given state using the
	// behaviour policy. Each call counts as a decision step.
	SelectAction(state []float64) (int, error)

	// GreedyAction selects the action with the highest estimated value
	// in the given state. It does not count as a decision step.
	GreedyAction(state []float64) (int, error)

	// Exploration returns the current probability of selecting a
	// random action
	Exploration() float64
}

// Parameters is a full set of parameters of a ValueEstimator, one flat
// slice per parameter tensor in a fixed order.
type Parameters [][]float64

// Clone returns a deep copy of the Parameters
func (p Parameters) Clone() Parameters {
	clone := make(Parameters, len(p))
	for i := range p {
		clone[i] = append([]float64(nil), p[i]...)
	}
	return clone
}

// Equal returns whether two parameter sets hold exactly the same values
func (p Parameters) Equal(other Parameters) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if len(p[i]) != len(other[i]) {
			return false
		}
		for j := range p[i] {
			if p[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// ValueEstimator estimates the value of each discrete action in a state.
//
// States are given in batches, flattened in row major order. Calls are
// synchronous and block until the result is available.
type ValueEstimator interface {
	// Predict returns the action values of each state in the batch,
	// in row major order with NumActions() values per state
	Predict(states []float64) ([]float64, error)

	// ApplyGradient takes a single gradient step on the squared error
	// between the estimated value of actions[i] in state i and
	// targets[i]. The loss before the step is returned.
	ApplyGradient(states []float64, actions []int,
		targets []float64) (float64, error)

	// Parameters returns a copy of the current parameters
	Parameters() Parameters

	// SetParameters overwrites the current parameters with a copy of
	// params
	SetParameters(params Parameters) error

	// Features returns the number of features in a single state
	Features() int

	// NumActions returns the number of actions valued per state
	NumActions() int
}

// UpdateSummary summarizes a single parameter update of a learner
type UpdateSummary struct {
	Update int     // Number of updates performed so far, including this one
	Loss   float64 // Loss before the gradient step
	Synced bool    // Whether the target estimator was synchronized
}

// Summarizer receives summaries of learner updates. It is the hook
// through which metrics leave a learner.
type Summarizer interface {
	Summarize(UpdateSummary)
}
