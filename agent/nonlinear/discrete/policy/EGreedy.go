package policy

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/utils/floatutils"
)

// ActionValuer returns the estimated value of each action in the
// current state
type ActionValuer func() ([]float64, error)

// EGreedy implements an ε-greedy policy over a discrete set of actions,
// where ε is given by a LinearDecay schedule of decision steps.
//
// Action values are only requested when the policy acts greedily, so
// exploratory steps never pay for a forward pass of the estimator.
type EGreedy struct {
	schedule   LinearDecay
	numActions int
	rng        *rand.Rand
}

// NewEGreedy returns a new EGreedy policy choosing between numActions
// actions. All random draws are taken from rng.
func NewEGreedy(schedule LinearDecay, numActions int,
	rng *rand.Rand) (*EGreedy, error) {
	if numActions <= 0 {
		return nil, errors.Errorf("newEGreedy: number of actions must be "+
			"> 0 (have %d)", numActions)
	}
	if rng == nil {
		return nil, errors.New("newEGreedy: nil rng")
	}

	return &EGreedy{
		schedule:   schedule,
		numActions: numActions,
		rng:        rng,
	}, nil
}

// Epsilon returns the probability of selecting a random action after t
// decision steps
func (e *EGreedy) Epsilon(t int) float64 {
	return e.schedule.At(t)
}

// NumActions returns the number of actions the policy chooses between
func (e *EGreedy) NumActions() int {
	return e.numActions
}

// SelectAction selects an action on decision step t. With probability
// ε(t) a uniform random action is returned, otherwise the action of
// maximum value is returned.
func (e *EGreedy) SelectAction(t int, values ActionValuer) (int, error) {
	if probability := e.rng.Float64(); probability < e.Epsilon(t) {
		return e.rng.Intn(e.numActions), nil
	}

	return e.Greedy(values)
}

// Greedy returns the action of maximum value, breaking ties in favour of
// the lowest action index
func (e *EGreedy) Greedy(values ActionValuer) (int, error) {
	actionValues, err := values()
	if err != nil {
		return 0, errors.Wrap(err, "greedy")
	}
	if len(actionValues) != e.numActions {
		return 0, errors.Errorf("greedy: invalid number of action values "+
			"\n\twant(%v) \n\thave(%v)", e.numActions, len(actionValues))
	}

	return floatutils.Argmax(actionValues), nil
}
