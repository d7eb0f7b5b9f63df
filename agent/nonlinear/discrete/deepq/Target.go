package deepq

import (
	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/utils/floatutils"
)

// computeTargets computes the bootstrapped update target of each
// transition in a batch:
//
//	y = r                                 if the transition is terminal
//	y = r + γ * max_a' Q_target(s', a')   Q-learning
//	y = r + γ * Q_target(s', a*)          double Q-learning
//
// where a* = argmax_a' Q_online(s', a'). The nextTarget and nextOnline
// slices hold the action values of each next state in row major order.
// nextOnline is only read for double Q-learning. A non-finite action
// value returns ErrDiverged.
func computeTargets(rewards []float64, terminals []bool, nextOnline,
	nextTarget []float64, numActions int, discount float64,
	double bool) ([]float64, error) {
	batchSize := len(rewards)
	if len(terminals) != batchSize {
		return nil, errors.Errorf("computeTargets: %d rewards but %d "+
			"terminals", batchSize, len(terminals))
	}
	if len(nextTarget) != batchSize*numActions {
		return nil, errors.Errorf("computeTargets: invalid number of "+
			"target action values \n\twant(%v) \n\thave(%v)",
			batchSize*numActions, len(nextTarget))
	}
	if double && len(nextOnline) != batchSize*numActions {
		return nil, errors.Errorf("computeTargets: invalid number of "+
			"online action values \n\twant(%v) \n\thave(%v)",
			batchSize*numActions, len(nextOnline))
	}

	// Max and Argmax skip NaNs, so estimates must be checked before
	// they are reduced
	if !floatutils.Finite(nextTarget...) {
		return nil, errors.Wrap(ErrDiverged, "computeTargets: non-finite "+
			"target action value")
	}
	if double && !floatutils.Finite(nextOnline...) {
		return nil, errors.Wrap(ErrDiverged, "computeTargets: non-finite "+
			"online action value")
	}

	targets := make([]float64, batchSize)
	for i := range targets {
		if terminals[i] {
			targets[i] = rewards[i]
			continue
		}

		targetValues := nextTarget[i*numActions : (i+1)*numActions]
		var nextValue float64
		if double {
			onlineValues := nextOnline[i*numActions : (i+1)*numActions]
			nextValue = targetValues[floatutils.Argmax(onlineValues)]
		} else {
			nextValue = floatutils.Max(targetValues)
		}

		targets[i] = rewards[i] + discount*nextValue
	}

	return targets, nil
}
