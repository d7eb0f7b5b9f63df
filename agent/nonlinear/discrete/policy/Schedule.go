// Package policy implements the ε-greedy behaviour policy used by
// value-based learners with discrete actions, together with the
// exploration schedule that anneals ε over time.
package policy

import (
	"math"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/utils/floatutils"
)

// LinearDecay anneals the exploration probability linearly from Init at
// decision step 0 to Final at decision step AnnealSteps. After
// AnnealSteps decision steps the exploration probability stays at Final.
type LinearDecay struct {
	Init        float64
	Final       float64
	AnnealSteps int
}

// NewLinearDecay returns a new LinearDecay schedule
func NewLinearDecay(init, final float64, annealSteps int) (LinearDecay,
	error) {
	if annealSteps <= 0 {
		return LinearDecay{}, errors.Errorf("newLinearDecay: anneal steps "+
			"must be > 0 (have %d)", annealSteps)
	}
	for _, p := range []float64{init, final} {
		if p < 0 || p > 1 {
			return LinearDecay{}, errors.Errorf("newLinearDecay: "+
				"exploration probability %v outside [0, 1]", p)
		}
	}

	return LinearDecay{Init: init, Final: final, AnnealSteps: annealSteps}, nil
}

// At returns the exploration probability after t decision steps
func (l LinearDecay) At(t int) float64 {
	if t <= 0 {
		return l.Init
	}
	if t >= l.AnnealSteps {
		return l.Final
	}

	eps := l.Init + (l.Final-l.Init)*float64(t)/float64(l.AnnealSteps)
	return floatutils.Clip(eps, math.Min(l.Init, l.Final),
		math.Max(l.Init, l.Final))
}
