// Package environment outlines the interfaces needed to implement
// concrete game environments
package environment

import (
	ts "github.com/samuelfneumann/gamelearn/timestep"
)

// Environment implements a simulated game with a discrete set of
// actions, numbered from 0. Observations are vectors of Features()
// values.
type Environment interface {
	// Reset starts a new episode and returns its first timestep. The
	// seed determines any randomness of the episode's start.
	Reset(seed uint64) (ts.TimeStep, error)

	// Step takes action and returns the next timestep. The final
	// timestep of an episode has StepType timestep.Last and carries the
	// episode's game score.
	Step(action int) (ts.TimeStep, error)

	NumActions() int
	Features() int
}

// Ender determines when episodes end
type Ender interface {
	// End returns whether the episode should end at timestep t. If the
	// episode should be ended End modifies the timestep so that its
	// StepType field is timestep.Last
	End(t *ts.TimeStep) bool
}
