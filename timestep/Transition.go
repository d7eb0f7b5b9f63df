package timestep

import "fmt"

// Transition is a single (s, a, r, s', done) step of interaction with
// a game. A Transition should not be modified after it is handed to a
// learner, since learners may keep references to it.
type Transition struct {
	State     []float64
	Action    int
	Reward    float64
	NextState []float64
	Terminal  bool
}

// NewTransition returns the Transition that leads from step to next
// by taking action.
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		State:     step.Observation,
		Action:    action,
		Reward:    next.Reward,
		NextState: next.Observation,
		Terminal:  next.Last(),
	}
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | Action: %d  |  Reward: %.2f  |  "+
		"Terminal: %v", t.Action, t.Reward, t.Terminal)
}
