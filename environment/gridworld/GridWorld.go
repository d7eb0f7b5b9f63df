// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/environment"
	ts "github.com/samuelfneumann/gamelearn/timestep"
)

// Actions of a GridWorld
const (
	Left = iota
	Right
	Up
	Down
)

// Rewards of the default GridWorld task
const (
	StepReward = -0.1
	GoalReward = 1.0
)

// GridWorld represents a gridworld environment
//
// A gridworld is represented as a flattened matrix, but in this
// implementation only the matrix dimensions and current agent position
// are tracked. Observations are one-hot encodings of the agent's cell.
// Moving into a wall leaves the agent in place. The score of an episode
// is its undiscounted return.
type GridWorld struct {
	task    Goal
	starter Starter
	ender   environment.Ender
	r, c    int

	row, col    int
	currentStep ts.TimeStep
	started     bool
}

// New creates a new gridworld with r rows and c columns and a goal at
// (goalRow, goalCol). Episodes start in a random cell and are cut off
// after cutoff steps.
func New(r, c, goalRow, goalCol, cutoff int) (*GridWorld, error) {
	return NewWithStart(r, c, goalRow, goalCol, cutoff,
		UniformStart{goalRow, goalCol})
}

// NewWithStart is like New, but starting cells are sampled from s
func NewWithStart(r, c, goalRow, goalCol, cutoff int,
	s Starter) (*GridWorld, error) {
	if r <= 0 || c <= 0 {
		return nil, errors.Errorf("new: invalid dimensions (%d, %d)", r, c)
	}
	if r*c < 2 {
		return nil, errors.New("new: gridworld needs at least 2 cells")
	}
	if goalRow < 0 || goalRow >= r || goalCol < 0 || goalCol >= c {
		return nil, errors.Errorf("new: goal (%d, %d) outside of the "+
			"gridworld bounds (%d, %d)", goalRow, goalCol, r, c)
	}
	if cutoff <= 0 {
		return nil, errors.Errorf("new: cutoff must be > 0 (have %d)",
			cutoff)
	}
	if s == nil {
		return nil, errors.New("new: nil starter")
	}

	return &GridWorld{
		task:    NewGoal(goalRow, goalCol, StepReward, GoalReward),
		starter: s,
		ender:   environment.NewStepLimit(cutoff),
		r:       r,
		c:       c,
	}, nil
}

// Reset starts a new episode in a cell sampled using seed
func (g *GridWorld) Reset(seed uint64) (ts.TimeStep, error) {
	row, col := g.starter.Start(rand.New(rand.NewSource(seed)), g.r, g.c)
	if row < 0 || row >= g.r || col < 0 || col >= g.c {
		return ts.TimeStep{}, errors.Errorf("reset: start (%d, %d) outside "+
			"of the gridworld bounds (%d, %d)", row, col, g.r, g.c)
	}
	if g.task.AtGoal(row, col) {
		return ts.TimeStep{}, errors.Errorf("reset: cannot start at the "+
			"goal (%d, %d)", row, col)
	}

	g.row, g.col = row, col
	g.started = true
	g.currentStep = ts.New(ts.First, 0, g.observation(), 0, 0)
	return g.currentStep, nil
}

// Step moves the agent in the direction given by action
func (g *GridWorld) Step(action int) (ts.TimeStep, error) {
	if !g.started {
		return ts.TimeStep{}, errors.New("step: must reset before stepping")
	}
	if g.currentStep.Last() {
		return ts.TimeStep{}, errors.New("step: episode has ended, " +
			"must reset")
	}

	row, col := g.row, g.col
	switch action {
	case Left:
		col--
	case Right:
		col++
	case Up:
		row--
	case Down:
		row++
	default:
		return ts.TimeStep{}, errors.Errorf("step: invalid action %d, "+
			"must be in [0, %d)", action, g.NumActions())
	}

	// Moving into a wall leaves the position unchanged
	if row >= 0 && row < g.r && col >= 0 && col < g.c {
		g.row, g.col = row, col
	}

	reward := g.task.Reward(g.row, g.col)
	stepType := ts.Mid
	if g.task.AtGoal(g.row, g.col) {
		stepType = ts.Last
	}

	step := ts.New(stepType, reward, g.observation(),
		g.currentStep.Number+1, g.currentStep.Score+reward)
	g.ender.End(&step)

	g.currentStep = step
	return step, nil
}

// NumActions returns the number of actions, one per direction
func (g *GridWorld) NumActions() int {
	return 4
}

// Features returns the length of observations, one per cell
func (g *GridWorld) Features() int {
	return g.r * g.c
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Position returns the cell of the agent
func (g *GridWorld) Position() (row, col int) {
	return g.row, g.col
}

func (g *GridWorld) observation() []float64 {
	obs := make([]float64, g.r*g.c)
	obs[g.row*g.c+g.col] = 1.0
	return obs
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: (%d, %d)  |   %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.row, g.col, g.task, g.r, g.c)
}

var _ environment.Environment = &GridWorld{}
