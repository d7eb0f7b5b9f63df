package gridworld

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Starter samples the starting cell of episodes in a GridWorld with r
// rows and c columns
type Starter interface {
	Start(rng *rand.Rand, r, c int) (row, col int)
}

// SingleStart starts every episode in the same cell
type SingleStart struct {
	row, col int
}

// NewSingleStart returns a Starter which always starts episodes in cell
// (row, col)
func NewSingleStart(row, col int) (SingleStart, error) {
	if row < 0 || col < 0 {
		return SingleStart{}, errors.Errorf("newSingleStart: invalid "+
			"cell (%d, %d)", row, col)
	}
	return SingleStart{row, col}, nil
}

// Start returns the starting cell
func (s SingleStart) Start(_ *rand.Rand, _, _ int) (int, int) {
	return s.row, s.col
}

// UniformStart starts each episode in a cell drawn uniformly at random
// from all cells except the goal
type UniformStart struct {
	goalRow, goalCol int
}

// Start returns a random cell that is not the goal
func (u UniformStart) Start(rng *rand.Rand, r, c int) (int, int) {
	for {
		cell := rng.Intn(r * c)
		row, col := cell/c, cell%c
		if row != u.goalRow || col != u.goalCol {
			return row, col
		}
	}
}
