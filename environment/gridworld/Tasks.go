package gridworld

import "fmt"

// Goal represents the task of reaching a goal cell in a GridWorld
type Goal struct {
	row, col       int
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new goal at cell (row, col). Each step
// is rewarded with tr, except the step reaching the goal which is
// rewarded with gr.
func NewGoal(row, col int, tr, gr float64) Goal {
	return Goal{row, col, tr, gr}
}

// Reward returns the reward for moving into cell (row, col)
func (g Goal) Reward(row, col int) float64 {
	if g.AtGoal(row, col) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether cell (row, col) is the goal
func (g Goal) AtGoal(row, col int) bool {
	return row == g.row && col == g.col
}

func (g Goal) String() string {
	return fmt.Sprintf("Goal at (%d, %d)", g.row, g.col)
}
