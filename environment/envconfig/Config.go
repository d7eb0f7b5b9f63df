// Package envconfig provides configuration structs for configuring
// game environments. Environment configurations in this package are
// JSON serializable.
package envconfig

import (
	"fmt"

	"github.com/pkg/errors"

	env "github.com/samuelfneumann/gamelearn/environment"
	"github.com/samuelfneumann/gamelearn/environment/gridworld"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	GridWorld EnvName = "GridWorld"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Environment   EnvName
	Rows, Cols    int
	GoalRow       int
	GoalCol       int
	EpisodeCutoff int
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, rows, cols, goalRow, goalCol,
	episodeCutoff int) Config {
	return Config{
		Environment:   envName,
		Rows:          rows,
		Cols:          cols,
		GoalRow:       goalRow,
		GoalCol:       goalCol,
		EpisodeCutoff: episodeCutoff,
	}
}

// Create returns the environment described by the Config
func (c Config) Create() (env.Environment, error) {
	switch c.Environment {
	case GridWorld:
		g, err := gridworld.New(c.Rows, c.Cols, c.GoalRow, c.GoalCol,
			c.EpisodeCutoff)
		if err != nil {
			return nil, errors.Wrap(err, "create")
		}
		return g, nil

	default:
		return nil, errors.Errorf("create: unknown environment %q",
			c.Environment)
	}
}

func (c Config) String() string {
	return fmt.Sprintf("%v(%dx%d, goal: (%d, %d), cutoff: %d)",
		c.Environment, c.Rows, c.Cols, c.GoalRow, c.GoalCol, c.EpisodeCutoff)
}
