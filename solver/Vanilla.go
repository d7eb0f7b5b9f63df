package solver

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

// VanillaConfig describes a configuration of the vanilla gradient
// descent solver.
type VanillaConfig struct {
	StepSize float64
}

// NewVanilla returns a new Vanilla Solver
func NewVanilla(stepSize float64) (*Solver, error) {
	return newSolver(Vanilla, VanillaConfig{StepSize: stepSize})
}

// Create returns a Gorgonia Vanilla Solver as described by the
// VanillaConfig
func (v VanillaConfig) Create(opts ...G.SolverOpt) G.Solver {
	opts = append([]G.SolverOpt{G.WithLearnRate(v.StepSize)}, opts...)
	return G.NewVanillaSolver(opts...)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (v VanillaConfig) ValidType(t Type) bool {
	return t == Vanilla
}

// Validate checks that the hyperparameters are in range
func (v VanillaConfig) Validate() error {
	if v.StepSize <= 0 {
		return errors.Errorf("validate: step size must be > 0 (have %v)",
			v.StepSize)
	}
	return nil
}
