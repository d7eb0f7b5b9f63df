package solver

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

// RMSPropConfig implements a specific configuration of the RMSProp
// solver. Gorgonia's RMSProp has no momentum term.
type RMSPropConfig struct {
	StepSize float64
	Epsilon  float64
	Rho      float64 // Decay of the moving average of squared gradients
}

// NewDefaultRMSProp returns a new RMSProp Solver with default
// hyperparameters
func NewDefaultRMSProp(stepSize float64) (*Solver, error) {
	return NewRMSProp(stepSize, 1e-8, 0.9)
}

// NewRMSProp returns a new RMSProp Solver
func NewRMSProp(stepSize, epsilon, rho float64) (*Solver, error) {
	rmsprop := RMSPropConfig{
		StepSize: stepSize,
		Epsilon:  epsilon,
		Rho:      rho,
	}

	return newSolver(RMSProp, rmsprop)
}

// Create returns a new Gorgonia RMSProp Solver as described by the
// RMSPropConfig
func (r RMSPropConfig) Create(opts ...G.SolverOpt) G.Solver {
	opts = append([]G.SolverOpt{
		G.WithLearnRate(r.StepSize),
		G.WithEps(r.Epsilon),
		G.WithRho(r.Rho),
	}, opts...)
	return G.NewRMSPropSolver(opts...)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (r RMSPropConfig) ValidType(t Type) bool {
	return t == RMSProp
}

// Validate checks that the hyperparameters are in range
func (r RMSPropConfig) Validate() error {
	if r.StepSize <= 0 {
		return errors.Errorf("validate: step size must be > 0 (have %v)",
			r.StepSize)
	}
	if r.Epsilon <= 0 {
		return errors.Errorf("validate: epsilon must be > 0 (have %v)",
			r.Epsilon)
	}
	if r.Rho <= 0 || r.Rho >= 1 {
		return errors.Errorf("validate: rho must be in (0, 1) (have %v)",
			r.Rho)
	}
	return nil
}
