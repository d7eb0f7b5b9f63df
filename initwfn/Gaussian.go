package initwfn

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
)

// GaussianConfig implements a configuration of a weight initializer
// that draws weights from a gaussian distribution
type GaussianConfig struct {
	Mean, StdDev float64
}

// NewGaussian returns a new gaussian weight initializer
func NewGaussian(mean, stddev float64) (*InitWFn, error) {
	config := GaussianConfig{
		Mean:   mean,
		StdDev: stddev,
	}

	return newInitWFn(config)
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (g GaussianConfig) Type() Type {
	return Gaussian
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (g GaussianConfig) Create(rng *rand.Rand) G.InitWFn {
	return fromSampler(func([]int) func() float64 {
		return distuv.Normal{Mu: g.Mean, Sigma: g.StdDev, Src: rng}.Rand
	})
}

// Validate checks that the standard deviation is positive
func (g GaussianConfig) Validate() error {
	if g.StdDev <= 0 {
		return errors.Errorf("validate: standard deviation must be > 0 "+
			"(have %v)", g.StdDev)
	}
	return nil
}
