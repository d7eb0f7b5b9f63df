package initwfn

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
)

// UniformConfig implements a configuration of a weight initializer
// that draws weights from a uniform distribution
type UniformConfig struct {
	Low, High float64
}

// NewUniform returns a new uniform weight initializer
func NewUniform(low, high float64) (*InitWFn, error) {
	config := UniformConfig{
		Low:  low,
		High: high,
	}

	return newInitWFn(config)
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (u UniformConfig) Type() Type {
	return Uniform
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (u UniformConfig) Create(rng *rand.Rand) G.InitWFn {
	return fromSampler(func([]int) func() float64 {
		return distuv.Uniform{Min: u.Low, Max: u.High, Src: rng}.Rand
	})
}

// Validate checks that the bounds form a non-empty interval
func (u UniformConfig) Validate() error {
	if u.Low >= u.High {
		return errors.Errorf("validate: low must be < high (have %v, %v)",
			u.Low, u.High)
	}
	return nil
}
