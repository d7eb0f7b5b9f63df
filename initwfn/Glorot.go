package initwfn

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
)

// GlorotUConfig implements a configuration of the Glorot Uniform
// initialization algorithm.
type GlorotUConfig struct {
	Gain float64
}

// NewGlorotU returns a new Glorot Uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotUConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (g GlorotUConfig) Type() Type {
	return GlorotU
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (g GlorotUConfig) Create(rng *rand.Rand) G.InitWFn {
	return fromSampler(func(s []int) func() float64 {
		in, out := fans(s)
		limit := g.Gain * math.Sqrt(6/(in+out))
		return distuv.Uniform{Min: -limit, Max: limit, Src: rng}.Rand
	})
}

// Validate checks that the gain is positive
func (g GlorotUConfig) Validate() error {
	return validateGain(g.Gain)
}

// GlorotNConfig implements a configuration of the Glorot Normal
// initialization algorithm.
type GlorotNConfig struct {
	Gain float64
}

// NewGlorotN returns a new Glorot Normal weight initializer.
func NewGlorotN(gain float64) (*InitWFn, error) {
	return newInitWFn(GlorotNConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (g GlorotNConfig) Type() Type {
	return GlorotN
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (g GlorotNConfig) Create(rng *rand.Rand) G.InitWFn {
	return fromSampler(func(s []int) func() float64 {
		in, out := fans(s)
		stddev := g.Gain * math.Sqrt(2/(in+out))
		return distuv.Normal{Mu: 0, Sigma: stddev, Src: rng}.Rand
	})
}

// Validate checks that the gain is positive
func (g GlorotNConfig) Validate() error {
	return validateGain(g.Gain)
}

func validateGain(gain float64) error {
	if gain <= 0 {
		return errors.Errorf("validate: gain must be > 0 (have %v)", gain)
	}
	return nil
}
