package initwfn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
)

// HeUConfig implements a configuration of the He uniform
// initialization algorithm.
type HeUConfig struct {
	Gain float64
}

// NewHeU returns a new He Uniform weight initializer
func NewHeU(gain float64) (*InitWFn, error) {
	return newInitWFn(HeUConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (h HeUConfig) Type() Type {
	return HeU
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (h HeUConfig) Create(rng *rand.Rand) G.InitWFn {
	return fromSampler(func(s []int) func() float64 {
		in, _ := fans(s)
		limit := h.Gain * math.Sqrt(6/in)
		return distuv.Uniform{Min: -limit, Max: limit, Src: rng}.Rand
	})
}

// Validate checks that the gain is positive
func (h HeUConfig) Validate() error {
	return validateGain(h.Gain)
}

// HeNConfig implements a configuration of the He normal
// initialization algorithm.
type HeNConfig struct {
	Gain float64
}

// NewHeN returns a new He Normal weight initializer
func NewHeN(gain float64) (*InitWFn, error) {
	return newInitWFn(HeNConfig{Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration.
func (h HeNConfig) Type() Type {
	return HeN
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (h HeNConfig) Create(rng *rand.Rand) G.InitWFn {
	return fromSampler(func(s []int) func() float64 {
		in, _ := fans(s)
		stddev := h.Gain * math.Sqrt(2/in)
		return distuv.Normal{Mu: 0, Sigma: stddev, Src: rng}.Rand
	})
}

// Validate checks that the gain is positive
func (h HeNConfig) Validate() error {
	return validateGain(h.Gain)
}
