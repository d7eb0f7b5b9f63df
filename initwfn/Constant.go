package initwfn

import (
	"golang.org/x/exp/rand"
	G "gorgonia.org/gorgonia"
)

// ZeroesConfig implements a configuration of a weight initializer that
// sets all weights to 0
type ZeroesConfig struct{}

// NewZeroes returns a new weight initializer that sets all weights to 0
func NewZeroes() (*InitWFn, error) {
	return newInitWFn(ZeroesConfig{})
}

// Type returns the type of the weight initializer created using this
// configuration
func (z ZeroesConfig) Type() Type {
	return Zeroes
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn. The rng is unused.
func (z ZeroesConfig) Create(*rand.Rand) G.InitWFn {
	return G.Zeroes()
}

func (z ZeroesConfig) Validate() error { return nil }

// OnesConfig implements a configuration of a weight initializer that
// sets all weights to 1
type OnesConfig struct{}

// NewOnes returns a new weight initializer that sets all weights to 1
func NewOnes() (*InitWFn, error) {
	return newInitWFn(OnesConfig{})
}

// Type returns the type of the weight initializer created using this
// configuration
func (o OnesConfig) Type() Type {
	return Ones
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn. The rng is unused.
func (o OnesConfig) Create(*rand.Rand) G.InitWFn {
	return G.Ones()
}

func (o OnesConfig) Validate() error { return nil }

// ConstantConfig implements a configuration of a weight initializer
// that sets all weights to a constant value
type ConstantConfig struct {
	Value float64
}

// NewConstant returns a new weight initializer that sets all weights to
// value
func NewConstant(value float64) (*InitWFn, error) {
	return newInitWFn(ConstantConfig{Value: value})
}

// Type returns the type of the weight initializer created using this
// configuration
func (c ConstantConfig) Type() Type {
	return Constant
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn. The rng is unused.
func (c ConstantConfig) Create(*rand.Rand) G.InitWFn {
	return G.ValuesOf(c.Value)
}

func (c ConstantConfig) Validate() error { return nil }
