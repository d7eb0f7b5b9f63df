// Package initwfn implements functionality to wrap Gorgonia InitWFn
// so that they can be JSON serialized into configuration files.
//
// Gorgonia's random initializers draw from the global math/rand source.
// The random initializers here draw from a caller supplied source
// instead so that a seeded experiment always starts from the same
// weights.
package initwfn

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Type describes different types of InitWFn that are available.
// Type is used to implement a basic type system of InitWFn's.
type Type string

// Available InitWFn types
const (
	Gaussian Type = "Gaussian"
	Uniform  Type = "Uniform"
	GlorotU  Type = "GlorotU"
	GlorotN  Type = "GlorotN"
	HeU      Type = "HeU"
	HeN      Type = "HeN"
	Zeroes   Type = "Zeroes"
	Ones     Type = "Ones"
	Constant Type = "Constant"
)

var configTypes = map[string]reflect.Type{
	string(Gaussian): reflect.TypeOf(GaussianConfig{}),
	string(Uniform):  reflect.TypeOf(UniformConfig{}),
	string(GlorotU):  reflect.TypeOf(GlorotUConfig{}),
	string(GlorotN):  reflect.TypeOf(GlorotNConfig{}),
	string(HeU):      reflect.TypeOf(HeUConfig{}),
	string(HeN):      reflect.TypeOf(HeNConfig{}),
	string(Zeroes):   reflect.TypeOf(ZeroesConfig{}),
	string(Ones):     reflect.TypeOf(OnesConfig{}),
	string(Constant): reflect.TypeOf(ConstantConfig{}),
}

// InitWFn wraps Gorgonia InitWFn so that they can be JSON marshalled and
// unmarshalled.
type InitWFn struct {
	Type
	Config
}

// newInitWFn returns a new InitWFn
func newInitWFn(c Config) (*InitWFn, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "newInitWFn")
	}
	return &InitWFn{Type: c.Type(), Config: c}, nil
}

// Default returns the weight initializer used when an experiment
// configures none, a Gaussian with mean 0 and standard deviation 0.01
func Default() *InitWFn {
	return &InitWFn{Type: Gaussian, Config: GaussianConfig{0, 0.01}}
}

// InitWFn returns the wrapped Gorgonia InitWFn. Random weights are
// drawn from rng.
func (i *InitWFn) InitWFn(rng *rand.Rand) G.InitWFn {
	return i.Config.Create(rng)
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %+v}", i.Type, i.Config)
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (i *InitWFn) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(data, "Type", "Config",
		configTypes)
	if err != nil {
		return errors.Wrap(err, "unmarshalJSON")
	}

	if config.Type() != typeName {
		return errors.Errorf("unmarshalJSON: configuration %T cannot "+
			"create InitWFn of type %v", config, typeName)
	}

	i.Type = typeName
	i.Config = config

	return i.Config.Validate()
}

// unmarshalConfig uses reflection to unmarshall a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(data []byte, typeJsonField, valueJsonField string,
	customTypes map[string]reflect.Type) (Config, Type, error) {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	typeName, ok := m[typeJsonField].(string)
	if !ok {
		return nil, "", errors.Errorf("unmarshalConfig: missing InitWFn "+
			"type field %q", typeJsonField)
	}
	ty, found := customTypes[typeName]
	if !found {
		return nil, "", errors.Errorf("unmarshalConfig: unknown InitWFn "+
			"type %q", typeName)
	}
	value := reflect.New(ty).Interface()

	if raw, ok := m[valueJsonField]; ok {
		valueBytes, err := json.Marshal(raw)
		if err != nil {
			return nil, "", err
		}

		if err = json.Unmarshal(valueBytes, value); err != nil {
			return nil, "", err
		}
	}
	concreteValue := reflect.ValueOf(value).Elem().Interface().(Config)

	return concreteValue, Type(typeName), nil
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn's.
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes.
	// Random initializers draw from rng.
	Create(rng *rand.Rand) G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type

	Validate() error
}

// fromSampler returns an InitWFn that fills a tensor with values drawn
// by the function newSampler returns for the tensor's shape
func fromSampler(newSampler func(shape []int) func() float64) G.InitWFn {
	return func(dt tensor.Dtype, s ...int) interface{} {
		size := tensor.Shape(s).TotalSize()
		next := newSampler(s)

		switch dt {
		case tensor.Float64:
			values := make([]float64, size)
			for i := range values {
				values[i] = next()
			}
			return values

		case tensor.Float32:
			values := make([]float32, size)
			for i := range values {
				values[i] = float32(next())
			}
			return values

		default:
			panic(fmt.Sprintf("initwfn: dtype %v not supported", dt))
		}
	}
}

// fans returns the fan in and fan out of a weight tensor of shape s.
// Weight matrices are laid out as (in, out).
func fans(s []int) (float64, float64) {
	switch len(s) {
	case 0:
		return 1, 1
	case 1:
		return float64(s[0]), float64(s[0])
	case 2:
		return float64(s[0]), float64(s[1])
	default:
		receptive := tensor.Shape(s[2:]).TotalSize()
		return float64(s[1] * receptive), float64(s[0] * receptive)
	}
}
