// Package solver implements functionality to wrap Gorgonia Solvers
// so that they can be JSON serialized into configuration files.
package solver

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	RMSProp Type = "RMSProp"
	Vanilla Type = "Vanilla"
)

// configTypes maps each solver type to its concrete Config
var configTypes = map[string]reflect.Type{
	string(Adam):    reflect.TypeOf(AdamConfig{}),
	string(RMSProp): reflect.TypeOf(RMSPropConfig{}),
	string(Vanilla): reflect.TypeOf(VanillaConfig{}),
}

// Solver wraps the configuration of a Gorgonia Solver so that it can be
// JSON marshalled and unmarshalled. The Gorgonia Solver itself is only
// created once the batch size and the gradient clipping and
// regularization of the learner using it are known.
type Solver struct {
	Type
	Config
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "newSolver")
	}

	return &Solver{Type: t, Config: c}, nil
}

// Create returns a new Gorgonia Solver that averages gradients over
// batch samples, clips gradients to [-clip, clip] and adds an L2
// penalty of l2 to the loss gradient. Clipping is disabled if clip <= 0
// and regularization is disabled if l2 <= 0.
func (s *Solver) Create(batch int, clip, l2 float64) G.Solver {
	opts := []G.SolverOpt{G.WithBatchSize(float64(batch))}
	if clip > 0 {
		opts = append(opts, G.WithClip(clip))
	}
	if l2 > 0 {
		opts = append(opts, G.WithL2Reg(l2))
	}
	return s.Config.Create(opts...)
}

// Validate checks that the Solver describes a usable configuration
func (s *Solver) Validate() error {
	if s.Config == nil {
		return errors.New("validate: no solver configuration")
	}
	if !s.Config.ValidType(s.Type) {
		return errors.Errorf("validate: invalid solver type %v for "+
			"configuration %T", s.Type, s.Config)
	}
	return s.Config.Validate()
}

func (s *Solver) String() string {
	return fmt.Sprintf("{%v Solver: %+v}", s.Type, s.Config)
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (s *Solver) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(data, "Type", "Config",
		configTypes)
	if err != nil {
		return errors.Wrap(err, "unmarshalJSON")
	}

	s.Type = typeName
	s.Config = config

	return s.Validate()
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
		return nil, "", errors.Errorf("unmarshalConfig: missing solver "+
			"type field %q", typeJsonField)
	}
	ty, found := customTypes[typeName]
	if !found {
		return nil, "", errors.Errorf("unmarshalConfig: unknown solver "+
			"type %q", typeName)
	}
	value := reflect.New(ty).Interface()

	valueBytes, err := json.Marshal(m[valueJsonField])
	if err != nil {
		return nil, "", err
	}

	if err = json.Unmarshal(valueBytes, value); err != nil {
		return nil, "", err
	}
	concreteValue := reflect.ValueOf(value).Elem().Interface().(Config)

	return concreteValue, Type(typeName), nil
}

// Config implements a Gorgonia Solver configuration and can be used to
// create Gorgonia Solvers they describe.
type Config interface {
	// Create returns the Gorgonia Solver described by the Config, with
	// opts applied after the Config's own options
	Create(opts ...G.SolverOpt) G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool

	Validate() error
}
