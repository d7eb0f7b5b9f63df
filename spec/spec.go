// Package spec implements the parameter sets of learners and
// evolutionary algorithms. Each parameter set is a plain record that can
// be built from and converted to a key-value map, as found in experiment
// configuration files, and summarized as a human readable string.
package spec

import (
	"math"

	"github.com/pkg/errors"
)

// Evolution is a parameter set of a population-based evolutionary
// algorithm
type Evolution interface {
	Map() map[string]interface{}
	String() string

	PopSize() int        // Individuals per generation
	Generations() int    // Number of generations
	FitRepetitions() int // Games played to evaluate an individual's fitness
	HallOfFame() int     // Number of best individuals retained
}

// intFromMap returns the integer stored at key in m. Whole float64
// values are accepted since JSON decodes every number to a float64.
func intFromMap(m map[string]interface{}, key string) (int, error) {
	value, ok := m[key]
	if !ok {
		return 0, errors.Errorf("intFromMap: missing key %q", key)
	}

	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, errors.Errorf("intFromMap: key %q is not an integer "+
				"(have %v)", key, v)
		}
		return int(v), nil
	default:
		return 0, errors.Errorf("intFromMap: key %q has type %T, expected "+
			"an integer", key, value)
	}
}

// floatFromMap returns the number stored at key in m
func floatFromMap(m map[string]interface{}, key string) (float64, error) {
	value, ok := m[key]
	if !ok {
		return 0, errors.Errorf("floatFromMap: missing key %q", key)
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, errors.Errorf("floatFromMap: key %q has type %T, "+
			"expected a number", key, value)
	}
}

func boolFromMap(m map[string]interface{}, key string) (bool, error) {
	value, ok := m[key]
	if !ok {
		return false, errors.Errorf("boolFromMap: missing key %q", key)
	}
	v, ok := value.(bool)
	if !ok {
		return false, errors.Errorf("boolFromMap: key %q has type %T, "+
			"expected a bool", key, value)
	}
	return v, nil
}

func stringFromMap(m map[string]interface{}, key string) (string, error) {
	value, ok := m[key]
	if !ok {
		return "", errors.Errorf("stringFromMap: missing key %q", key)
	}
	v, ok := value.(string)
	if !ok {
		return "", errors.Errorf("stringFromMap: key %q has type %T, "+
			"expected a string", key, value)
	}
	return v, nil
}

// fields reads the values of several keys from a map, keeping the first
// error encountered
type fields struct {
	m   map[string]interface{}
	err error
}

func (f *fields) getInt(key string) int {
	if f.err != nil {
		return 0
	}
	var v int
	v, f.err = intFromMap(f.m, key)
	return v
}

func (f *fields) getFloat(key string) float64 {
	if f.err != nil {
		return 0
	}
	var v float64
	v, f.err = floatFromMap(f.m, key)
	return v
}

func (f *fields) getBool(key string) bool {
	if f.err != nil {
		return false
	}
	var v bool
	v, f.err = boolFromMap(f.m, key)
	return v
}

func (f *fields) getString(key string) string {
	if f.err != nil {
		return ""
	}
	var v string
	v, f.err = stringFromMap(f.m, key)
	return v
}
