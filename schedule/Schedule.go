// Package schedule implements hyper-parameter annealing schedules that
// can be JSON serialized into configuration files.
//
// A schedule is a deterministic mapping from a training step count to a
// hyper-parameter value. Schedules may be used to anneal the learning
// rate used to update an agent's parameters or the exploration factor
// used to select actions. A schedule is described by an immutable
// Config value; evaluation is stateless, so the same Config queried at
// the same step count always yields the same value.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

// Type describes the different types of schedules that are available.
// Type is used to implement a basic type system of schedules.
type Type string

// Available schedule types
const (
	Polynomial        Type = "Polynomial"
	PiecewiseConstant Type = "PiecewiseConstant"
)

// ErrNegativeTransitionSteps is returned when constructing a polynomial
// schedule with a negative number of transition steps
var ErrNegativeTransitionSteps = errors.New("transition steps must be a " +
	"non-negative integer")

// Schedule wraps a schedule Config together with its Type so that
// schedules can be JSON marshalled and unmarshalled.
type Schedule struct {
	Type
	Config
}

// newSchedule validates a Config and wraps it in a Schedule
func newSchedule(c Config) (*Schedule, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Schedule{Type: c.Type(), Config: c}, nil
}

// ValueVec evaluates the schedule element-wise over a vector of step
// counts, returning a vector of the same length. Fractional counts are
// truncated toward zero before evaluation.
func (s *Schedule) ValueVec(counts mat.Vector) *mat.VecDense {
	values := mat.NewVecDense(counts.Len(), nil)
	for i := 0; i < counts.Len(); i++ {
		values.SetVec(i, s.Value(int(counts.AtVec(i))))
	}
	return values
}

// String implements the fmt.Stringer interface
func (s *Schedule) String() string {
	return fmt.Sprintf("{%v Schedule: %v}", s.Type, s.Config)
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (s *Schedule) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(
		data,
		"Type",
		"Config",
		map[string]reflect.Type{
			string(Polynomial):        reflect.TypeOf(PolynomialConfig{}),
			string(PiecewiseConstant): reflect.TypeOf(PiecewiseConstantConfig{}),
		})
	if err != nil {
		return err
	}

	if pc, ok := config.(PiecewiseConstantConfig); ok {
		config = pc.withBoundaryCache()
	}

	s.Type = typeName
	s.Config = config

	return s.Config.Validate()
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
		return nil, "", fmt.Errorf("unmarshalConfig: no schedule type in %s",
			data)
	}
	var value Config
	if ty, found := customTypes[typeName]; found {
		value = reflect.New(ty).Interface().(Config)
	} else {
		return nil, "", fmt.Errorf("unmarshalConfig: unknown schedule "+
			"type %q", typeName)
	}

	valueBytes, err := json.Marshal(m[valueJsonField])
	if err != nil {
		return nil, "", err
	}

	if err = json.Unmarshal(valueBytes, &value); err != nil {
		return nil, "", err
	}
	concreteValue := reflect.ValueOf(value).Elem().Interface().(Config)

	return concreteValue, Type(typeName), nil
}

// Config implements an immutable schedule configuration and evaluates
// the schedule that it describes.
type Config interface {
	// Value returns the hyper-parameter value at a step count
	Value(count int) float64

	// Type returns the type of schedule that the Config describes
	Type() Type

	// Validate returns an error if the Config does not describe a
	// valid schedule
	Validate() error
}
