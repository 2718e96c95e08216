package schedule

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/gorlkit/utils/floatutils"
)

// PolynomialConfig implements a configuration of a schedule that moves
// polynomially from InitValue to EndValue over TransitionSteps steps,
// beginning the transition at step TransitionBegin.
type PolynomialConfig struct {
	InitValue       float64
	EndValue        float64
	Power           float64
	TransitionSteps int
	TransitionBegin int
}

// NewPolynomial returns a new polynomial schedule. The schedule holds
// initValue for counts at or before transitionBegin, reaches endValue
// at transitionBegin+transitionSteps, and stays there for all later
// counts. A negative transitionSteps is an error.
func NewPolynomial(initValue, endValue, power float64, transitionSteps,
	transitionBegin int) (*Schedule, error) {
	config := PolynomialConfig{
		InitValue:       initValue,
		EndValue:        endValue,
		Power:           power,
		TransitionSteps: transitionSteps,
		TransitionBegin: transitionBegin,
	}

	return newSchedule(config)
}

// Type returns the type of schedule that the configuration describes
func (p PolynomialConfig) Type() Type {
	return Polynomial
}

// Validate returns an error if the configuration does not describe a
// valid polynomial schedule
func (p PolynomialConfig) Validate() error {
	if p.TransitionSteps < 0 {
		return fmt.Errorf("polynomial schedule: %w",
			ErrNegativeTransitionSteps)
	}
	return nil
}

// Value returns the scheduled value at a step count.
//
// When TransitionSteps is 0 the schedule degenerates to the constant
// EndValue for every count. Otherwise, the count is clamped to the
// transition interval so that counts at or before TransitionBegin give
// exactly InitValue and counts at or after
// TransitionBegin+TransitionSteps give exactly EndValue.
func (p PolynomialConfig) Value(count int) float64 {
	if p.TransitionSteps == 0 {
		return p.EndValue
	}

	steps := float64(p.TransitionSteps)
	n := floatutils.ClipInterval(float64(count-p.TransitionBegin),
		r1.Interval{Min: 0, Max: steps})
	frac := 1.0 - n/steps

	return (p.InitValue-p.EndValue)*math.Pow(frac, p.Power) + p.EndValue
}

// String implements the fmt.Stringer interface
func (p PolynomialConfig) String() string {
	return fmt.Sprintf("Polynomial(%v -> %v, power %v, steps %v, begin %v)",
		p.InitValue, p.EndValue, p.Power, p.TransitionSteps,
		p.TransitionBegin)
}
