package schedule

import (
	"fmt"
	"sort"
)

// PiecewiseConstantConfig implements a configuration of a schedule that
// multiplies InitValue by the scale of every boundary at or below the
// queried step count. Scales compound: once a boundary is crossed its
// scale stays applied for all later counts.
type PiecewiseConstantConfig struct {
	InitValue           float64
	BoundariesAndScales map[int]float64

	// Ascending boundary cache, filled when the config is built by
	// NewPiecewiseConstant or unmarshalled from JSON. Hand-built
	// configs sort on demand in Value.
	boundaries []int
}

// NewPiecewiseConstant returns a new piecewise-constant schedule. The
// boundariesAndScales mapping may list its boundaries in any order; a
// nil or empty mapping degenerates to the constant initValue.
func NewPiecewiseConstant(initValue float64,
	boundariesAndScales map[int]float64) (*Schedule, error) {
	config := PiecewiseConstantConfig{
		InitValue:           initValue,
		BoundariesAndScales: boundariesAndScales,
	}

	return newSchedule(config.withBoundaryCache())
}

// withBoundaryCache returns a copy of the config with its boundaries
// pre-sorted, so that repeated evaluation does not re-sort
func (p PiecewiseConstantConfig) withBoundaryCache() PiecewiseConstantConfig {
	p.boundaries = sortedBoundaries(p.BoundariesAndScales)
	return p
}

// sortedBoundaries returns the keys of a boundary mapping in ascending
// order
func sortedBoundaries(boundariesAndScales map[int]float64) []int {
	boundaries := make([]int, 0, len(boundariesAndScales))
	for boundary := range boundariesAndScales {
		boundaries = append(boundaries, boundary)
	}
	sort.Ints(boundaries)
	return boundaries
}

// Type returns the type of schedule that the configuration describes
func (p PiecewiseConstantConfig) Type() Type {
	return PiecewiseConstant
}

// Validate returns an error if the configuration does not describe a
// valid piecewise-constant schedule
func (p PiecewiseConstantConfig) Validate() error {
	return nil
}

// Value returns the scheduled value at a step count: InitValue times
// the product of every scale whose boundary is at or below count.
// Boundaries are applied in ascending order so that the floating point
// accumulation order does not depend on map iteration order.
func (p PiecewiseConstantConfig) Value(count int) float64 {
	boundaries := p.boundaries
	if boundaries == nil {
		boundaries = sortedBoundaries(p.BoundariesAndScales)
	}

	value := p.InitValue
	for _, boundary := range boundaries {
		if count < boundary {
			break
		}
		value *= p.BoundariesAndScales[boundary]
	}
	return value
}

// String implements the fmt.Stringer interface
func (p PiecewiseConstantConfig) String() string {
	return fmt.Sprintf("PiecewiseConstant(%v, %v)", p.InitValue,
		p.BoundariesAndScales)
}
