// Package tensorutils provides helpers for working with dense tensors.
package tensorutils

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Slice implements a struct that can be used for slicing tensors.
//
// Given a tensor T and a Slice S, T.Slice(..., S, ...) is equivalent to
// T[..., S.start:S.end:S.step, ...]
type Slice struct {
	start, end, step int
}

// Start returns the start index for the tensor slice
func (s Slice) Start() int {
	return s.start
}

// End returns the ending index for the tensor slice
func (s Slice) End() int {
	return s.end
}

// Step returns the step for the tensor slice
func (s Slice) Step() int {
	return s.step
}

// NewSlice returns a new Slice that can be used to slice tensors
func NewSlice(start, stop, step int) Slice {
	return Slice{start, stop, step}
}

// MapOverLeadingAxis applies f independently to each sub-tensor along
// the leading axis of batch and stacks the results along a new leading
// axis.
//
// The mapping is axis-preserving and the elements of the batch never
// interact: applying f through MapOverLeadingAxis is numerically
// identical to looping f over the leading axis by hand. The function f
// must return tensors of the same shape for every element of the batch.
func MapOverLeadingAxis(f func(*tensor.Dense) (*tensor.Dense, error),
	batch *tensor.Dense) (*tensor.Dense, error) {

	if batch.Dims() < 2 {
		return nil, fmt.Errorf("mapOverLeadingAxis: batch must have a "+
			"leading batch axis and at least one data axis, got shape %v",
			batch.Shape())
	}

	n := batch.Shape()[0]
	elemShape := tensor.Shape(batch.Shape()[1:])

	outs := make([]*tensor.Dense, n)
	for i := 0; i < n; i++ {
		view, err := batch.Slice(NewSlice(i, i+1, 1))
		if err != nil {
			return nil, err
		}
		elem := view.Materialize().(*tensor.Dense)

		// Size-1 slices elide the sliced axis; restore the per-element
		// shape when they do not.
		if !elem.Shape().Eq(elemShape) {
			if err := elem.Reshape(elemShape...); err != nil {
				return nil, err
			}
		}

		out, err := f(elem)
		if err != nil {
			return nil, fmt.Errorf("mapOverLeadingAxis: element %d: %v",
				i, err)
		}
		outs[i] = out
	}

	if n == 1 {
		stacked := outs[0].Clone().(*tensor.Dense)
		shape := append([]int{1}, outs[0].Shape()...)
		if err := stacked.Reshape(shape...); err != nil {
			return nil, err
		}
		return stacked, nil
	}
	return outs[0].Stack(0, outs[1:]...)
}
