// Package gvf implements pseudo-rewards for auxiliary general value
// functions. Pseudo-rewards are dense reward signals derived from raw
// pixel observations (pixel control) or from learned feature vectors
// (feature control), and are used to shape learning alongside the
// environment's primary reward.
//
// All functions in this package are pure: they read their input
// tensors, allocate their outputs, and hold no state between calls.
// Each function operates on a single trajectory with a leading time
// axis. To apply a transform uniformly over a batch of trajectories,
// use tensorutils.MapOverLeadingAxis.
//
// Float32 and Float64 tensors are supported and the transforms are
// type-preserving.
package gvf

import (
	"math"

	"github.com/chewxy/math32"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gorlkit/utils/tensorutils"
)

// scalarOf converts v to the Go type backing the Dtype dt
func scalarOf(dt tensor.Dtype, v float64) interface{} {
	if dt == tensor.Float32 {
		return float32(v)
	}
	return v
}

// checkDtype ensures that a tensor holds a supported floating point
// type
func checkDtype(t *tensor.Dense, op string) error {
	switch t.Dtype() {
	case tensor.Float64, tensor.Float32:
		return nil
	}
	return argumentErrorf("%v: unsupported dtype %v, expected float32 "+
		"or float64", op, t.Dtype())
}

// absInPlace replaces each element of t with its absolute value. The
// argument must be a freshly allocated tensor owned by the caller.
func absInPlace(t *tensor.Dense) (*tensor.Dense, error) {
	var out tensor.Tensor
	var err error

	switch t.Dtype() {
	case tensor.Float64:
		out, err = t.Apply(math.Abs, tensor.UseUnsafe())
	case tensor.Float32:
		out, err = t.Apply(math32.Abs, tensor.UseUnsafe())
	default:
		return nil, argumentErrorf("abs: unsupported dtype %v", t.Dtype())
	}
	if err != nil {
		return nil, err
	}
	return out.(*tensor.Dense), nil
}

// divScalar returns t / by, matching the dtype of t
func divScalar(t *tensor.Dense, by float64) (*tensor.Dense, error) {
	out, err := tensor.Div(t, scalarOf(t.Dtype(), by))
	if err != nil {
		return nil, err
	}
	return out.(*tensor.Dense), nil
}

// timeSlice returns t[from:to] along the leading axis as a freshly
// allocated tensor of shape (to-from, trailing...). Size-1 slices elide
// the sliced axis in the underlying tensor library, so the expected
// leading axis is restored here.
func timeSlice(t *tensor.Dense, from, to int) (*tensor.Dense, error) {
	view, err := t.Slice(tensorutils.NewSlice(from, to, 1))
	if err != nil {
		return nil, err
	}
	out := view.Materialize().(*tensor.Dense)

	want := append([]int{to - from}, t.Shape()[1:]...)
	if !out.Shape().Eq(tensor.Shape(want)) {
		if err := out.Reshape(want...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
