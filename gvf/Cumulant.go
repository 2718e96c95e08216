package gvf

import (
	"fmt"

	"gorgonia.org/tensor"
)

// A Cumulant selects the per-timestep quantity from which
// feature-control pseudo-rewards are computed. The set of cumulants is
// closed: exactly five implementations exist, and only Potential
// carries a parameter, so an unknown cumulant cannot be constructed.
type Cumulant interface {
	fmt.Stringer

	// rewards computes the pseudo-rewards from the features at times
	// [0, T-1) (cur) and [1, T) (nxt). Both arguments have shape
	// (T-1, feature...) and are owned by the caller of
	// FeatureControlRewards; implementations must not retain them.
	rewards(cur, nxt *tensor.Dense) (*tensor.Dense, error)
}

// Feature uses the next raw feature value, unchanged, as the
// pseudo-reward.
type Feature struct{}

// String implements the fmt.Stringer interface
func (Feature) String() string {
	return "Feature"
}

func (Feature) rewards(cur, nxt *tensor.Dense) (*tensor.Dense, error) {
	return nxt, nil
}

// AbsoluteChange uses the magnitude of the change in the feature value
// between consecutive timesteps as the pseudo-reward.
type AbsoluteChange struct{}

// String implements the fmt.Stringer interface
func (AbsoluteChange) String() string {
	return "AbsoluteChange"
}

func (AbsoluteChange) rewards(cur, nxt *tensor.Dense) (*tensor.Dense, error) {
	diff, err := tensor.Sub(nxt, cur)
	if err != nil {
		return nil, err
	}
	return absInPlace(diff.(*tensor.Dense))
}

// Increase uses the signed increase in the feature value between
// consecutive timesteps as the pseudo-reward.
type Increase struct{}

// String implements the fmt.Stringer interface
func (Increase) String() string {
	return "Increase"
}

func (Increase) rewards(cur, nxt *tensor.Dense) (*tensor.Dense, error) {
	out, err := tensor.Sub(nxt, cur)
	if err != nil {
		return nil, err
	}
	return out.(*tensor.Dense), nil
}

// Decrease uses the signed decrease in the feature value between
// consecutive timesteps as the pseudo-reward.
type Decrease struct{}

// String implements the fmt.Stringer interface
func (Decrease) String() string {
	return "Decrease"
}

func (Decrease) rewards(cur, nxt *tensor.Dense) (*tensor.Dense, error) {
	out, err := tensor.Sub(cur, nxt)
	if err != nil {
		return nil, err
	}
	return out.(*tensor.Dense), nil
}

// Potential uses the potential-based shaping value
// discount*next - current as the pseudo-reward. Shaping rewards of this
// form do not change the optimal policy of the underlying task.
type Potential struct {
	// Discount is either a scalar (a float32 or float64 matching the
	// dtype of the feature tensor) or a *tensor.Dense whose shape
	// equals the trailing feature shape exactly. A Potential with a
	// nil Discount is invalid.
	Discount interface{}
}

// String implements the fmt.Stringer interface
func (p Potential) String() string {
	return fmt.Sprintf("Potential(discount=%v)", p.Discount)
}

func (p Potential) rewards(cur, nxt *tensor.Dense) (*tensor.Dense, error) {
	if p.Discount == nil {
		return nil, argumentErrorf("potential: a discount is required")
	}

	var scaled tensor.Tensor
	var err error
	switch discount := p.Discount.(type) {
	case float64:
		scaled, err = tensor.Mul(nxt, scalarOf(nxt.Dtype(), discount))

	case float32:
		scaled, err = tensor.Mul(nxt, scalarOf(nxt.Dtype(), float64(discount)))

	case *tensor.Dense:
		if discount.Dtype() != nxt.Dtype() {
			return nil, argumentErrorf("potential: discount dtype %v "+
				"does not match the feature dtype %v", discount.Dtype(),
				nxt.Dtype())
		}
		trailing := tensor.Shape(nxt.Shape()[1:])
		if !discount.Shape().Eq(trailing) {
			return nil, shapeErrorf("potential: discount shape %v does "+
				"not match the trailing feature shape %v",
				discount.Shape(), trailing)
		}
		rep, repErr := repeatOverTime(discount, nxt.Shape()[0])
		if repErr != nil {
			return nil, repErr
		}
		scaled, err = tensor.Mul(nxt, rep)

	default:
		return nil, argumentErrorf("potential: discount must be a "+
			"float32, float64, or *tensor.Dense, got %T", p.Discount)
	}
	if err != nil {
		return nil, err
	}

	out, err := tensor.Sub(scaled, cur)
	if err != nil {
		return nil, err
	}
	return out.(*tensor.Dense), nil
}

// repeatOverTime tiles a tensor of the trailing feature shape across a
// new leading time axis of length steps
func repeatOverTime(t *tensor.Dense, steps int) (*tensor.Dense, error) {
	rep := t.Clone().(*tensor.Dense)
	if err := rep.Reshape(append([]int{1}, t.Shape()...)...); err != nil {
		return nil, err
	}

	out, err := rep.Repeat(0, steps)
	if err != nil {
		return nil, err
	}
	return out.(*tensor.Dense), nil
}
