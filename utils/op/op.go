// Package op provides extended Gorgonia graph operations.
//
// The operations here are graph-node counterparts of the pseudo-reward
// transforms in the gvf package, so that auxiliary-task losses can be
// computed inside a training graph and differentiated through.
package op

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gorlkit/gvf"
	"github.com/samuelfneumann/gorlkit/utils/tensorutils"
)

// PixelControlRewards computes the pixel-control pseudo-rewards of a
// (time, height, width, channel) observation node, returning a node of
// shape (time-1, height/cellSize, width/cellSize). The computation
// matches gvf.PixelControlRewards: non-overlapping average pooling with
// window cellSize, absolute temporal difference of consecutive pooled
// frames, and a channel mean.
func PixelControlRewards(observations *G.Node,
	cellSize int) (*G.Node, error) {

	if cellSize < 1 {
		return nil, fmt.Errorf("pixelControlRewards: cell size must be "+
			"positive, got %d", cellSize)
	}

	shape := observations.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("pixelControlRewards: expected a (time, "+
			"height, width, channel) node, got shape %v", shape)
	}
	t, h, w, c := shape[0], shape[1], shape[2], shape[3]
	if t < 2 {
		return nil, fmt.Errorf("pixelControlRewards: need at least 2 "+
			"timesteps, got %d", t)
	}
	if h%cellSize != 0 || w%cellSize != 0 {
		return nil, fmt.Errorf("pixelControlRewards: height (%d) and "+
			"width (%d) must be evenly divisible by the cell size (%d)",
			h, w, cellSize)
	}

	// Decompose each spatial axis into (cell, within-cell) axes and
	// average out the within-cell axes
	cells, err := G.Reshape(observations, tensor.Shape{
		t, h / cellSize, cellSize, w / cellSize, cellSize, c,
	})
	if err != nil {
		return nil, err
	}
	pooled, err := G.Mean(cells, 4)
	if err != nil {
		return nil, err
	}
	pooled, err = G.Mean(pooled, 2)
	if err != nil {
		return nil, err
	}

	nxt, err := G.Slice(pooled, tensorutils.NewSlice(1, t, 1))
	if err != nil {
		return nil, err
	}
	cur, err := G.Slice(pooled, tensorutils.NewSlice(0, t-1, 1))
	if err != nil {
		return nil, err
	}
	diff, err := G.Sub(nxt, cur)
	if err != nil {
		return nil, err
	}
	absDiff, err := G.Abs(diff)
	if err != nil {
		return nil, err
	}

	// Size-1 time slices elide the leading axis, shifting the channel
	// axis when the trajectory has exactly 2 timesteps
	chanAxis := 3
	if t == 2 {
		chanAxis = 2
	}
	out, err := G.Mean(absDiff, chanAxis)
	if err != nil {
		return nil, err
	}
	if t == 2 {
		return G.Reshape(out, tensor.Shape{1, h / cellSize, w / cellSize})
	}
	return out, nil
}

// FeatureControlRewards computes the feature-control pseudo-rewards of
// a features node with a leading time axis of at least 2 steps and at
// least one feature axis, returning a node of shape (time-1,
// feature...). The computation matches gvf.FeatureControlRewards.
// Potential cumulants must carry a scalar discount; tensor-valued
// discounts are not supported on graph nodes.
func FeatureControlRewards(features *G.Node,
	cumulant gvf.Cumulant) (*G.Node, error) {

	if cumulant == nil {
		return nil, fmt.Errorf("featureControlRewards: no cumulant given")
	}

	shape := features.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("featureControlRewards: expected a node "+
			"with a leading time axis and at least one feature axis, got "+
			"shape %v", shape)
	}
	t := shape[0]
	if t < 2 {
		return nil, fmt.Errorf("featureControlRewards: need at least 2 "+
			"timesteps, got %d", t)
	}

	nxt, err := G.Slice(features, tensorutils.NewSlice(1, t, 1))
	if err != nil {
		return nil, err
	}
	cur, err := G.Slice(features, tensorutils.NewSlice(0, t-1, 1))
	if err != nil {
		return nil, err
	}

	var out *G.Node
	switch cml := cumulant.(type) {
	case gvf.Feature:
		out = nxt

	case gvf.AbsoluteChange:
		diff, err := G.Sub(nxt, cur)
		if err != nil {
			return nil, err
		}
		out, err = G.Abs(diff)
		if err != nil {
			return nil, err
		}

	case gvf.Increase:
		out, err = G.Sub(nxt, cur)
		if err != nil {
			return nil, err
		}

	case gvf.Decrease:
		out, err = G.Sub(cur, nxt)
		if err != nil {
			return nil, err
		}

	case gvf.Potential:
		var discount float64
		switch d := cml.Discount.(type) {
		case float64:
			discount = d
		case float32:
			discount = float64(d)
		case nil:
			return nil, fmt.Errorf("featureControlRewards: potential " +
				"cumulants require a discount")
		default:
			return nil, fmt.Errorf("featureControlRewards: potential "+
				"cumulants on graph nodes support scalar discounts only, "+
				"got %T", cml.Discount)
		}

		var discountNode *G.Node
		switch features.Dtype() {
		case G.Float32:
			discountNode = G.NewConstant(float32(discount),
				G.WithName("discount"))
		case G.Float64:
			discountNode = G.NewConstant(discount, G.WithName("discount"))
		default:
			return nil, fmt.Errorf("featureControlRewards: unsupported "+
				"dtype %v", features.Dtype())
		}

		scaled, err := G.HadamardProd(discountNode, nxt)
		if err != nil {
			return nil, err
		}
		out, err = G.Sub(scaled, cur)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("featureControlRewards: unknown cumulant "+
			"%v", cumulant)
	}

	// Size-1 time slices elide the leading axis; restore it
	if t == 2 {
		restored := append(tensor.Shape{1}, shape[1:]...)
		return G.Reshape(out, restored)
	}
	return out, nil
}
