package gvf

import (
	"gorgonia.org/tensor"
)

// FeatureControlRewards computes feature-control pseudo-rewards from a
// trajectory of feature vectors.
//
// The features tensor must have a leading time axis with at least 2
// timesteps; any trailing feature shape is allowed. The cumulant
// selects the per-timestep transform: for consecutive features cur and
// nxt the pseudo-reward is nxt (Feature), |nxt - cur| (AbsoluteChange),
// nxt - cur (Increase), cur - nxt (Decrease), or discount*nxt - cur
// (Potential). The output has shape (time-1, feature...).
func FeatureControlRewards(features *tensor.Dense,
	cumulant Cumulant) (*tensor.Dense, error) {

	if cumulant == nil {
		return nil, argumentErrorf("featureControlRewards: no cumulant " +
			"given")
	}
	if err := checkDtype(features, "featureControlRewards"); err != nil {
		return nil, err
	}

	shape := features.Shape()
	if len(shape) < 1 {
		return nil, shapeErrorf("featureControlRewards: expected a "+
			"feature tensor with a leading time axis, got shape %v", shape)
	}
	t := shape[0]
	if t < 2 {
		return nil, shapeErrorf("featureControlRewards: need at least 2 "+
			"timesteps to compute a temporal transform, got %d", t)
	}

	cur, err := timeSlice(features, 0, t-1)
	if err != nil {
		return nil, err
	}
	nxt, err := timeSlice(features, 1, t)
	if err != nil {
		return nil, err
	}
	return cumulant.rewards(cur, nxt)
}
