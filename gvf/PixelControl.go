package gvf

import (
	"gorgonia.org/tensor"
)

// PixelControlRewards computes pixel-control pseudo-rewards from a
// trajectory of image observations.
//
// The observations tensor must have shape (time, height, width,
// channel) with at least 2 timesteps, and height and width must each be
// evenly divisible by cellSize. Each frame is spatially downsampled by
// averaging over non-overlapping cellSize x cellSize cells. The
// pseudo-reward for each cell is the absolute temporal difference of
// its pooled value between consecutive frames, averaged over channels,
// giving an output of shape (time-1, height/cellSize, width/cellSize).
//
// Every output value is non-negative, and the transform is continuous
// and piecewise linear in the observations.
func PixelControlRewards(observations *tensor.Dense,
	cellSize int) (*tensor.Dense, error) {

	if cellSize < 1 {
		return nil, argumentErrorf("pixelControlRewards: cell size must "+
			"be positive, got %d", cellSize)
	}
	if err := checkDtype(observations, "pixelControlRewards"); err != nil {
		return nil, err
	}

	shape := observations.Shape()
	if len(shape) != 4 {
		return nil, shapeErrorf("pixelControlRewards: expected an "+
			"observation tensor of shape (time, height, width, channel), "+
			"got %v", shape)
	}
	t, h, w, c := shape[0], shape[1], shape[2], shape[3]
	if t < 2 {
		return nil, shapeErrorf("pixelControlRewards: need at least 2 "+
			"timesteps to compute a temporal difference, got %d", t)
	}
	if h%cellSize != 0 || w%cellSize != 0 {
		return nil, shapeErrorf("pixelControlRewards: height (%d) and "+
			"width (%d) must be evenly divisible by the cell size (%d)",
			h, w, cellSize)
	}

	// Decompose each spatial axis into (cell, within-cell) axes, then
	// average out the within-cell axes to pool each frame.
	pooled := observations.Clone().(*tensor.Dense)
	err := pooled.Reshape(t, h/cellSize, cellSize, w/cellSize, cellSize, c)
	if err != nil {
		return nil, err
	}
	pooled, err = pooled.Sum(4)
	if err != nil {
		return nil, err
	}
	pooled, err = pooled.Sum(2)
	if err != nil {
		return nil, err
	}
	pooled, err = divScalar(pooled, float64(cellSize*cellSize))
	if err != nil {
		return nil, err
	}

	// Absolute first-order temporal difference of the pooled frames
	cur, err := timeSlice(pooled, 0, t-1)
	if err != nil {
		return nil, err
	}
	nxt, err := timeSlice(pooled, 1, t)
	if err != nil {
		return nil, err
	}
	diff, err := tensor.Sub(nxt, cur)
	if err != nil {
		return nil, err
	}
	absDiff, err := absInPlace(diff.(*tensor.Dense))
	if err != nil {
		return nil, err
	}

	// Collapse the channel axis
	summed, err := absDiff.Sum(3)
	if err != nil {
		return nil, err
	}
	return divScalar(summed, float64(c))
}
