package gvf

import (
	"errors"
	"math"
	"testing"
	"time"

	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gorlkit/utils/tensorutils"
)

// observationTrajectory returns a (3, 4, 4, 3) trajectory in which
// consecutive frames differ by a constant 0.05 everywhere, so that
// every pixel-control pseudo-reward equals 0.05
func observationTrajectory(offset float64) []float64 {
	data := make([]float64, 0, 3*4*4*3)
	for t := 0; t < 3; t++ {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				for k := 0; k < 3; k++ {
					v := (0.25 * float64(i) * 0.25 * float64(j)) +
						0.1*float64(k) + 0.05*float64(t) + offset
					data = append(data, v)
				}
			}
		}
	}
	return data
}

func TestPixelControlRewards(t *testing.T) {
	observations := tensor.New(
		tensor.WithShape(3, 4, 4, 3),
		tensor.WithBacking(observationTrajectory(0)),
	)

	rewards, err := PixelControlRewards(observations, 2)
	if err != nil {
		t.Fatal(err)
	}

	wantShape := tensor.Shape{2, 2, 2}
	if !rewards.Shape().Eq(wantShape) {
		t.Fatalf("got shape %v, want %v", rewards.Shape(), wantShape)
	}
	for i, v := range rewards.Data().([]float64) {
		if math.Abs(v-0.05) > 1e-9 {
			t.Errorf("reward %d: got %v, want 0.05", i, v)
		}
	}
}

func TestPixelControlRewardsTwoTimesteps(t *testing.T) {
	// Frame 0 holds 0..7, frame 1 holds 8..15: the pooled means are
	// 3.5 and 11.5, so the single pseudo-reward is 8
	backing := make([]float64, 2*2*2*2)
	for i := range backing {
		backing[i] = float64(i)
	}
	observations := tensor.New(
		tensor.WithShape(2, 2, 2, 2),
		tensor.WithBacking(backing),
	)

	rewards, err := PixelControlRewards(observations, 2)
	if err != nil {
		t.Fatal(err)
	}

	wantShape := tensor.Shape{1, 1, 1}
	if !rewards.Shape().Eq(wantShape) {
		t.Fatalf("got shape %v, want %v", rewards.Shape(), wantShape)
	}
	if got := rewards.Data().([]float64)[0]; math.Abs(got-8) > 1e-9 {
		t.Errorf("got reward %v, want 8", got)
	}
}

func TestPixelControlRewardsFloat32(t *testing.T) {
	backing := make([]float32, 2*2*2*1)
	for i := range backing {
		backing[i] = float32(i)
	}
	observations := tensor.New(
		tensor.WithShape(2, 2, 2, 1),
		tensor.WithBacking(backing),
	)

	rewards, err := PixelControlRewards(observations, 2)
	if err != nil {
		t.Fatal(err)
	}

	if rewards.Dtype() != tensor.Float32 {
		t.Fatalf("got dtype %v, want %v", rewards.Dtype(), tensor.Float32)
	}
	// Frame means are 1.5 and 5.5
	if got := rewards.Data().([]float32)[0]; got != 4 {
		t.Errorf("got reward %v, want 4", got)
	}
}

func TestPixelControlRewardsInvalidInputs(t *testing.T) {
	observations := tensor.New(
		tensor.WithShape(3, 4, 4, 3),
		tensor.WithBacking(observationTrajectory(0)),
	)

	var shapeErr *ShapeError
	var argErr *ArgumentError

	// Height and width not divisible by the cell size
	if _, err := PixelControlRewards(observations, 3); err == nil {
		t.Error("expected an error for an indivisible cell size")
	} else if !errors.As(err, &shapeErr) {
		t.Errorf("expected a ShapeError, got %T: %v", err, err)
	}

	// Non-positive cell size
	if _, err := PixelControlRewards(observations, 0); err == nil {
		t.Error("expected an error for a non-positive cell size")
	} else if !errors.As(err, &argErr) {
		t.Errorf("expected an ArgumentError, got %T: %v", err, err)
	}

	// Wrong rank
	threeDim := tensor.New(
		tensor.WithShape(3, 4, 4),
		tensor.WithBacking(make([]float64, 3*4*4)),
	)
	if _, err := PixelControlRewards(threeDim, 2); err == nil {
		t.Error("expected an error for a rank-3 tensor")
	} else if !errors.As(err, &shapeErr) {
		t.Errorf("expected a ShapeError, got %T: %v", err, err)
	}

	// Too few timesteps
	oneStep := tensor.New(
		tensor.WithShape(1, 4, 4, 3),
		tensor.WithBacking(make([]float64, 4*4*3)),
	)
	if _, err := PixelControlRewards(oneStep, 2); err == nil {
		t.Error("expected an error for a single-timestep trajectory")
	} else if !errors.As(err, &shapeErr) {
		t.Errorf("expected a ShapeError, got %T: %v", err, err)
	}
}

func TestPixelControlRewardsBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

	batchSize := 5
	trajLen := 4 * 6 * 8 * 2
	backing := make([]float64, batchSize*trajLen)
	for i := range backing {
		backing[i] = rng.Float64()
	}
	batch := tensor.New(
		tensor.WithShape(batchSize, 4, 6, 8, 2),
		tensor.WithBacking(backing),
	)

	single := func(observations *tensor.Dense) (*tensor.Dense, error) {
		return PixelControlRewards(observations, 2)
	}
	batched, err := tensorutils.MapOverLeadingAxis(single, batch)
	if err != nil {
		t.Fatal(err)
	}

	wantShape := tensor.Shape{batchSize, 3, 3, 4}
	if !batched.Shape().Eq(wantShape) {
		t.Fatalf("got shape %v, want %v", batched.Shape(), wantShape)
	}

	// Batched application must match looping the single-trajectory
	// function over the batch axis
	batchedData := batched.Data().([]float64)
	for i := 0; i < batchSize; i++ {
		trajectory := tensor.New(
			tensor.WithShape(4, 6, 8, 2),
			tensor.WithBacking(backing[i*trajLen:(i+1)*trajLen]),
		)
		want, err := PixelControlRewards(trajectory, 2)
		if err != nil {
			t.Fatal(err)
		}

		wantData := want.Data().([]float64)
		gotData := batchedData[i*len(wantData) : (i+1)*len(wantData)]
		for j := range wantData {
			if math.Abs(gotData[j]-wantData[j]) > 1e-12 {
				t.Fatalf("element %d of trajectory %d: got %v, want %v",
					j, i, gotData[j], wantData[j])
			}
			if gotData[j] < 0 {
				t.Fatalf("element %d of trajectory %d: negative "+
					"pseudo-reward %v", j, i, gotData[j])
			}
		}
	}
}
