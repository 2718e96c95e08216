package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gorlkit/gvf"
	"github.com/samuelfneumann/gorlkit/schedule"
)

func main() {
	// Anneal a learning rate linearly from 0.1 to 0.001 over 100 steps
	lr, err := schedule.NewPolynomial(0.1, 0.001, 1.0, 100, 0)
	if err != nil {
		panic(err)
	}
	for _, step := range []int{0, 25, 50, 75, 100, 200} {
		fmt.Printf("learning rate at step %d: %f\n", step, lr.Value(step))
	}

	// Halve an exploration factor at steps 50 and 100
	eps, err := schedule.NewPiecewiseConstant(0.5, map[int]float64{
		50:  0.5,
		100: 0.5,
	})
	if err != nil {
		panic(err)
	}
	counts := mat.NewVecDense(4, []float64{0, 50, 100, 150})
	fmt.Println("epsilon:", mat.Formatted(eps.ValueVec(counts).T()))

	// Pixel-control pseudo-rewards for a short synthetic trajectory of
	// 4x4 single-channel observations
	observations := tensor.New(
		tensor.WithShape(3, 4, 4, 1),
		tensor.WithBacking(ramp(3*4*4)),
	)
	pixelRewards, err := gvf.PixelControlRewards(observations, 2)
	if err != nil {
		panic(err)
	}
	fmt.Println("pixel-control rewards:")
	fmt.Println(pixelRewards)

	// Feature-control pseudo-rewards with potential-based shaping
	features := tensor.New(
		tensor.WithShape(3, 2),
		tensor.WithBacking([]float64{1, 2, 2, 4, 3, 6}),
	)
	shaped, err := gvf.FeatureControlRewards(features,
		gvf.Potential{Discount: 0.99})
	if err != nil {
		panic(err)
	}
	fmt.Println("potential-based shaping rewards:")
	fmt.Println(shaped)
}

// ramp returns n values evenly spaced in [0, 1)
func ramp(n int) []float64 {
	backing := make([]float64, n)
	for i := range backing {
		backing[i] = float64(i) / float64(n)
	}
	return backing
}
