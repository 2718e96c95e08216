package schedule

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPiecewiseConstant(t *testing.T) {
	sched, err := NewPiecewiseConstant(0.1, map[int]float64{3: 2, 6: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0.1, 0.1, 0.1, 0.2, 0.2, 0.2, 0.1, 0.1, 0.1, 0.1}
	for count, w := range want {
		if got := sched.Value(count); math.Abs(got-w) > 1e-9 {
			t.Errorf("count %d: got %v, want %v", count, got, w)
		}
	}
}

// Negating the initial value must negate every output identically
func TestPiecewiseConstantNegative(t *testing.T) {
	boundaries := map[int]float64{3: 2, 6: 0.5}
	positive, err := NewPiecewiseConstant(0.1, boundaries)
	if err != nil {
		t.Fatal(err)
	}
	negative, err := NewPiecewiseConstant(-0.1, boundaries)
	if err != nil {
		t.Fatal(err)
	}

	for count := 0; count < 10; count++ {
		if got, want := negative.Value(count), -positive.Value(count); got != want {
			t.Errorf("count %d: got %v, want %v", count, got, want)
		}
	}
}

func TestPiecewiseConstantCompoundingBoundaries(t *testing.T) {
	// A count at or past several boundaries applies every scale
	// cumulatively
	sched, err := NewPiecewiseConstant(1, map[int]float64{
		10: 2,
		5:  3,
		20: 0.5,
	})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		count int
		want  float64
	}{
		{0, 1},
		{4, 1},
		{5, 3},
		{10, 6},
		{19, 6},
		{20, 3},
		{1000, 3},
	}
	for _, c := range cases {
		if got := sched.Value(c.count); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("count %d: got %v, want %v", c.count, got, c.want)
		}
	}
}

func TestPiecewiseConstantEmptyBoundaries(t *testing.T) {
	sched, err := NewPiecewiseConstant(0.25, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, count := range []int{-1, 0, 100} {
		if got := sched.Value(count); got != 0.25 {
			t.Errorf("count %d: got %v, want 0.25", count, got)
		}
	}
}

// A literal config, which has no boundary cache, must agree with a
// constructor-built schedule at every count
func TestPiecewiseConstantLiteralConfig(t *testing.T) {
	boundaries := map[int]float64{10: 2, 5: 3, 20: 0.5}
	literal := PiecewiseConstantConfig{
		InitValue:           1,
		BoundariesAndScales: boundaries,
	}
	sched, err := NewPiecewiseConstant(1, boundaries)
	if err != nil {
		t.Fatal(err)
	}

	for count := -1; count <= 25; count++ {
		if got, want := literal.Value(count), sched.Value(count); got != want {
			t.Errorf("count %d: got %v, want %v", count, got, want)
		}
	}
}

func TestPiecewiseConstantValueVec(t *testing.T) {
	sched, err := NewPiecewiseConstant(0.1, map[int]float64{3: 2, 6: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	counts := mat.NewVecDense(4, []float64{0, 3, 6, 9})
	values := sched.ValueVec(counts)

	for i := 0; i < counts.Len(); i++ {
		want := sched.Value(int(counts.AtVec(i)))
		if got := values.AtVec(i); got != want {
			t.Errorf("element %d: got %v, want %v", i, got, want)
		}
	}
}
