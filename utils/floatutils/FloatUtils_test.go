package floatutils

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	cases := []struct {
		value, min, max, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clip(c.value, c.min, c.max); got != c.want {
			t.Errorf("Clip(%v, %v, %v): got %v, want %v", c.value, c.min,
				c.max, got, c.want)
		}
	}
}

func TestClipInterval(t *testing.T) {
	interval := r1.Interval{Min: -1, Max: 1}
	if got := ClipInterval(3, interval); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
	if got := ClipInterval(-3, interval); got != -1 {
		t.Errorf("got %v, want -1", got)
	}
}
