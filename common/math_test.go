package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClampLength(t *testing.T) {
	cases := []struct {
		name string
		in   mgl64.Vec3
		max  float64
		want mgl64.Vec3
	}{
		{"zero", mgl64.Vec3{}, 15, mgl64.Vec3{}},
		{"under", mgl64.Vec3{3, 4, 0}, 15, mgl64.Vec3{3, 4, 0}},
		{"exact", mgl64.Vec3{0, 15, 0}, 15, mgl64.Vec3{0, 15, 0}},
		{"over", mgl64.Vec3{30, 0, 40}, 15, mgl64.Vec3{9, 0, 12}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClampLength(c.in, c.max)
			if !got.ApproxEqualThreshold(c.want, 1e-9) {
				t.Fatalf("ClampLength(%v, %f) = %v, want %v", c.in, c.max, got, c.want)
			}
		})
	}
}

func TestClampLengthKeepsDirection(t *testing.T) {
	v := mgl64.Vec3{-7, 25, 3}
	got := ClampLength(v, 20)
	if math.Abs(got.Len()-20) > 1e-9 {
		t.Fatalf("len = %f, want 20", got.Len())
	}
	if d := got.Normalize().Dot(v.Normalize()); math.Abs(d-1) > 1e-9 {
		t.Fatalf("direction changed, dot = %f", d)
	}
}
