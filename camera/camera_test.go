package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFollowKeepsOffset(t *testing.T) {
	c := New(mgl64.Vec3{0, 15, 20}, mgl64.Vec3{0, 5, 0})
	offset := c.Position.Sub(c.Target)

	c.Follow(mgl64.Vec3{3, 1, -4})
	if got := c.Position.Sub(c.Target); !got.ApproxEqual(offset) {
		t.Fatalf("offset changed: got %v want %v", got, offset)
	}
	if c.Target != (mgl64.Vec3{3, 1, -4}) {
		t.Fatalf("target = %v", c.Target)
	}
}

func TestProjectCentreAndBehind(t *testing.T) {
	c := New(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{})
	x, y, ok := c.Project(mgl64.Vec3{}, 800, 600)
	if !ok || math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Fatalf("target should project to centre, got (%f,%f) ok=%v", x, y, ok)
	}

	if _, _, ok := c.Project(mgl64.Vec3{0, 0, 20}, 800, 600); ok {
		t.Fatalf("point behind camera should not project")
	}

	x, _, _ = c.Project(mgl64.Vec3{1, 0, 0}, 800, 600)
	if x <= 400 {
		t.Fatalf("+x should land right of centre, got %f", x)
	}
}
