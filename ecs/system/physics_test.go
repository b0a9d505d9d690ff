package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/physics"
)

func TestPhysicsSystemCreatesAndRemovesBodies(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, 0.5, 0}, true)
	if got := len(r.physics.World().Bodies()); got != 2 {
		t.Fatalf("bodies = %d, want ground + player", got)
	}
	if _, ok := r.physics.Body(r.player); !ok {
		t.Fatalf("player body not tracked")
	}

	ecs.DestroyEntity(r.world, r.player)
	r.physics.Update(r.world)
	if got := len(r.physics.World().Bodies()); got != 1 {
		t.Fatalf("bodies after destroy = %d, want 1", got)
	}
	if _, ok := r.physics.Body(r.player); ok {
		t.Fatalf("destroyed player still tracked")
	}
}

func TestPhysicsSystemFixedStep(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, 10, 0}, false)
	r.clock.Delta = 250

	r.physics.Update(r.world)
	if got := r.physics.World().Time(); math.Abs(got-FixedStep) > 1e-12 {
		t.Fatalf("time = %f, want one fixed step regardless of frame delta", got)
	}
}

func TestPhysicsSystemAccumulates(t *testing.T) {
	cases := []struct {
		name   string
		deltas []float64
		want   int
	}{
		{"short_frame", []float64{10}, 0},
		{"two_short_frames", []float64{10, 10}, 1},
		{"long_frame", []float64{55}, 3},
		{"capped", []float64{1000}, maxStepsPerFrame},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, mgl64.Vec3{0, 10, 0}, false)
			r.physics.Accumulate = true
			for _, d := range c.deltas {
				r.clock.Delta = d
				r.physics.Update(r.world)
			}
			want := float64(c.want) * FixedStep
			if got := r.physics.World().Time(); math.Abs(got-want) > 1e-9 {
				t.Fatalf("time = %f, want %d steps", got, c.want)
			}
		})
	}
}

func TestPhysicsSystemSyncsNonPlayerTransforms(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, 0.5, 0}, false)
	rock := ecs.CreateEntity(r.world)
	mustAdd(t, ecs.Add(r.world, rock, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{5, 5, 5}, Rotation: mgl64.QuatIdent(), Scale: 1}))
	mustAdd(t, ecs.Add(r.world, rock, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Shape: physics.ShapeSphere, Radius: 0.3, Mass: 1}))

	r.physics.Update(r.world)

	rockT, _ := ecs.Get(r.world, rock, component.TransformComponent.Kind())
	if rockT.Position.Y() >= 5 {
		t.Fatalf("rock transform not synced after step: %v", rockT.Position)
	}
	// the controller owns the player's transform
	if tr := r.transform(t); tr.Position != (mgl64.Vec3{0, 0.5, 0}) {
		t.Fatalf("player transform written by physics: %v", tr.Position)
	}
}
