package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/ecs/entity"
	"github.com/milk9111/islandroll/physics"
)

type fakeCamera struct {
	position mgl64.Vec3
	target   mgl64.Vec3
	snaps    int
}

func (c *fakeCamera) SetPosition(p mgl64.Vec3) {
	c.position = p
	c.snaps++
}

func (c *fakeCamera) LookAt(p mgl64.Vec3) {
	c.target = p
}

type testRig struct {
	world   *ecs.World
	physics *PhysicsSystem
	player  ecs.Entity
	clock   *component.Clock
}

func newRig(t *testing.T, playerPos mgl64.Vec3, ground bool) *testRig {
	t.Helper()
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	ps.World().Friction = 5

	clockEntity, err := entity.NewClock(w, 0)
	if err != nil {
		t.Fatal(err)
	}
	clock, _ := ecs.Get(w, clockEntity, component.ClockComponent.Kind())

	if ground {
		g := ecs.CreateEntity(w)
		mustAdd(t, ecs.Add(w, g, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, -0.5, 0}, Rotation: mgl64.QuatIdent(), Scale: 1}))
		mustAdd(t, ecs.Add(w, g, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Shape: physics.ShapeBox, HalfExtents: mgl64.Vec3{40, 0.5, 40}}))
	}

	p := ecs.CreateEntity(w)
	tuning := entity.DefaultPlayer()
	mustAdd(t, ecs.Add(w, p, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, p, component.TransformComponent.Kind(), &component.Transform{Position: playerPos, Rotation: mgl64.QuatIdent(), Scale: 1}))
	mustAdd(t, ecs.Add(w, p, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(t, ecs.Add(w, p, component.PlayerComponent.Kind(), &tuning))
	mustAdd(t, ecs.Add(w, p, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Shape: physics.ShapeSphere, Radius: 0.5, Mass: 50}))

	ps.Sync(w)
	return &testRig{world: w, physics: ps, player: p, clock: clock}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (r *testRig) body(t *testing.T) *physics.Body {
	t.Helper()
	pb, ok := ecs.Get(r.world, r.player, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		t.Fatalf("player has no body")
	}
	return pb.Body
}

func (r *testRig) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(r.world, r.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("player has no transform")
	}
	return tr
}
