package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/physics"
)

const (
	FixedStep        = 1.0 / 60.0
	maxStepsPerFrame = 5
)

// PhysicsSystem owns the rigid-body world. It creates bodies for entities
// that carry a PhysicsBody and a Transform, removes bodies whose entity went
// away, and steps the world.
//
// By default the world advances one fixed step per frame no matter how long
// the frame took. With Accumulate set, the frame delta from the Clock is
// banked and spent in fixed steps instead.
type PhysicsSystem struct {
	Accumulate bool

	world       *physics.World
	entities    map[ecs.Entity]*physics.Body
	accumulator float64
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	if world == nil {
		world = physics.NewWorld()
	}
	return &PhysicsSystem{
		world:    world,
		entities: make(map[ecs.Entity]*physics.Body),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)

	steps := ps.steps(w)
	for i := 0; i < steps; i++ {
		ps.world.Step(FixedStep)
	}

	// the player controller syncs its own transform
	for e, body := range ps.entities {
		if body.Static() || ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = body.Position
			t.Rotation = body.Quaternion
		}
	}
}

// Sync brings the body set in line with the ECS world without stepping.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	for e, body := range ps.entities {
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if ok && pb.Body == body {
			continue
		}
		ps.world.RemoveBody(body)
		delete(ps.entities, e)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		if pb.Body == nil {
			pb.Body = newBody(pb, t)
		}
		ps.world.AddBody(pb.Body)
		ps.entities[e] = pb.Body
	})
}

// Body returns the body created for e.
func (ps *PhysicsSystem) Body(e ecs.Entity) (*physics.Body, bool) {
	if ps == nil {
		return nil, false
	}
	b, ok := ps.entities[e]
	return b, ok
}

func (ps *PhysicsSystem) steps(w *ecs.World) int {
	if !ps.Accumulate {
		return 1
	}
	clockEntity, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return 1
	}
	clock, ok := ecs.Get(w, clockEntity, component.ClockComponent.Kind())
	if !ok {
		return 1
	}

	ps.accumulator += clock.Delta / 1000
	steps := 0
	for ps.accumulator >= FixedStep {
		ps.accumulator -= FixedStep
		steps++
	}
	if steps > maxStepsPerFrame {
		log.Printf("physics: dropping %d steps after a long frame", steps-maxStepsPerFrame)
		steps = maxStepsPerFrame
	}
	return steps
}

func newBody(pb *component.PhysicsBody, t *component.Transform) *physics.Body {
	var shape physics.Shape
	switch pb.Shape {
	case physics.ShapeBox:
		shape = physics.NewBox(pb.HalfExtents)
	default:
		shape = physics.NewSphere(pb.Radius)
	}
	body := physics.NewBody(physics.BodyOptions{
		Mass:           pb.Mass,
		Shape:          shape,
		Position:       t.Position,
		LinearDamping:  pb.LinearDamping,
		AngularDamping: pb.AngularDamping,
	})
	if t.Rotation.Len() > 0 {
		body.Quaternion = t.Rotation.Normalize()
	} else {
		body.Quaternion = mgl64.QuatIdent()
	}
	return body
}
