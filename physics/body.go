package physics

import (
	"math"

	"github.com/akmonengine/feather/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is the collision geometry of a body, centred on the body position.
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
}

func NewSphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func NewBox(halfExtents mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

func (s Shape) collider() actor.ShapeInterface {
	switch s.Kind {
	case ShapeBox:
		return &actor.Box{HalfExtents: s.HalfExtents}
	default:
		return &actor.Sphere{Radius: s.Radius}
	}
}

// BodyOptions configures a new body. Mass 0 makes the body static.
type BodyOptions struct {
	Mass           float64
	Shape          Shape
	Position       mgl64.Vec3
	LinearDamping  float64
	AngularDamping float64
}

// Body is a rigid body owned by a World, backed by a feather rigid body.
// Position, Quaternion, Velocity and AngularVelocity may be written directly
// between steps (teleports); the world pushes them into the simulation
// before stepping and reads them back after.
type Body struct {
	Position        mgl64.Vec3
	Quaternion      mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	LinearDamping   float64
	AngularDamping  float64

	id    int
	mass  float64
	shape Shape
	rb    *actor.RigidBody

	force  mgl64.Vec3
	torque mgl64.Vec3

	world   *World
	cpShape *cp.Shape
}

// NewBody builds a body. A positive mass on a shape with no volume cannot be
// simulated and yields a static body.
func NewBody(opts BodyOptions) *Body {
	mass := opts.Mass
	if mass < 0 || math.IsNaN(mass) {
		mass = 0
	}
	collider := opts.Shape.collider()
	volume := collider.ComputeMass(1)
	if volume <= 0 {
		mass = 0
	}

	transform := actor.NewTransform()
	transform.Position = opts.Position
	transform.InverseRotation = transform.Rotation.Inverse()

	var rb *actor.RigidBody
	if mass > 0 {
		rb = actor.NewRigidBody(transform, collider, actor.BodyTypeDynamic, mass/volume)
	} else {
		rb = actor.NewRigidBody(transform, collider, actor.BodyTypeStatic, 0)
	}

	return &Body{
		Position:       opts.Position,
		Quaternion:     mgl64.QuatIdent(),
		LinearDamping:  clamp01(opts.LinearDamping),
		AngularDamping: clamp01(opts.AngularDamping),
		mass:           mass,
		shape:          opts.Shape,
		rb:             rb,
	}
}

func (b *Body) ID() int { return b.id }

func (b *Body) Mass() float64 { return b.mass }

func (b *Body) Shape() Shape { return b.shape }

// Static reports whether the body is immovable (mass 0).
func (b *Body) Static() bool { return b.rb.BodyType == actor.BodyTypeStatic }

// World returns the world the body was added to, if any.
func (b *Body) World() *World { return b.world }

// RigidBody exposes the simulated body.
func (b *Body) RigidBody() *actor.RigidBody { return b.rb }

// ApplyForce accumulates a force applied at a world-space point. The off-centre
// part becomes torque. Accumulators are cleared after each world step.
func (b *Body) ApplyForce(force, worldPoint mgl64.Vec3) {
	if b == nil || b.Static() {
		return
	}
	b.force = b.force.Add(force)
	arm := worldPoint.Sub(b.Position)
	b.torque = b.torque.Add(arm.Cross(force))
}

// ApplyTorque accumulates a world-space torque.
func (b *Body) ApplyTorque(torque mgl64.Vec3) {
	if b == nil || b.Static() {
		return
	}
	b.torque = b.torque.Add(torque)
}

// Force returns the accumulated force for the next step.
func (b *Body) Force() mgl64.Vec3 { return b.force }

// Torque returns the accumulated torque for the next step.
func (b *Body) Torque() mgl64.Vec3 { return b.torque }

// Teleport moves the body and kills all motion.
func (b *Body) Teleport(pos mgl64.Vec3) {
	if b == nil || b.Static() {
		return
	}
	b.Position = pos
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
	b.clearForces()
	b.push()
	b.rb.PreviousTransform = b.rb.Transform
}

func (b *Body) clearForces() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
	b.rb.ClearForces()
}

// push copies the public state into the rigid body.
func (b *Body) push() {
	q := b.Quaternion
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	q = q.Normalize()
	b.rb.Transform.Position = b.Position
	b.rb.Transform.Rotation = q
	b.rb.Transform.InverseRotation = q.Inverse()
	b.rb.Shape.ComputeAABB(b.rb.Transform)
	b.rb.WakeUp()
	if b.Static() {
		b.rb.PreviousTransform = b.rb.Transform
		return
	}
	b.rb.Velocity = b.Velocity
	b.rb.AngularVelocity = b.AngularVelocity
}

// pull reads the stepped state back out of the rigid body.
func (b *Body) pull() {
	if b.Static() {
		return
	}
	b.Position = b.rb.Transform.Position
	b.Quaternion = b.rb.Transform.Rotation
	b.Velocity = b.rb.Velocity
	b.AngularVelocity = b.rb.AngularVelocity
}

// applyImpulse changes the body's motion by an impulse applied at arm from
// its centre.
func (b *Body) applyImpulse(impulse, arm mgl64.Vec3) {
	if b.Static() {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / b.mass))
	invI := b.rb.GetInverseInertiaWorld()
	b.AngularVelocity = b.AngularVelocity.Add(invI.Mul3x1(arm.Cross(impulse)))
}

// footprint returns the body's bounds projected on the horizontal (x, z) plane.
func (b *Body) footprint() cp.BB {
	ex, ez := b.horizontalExtents()
	x, z := b.Position.X(), b.Position.Z()
	return cp.BB{L: x - ex, B: z - ez, R: x + ex, T: z + ez}
}

func (b *Body) horizontalExtents() (float64, float64) {
	switch b.shape.Kind {
	case ShapeSphere:
		return b.shape.Radius, b.shape.Radius
	case ShapeBox:
		m := b.Quaternion.Mat4().Mat3()
		h := b.shape.HalfExtents
		var e [3]float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				e[i] += math.Abs(m.At(i, j)) * h[j]
			}
		}
		return e[0], e[2]
	}
	return 0, 0
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
