package physics

import (
	"log"
	"math"

	"github.com/akmonengine/feather"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	DefaultGravity  = -9.82
	DefaultFriction = 0.3
	DefaultSubsteps = 10

	gridCellSize = 4.0
	gridCells    = 4096
)

// World owns the bodies and advances them in fixed steps on a feather world.
// Static bodies are also indexed in a Chipmunk space by their horizontal
// footprint, which the contact friction pass queries.
type World struct {
	Gravity     mgl64.Vec3
	Friction    float64
	Restitution float64
	// Substeps is the number of solver substeps per Step.
	Substeps int

	sim     *feather.World
	bodies  []*Body
	nextID  int
	space   *cp.Space
	statics map[*cp.Shape]*Body
	time    float64
}

func NewWorld() *World {
	return &World{
		Gravity:  mgl64.Vec3{0, DefaultGravity, 0},
		Friction: DefaultFriction,
		Substeps: DefaultSubsteps,
		sim: &feather.World{
			SpatialGrid: feather.NewSpatialGrid(gridCellSize, gridCells),
			Workers:     feather.DEFAULT_WORKERS,
			Events:      feather.NewEvents(),
		},
		space:   cp.NewSpace(),
		statics: make(map[*cp.Shape]*Body),
	}
}

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return w.time }

func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// AddBody registers a body. Adding a body twice is a no-op.
func (w *World) AddBody(b *Body) {
	if w == nil || b == nil || b.world == w {
		return
	}
	w.nextID++
	b.id = w.nextID
	b.world = w
	b.rb.Id = b.id
	b.push()
	w.bodies = append(w.bodies, b)
	w.sim.AddBody(b.rb)

	if !b.Static() {
		return
	}
	var shape *cp.Shape
	switch b.shape.Kind {
	case ShapeSphere:
		shape = cp.NewCircle(w.space.StaticBody, b.shape.Radius, cp.Vector{X: b.Position.X(), Y: b.Position.Z()})
	case ShapeBox:
		shape = cp.NewBox2(w.space.StaticBody, b.footprint(), 0)
	default:
		log.Printf("physics: body %d has unknown shape %v, not indexed", b.id, b.shape.Kind)
		return
	}
	w.space.AddShape(shape)
	w.statics[shape] = b
	b.cpShape = shape
}

func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil || b.world != w {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	w.sim.RemoveBody(b.rb)
	if b.cpShape != nil {
		w.space.RemoveShape(b.cpShape)
		delete(w.statics, b.cpShape)
		b.cpShape = nil
	}
	b.world = nil
}

// Step advances the simulation by dt seconds. Damping is applied per second
// of simulated time and the accumulated forces act over the whole step;
// accumulators are cleared afterwards.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		b.rb.Material.Restitution = w.Restitution
		b.rb.Material.StaticFriction = w.Friction
		b.rb.Material.DynamicFriction = w.Friction

		if !b.Static() {
			b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, dt))
			b.AngularVelocity = b.AngularVelocity.Mul(math.Pow(1-b.AngularDamping, dt))
		}
		b.push()
		if !b.Static() {
			// feather takes forces in units of 1000 and applies them as
			// impulses on the first substep
			b.rb.AddForce(b.force.Mul(dt / 1000))
			b.rb.AddTorque(b.torque.Mul(dt / 1000))
		}
	}

	w.sim.Gravity = w.Gravity
	w.sim.Substeps = w.Substeps
	if w.sim.Substeps <= 0 {
		w.sim.Substeps = DefaultSubsteps
	}
	w.sim.Step(dt)

	for _, b := range w.bodies {
		b.pull()
		b.clearForces()
	}
	w.applyContactFriction(dt)

	w.time += dt
}

// candidates returns the static bodies whose footprint overlaps b's.
func (w *World) candidates(b *Body) []*Body {
	bb := b.footprint()
	bb.L -= contactMargin
	bb.B -= contactMargin
	bb.R += contactMargin
	bb.T += contactMargin

	var out []*Body
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if other, ok := w.statics[shape]; ok {
			out = append(out, other)
		}
	}, nil)
	return out
}
