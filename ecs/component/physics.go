package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/physics"
)

// PhysicsBody stores the rigid body handle and the collider configuration it
// was (or will be) created from.
type PhysicsBody struct {
	Body           *physics.Body
	Shape          physics.ShapeKind
	Radius         float64
	HalfExtents    mgl64.Vec3
	Mass           float64
	LinearDamping  float64
	AngularDamping float64
}

// Static reports whether the configured body is immovable.
func (p *PhysicsBody) Static() bool {
	return p.Mass <= 0
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
