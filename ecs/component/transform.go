package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the visual placement of an entity. For physics-driven entities
// it is a mirror of the body, written after each step.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
