package component

import "github.com/go-gl/mathgl/mgl64"

// Player holds the controller tuning for a rolling ball.
type Player struct {
	TorqueStrength float64
	JumpSpeed      float64
	// jump is allowed below both limits
	JumpMaxVerticalSpeed float64
	JumpMaxHeight        float64

	GroundedSpeed        float64
	GroundLinearDamping  float64
	GroundAngularDamping float64
	AirLinearDamping     float64
	AirAngularDamping    float64
	MaxSpeed             float64
	MaxAngularSpeed      float64

	FallHeight   float64
	Spawn        mgl64.Vec3
	CameraOffset mgl64.Vec3
}

var PlayerComponent = NewComponent[Player]()
