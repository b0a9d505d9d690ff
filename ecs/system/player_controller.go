package system

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/common"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/input"
	"github.com/milk9111/islandroll/physics"
)

// CameraHandle is the part of the camera the controller snaps on reset.
type CameraHandle interface {
	SetPosition(mgl64.Vec3)
	LookAt(mgl64.Vec3)
}

// PlayerController drives the player ball: input edges set the move intent,
// Update turns it into torque and keeps the body in its limits.
type PlayerController struct {
	world       *ecs.World
	entity      ecs.Entity
	camera      CameraHandle
	onFall      func(now float64)
	unsubscribe func()
}

// NewPlayerController binds a controller to e, which must carry the player
// components. It subscribes to src until Close is called.
func NewPlayerController(w *ecs.World, e ecs.Entity, cam CameraHandle, src input.Source, onFall func(now float64)) (*PlayerController, error) {
	if w == nil || !w.IsAlive(e) {
		return nil, fmt.Errorf("player controller: %w", component.ErrEntityNotAlive)
	}
	if !ecs.Has(w, e, component.PlayerComponent.Kind()) ||
		!ecs.Has(w, e, component.InputComponent.Kind()) ||
		!ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) ||
		!ecs.Has(w, e, component.TransformComponent.Kind()) {
		return nil, fmt.Errorf("player controller: entity %v is missing player components", e)
	}

	c := &PlayerController{world: w, entity: e, camera: cam, onFall: onFall}
	if src != nil {
		c.unsubscribe = src.Subscribe(c.HandleEvent)
	}
	return c, nil
}

func (c *PlayerController) Entity() ecs.Entity {
	return c.entity
}

// Close drops the input subscription.
func (c *PlayerController) Close() {
	if c == nil || c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
}

// HandleEvent applies a key edge. Releasing either key of an axis stops that
// axis, even while the opposite key is still held.
func (c *PlayerController) HandleEvent(ev input.Event) {
	in, ok := ecs.Get(c.world, c.entity, component.InputComponent.Kind())
	if !ok {
		return
	}

	if !ev.Pressed {
		switch ev.Key {
		case input.KeyForward, input.KeyBack:
			in.MoveZ = 0
		case input.KeyLeft, input.KeyRight:
			in.MoveX = 0
		}
		return
	}

	switch ev.Key {
	case input.KeyForward:
		in.MoveZ = -1
	case input.KeyBack:
		in.MoveZ = 1
	case input.KeyLeft:
		in.MoveX = -1
	case input.KeyRight:
		in.MoveX = 1
	case input.KeyJump:
		c.Jump()
	case input.KeyResetCamera:
		c.ResetCamera()
	}
}

// MoveDirection returns the current (x, z) intent.
func (c *PlayerController) MoveDirection() (x, z float64) {
	in, ok := ecs.Get(c.world, c.entity, component.InputComponent.Kind())
	if !ok {
		return 0, 0
	}
	return in.MoveX, in.MoveZ
}

// Jump sets the vertical speed when the ball is slow vertically and low
// enough. It reports whether the jump happened.
func (c *PlayerController) Jump() bool {
	body, tuning, ok := c.parts()
	if !ok {
		return false
	}
	t, ok := ecs.Get(c.world, c.entity, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	if math.Abs(body.Velocity.Y()) >= tuning.JumpMaxVerticalSpeed || t.Position.Y() >= tuning.JumpMaxHeight {
		return false
	}
	body.Velocity[1] = tuning.JumpSpeed
	return true
}

// ResetCamera snaps the camera behind the player.
func (c *PlayerController) ResetCamera() {
	if c.camera == nil {
		return
	}
	tuning, ok := ecs.Get(c.world, c.entity, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(c.world, c.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	c.camera.SetPosition(t.Position.Add(tuning.CameraOffset))
	c.camera.LookAt(t.Position)
}

func (c *PlayerController) Update(now float64) {
	body, tuning, ok := c.parts()
	if !ok {
		return
	}

	if Grounded(body, tuning.GroundedSpeed) {
		body.LinearDamping = tuning.GroundLinearDamping
		body.AngularDamping = tuning.GroundAngularDamping
		x, z := c.MoveDirection()
		body.ApplyTorque(MoveTorque(x, z, tuning.TorqueStrength))
	} else {
		body.LinearDamping = tuning.AirLinearDamping
		body.AngularDamping = tuning.AirAngularDamping
	}

	body.Velocity = common.ClampLength(body.Velocity, tuning.MaxSpeed)
	body.AngularVelocity = common.ClampLength(body.AngularVelocity, tuning.MaxAngularSpeed)

	t := c.syncTransform(body)
	if t == nil || t.Position.Y() >= tuning.FallHeight {
		return
	}

	log.Printf("player: fell at y=%.2f, respawning", t.Position.Y())
	body.Teleport(tuning.Spawn)
	c.syncTransform(body)
	if c.onFall != nil {
		c.onFall(now)
	}
}

func (c *PlayerController) parts() (*physics.Body, *component.Player, bool) {
	pb, ok := ecs.Get(c.world, c.entity, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return nil, nil, false
	}
	tuning, ok := ecs.Get(c.world, c.entity, component.PlayerComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	return pb.Body, tuning, true
}

func (c *PlayerController) syncTransform(body *physics.Body) *component.Transform {
	t, ok := ecs.Get(c.world, c.entity, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	t.Position = body.Position
	t.Rotation = body.Quaternion
	return t
}

// Grounded classifies the body by vertical speed alone.
func Grounded(body *physics.Body, threshold float64) bool {
	if body == nil {
		return false
	}
	return math.Abs(body.Velocity.Y()) < threshold
}

// MoveTorque converts a move intent into a torque about the horizontal axes
// that rolls a ball in the direction of travel.
func MoveTorque(x, z, strength float64) mgl64.Vec3 {
	return mgl64.Vec3{z * strength, 0, -x * strength}
}
