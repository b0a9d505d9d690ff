package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/prefabs"
)

const playerPrefab = "player.yaml"

// DefaultPlayer is the tuning used for anything player.yaml leaves out.
func DefaultPlayer() component.Player {
	return component.Player{
		TorqueStrength:       400,
		JumpSpeed:            10,
		JumpMaxVerticalSpeed: 0.5,
		JumpMaxHeight:        5,
		GroundedSpeed:        0.1,
		GroundLinearDamping:  0.9,
		GroundAngularDamping: 0.95,
		AirLinearDamping:     0.1,
		AirAngularDamping:    0.5,
		MaxSpeed:             15,
		MaxAngularSpeed:      20,
		FallHeight:           -10,
		Spawn:                mgl64.Vec3{0, 5, 0},
		CameraOffset:         mgl64.Vec3{0, 10, 20},
	}
}

// ApplyPlayerSpec overrides p with every value spec sets, zero included.
// Negative values are ignored except for the fall height.
func ApplyPlayerSpec(p *component.Player, spec prefabs.PlayerComponentSpec) {
	set := func(dst *float64, v *float64) {
		if v != nil && *v >= 0 {
			*dst = *v
		}
	}
	set(&p.TorqueStrength, spec.TorqueStrength)
	set(&p.JumpSpeed, spec.JumpSpeed)
	set(&p.JumpMaxVerticalSpeed, spec.JumpMaxVerticalSpeed)
	set(&p.JumpMaxHeight, spec.JumpMaxHeight)
	set(&p.GroundedSpeed, spec.GroundedSpeed)
	set(&p.GroundLinearDamping, spec.GroundLinearDamping)
	set(&p.GroundAngularDamping, spec.GroundAngularDamping)
	set(&p.AirLinearDamping, spec.AirLinearDamping)
	set(&p.AirAngularDamping, spec.AirAngularDamping)
	set(&p.MaxSpeed, spec.MaxSpeed)
	set(&p.MaxAngularSpeed, spec.MaxAngularSpeed)
	if spec.FallHeight != nil {
		p.FallHeight = *spec.FallHeight
	}
	p.Spawn = spec.Spawn.Or(p.Spawn)
	p.CameraOffset = spec.CameraOffset.Or(p.CameraOffset)
}

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, playerPrefab)
}

// ReloadPlayer re-reads the player tuning from player.yaml into e. The body
// and transform are left alone.
func ReloadPlayer(w *ecs.World, e ecs.Entity) error {
	spec, err := prefabs.LoadEntityBuildSpec(playerPrefab)
	if err != nil {
		return err
	}
	ps, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](spec.Components["player"])
	if err != nil {
		return fmt.Errorf("player: decode %s: %w", playerPrefab, err)
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: %w", component.ErrEntityNotAlive)
	}
	fresh := DefaultPlayer()
	ApplyPlayerSpec(&fresh, ps)
	*p = fresh
	return nil
}
