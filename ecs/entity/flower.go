package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
)

// NewFlowerAt builds a collectible from prefab and plants it at pos.
func NewFlowerAt(w *ecs.World, prefab string, pos mgl64.Vec3, phase float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, pos); err != nil {
		return 0, fmt.Errorf("flower: override transform: %w", err)
	}
	c, ok := ecs.Get(w, e, component.CollectibleComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("flower: prefab %q has no collectible", prefab)
	}
	c.BaseY = pos.Y()
	c.Phase = phase
	return e, nil
}
