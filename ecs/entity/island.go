package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/prefabs"
)

// NewIslandGrid lays out one static island per grid cell, centred on the
// origin.
func NewIslandGrid(w *ecs.World, grid prefabs.IslandGrid) ([]ecs.Entity, error) {
	side := 2*grid.Radius + 1
	out := make([]ecs.Entity, 0, side*side)
	for col := -grid.Radius; col <= grid.Radius; col++ {
		for row := -grid.Radius; row <= grid.Radius; row++ {
			e, err := BuildEntity(w, grid.Prefab)
			if err != nil {
				return out, err
			}
			pos := mgl64.Vec3{float64(col) * grid.Spacing, grid.Height, float64(row) * grid.Spacing}
			if err := SetEntityPosition(w, e, pos); err != nil {
				return out, fmt.Errorf("island %d,%d: %w", col, row, err)
			}
			if err := ecs.Add(w, e, component.IslandComponent.Kind(), &component.Island{Col: col, Row: row}); err != nil {
				return out, fmt.Errorf("island %d,%d: %w", col, row, err)
			}
			out = append(out, e)
		}
	}
	return out, nil
}
