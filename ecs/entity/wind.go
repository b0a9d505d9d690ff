package entity

import (
	"fmt"

	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/prefabs"
)

const windPrefab = "wind.yaml"

func DefaultWind() component.Wind {
	return component.Wind{
		Enabled:         true,
		Status:          "Calm",
		MinStrength:     190,
		StrengthRange:   1,
		MinInterval:     3000,
		IntervalJitter:  3000,
		IndicatorHeight: 2.5,
		LengthScale:     50,
		GroundedSpeed:   0.1,
	}
}

// ApplyWindSpec overrides the tuning in wind with every non-negative value
// spec sets. The live state (vector, schedule, status) is kept.
func ApplyWindSpec(wind *component.Wind, spec prefabs.WindComponentSpec) {
	set := func(dst *float64, v *float64) {
		if v != nil && *v >= 0 {
			*dst = *v
		}
	}
	if spec.Enabled != nil {
		wind.Enabled = *spec.Enabled
	}
	set(&wind.MinStrength, spec.MinStrength)
	set(&wind.StrengthRange, spec.StrengthRange)
	set(&wind.MinInterval, spec.MinInterval)
	set(&wind.IntervalJitter, spec.IntervalJitter)
	set(&wind.IndicatorHeight, spec.IndicatorHeight)
	set(&wind.LengthScale, spec.LengthScale)
	set(&wind.GroundedSpeed, spec.GroundedSpeed)
}

// NewWind builds the wind singleton. It carries the indicator the renderer
// draws.
func NewWind(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, windPrefab)
}

// ReloadWind re-reads the wind tuning. The enabled flag stays as the player
// left it.
func ReloadWind(w *ecs.World, e ecs.Entity) error {
	spec, err := prefabs.LoadEntityBuildSpec(windPrefab)
	if err != nil {
		return err
	}
	ws, err := prefabs.DecodeComponentSpec[prefabs.WindComponentSpec](spec.Components["wind"])
	if err != nil {
		return fmt.Errorf("wind: decode %s: %w", windPrefab, err)
	}
	wind, ok := ecs.Get(w, e, component.WindComponent.Kind())
	if !ok {
		return fmt.Errorf("wind: %w", component.ErrEntityNotAlive)
	}
	enabled := wind.Enabled
	ws.Enabled = &enabled
	ApplyWindSpec(wind, ws)
	return nil
}
