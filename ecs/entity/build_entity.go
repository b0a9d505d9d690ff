package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/physics"
	"github.com/milk9111/islandroll/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"transform":      addTransform,
	"input":          addInput,
	"physics_body":   addPhysicsBody,
	"player":         addPlayer,
	"collectible":    addCollectible,
	"island":         addIsland,
	"appearance":     addAppearance,
	"wind":           addWind,
	"wind_indicator": addWindIndicator,
}

// transform goes first: collectibles read their rest height from it.
var componentBuildOrder = []string{
	"player_tag",
	"transform",
	"input",
	"physics_body",
	"player",
	"collectible",
	"island",
	"appearance",
	"wind",
	"wind_indicator",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(names, ", "))
	}

	return e, nil
}

// SetEntityPosition moves an entity that has not been handed to physics yet.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{Rotation: mgl64.QuatIdent(), Scale: 1}
	}
	t.Position = pos
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	scale := spec.Scale
	if scale <= 0 {
		scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec3(),
		Rotation: mgl64.QuatIdent(),
		Scale:    scale,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Mass < 0 {
		return fmt.Errorf("physics_body mass %f is negative", spec.Mass)
	}

	body := &component.PhysicsBody{
		Mass:           spec.Mass,
		LinearDamping:  spec.LinearDamping,
		AngularDamping: spec.AngularDamping,
	}
	switch strings.ToLower(spec.Shape) {
	case "", "sphere":
		if spec.Radius <= 0 {
			return fmt.Errorf("physics_body sphere needs a positive radius")
		}
		body.Shape = physics.ShapeSphere
		body.Radius = spec.Radius
	case "box":
		h := spec.HalfExtents.Vec3()
		if h.X() <= 0 || h.Y() <= 0 || h.Z() <= 0 {
			return fmt.Errorf("physics_body box needs positive half_extents, got %v", h)
		}
		body.Shape = physics.ShapeBox
		body.HalfExtents = h
	default:
		return fmt.Errorf("physics_body shape %q is not sphere or box", spec.Shape)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	p := DefaultPlayer()
	ApplyPlayerSpec(&p, spec)
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &p)
}

func addCollectible(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollectibleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collectible spec: %w", err)
	}
	name := spec.Name
	if name == "" {
		name = strings.TrimSuffix(ctx.PrefabPath, ".yaml")
	}
	c := &component.Collectible{Name: name, Phase: spec.Phase, Script: spec.Script}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		c.BaseY = t.Position.Y()
	}
	return ecs.Add(w, e, component.CollectibleComponent.Kind(), c)
}

func addIsland(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.IslandComponent.Kind(), &component.Island{})
}

func addAppearance(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AppearanceComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode appearance spec: %w", err)
	}
	return ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.NRGBA(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
	})
}

func addWind(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WindComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode wind spec: %w", err)
	}
	wind := DefaultWind()
	ApplyWindSpec(&wind, spec)
	return ecs.Add(w, e, component.WindComponent.Kind(), &wind)
}

func addWindIndicator(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WindIndicatorComponent.Kind(), &component.WindIndicator{
		Direction: mgl64.Vec3{1, 0, 0},
		Length:    1,
	})
}
