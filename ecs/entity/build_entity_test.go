package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/physics"
	"github.com/milk9111/islandroll/prefabs"
)

func TestNewPlayerBuildsFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !ecs.Has(w, e, component.InputComponent.Kind()) {
		t.Fatalf("player is missing tag or input")
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		t.Fatalf("player has no physics body")
	}
	if pb.Shape != physics.ShapeSphere || pb.Radius != 0.5 || pb.Mass != 50 {
		t.Fatalf("unexpected body config %+v", pb)
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.Position != (mgl64.Vec3{0, 5, 0}) {
		t.Fatalf("unexpected transform %+v", tr)
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		t.Fatalf("player has no tuning")
	}
	if *p != DefaultPlayer() {
		t.Fatalf("player.yaml tuning %+v differs from defaults %+v", *p, DefaultPlayer())
	}
}

func ptr(v float64) *float64 { return &v }

func TestApplyPlayerSpec(t *testing.T) {
	fall := 0.0
	cases := []struct {
		name  string
		spec  prefabs.PlayerComponentSpec
		check func(t *testing.T, p component.Player)
	}{
		{
			name: "empty_keeps_defaults",
			check: func(t *testing.T, p component.Player) {
				if p != DefaultPlayer() {
					t.Fatalf("got %+v", p)
				}
			},
		},
		{
			name: "override_torque",
			spec: prefabs.PlayerComponentSpec{TorqueStrength: ptr(800)},
			check: func(t *testing.T, p component.Player) {
				if p.TorqueStrength != 800 || p.MaxSpeed != 15 {
					t.Fatalf("got %+v", p)
				}
			},
		},
		{
			name: "explicit_zero_fall_height",
			spec: prefabs.PlayerComponentSpec{FallHeight: &fall},
			check: func(t *testing.T, p component.Player) {
				if p.FallHeight != 0 {
					t.Fatalf("fall height = %f", p.FallHeight)
				}
			},
		},
		{
			name: "explicit_zero_air_damping",
			spec: prefabs.PlayerComponentSpec{AirLinearDamping: ptr(0), AirAngularDamping: ptr(0)},
			check: func(t *testing.T, p component.Player) {
				if p.AirLinearDamping != 0 || p.AirAngularDamping != 0 {
					t.Fatalf("air damping = %f/%f, want 0/0", p.AirLinearDamping, p.AirAngularDamping)
				}
				if p.GroundLinearDamping != 0.9 {
					t.Fatalf("ground damping changed to %f", p.GroundLinearDamping)
				}
			},
		},
		{
			name: "negative_ignored",
			spec: prefabs.PlayerComponentSpec{MaxSpeed: ptr(-1)},
			check: func(t *testing.T, p component.Player) {
				if p.MaxSpeed != 15 {
					t.Fatalf("max speed = %f", p.MaxSpeed)
				}
			},
		},
		{
			name: "spawn",
			spec: prefabs.PlayerComponentSpec{Spawn: prefabs.Vec3Spec{1, 2, 3}},
			check: func(t *testing.T, p component.Player) {
				if p.Spawn != (mgl64.Vec3{1, 2, 3}) || p.CameraOffset != (mgl64.Vec3{0, 10, 20}) {
					t.Fatalf("got spawn %v offset %v", p.Spawn, p.CameraOffset)
				}
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultPlayer()
			ApplyPlayerSpec(&p, c.spec)
			c.check(t, p)
		})
	}
}

func TestNewIslandGrid(t *testing.T) {
	w := ecs.NewWorld()
	grid := prefabs.IslandGrid{Prefab: "island.yaml", Spacing: 12, Radius: 1, Height: -0.5}
	islands, err := NewIslandGrid(w, grid)
	if err != nil {
		t.Fatalf("NewIslandGrid: %v", err)
	}
	if len(islands) != 9 {
		t.Fatalf("islands = %d, want 9", len(islands))
	}

	seen := map[[2]int]bool{}
	for _, e := range islands {
		cell, _ := ecs.Get(w, e, component.IslandComponent.Kind())
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		want := mgl64.Vec3{float64(cell.Col) * 12, -0.5, float64(cell.Row) * 12}
		if tr.Position != want {
			t.Fatalf("island %v at %v, want %v", cell, tr.Position, want)
		}
		if !pb.Static() || pb.Shape != physics.ShapeBox || pb.HalfExtents != (mgl64.Vec3{4.3, 0.5, 4.3}) {
			t.Fatalf("unexpected island body %+v", pb)
		}
		seen[[2]int{cell.Col, cell.Row}] = true
	}
	if len(seen) != 9 {
		t.Fatalf("duplicate cells: %v", seen)
	}
}

func TestNewFlowerAt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewFlowerAt(w, "flower.yaml", mgl64.Vec3{12, 0.6, 0}, 1.5)
	if err != nil {
		t.Fatalf("NewFlowerAt: %v", err)
	}
	c, ok := ecs.Get(w, e, component.CollectibleComponent.Kind())
	if !ok {
		t.Fatalf("flower is not collectible")
	}
	if c.Name != "flower" || c.BaseY != 0.6 || c.Phase != 1.5 || c.Script != "flower.tengo" {
		t.Fatalf("unexpected collectible %+v", c)
	}
}

func TestNewWind(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewWind(w)
	if err != nil {
		t.Fatalf("NewWind: %v", err)
	}
	wind, ok := ecs.Get(w, e, component.WindComponent.Kind())
	if !ok {
		t.Fatalf("wind component missing")
	}
	if *wind != DefaultWind() {
		t.Fatalf("wind.yaml %+v differs from defaults %+v", *wind, DefaultWind())
	}
	if !ecs.Has(w, e, component.WindIndicatorComponent.Kind()) {
		t.Fatalf("wind indicator missing")
	}

	wind.Enabled = false
	if err := ReloadWind(w, e); err != nil {
		t.Fatalf("ReloadWind: %v", err)
	}
	if wind.Enabled {
		t.Fatalf("reload must keep the enabled flag")
	}
}

func TestApplyWindSpec(t *testing.T) {
	off := false
	cases := []struct {
		name  string
		spec  prefabs.WindComponentSpec
		check func(t *testing.T, wind component.Wind)
	}{
		{
			name: "empty_keeps_defaults",
			check: func(t *testing.T, wind component.Wind) {
				if wind != DefaultWind() {
					t.Fatalf("got %+v", wind)
				}
			},
		},
		{
			name: "explicit_zero_range_and_jitter",
			spec: prefabs.WindComponentSpec{StrengthRange: ptr(0), IntervalJitter: ptr(0)},
			check: func(t *testing.T, wind component.Wind) {
				if wind.StrengthRange != 0 || wind.IntervalJitter != 0 {
					t.Fatalf("range=%f jitter=%f, want 0", wind.StrengthRange, wind.IntervalJitter)
				}
				if wind.MinStrength != 190 {
					t.Fatalf("min strength changed to %f", wind.MinStrength)
				}
			},
		},
		{
			name: "disabled",
			spec: prefabs.WindComponentSpec{Enabled: &off},
			check: func(t *testing.T, wind component.Wind) {
				if wind.Enabled {
					t.Fatalf("wind still enabled")
				}
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wind := DefaultWind()
			ApplyWindSpec(&wind, c.spec)
			c.check(t, wind)
		})
	}
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(w, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
	if _, err := BuildEntity(nil, "player.yaml"); err == nil {
		t.Fatalf("expected error for nil world")
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("failed builds left %d entities", got)
	}
}
