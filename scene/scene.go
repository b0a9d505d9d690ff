// Package scene builds the island level and runs it one frame at a time.
package scene

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/ecs/entity"
	"github.com/milk9111/islandroll/ecs/system"
	"github.com/milk9111/islandroll/input"
	"github.com/milk9111/islandroll/physics"
	"github.com/milk9111/islandroll/prefabs"
)

type Config struct {
	Camera system.CameraHandle
	Input  input.Source
	// Rand drives the wind. Nil seeds from the clock.
	Rand *rand.Rand
	// Accumulate spends real frame time in fixed physics steps instead of
	// stepping once per frame.
	Accumulate  bool
	DisableWind bool
	// Now is the construction timestamp in milliseconds; the first run
	// starts here.
	Now float64
}

// Scene owns the ECS world, the physics world and the per-frame systems.
type Scene struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	updates   *system.UpdateList
	player    *system.PlayerController

	playerEntity ecs.Entity
	windEntity   ecs.Entity
	timerEntity  ecs.Entity
	clockEntity  ecs.Entity
	lastNow      float64

	spec *prefabs.WorldSpec
}

func New(cfg Config) (*Scene, error) {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	pw := physics.NewWorld()
	pw.Gravity = spec.Gravity.Vec3()
	pw.Friction = spec.Friction
	if spec.Substeps > 0 {
		pw.Substeps = spec.Substeps
	}
	ps := system.NewPhysicsSystem(pw)
	ps.Accumulate = cfg.Accumulate

	w := ecs.NewWorld()
	s := &Scene{
		world:   w,
		physics: ps,
		updates: &system.UpdateList{},
		spec:    spec,
		lastNow: cfg.Now,
	}

	if s.clockEntity, err = entity.NewClock(w, cfg.Now); err != nil {
		return nil, fmt.Errorf("scene: clock: %w", err)
	}
	if _, err := entity.NewIslandGrid(w, spec.Islands); err != nil {
		return nil, fmt.Errorf("scene: islands: %w", err)
	}

	// flowers go in the update list before the player, so the reverse walk
	// moves the player before any pickup check
	for i, f := range spec.Flowers {
		e, err := entity.NewFlowerAt(w, f.Prefab, f.Position.Vec3(), f.Phase)
		if err != nil {
			return nil, fmt.Errorf("scene: flower %d: %w", i, err)
		}
		s.updates.Add(flowerBehavior(w, e))
	}

	if s.windEntity, err = entity.NewWind(w); err != nil {
		return nil, fmt.Errorf("scene: wind: %w", err)
	}
	if cfg.DisableWind {
		s.SetWindEnabled(false)
	}
	if s.timerEntity, err = entity.NewRunTimer(w, cfg.Now); err != nil {
		return nil, fmt.Errorf("scene: run timer: %w", err)
	}
	if s.playerEntity, err = entity.NewPlayer(w); err != nil {
		return nil, fmt.Errorf("scene: player: %w", err)
	}

	// bodies must exist before the controller can read them
	ps.Sync(w)

	if s.player, err = system.NewPlayerController(w, s.playerEntity, cfg.Camera, cfg.Input, s.ResetGame); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.updates.Add(s.player)

	s.scheduler = ecs.NewScheduler(
		ps,
		system.NewRunTimerSystem(),
		system.NewWindSystem(cfg.Rand),
		system.NewUpdateListSystem(s.updates, spec.PickupRadius),
	)

	log.Printf("scene: %d entities, %d bodies, %d updatables", len(w.Entities()), len(pw.Bodies()), s.updates.Len())
	return s, nil
}

func flowerBehavior(w *ecs.World, e ecs.Entity) system.Updatable {
	c, ok := ecs.Get(w, e, component.CollectibleComponent.Kind())
	if !ok || c.Script == "" {
		return system.Inert(e)
	}
	b, err := system.NewScriptBehavior(w, e, c.Script)
	if err != nil {
		log.Printf("scene: flower %v keeps still: %v", e, err)
		return system.Inert(e)
	}
	return b
}

// Update runs one frame at timestamp now (milliseconds). A timestamp older
// than the previous one counts as a zero-length frame.
func (s *Scene) Update(now float64) {
	if s == nil {
		return
	}
	if clock, ok := ecs.Get(s.world, s.clockEntity, component.ClockComponent.Kind()); ok {
		delta := now - s.lastNow
		if delta < 0 {
			delta = 0
		}
		clock.Now = now
		clock.Delta = delta
		clock.Frame++
	}
	s.lastNow = now
	s.scheduler.Update(s.world)
}

// ResetGame ends the current run at now. Called when the player falls off.
func (s *Scene) ResetGame(now float64) {
	timer, ok := ecs.Get(s.world, s.timerEntity, component.RunTimerComponent.Kind())
	if !ok {
		return
	}
	system.ResetRunTimer(timer, now)
	log.Printf("scene: run reset, best %.1fs", timer.Best/1000)
}

func (s *Scene) WindEnabled() bool {
	wind, ok := ecs.Get(s.world, s.windEntity, component.WindComponent.Kind())
	return ok && wind.Enabled
}

func (s *Scene) SetWindEnabled(enabled bool) {
	if wind, ok := ecs.Get(s.world, s.windEntity, component.WindComponent.Kind()); ok {
		wind.Enabled = enabled
	}
}

func (s *Scene) WindStatus() string {
	wind, ok := ecs.Get(s.world, s.windEntity, component.WindComponent.Kind())
	if !ok {
		return ""
	}
	return wind.Status
}

// Elapsed is the current run time in seconds as of the last Update.
func (s *Scene) Elapsed() float64 {
	timer, ok := ecs.Get(s.world, s.timerEntity, component.RunTimerComponent.Kind())
	if !ok {
		return 0
	}
	return timer.Elapsed / 1000
}

// Best is the longest finished run in seconds.
func (s *Scene) Best() float64 {
	timer, ok := ecs.Get(s.world, s.timerEntity, component.RunTimerComponent.Kind())
	if !ok {
		return 0
	}
	return timer.Best / 1000
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) Physics() *physics.World {
	return s.physics.World()
}

func (s *Scene) Player() *system.PlayerController {
	return s.player
}

func (s *Scene) PlayerEntity() ecs.Entity {
	return s.playerEntity
}

func (s *Scene) PlayerPosition() mgl64.Vec3 {
	t, ok := ecs.Get(s.world, s.playerEntity, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}
	}
	return t.Position
}

func (s *Scene) Background() color.NRGBA {
	return s.spec.Background.NRGBA(color.NRGBA{R: 0x7e, G: 0xc0, B: 0xee, A: 0xff})
}

// CameraStart is where the camera sits when the scene opens.
func (s *Scene) CameraStart() (position, target mgl64.Vec3, fovY float64) {
	return s.spec.Camera.Position.Vec3(), s.spec.Camera.Target.Vec3(), s.spec.Camera.FovY
}

// ReloadTuning applies a changed prefab or script to the running scene.
// Geometry prefabs only take effect on the next start.
func (s *Scene) ReloadTuning(name string) error {
	name = prefabs.PrefabName(name)
	switch name {
	case "player.yaml":
		return entity.ReloadPlayer(s.world, s.playerEntity)
	case "wind.yaml":
		return entity.ReloadWind(s.world, s.windEntity)
	}

	reloaded := 0
	for _, u := range s.updates.Items() {
		b, ok := u.(*system.ScriptBehavior)
		if !ok || "scripts/"+b.ScriptPath() != name {
			continue
		}
		if err := b.Reload(); err != nil {
			return err
		}
		reloaded++
	}
	if reloaded == 0 {
		log.Printf("scene: %s changed, restart to apply", name)
	}
	return nil
}

// Close releases the input subscription.
func (s *Scene) Close() {
	if s == nil || s.player == nil {
		return
	}
	s.player.Close()
}
