package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/prefabs"
)

// ScriptBehavior animates a collectible from a tengo script. The script reads
// time_s, phase and base_y and must set y and spin.
type ScriptBehavior struct {
	world      *ecs.World
	entity     ecs.Entity
	scriptPath string
	compiled   *tengo.Compiled
	failed     bool
}

func NewScriptBehavior(w *ecs.World, e ecs.Entity, scriptPath string) (*ScriptBehavior, error) {
	if w == nil || !w.IsAlive(e) {
		return nil, fmt.Errorf("script behavior: %w", component.ErrEntityNotAlive)
	}
	compiled, err := compileBehavior(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("script behavior %s: %w", scriptPath, err)
	}
	return &ScriptBehavior{world: w, entity: e, scriptPath: scriptPath, compiled: compiled}, nil
}

func compileBehavior(scriptPath string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("time_s", 0.0)
	_ = script.Add("phase", 0.0)
	_ = script.Add("base_y", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))
	return script.Compile()
}

// Reload recompiles the script from disk. On failure the old script keeps
// running.
func (b *ScriptBehavior) Reload() error {
	compiled, err := compileBehavior(b.scriptPath)
	if err != nil {
		return fmt.Errorf("script behavior %s: %w", b.scriptPath, err)
	}
	b.compiled = compiled
	b.failed = false
	return nil
}

// ScriptPath is the script name the behavior was built from.
func (b *ScriptBehavior) ScriptPath() string {
	return b.scriptPath
}

func (b *ScriptBehavior) Entity() ecs.Entity {
	return b.entity
}

func (b *ScriptBehavior) Update(now float64) {
	if b == nil || b.failed {
		return
	}
	collectible, ok := ecs.Get(b.world, b.entity, component.CollectibleComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(b.world, b.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	y, spin, err := b.eval(now/1000, collectible.Phase, collectible.BaseY)
	if err != nil {
		// one report per behavior; the entity keeps its last pose
		log.Printf("script: entity=%v %s: %v", b.entity, b.scriptPath, err)
		b.failed = true
		return
	}
	t.Position[1] = y
	t.Rotation = mgl64.QuatRotate(spin, mgl64.Vec3{0, 1, 0})
}

func (b *ScriptBehavior) eval(seconds, phase, baseY float64) (y, spin float64, err error) {
	if err := b.compiled.Set("time_s", seconds); err != nil {
		return 0, 0, err
	}
	if err := b.compiled.Set("phase", phase); err != nil {
		return 0, 0, err
	}
	if err := b.compiled.Set("base_y", baseY); err != nil {
		return 0, 0, err
	}
	if err := b.compiled.Run(); err != nil {
		return 0, 0, err
	}
	return b.compiled.Get("y").Float(), b.compiled.Get("spin").Float(), nil
}
