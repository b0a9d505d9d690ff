package system

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/common"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
)

const (
	WindStatusCalm = "Calm"
	WindStatusOff  = "Off"
)

// WindSystem pushes the grounded player around with a horizontal force that
// changes direction every few seconds.
type WindSystem struct {
	rng *rand.Rand
}

// NewWindSystem uses rng for every resample. A nil rng is seeded from the
// clock.
func NewWindSystem(rng *rand.Rand) *WindSystem {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &WindSystem{rng: rng}
}

func (s *WindSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	windEntity, ok := ecs.First(w, component.WindComponent.Kind())
	if !ok {
		return
	}
	wind, _ := ecs.Get(w, windEntity, component.WindComponent.Kind())
	indicator, _ := ecs.Get(w, windEntity, component.WindIndicatorComponent.Kind())

	if !wind.Enabled {
		wind.Status = WindStatusOff
		if indicator != nil {
			indicator.Visible = false
		}
		return
	}
	if wind.Status == WindStatusOff && wind.Strength > 0 {
		wind.Status = strengthStatus(wind.Strength)
	}

	now := frameTime(w)
	if now > wind.NextChange {
		s.Resample(wind, now)
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind(), component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	if pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		if Grounded(pb.Body, wind.GroundedSpeed) {
			pb.Body.ApplyForce(wind.Vector, pb.Body.Position)
		}
	}

	if indicator == nil {
		return
	}
	indicator.Visible = true
	indicator.Direction, indicator.Length = WindIndicatorShape(wind)
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		indicator.Position = t.Position.Add(mgl64.Vec3{0, wind.IndicatorHeight, 0})
	}
}

// Resample draws a new direction and strength and schedules the next change.
func (s *WindSystem) Resample(wind *component.Wind, now float64) {
	angle := s.rng.Float64() * 2 * math.Pi
	strength := wind.MinStrength + s.rng.Float64()*wind.StrengthRange

	wind.Strength = strength
	wind.Vector = mgl64.Vec3{math.Cos(angle) * strength, 0, math.Sin(angle) * strength}
	wind.NextChange = now + wind.MinInterval + s.rng.Float64()*wind.IntervalJitter
	wind.Status = strengthStatus(strength)
}

func strengthStatus(strength float64) string {
	return fmt.Sprintf("Str: %d", int(math.Floor(strength)))
}

// WindIndicatorShape returns the arrow direction and length for the current
// wind.
func WindIndicatorShape(wind *component.Wind) (mgl64.Vec3, float64) {
	dir := common.Horizontal(wind.Vector)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	length := 0.0
	if wind.LengthScale > 0 {
		length = wind.Strength / wind.LengthScale
	}
	return dir, length
}

func frameTime(w *ecs.World) float64 {
	e, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	clock, ok := ecs.Get(w, e, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	return clock.Now
}
