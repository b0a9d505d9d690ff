package system

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/ecs/entity"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func addWind(t *testing.T, r *testRig) (*component.Wind, *component.WindIndicator) {
	t.Helper()
	e := ecs.CreateEntity(r.world)
	wind := entity.DefaultWind()
	mustAdd(t, ecs.Add(r.world, e, component.WindComponent.Kind(), &wind))
	mustAdd(t, ecs.Add(r.world, e, component.WindIndicatorComponent.Kind(), &component.WindIndicator{}))
	w, _ := ecs.Get(r.world, e, component.WindComponent.Kind())
	ind, _ := ecs.Get(r.world, e, component.WindIndicatorComponent.Kind())
	return w, ind
}

func TestResampleRanges(t *testing.T) {
	s := NewWindSystem(newTestRand())
	wind := entity.DefaultWind()

	const samples = 4000
	var sectors [8]int
	for i := 0; i < samples; i++ {
		now := float64(i * 100)
		s.Resample(&wind, now)

		if wind.Strength < 190 || wind.Strength >= 191 {
			t.Fatalf("strength %f outside [190,191)", wind.Strength)
		}
		if wind.NextChange < now+3000 || wind.NextChange >= now+6000 {
			t.Fatalf("next change %f outside [%f,%f)", wind.NextChange, now+3000, now+6000)
		}
		if wind.Vector.Y() != 0 {
			t.Fatalf("wind has vertical part %v", wind.Vector)
		}
		if math.Abs(wind.Vector.Len()-wind.Strength) > 1e-9 {
			t.Fatalf("|vector| = %f, strength %f", wind.Vector.Len(), wind.Strength)
		}
		if wind.Status != "Str: 190" {
			t.Fatalf("status = %q", wind.Status)
		}

		angle := math.Atan2(wind.Vector.Z(), wind.Vector.X())
		if angle < 0 {
			angle += 2 * math.Pi
		}
		sectors[int(angle/(2*math.Pi)*8)%8]++
	}
	for i, n := range sectors {
		// uniform would be 500 per sector
		if n < 350 || n > 650 {
			t.Fatalf("sector %d has %d samples, angles not spread: %v", i, n, sectors)
		}
	}
}

func TestWindForceOnlyWhileGrounded(t *testing.T) {
	cases := []struct {
		name      string
		vy        float64
		wantForce bool
	}{
		{"grounded", 0.05, true},
		{"rising", 0.5, false},
		{"falling", -4, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, mgl64.Vec3{0, 3, 0}, false)
			wind, _ := addWind(t, r)
			r.clock.Now = 500

			body := r.body(t)
			body.Velocity = mgl64.Vec3{0, c.vy, 0}
			NewWindSystem(newTestRand()).Update(r.world)

			if wind.Strength == 0 {
				t.Fatalf("first update should resample")
			}
			got := body.Force()
			if c.wantForce {
				if !got.ApproxEqual(wind.Vector) {
					t.Fatalf("force = %v, want %v", got, wind.Vector)
				}
				if body.Torque().Len() > 1e-9 {
					t.Fatalf("wind at the body centre made torque %v", body.Torque())
				}
			} else if got.Len() != 0 {
				t.Fatalf("airborne player pushed by %v", got)
			}
		})
	}
}

func TestWindResamplesOnlyPastSchedule(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, 3, 0}, false)
	wind, _ := addWind(t, r)
	s := NewWindSystem(newTestRand())

	r.clock.Now = 1
	s.Update(r.world)
	first := wind.Vector
	next := wind.NextChange

	r.clock.Now = next
	s.Update(r.world)
	if wind.Vector != first || wind.NextChange != next {
		t.Fatalf("resampled at exactly the scheduled time")
	}

	r.clock.Now = next + 1
	s.Update(r.world)
	if wind.NextChange == next {
		t.Fatalf("did not resample after the scheduled time")
	}
}

func TestWindIndicatorFollowsPlayer(t *testing.T) {
	r := newRig(t, mgl64.Vec3{4, 1, -2}, false)
	wind, ind := addWind(t, r)
	r.clock.Now = 10
	NewWindSystem(newTestRand()).Update(r.world)

	if !ind.Visible {
		t.Fatalf("indicator hidden while wind is on")
	}
	if want := (mgl64.Vec3{4, 3.5, -2}); !ind.Position.ApproxEqual(want) {
		t.Fatalf("indicator at %v, want %v", ind.Position, want)
	}
	if math.Abs(ind.Direction.Len()-1) > 1e-9 || ind.Direction.Y() != 0 {
		t.Fatalf("direction %v not a horizontal unit vector", ind.Direction)
	}
	if !ind.Direction.ApproxEqual(wind.Vector.Normalize()) {
		t.Fatalf("direction %v does not match wind %v", ind.Direction, wind.Vector)
	}
	if math.Abs(ind.Length-wind.Strength/50) > 1e-12 {
		t.Fatalf("length = %f, want %f", ind.Length, wind.Strength/50)
	}
}

func TestWindDisabled(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, 0.5, 0}, false)
	wind, ind := addWind(t, r)
	s := NewWindSystem(newTestRand())
	if wind.Status != WindStatusCalm {
		t.Fatalf("initial status = %q", wind.Status)
	}

	r.clock.Now = 10
	s.Update(r.world)
	strength := wind.Strength

	wind.Enabled = false
	r.clock.Now = 1e7
	s.Update(r.world)

	if wind.Status != WindStatusOff || ind.Visible {
		t.Fatalf("disabled wind: status %q visible %v", wind.Status, ind.Visible)
	}
	if wind.Strength != strength {
		t.Fatalf("disabled wind resampled")
	}

	wind.Enabled = true
	s.Update(r.world)
	if wind.Status == WindStatusOff {
		t.Fatalf("status still %q after re-enabling", wind.Status)
	}
}

func TestWindDisabledAppliesNoForce(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, 0.5, 0}, false)
	wind, _ := addWind(t, r)
	wind.Enabled = false
	r.clock.Now = 10
	NewWindSystem(newTestRand()).Update(r.world)
	if f := r.body(t).Force(); f.Len() != 0 {
		t.Fatalf("disabled wind pushed the player: %v", f)
	}
}
