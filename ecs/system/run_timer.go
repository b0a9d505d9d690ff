package system

import (
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
)

// RunTimerSystem keeps RunTimer.Elapsed current for the HUD.
type RunTimerSystem struct{}

func NewRunTimerSystem() *RunTimerSystem { return &RunTimerSystem{} }

func (s *RunTimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := ecs.First(w, component.RunTimerComponent.Kind())
	if !ok {
		return
	}
	timer, ok := ecs.Get(w, e, component.RunTimerComponent.Kind())
	if !ok {
		return
	}
	timer.Elapsed = runDuration(timer, frameTime(w))
}

// ResetRunTimer ends the current run at now: a longer run becomes the new
// best, and the next run starts at now.
func ResetRunTimer(timer *component.RunTimer, now float64) {
	if timer == nil {
		return
	}
	if run := runDuration(timer, now); run > timer.Best {
		timer.Best = run
	}
	timer.Start = now
	timer.Elapsed = 0
}

func runDuration(timer *component.RunTimer, now float64) float64 {
	if d := now - timer.Start; d > 0 {
		return d
	}
	return 0
}
