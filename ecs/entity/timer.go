package entity

import (
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
)

// NewRunTimer starts the first run at now (milliseconds).
func NewRunTimer(w *ecs.World, now float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.RunTimerComponent.Kind(), &component.RunTimer{Start: now}); err != nil {
		return 0, err
	}
	return e, nil
}

func NewClock(w *ecs.World, now float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{Now: now}); err != nil {
		return 0, err
	}
	return e, nil
}
