package system

import (
	"log"

	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
)

const DefaultPickupRadius = 2.0

// Updatable is anything the scene ticks once per frame.
type Updatable interface {
	Entity() ecs.Entity
	Update(now float64)
}

// UpdateList keeps updatables in insertion order.
type UpdateList struct {
	items []Updatable
}

func (l *UpdateList) Add(u Updatable) {
	if l == nil || u == nil {
		return
	}
	l.items = append(l.items, u)
}

func (l *UpdateList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns a copy of the list.
func (l *UpdateList) Items() []Updatable {
	if l == nil {
		return nil
	}
	return append([]Updatable(nil), l.items...)
}

func (l *UpdateList) removeAt(i int) {
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// UpdateListSystem ticks the update list back to front, so entries can be
// removed in place, and collects any collectible the player is close to.
type UpdateListSystem struct {
	List         *UpdateList
	PickupRadius float64
}

func NewUpdateListSystem(list *UpdateList, pickupRadius float64) *UpdateListSystem {
	if list == nil {
		list = &UpdateList{}
	}
	if pickupRadius <= 0 {
		pickupRadius = DefaultPickupRadius
	}
	return &UpdateListSystem{List: list, PickupRadius: pickupRadius}
}

func (s *UpdateListSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.List == nil {
		return
	}

	now := frameTime(w)

	var player *component.Transform
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind()); ok {
		player, _ = ecs.Get(w, e, component.TransformComponent.Kind())
	}

	for i := len(s.List.items) - 1; i >= 0; i-- {
		obj := s.List.items[i]
		obj.Update(now)

		if player == nil {
			continue
		}
		e := obj.Entity()
		collectible, ok := ecs.Get(w, e, component.CollectibleComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if t.Position.Sub(player.Position).Len() >= s.PickupRadius {
			continue
		}

		name := collectible.Name
		ecs.DestroyEntity(w, e)
		s.List.removeAt(i)
		w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: ecs.PickupEvent{Entity: e, Name: name}})
		log.Printf("pickup: %s collected", name)
	}
}

// Inert is an Updatable with nothing to do each frame, for collectibles that
// have no behaviour script.
type Inert ecs.Entity

func (i Inert) Entity() ecs.Entity { return ecs.Entity(i) }

func (Inert) Update(float64) {}
