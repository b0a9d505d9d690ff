package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/islandroll/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledSlotInvalidatesStaleHandle(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)
	fresh := CreateEntity(w)

	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, old=%v fresh=%v", old, fresh)
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle %v should not be alive", old)
	}
	if !IsAlive(w, fresh) {
		t.Fatalf("fresh handle %v should be alive", fresh)
	}
	if (Entity(0)).Valid() {
		t.Fatalf("zero entity must be invalid")
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "mutate_in_place",
			setup: func() error {
				v, ok := Get(w, e1, ints.Kind())
				if !ok {
					return errors.New("missing int")
				}
				*v = 11
				return nil
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ints.Kind())
				if *v != 11 {
					t.Fatalf("expected in-place update to 11, got %d", *v)
				}
			},
		},
		{
			name: "two_entities_same_kind",
			setup: func() error {
				if err := Add(w, e1, strs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, strs.Kind()) || !Has(w, e2, strs.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				if got := w.Query(ints.Kind(), strs.Kind()); len(got) != 1 || got[0] != e1 {
					t.Fatalf("expected query to return only e1, got %v", got)
				}
			},
		},
		{
			name:  "remove",
			setup: func() error { Remove(w, e2, strs.Kind()); return nil },
			check: func(t *testing.T) {
				if Has(w, e2, strs.Kind()) {
					t.Fatalf("expected e2 string removed")
				}
				if !Has(w, e1, strs.Kind()) {
					t.Fatalf("removing e2 must not touch e1")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)

	if err := Add(w, e, kind, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("nil value: got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("zero kind: got %v", err)
	}
	DestroyEntity(w, e)
	if err := Add(w, e, kind, intPtr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("dead entity: got %v", err)
	}
}

func TestDestroyClearsComponents(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)
	reused := CreateEntity(w)
	if Has(w, reused, kind) {
		t.Fatalf("recycled slot inherited a component")
	}
	if _, ok := First(w, kind); ok {
		t.Fatalf("First should find nothing after destroy")
	}
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := 0; i < 5; i++ {
		if err := Add(w, CreateEntity(w), kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	seen := 0
	ForEach(w, kind, func(e Entity, v *int) {
		seen++
		if *v%2 == 0 {
			DestroyEntity(w, e)
		}
	})
	if seen != 5 {
		t.Fatalf("visited %d entities, want 5", seen)
	}
	if got := len(w.Query(kind)); got != 2 {
		t.Fatalf("remaining = %d, want 2", got)
	}
}

func TestForEach2Intersection(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("two"))
	_ = Add(w, e3, kb, stringPtr("three"))

	var res []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *int, _ *string) { res = append(res, e) })
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventPickup, Data: PickupEvent{Name: "flower"}})
	if w.Events().Len() != 1 {
		t.Fatalf("expected one queued event")
	}
	got := w.Events().Drain()
	if len(got) != 1 || got[0].Type != EventPickup {
		t.Fatalf("unexpected drain result %v", got)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

type countingSystem struct {
	order *[]string
	name  string
}

func (s countingSystem) Update(*World) { *s.order = append(*s.order, s.name) }

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []string
	s := NewScheduler(countingSystem{&order, "physics"}, nil, countingSystem{&order, "wind"})
	s.Add(countingSystem{&order, "pickups"})
	s.Update(NewWorld())

	want := []string{"physics", "wind", "pickups"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
