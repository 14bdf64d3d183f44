package ecs

import (
	"testing"

	"github.com/milk9111/swarm/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if w.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Len())
			}
			if c.destroyIndex < 0 {
				return
			}

			target := ents[c.destroyIndex]
			if !DestroyEntity(w, target) {
				t.Fatalf("DestroyEntity should return true for a live entity")
			}
			if DestroyEntity(w, target) {
				t.Fatalf("queueing the same entity twice should return false")
			}
			if !IsAlive(w, target) {
				t.Fatalf("queued entity should stay alive until Flush")
			}
			if !Pending(w, target) {
				t.Fatalf("queued entity should report pending")
			}

			w.Flush()
			if IsAlive(w, target) {
				t.Fatalf("entity should be gone after Flush")
			}
			if w.Len() != c.create-1 {
				t.Fatalf("expected %d entities after Flush, got %d", c.create-1, w.Len())
			}
		})
	}
}

func TestStaleHandleIsNoOp(t *testing.T) {
	w := NewWorld()
	stale := CreateEntity(w)
	DestroyEntity(w, stale)
	w.Flush()

	// Reuses the slot with a bumped generation.
	fresh := CreateEntity(w)
	if stale == fresh {
		t.Fatalf("recycled slot must produce a distinct handle")
	}
	if IsAlive(w, stale) {
		t.Fatalf("stale handle should not be alive")
	}
	if err := Add(w, stale, component.HealthComponent.Kind(), &component.Health{Current: 1, Max: 1}); err == nil {
		t.Fatalf("Add through a stale handle should fail")
	}
	if _, ok := Get(w, stale, component.HealthComponent.Kind()); ok {
		t.Fatalf("Get through a stale handle should miss")
	}
	if DestroyEntity(w, stale) {
		t.Fatalf("destroying a stale handle should return false")
	}
	if !IsAlive(w, fresh) {
		t.Fatalf("fresh handle should be alive")
	}
}

func TestComponentAccess(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.HealthComponent.Kind(), nil); err == nil {
		t.Fatalf("nil component should be rejected")
	}
	if err := Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: 3, Max: 5}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hp, ok := Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("expected health component")
	}
	hp.Current = 1
	again, _ := Get(w, e, component.HealthComponent.Kind())
	if again.Current != 1 {
		t.Fatalf("mutation through the pointer should stick, got %d", again.Current)
	}

	if !Has(w, e, component.HealthComponent.Kind()) {
		t.Fatalf("Has should report the component")
	}
	if Count(w, component.HealthComponent.Kind()) != 1 {
		t.Fatalf("expected count 1")
	}
	if first, ok := First(w, component.HealthComponent.Kind()); !ok || first != e {
		t.Fatalf("First should return the only carrier")
	}

	if !Remove(w, e, component.HealthComponent.Kind()) {
		t.Fatalf("Remove should succeed")
	}
	if Has(w, e, component.HealthComponent.Kind()) {
		t.Fatalf("component should be gone after Remove")
	}
}

func TestFlushDropsComponentsAndEmitsRemoval(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: 2, Max: 2})

	DestroyEntity(w, e)
	w.Flush()

	if Count(w, component.HealthComponent.Kind()) != 0 {
		t.Fatalf("components should be swept with the entity")
	}
	events := w.Events().Drain()
	found := false
	for _, evt := range events {
		if evt.Type == EventEntityRemoved && evt.Data == any(e) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a removal event for %v, got %v", e, events)
	}
}

func TestForEachSnapshotSemantics(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: i, Max: 10})
	}

	visited := 0
	ForEach(w, component.HealthComponent.Kind(), func(e Entity, hp *component.Health) {
		visited++
		// Queueing removals and spawning mid-walk must be safe.
		DestroyEntity(w, e)
		spawn := CreateEntity(w)
		Add(w, spawn, component.TTLComponent.Kind(), &component.TTL{Frames: 1})
	})
	if visited != 4 {
		t.Fatalf("expected to visit 4 entities, visited %d", visited)
	}

	w.Flush()
	if Count(w, component.HealthComponent.Kind()) != 0 {
		t.Fatalf("all destroyed entities should be swept")
	}
	if Count(w, component.TTLComponent.Kind()) != 4 {
		t.Fatalf("spawned entities should survive the sweep")
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventSpawn})
	q.Push(Event{Type: EventKill})
	if q.Len() != 2 {
		t.Fatalf("expected 2 queued events, got %d", q.Len())
	}
	if got := len(q.Drain()); got != 2 {
		t.Fatalf("expected to drain 2 events, got %d", got)
	}
	if q.Drain() != nil {
		t.Fatalf("second drain should be empty")
	}
}
