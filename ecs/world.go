package ecs

import "github.com/milk9111/swarm/ecs/component"

// World owns every live entity and its components. It is the only mutable
// shared structure in the simulation; all systems run on the one tick
// goroutine, so no locking is needed.
//
// DestroyEntity only queues the entity; Flush retires the queue at the end
// of the tick. Iteration in progress therefore never observes a removal
// mid-walk, and stale handles degrade to no-ops.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	pending  []Entity
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity queues e for removal at the next Flush. Returns false for
// stale or duplicate requests.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, p := range w.pending {
		if p == e {
			return false
		}
	}
	w.pending = append(w.pending, e)
	return true
}

// IsAlive reports whether the handle is still valid. Entities queued for
// destruction remain alive until Flush.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Pending reports whether e is queued for removal this tick.
func Pending(w *World, e Entity) bool {
	for _, p := range w.pending {
		if p == e {
			return true
		}
	}
	return false
}

// Flush retires every queued entity, dropping its components and emitting
// an EventEntityRemoved per entity. Call exactly once per tick.
func (w *World) Flush() {
	if len(w.pending) == 0 {
		return
	}
	queued := w.pending
	w.pending = w.pending[:0]
	for _, e := range queued {
		if !w.entities.isAlive(e) {
			continue
		}
		id := int(e.id())
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.entities.release(e)
		w.events.Push(Event{Type: EventEntityRemoved, Data: e})
	}
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.count
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
