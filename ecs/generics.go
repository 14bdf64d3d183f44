package ecs

import "github.com/milk9111/swarm/ecs/component"

// Add attaches v to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, k component.ComponentKind[T], v *T) error {
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if v == nil {
		return component.ErrNilComponent
	}
	w.store(k.ID(), true).Set(int(e.id()), v)
	return nil
}

// Get returns the component pointer for e, or (nil, false). Mutations
// through the pointer are visible immediately; no write-back is needed.
func Get[T any](w *World, e Entity, k component.ComponentKind[T]) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(k.ID(), false)
	if s == nil {
		return nil, false
	}
	v, ok := s.Get(int(e.id())).(*T)
	if !ok {
		return nil, false
	}
	return v, true
}

func Has[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	_, ok := Get(w, e, k)
	return ok
}

func Remove[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	s := w.store(k.ID(), false)
	if s == nil {
		return false
	}
	return s.Remove(int(e.id()))
}

// First returns some live entity carrying the kind, or (0, false).
func First[T any](w *World, k component.ComponentKind[T]) (Entity, bool) {
	s := w.store(k.ID(), false)
	if s == nil {
		return 0, false
	}
	for _, id := range s.denseIDs {
		if e, ok := w.entities.handleFor(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Count returns the number of live entities carrying the kind.
func Count[T any](w *World, k component.ComponentKind[T]) int {
	s := w.store(k.ID(), false)
	if s == nil {
		return 0
	}
	n := 0
	for _, id := range s.denseIDs {
		if _, ok := w.entities.handleFor(id); ok {
			n++
		}
	}
	return n
}
