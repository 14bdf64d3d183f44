package ecs

import "github.com/milk9111/swarm/ecs/component"

// ForEach visits every live entity carrying k. The walk snapshots the dense
// id list at call time, so spawning or queueing removals from inside fn is
// safe; entities destroyed by an earlier Flush are skipped.
func ForEach[A any](w *World, k component.ComponentKind[A], fn func(Entity, *A)) {
	s := w.store(k.ID(), false)
	if s == nil {
		return
	}
	for _, id := range s.IDs() {
		e, ok := w.entities.handleFor(id)
		if !ok {
			continue
		}
		a, ok := s.Get(id).(*A)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// ForEach2 visits entities carrying both kinds, driven by the first store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// ForEach3 visits entities carrying all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// ForEach4 visits entities carrying all four kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := Get(w, e, kd)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}
