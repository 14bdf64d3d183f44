package system

import (
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

// StatusSystem counts down the frame-based status flags and removes them
// when they expire.
type StatusSystem struct{}

func NewStatusSystem() *StatusSystem {
	return &StatusSystem{}
}

func (s *StatusSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Frames--
		if inv.Frames <= 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	ecs.ForEach(w, component.StunnedComponent.Kind(), func(e ecs.Entity, stun *component.Stunned) {
		stun.Frames--
		if stun.Frames <= 0 {
			ecs.Remove(w, e, component.StunnedComponent.Kind())
		}
	})
}
