package system

import (
	"github.com/milk9111/swarm/common"
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

// MovementSystem applies velocities, keeps actors inside the arena, and
// retires projectiles that leave it.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	// AI enemies move by intent. The player and bosses had their velocity
	// written directly by their own control passes.
	ecs.ForEach2(w,
		component.AIComponent.Kind(),
		component.IntentComponent.Kind(),
		func(e ecs.Entity, _ *component.AI, intent *component.Intent) {
			if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
				vel.V = intent.Velocity
			}
		})

	ecs.ForEach3(w,
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, unit *component.Unit, tr *component.Transform, vel *component.Velocity) {
			tr.Pos = tr.Pos.Add(vel.V)
			if unit.Kind == component.KindProjectile {
				if !common.InArena(tr.Pos, tr.Radius) {
					ecs.DestroyEntity(w, e)
				}
				return
			}
			tr.Pos = common.ClampToArena(tr.Pos, tr.Radius)
		})
}
