package system

import (
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

// PickupSystem consumes drops the player overlaps. Healing is applied here;
// XP is routed to progression through the pickup event.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem {
	return &PickupSystem{}
}

func (s *PickupSystem) Update(w *ecs.World) {
	playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || ecs.Has(w, playerEnt, component.DeadComponent.Kind()) {
		return
	}
	playerTr, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w,
		component.PickupComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, pickup *component.Pickup, tr *component.Transform) {
			if ecs.Pending(w, e) || !overlaps(tr, playerTr) {
				return
			}

			if pickup.Kind == component.PickupHealth {
				if hp, ok := ecs.Get(w, playerEnt, component.HealthComponent.Kind()); ok {
					hp.Current += pickup.Amount
					if hp.Current > hp.Max {
						hp.Current = hp.Max
					}
				}
			}

			w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: ecs.PickupEvent{
				Kind:   pickup.Kind,
				Amount: pickup.Amount,
			}})
			ecs.DestroyEntity(w, e)
		})
}
