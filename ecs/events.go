package ecs

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs/component"
)

// EventType identifies simulation event payloads.
type EventType string

const (
	EventEntityRemoved EventType = "entity_removed"
	EventSpawn         EventType = "spawn"
	EventDamage        EventType = "damage"
	EventKill          EventType = "kill"
	EventPickup        EventType = "pickup"
)

// Event is one simulation occurrence pushed by the systems during a tick
// and drained once by the session afterwards.
type Event struct {
	Type EventType
	Data any
}

// SpawnEvent is emitted when the spawner or resolver creates an actor.
type SpawnEvent struct {
	Entity Entity
	Kind   component.UnitKind
	Pos    cp.Vector
}

// DamageEvent records an attempted damage application. Absorbed damage
// (dash i-frames) is still recorded but did not mutate health.
type DamageEvent struct {
	Target   Entity
	Source   component.UnitKind
	Amount   int
	Absorbed bool
	Pos      cp.Vector
}

// KillEvent is emitted when an entity's health crosses to zero.
type KillEvent struct {
	KillerKind component.UnitKind
	VictimKind component.UnitKind
	Wave       int
	Pos        cp.Vector
}

// PickupEvent is emitted when the player consumes a drop.
type PickupEvent struct {
	Kind   component.PickupKind
	Amount int
}

// EventQueue is a FIFO drained once per tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	return len(q.items)
}
