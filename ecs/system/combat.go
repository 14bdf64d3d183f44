package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/common"
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
)

const (
	knockbackDistance = 24.0
	projectileTTL     = 10 * common.TickRate
)

// CombatSystem is the resolver: the only place projectiles and pickups are
// created and the only place health is mutated. Sub-passes run in a fixed
// order every tick, so simultaneous hits resolve the same way every run:
//
//  1. drain shot queues into projectile entities
//  2. projectile-vs-entity collisions
//  3. player melee (multi-target, facing cone)
//  4. contact damage and bomber detonations
//
// An entity marked Dead by an earlier pass deals no damage in a later one.
type CombatSystem struct {
	enemies map[component.UnitKind]prefabs.EnemySpec
	kills   map[component.UnitKind]int

	// DuplicateKills counts discarded damage against already-dead entities.
	DuplicateKills int
}

func NewCombatSystem(cfg *prefabs.Config) *CombatSystem {
	enemies := make(map[component.UnitKind]prefabs.EnemySpec, len(cfg.Enemies))
	for name, spec := range cfg.Enemies {
		if kind, ok := component.UnitKindByName(name); ok {
			enemies[kind] = spec
		}
	}
	return &CombatSystem{
		enemies: enemies,
		kills:   map[component.UnitKind]int{},
	}
}

func (s *CombatSystem) Update(w *ecs.World) {
	s.spawnShots(w)
	s.resolveProjectiles(w)
	s.resolveMelee(w)
	s.resolveContact(w)
	s.resolveDetonations(w)
}

func (s *CombatSystem) spawnShots(w *ecs.World) {
	ecs.ForEach3(w,
		component.ShotQueueComponent.Kind(),
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, queue *component.ShotQueue, unit *component.Unit, tr *component.Transform) {
			shots := queue.Shots
			queue.Shots = nil
			if len(shots) == 0 || ecs.Has(w, e, component.DeadComponent.Kind()) {
				return
			}
			for _, shot := range shots {
				s.spawnProjectile(w, unit.Kind, tr, shot)
			}
		})
}

func (s *CombatSystem) spawnProjectile(w *ecs.World, owner component.UnitKind, tr *component.Transform, shot component.Shot) {
	dir := cp.Vector{X: shot.DirX, Y: shot.DirY}
	if dir.LengthSq() == 0 {
		return
	}
	dir = dir.Normalize()
	start := tr.Pos.Add(dir.Mult(tr.Radius + shot.Radius + 1))

	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.UnitComponent.Kind(), &component.Unit{Kind: component.KindProjectile, Wave: -1})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: start, Facing: dir, Radius: shot.Radius})
	ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{V: dir.Mult(shot.Speed)})
	ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Damage: shot.Damage, Owner: owner})
	ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: projectileTTL})
	w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Data: ecs.SpawnEvent{Entity: e, Kind: component.KindProjectile, Pos: start}})
}

func (s *CombatSystem) resolveProjectiles(w *ecs.World) {
	ecs.ForEach2(w,
		component.ProjectileComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, proj *component.Projectile, tr *component.Transform) {
			if ecs.Pending(w, e) {
				return
			}
			hit := false
			ecs.ForEach3(w,
				component.UnitComponent.Kind(),
				component.TransformComponent.Kind(),
				component.HealthComponent.Kind(),
				func(target ecs.Entity, unit *component.Unit, targetTr *component.Transform, _ *component.Health) {
					if hit {
						return
					}
					if proj.Owner == component.KindPlayer {
						if !unit.Kind.Enemy() {
							return
						}
					} else if unit.Kind != component.KindPlayer {
						return
					}
					if ecs.Has(w, target, component.DeadComponent.Kind()) {
						return
					}
					if !overlaps(tr, targetTr) {
						return
					}
					hit = true
					s.damage(w, target, proj.Damage, proj.Owner)
					ecs.DestroyEntity(w, e)
				})
		})
}

func (s *CombatSystem) resolveMelee(w *ecs.World) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || ecs.Has(w, e, component.DeadComponent.Kind()) {
		return
	}
	intent, ok := ecs.Get(w, e, component.IntentComponent.Kind())
	if !ok || intent.Attack != component.AttackMelee {
		return
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	minDot := math.Cos(player.Stats.MeleeConeDeg / 2 * math.Pi / 180)
	ecs.ForEach2(w,
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		func(target ecs.Entity, unit *component.Unit, targetTr *component.Transform) {
			if !unit.Kind.Enemy() || ecs.Has(w, target, component.DeadComponent.Kind()) {
				return
			}
			to := targetTr.Pos.Sub(tr.Pos)
			dist := to.Length()
			if dist > player.Stats.MeleeRadius+targetTr.Radius {
				return
			}
			if dist > 0 && to.Mult(1/dist).Dot(tr.Facing) < minDot {
				return
			}
			s.damage(w, target, player.Stats.MeleeDamage, component.KindPlayer)
		})
}

func (s *CombatSystem) resolveContact(w *ecs.World) {
	playerEnt, playerTr, ok := s.livePlayer(w)
	if !ok {
		return
	}

	ecs.ForEach3(w,
		component.TouchComponent.Kind(),
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, touch *component.Touch, unit *component.Unit, tr *component.Transform) {
			if touch.Damage <= 0 || ecs.Has(w, e, component.DeadComponent.Kind()) {
				return
			}
			if ecs.Has(w, e, component.StunnedComponent.Kind()) {
				return
			}
			if ecs.Has(w, playerEnt, component.DeadComponent.Kind()) {
				return
			}
			if !overlaps(tr, playerTr) {
				return
			}
			absorbed := s.damage(w, playerEnt, touch.Damage, unit.Kind)
			if absorbed {
				return
			}
			// Shove the player out of the attacker.
			away := playerTr.Pos.Sub(tr.Pos)
			if away.LengthSq() == 0 {
				away = cp.Vector{X: 1}
			}
			playerTr.Pos = common.ClampToArena(playerTr.Pos.Add(away.Normalize().Mult(knockbackDistance)), playerTr.Radius)
		})
}

func (s *CombatSystem) resolveDetonations(w *ecs.World) {
	playerEnt, playerTr, ok := s.livePlayer(w)
	if !ok {
		return
	}

	ecs.ForEach4(w,
		component.IntentComponent.Kind(),
		component.AIComponent.Kind(),
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, intent *component.Intent, ai *component.AI, unit *component.Unit, tr *component.Transform) {
			if intent.Attack != component.AttackDetonate {
				return
			}
			if ecs.Has(w, e, component.DeadComponent.Kind()) {
				return
			}

			caught := !ecs.Has(w, playerEnt, component.DeadComponent.Kind()) &&
				playerTr.Pos.Distance(tr.Pos) <= ai.DetonateRadius+playerTr.Radius
			if caught {
				absorbed := s.damage(w, playerEnt, ai.DetonateDamage, unit.Kind)
				if !absorbed && ai.StunFrames > 0 && ecs.IsAlive(w, playerEnt) {
					ecs.Add(w, playerEnt, component.StunnedComponent.Kind(), &component.Stunned{Frames: ai.StunFrames})
				}
			}

			// The detonation always consumes the bomber itself.
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				s.damage(w, e, hp.Current, unit.Kind)
			}
		})
}

// damage applies amount to the target and handles death. Returns true when
// the hit was absorbed by invulnerability; the event is still recorded.
func (s *CombatSystem) damage(w *ecs.World, target ecs.Entity, amount int, source component.UnitKind) bool {
	hp, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	var pos cp.Vector
	if tr, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
		pos = tr.Pos
	}

	if ecs.Has(w, target, component.DeadComponent.Kind()) {
		s.DuplicateKills++
		log.Printf("system: discarded damage against dead entity %v (total %d)", target, s.DuplicateKills)
		return false
	}

	if ecs.Has(w, target, component.InvulnerableComponent.Kind()) {
		w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.DamageEvent{
			Target: target, Source: source, Amount: amount, Absorbed: true, Pos: pos,
		}})
		return true
	}

	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.DamageEvent{
		Target: target, Source: source, Amount: amount, Pos: pos,
	}})

	if hp.Current > 0 {
		return false
	}

	ecs.Add(w, target, component.DeadComponent.Kind(), &component.Dead{})
	kind := component.KindProjectile
	wave := -1
	if unit, ok := ecs.Get(w, target, component.UnitComponent.Kind()); ok {
		kind = unit.Kind
		wave = unit.Wave
	}
	w.Events().Push(ecs.Event{Type: ecs.EventKill, Data: ecs.KillEvent{
		KillerKind: source, VictimKind: kind, Wave: wave, Pos: pos,
	}})
	ecs.DestroyEntity(w, target)
	s.maybeDrop(w, kind, pos)
	return false
}

// maybeDrop spawns the kind's configured pickup on every Nth kill.
func (s *CombatSystem) maybeDrop(w *ecs.World, kind component.UnitKind, pos cp.Vector) {
	spec, ok := s.enemies[kind]
	if !ok || spec.Drop.Every <= 0 {
		return
	}
	s.kills[kind]++
	if s.kills[kind]%spec.Drop.Every != 0 {
		return
	}

	pickupKind := component.PickupXP
	if spec.Drop.Kind == "health" {
		pickupKind = component.PickupHealth
	}

	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.UnitComponent.Kind(), &component.Unit{Kind: component.KindPickup, Wave: -1})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: common.ClampToArena(pos, 8), Facing: cp.Vector{X: 1}, Radius: 8})
	ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: pickupKind, Amount: spec.Drop.Amount})
	ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 15 * common.TickRate})
	w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Data: ecs.SpawnEvent{Entity: e, Kind: component.KindPickup, Pos: pos}})
}

func (s *CombatSystem) livePlayer(w *ecs.World) (ecs.Entity, *component.Transform, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, tr, true
}

func overlaps(a, b *component.Transform) bool {
	return a.Pos.Distance(b.Pos) <= a.Radius+b.Radius
}
