package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

// PlayerControlSystem turns the per-tick input bundle into player movement,
// dash state, and attack intent. It owns every player weapon timer.
type PlayerControlSystem struct{}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	intent, ok := ecs.Get(w, e, component.IntentComponent.Kind())
	if !ok {
		return
	}

	if player.FireCooldown > 0 {
		player.FireCooldown--
	}
	if player.MeleeCooldown > 0 {
		player.MeleeCooldown--
	}
	if player.DashCooldown > 0 {
		player.DashCooldown--
	}
	if player.DashFrames > 0 {
		player.DashFrames--
	}

	*intent = component.Intent{}

	if aim := input.Aim; aim.LengthSq() > 0 {
		tr.Facing = aim.Normalize()
	} else if input.Move.LengthSq() > 0 {
		tr.Facing = input.Move.Normalize()
	}

	if ecs.Has(w, e, component.StunnedComponent.Kind()) {
		vel.V = cp.Vector{}
		return
	}

	if player.DashFrames > 0 {
		vel.V = player.DashDir.Mult(player.Stats.DashSpeed)
		return
	}

	vel.V = input.Move.Mult(player.Stats.MoveSpeed)

	if input.DashPressed && player.DashCooldown == 0 {
		dir := tr.Facing
		if input.Move.LengthSq() > 0 {
			dir = input.Move.Normalize()
		}
		player.DashDir = dir
		player.DashFrames = player.Stats.DashDurationFrames
		player.DashCooldown = player.Stats.DashCooldownFrames
		ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: player.Stats.DashIFrames})
		vel.V = dir.Mult(player.Stats.DashSpeed)
		return
	}

	if input.Fire && player.FireCooldown == 0 {
		if queue, ok := ecs.Get(w, e, component.ShotQueueComponent.Kind()); ok {
			queue.Shots = append(queue.Shots, component.Shot{
				DirX:   tr.Facing.X,
				DirY:   tr.Facing.Y,
				Speed:  player.Stats.ProjectileSpeed,
				Damage: player.Stats.ProjectileDamage,
				Radius: player.Stats.ProjectileRadius,
			})
			player.FireCooldown = player.Stats.FireFrames
		}
	}

	if input.MeleePressed && player.MeleeCooldown == 0 {
		intent.Attack = component.AttackMelee
		player.MeleeCooldown = player.Stats.MeleeFrames
	}
}
