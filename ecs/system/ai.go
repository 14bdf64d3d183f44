package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

// AISystem writes a fresh movement/attack intent for every non-boss enemy
// each tick. With no player alive, enemies hold position.
type AISystem struct{}

func NewAISystem() *AISystem {
	return &AISystem{}
}

func (s *AISystem) Update(w *ecs.World) {
	playerEnt, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())
	var playerPos cp.Vector
	var playerRadius float64
	if hasPlayer {
		if tr, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind()); ok {
			playerPos = tr.Pos
			playerRadius = tr.Radius
		} else {
			hasPlayer = false
		}
	}

	ecs.ForEach4(w,
		component.AIComponent.Kind(),
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		component.IntentComponent.Kind(),
		func(e ecs.Entity, ai *component.AI, unit *component.Unit, tr *component.Transform, intent *component.Intent) {
			*intent = component.Intent{}
			if !hasPlayer || ecs.Has(w, e, component.StunnedComponent.Kind()) {
				return
			}

			to := playerPos.Sub(tr.Pos)
			dist := to.Length()
			dir := cp.Vector{X: 1}
			if dist > 0 {
				dir = to.Mult(1 / dist)
			}
			tr.Facing = dir

			switch unit.Kind {
			case component.KindChaser:
				intent.Velocity = stepToward(dir, dist, ai.Speed)

			case component.KindShooter:
				if ai.FireCooldown > 0 {
					ai.FireCooldown--
				}
				switch {
				case dist > ai.PreferredRange+ai.RangeBand:
					intent.Velocity = dir.Mult(ai.Speed)
				case dist < ai.PreferredRange-ai.RangeBand:
					intent.Velocity = dir.Neg().Mult(ai.Speed)
				default:
					intent.Velocity = dir.Perp().Mult(ai.Speed)
					if ai.FireCooldown == 0 {
						if queue, ok := ecs.Get(w, e, component.ShotQueueComponent.Kind()); ok {
							queue.Shots = append(queue.Shots, component.Shot{
								DirX:   dir.X,
								DirY:   dir.Y,
								Speed:  ai.ProjectileSpeed,
								Damage: ai.ProjectileDamage,
								Radius: ai.ProjectileRadius,
							})
							ai.FireCooldown = ai.FireFrames
						}
					}
				}

			case component.KindBomber:
				if dist <= ai.DetonateRadius+playerRadius {
					intent.Attack = component.AttackDetonate
					return
				}
				intent.Velocity = stepToward(dir, dist, ai.Speed)
			}
		})
}

// stepToward caps the step at the remaining distance so a homing enemy
// lands on its target instead of oscillating across it.
func stepToward(dir cp.Vector, dist, speed float64) cp.Vector {
	if dist < speed {
		return dir.Mult(dist)
	}
	return dir.Mult(speed)
}
