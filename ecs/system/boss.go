package system

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/common"
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

// BossSystem drives the timed phase cycle of every boss. Phase transitions
// are unconditional on timer expiry and loop forever; the giant boss
// additionally swaps to its escalated table the moment health falls to the
// configured fraction of max, and never swaps back.
type BossSystem struct {
	engine *ScriptEngine
}

func NewBossSystem(engine *ScriptEngine) *BossSystem {
	return &BossSystem{engine: engine}
}

func (s *BossSystem) Update(w *ecs.World) {
	playerEnt, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())
	var playerPos cp.Vector
	if hasPlayer {
		if tr, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind()); ok {
			playerPos = tr.Pos
		} else {
			hasPlayer = false
		}
	}

	ecs.ForEach4(w,
		component.BossComponent.Kind(),
		component.BossRuntimeComponent.Kind(),
		component.TransformComponent.Kind(),
		component.HealthComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, tr *component.Transform, hp *component.Health) {
			if ecs.Has(w, e, component.DeadComponent.Kind()) {
				return
			}

			if !rt.Escalated && len(boss.EscalatedPhases) > 0 &&
				float64(hp.Current) <= boss.EscalateFraction*float64(hp.Max) {
				rt.Escalated = true
				rt.PhaseIndex = 0
				rt.FrameInPhase = 0
				rt.PatternCooldown = 0
			}

			phases := boss.Phases
			if rt.Escalated {
				phases = boss.EscalatedPhases
			}
			if rt.PhaseIndex >= len(phases) {
				rt.PhaseIndex = 0
			}
			phase := phases[rt.PhaseIndex]

			rt.FrameInPhase++
			if rt.FrameInPhase >= phase.DurationFrames {
				rt.PhaseIndex = (rt.PhaseIndex + 1) % len(phases)
				rt.FrameInPhase = 0
				rt.PatternCooldown = 0
				phase = phases[rt.PhaseIndex]
			}

			vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
			if !ok {
				return
			}
			vel.V = cp.Vector{}

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

			switch phase.Move {
			case "approach":
				vel.V = stepToward(dir, dist, phase.Speed)
			case "strafe":
				vel.V = dir.Perp().Mult(phase.Speed)
			}

			if phase.Pattern == "" {
				return
			}
			if rt.PatternCooldown > 0 {
				rt.PatternCooldown--
				return
			}
			queue, ok := ecs.Get(w, e, component.ShotQueueComponent.Kind())
			if !ok {
				return
			}

			ctx := &patternContext{Pos: tr.Pos, PlayerPos: playerPos, Queue: queue}
			if err := s.engine.Fire(phase.Pattern, ctx); err != nil {
				log.Printf("system: boss pattern %q: %v", phase.Pattern, err)
			} else if ctx.MoveTo != nil {
				tr.Pos = common.ClampToArena(*ctx.MoveTo, tr.Radius)
			}
			rt.PatternCooldown = phase.CooldownFrames
		})
}
