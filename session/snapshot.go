package session

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
)

// EntityView is the render-facing copy of one entity. The renderer never
// touches the world; it draws whatever the last snapshot said.
type EntityView struct {
	Kind         component.UnitKind
	Pos          cp.Vector
	Facing       cp.Vector
	Radius       float64
	Health       int
	MaxHealth    int
	PickupKind   component.PickupKind
	Invulnerable bool
	Stunned      bool
}

// HUD carries everything the overlay and menus display.
type HUD struct {
	State     State
	Level     int
	LevelName string
	Wave      int

	Score          int
	ScoreThreshold int
	XP             int
	NextXP         int

	Health    int
	MaxHealth int
	DashReady bool

	Perks []string
	Offer []prefabs.PerkSpec

	BossHealth    int
	BossMaxHealth int
}

// Snapshot copies the live world into plain view structs.
func (s *Session) Snapshot() ([]EntityView, HUD) {
	hud := HUD{State: s.state, Level: s.Level()}
	if s.progress != nil {
		hud.Score = s.progress.Score()
		hud.XP = s.progress.XP()
		hud.NextXP = s.progress.NextThreshold()
		hud.Perks = s.progress.Perks()
		hud.Offer = s.progress.PendingOffer()
	}
	if s.world == nil {
		return nil, hud
	}

	hud.LevelName = s.level().Name
	hud.ScoreThreshold = s.level().ScoreThreshold
	hud.Wave = s.spawner.WaveIndex() + 1

	var views []EntityView
	ecs.ForEach2(s.world,
		component.UnitComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, unit *component.Unit, tr *component.Transform) {
			view := EntityView{
				Kind:         unit.Kind,
				Pos:          tr.Pos,
				Facing:       tr.Facing,
				Radius:       tr.Radius,
				Invulnerable: ecs.Has(s.world, e, component.InvulnerableComponent.Kind()),
				Stunned:      ecs.Has(s.world, e, component.StunnedComponent.Kind()),
			}
			if hp, ok := ecs.Get(s.world, e, component.HealthComponent.Kind()); ok {
				view.Health = hp.Current
				view.MaxHealth = hp.Max
			}
			if pickup, ok := ecs.Get(s.world, e, component.PickupComponent.Kind()); ok {
				view.PickupKind = pickup.Kind
			}
			views = append(views, view)

			switch unit.Kind {
			case component.KindPlayer:
				hud.Health = view.Health
				hud.MaxHealth = view.MaxHealth
				if player, ok := ecs.Get(s.world, e, component.PlayerComponent.Kind()); ok {
					hud.DashReady = player.DashCooldown == 0 && player.DashFrames == 0
				}
			case component.KindBoss, component.KindGiantBoss:
				hud.BossHealth = view.Health
				hud.BossMaxHealth = view.MaxHealth
			}
		})

	return views, hud
}
