package system

import (
	"errors"
	"math/rand"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
)

var ErrUnknownPerk = errors.New("system: unknown perk")

const offerSize = 3

type award struct {
	score int
	xp    int
}

// ProgressionSystem tracks score and XP and owns perk unlocks. It is not a
// scheduled system; the session feeds it the drained event queue once per
// tick. Score only moves on player kills; XP moves on player kills and XP
// pickups. While an offer is pending the session suspends simulation until
// ChoosePerk resolves it.
type ProgressionSystem struct {
	table  prefabs.PerkTable
	awards map[component.UnitKind]award
	rng    *rand.Rand

	score         int
	xp            int
	nextThreshold int
	pendingLevels int

	unlocked []string
	chosen   map[string]bool
	pending  []prefabs.PerkSpec
}

func NewProgressionSystem(cfg *prefabs.Config, rng *rand.Rand) *ProgressionSystem {
	awards := make(map[component.UnitKind]award, len(cfg.Enemies))
	for name, spec := range cfg.Enemies {
		if kind, ok := component.UnitKindByName(name); ok {
			awards[kind] = award{score: spec.Score, xp: spec.XP}
		}
	}
	return &ProgressionSystem{
		table:  cfg.Perks,
		awards: awards,
		rng:    rng,
		chosen: map[string]bool{},
	}
}

func (p *ProgressionSystem) Score() int { return p.score }
func (p *ProgressionSystem) XP() int    { return p.xp }

// Perks returns the unlocked perk ids in unlock order.
func (p *ProgressionSystem) Perks() []string {
	return append([]string(nil), p.unlocked...)
}

// NextThreshold returns the XP needed for the next level-up, or -1 when the
// table is exhausted.
func (p *ProgressionSystem) NextThreshold() int {
	if p.nextThreshold >= len(p.table.XPThresholds) {
		return -1
	}
	return p.table.XPThresholds[p.nextThreshold]
}

// PendingOffer returns the perks currently offered, empty when none.
func (p *ProgressionSystem) PendingOffer() []prefabs.PerkSpec {
	return append([]prefabs.PerkSpec(nil), p.pending...)
}

// Blocked reports whether simulation must wait for a perk choice.
func (p *ProgressionSystem) Blocked() bool {
	return len(p.pending) > 0
}

// ResetScore starts a fresh score ledger for a new or restarted level. XP
// and perks are untouched.
func (p *ProgressionSystem) ResetScore() {
	p.score = 0
}

// Apply consumes one tick's drained events.
func (p *ProgressionSystem) Apply(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventKill:
			kill, ok := evt.Data.(ecs.KillEvent)
			if !ok || kill.KillerKind != component.KindPlayer {
				continue
			}
			if a, ok := p.awards[kill.VictimKind]; ok {
				p.score += a.score
				p.xp += a.xp
			}
		case ecs.EventPickup:
			pickup, ok := evt.Data.(ecs.PickupEvent)
			if !ok || pickup.Kind != component.PickupXP {
				continue
			}
			p.xp += pickup.Amount
		}
	}

	for p.nextThreshold < len(p.table.XPThresholds) && p.xp >= p.table.XPThresholds[p.nextThreshold] {
		p.nextThreshold++
		p.pendingLevels++
	}
	if len(p.pending) == 0 && p.pendingLevels > 0 {
		p.makeOffer()
	}
}

// makeOffer samples up to offerSize not-yet-unlocked perks. An exhausted
// catalog silently swallows the level-up.
func (p *ProgressionSystem) makeOffer() {
	p.pendingLevels--

	var available []prefabs.PerkSpec
	for _, perk := range p.table.Perks {
		if !p.chosen[perk.ID] {
			available = append(available, perk)
		}
	}
	if len(available) == 0 {
		p.pendingLevels = 0
		return
	}

	p.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	if len(available) > offerSize {
		available = available[:offerSize]
	}
	p.pending = available
}

// ChoosePerk resolves the pending offer. Choosing an id outside the offer
// is an error and leaves the offer pending; an already-unlocked perk is
// never applied twice.
func (p *ProgressionSystem) ChoosePerk(w *ecs.World, id string) error {
	offered := false
	var perk prefabs.PerkSpec
	for _, candidate := range p.pending {
		if candidate.ID == id {
			offered = true
			perk = candidate
			break
		}
	}
	if !offered {
		return ErrUnknownPerk
	}

	if !p.chosen[id] {
		p.chosen[id] = true
		p.unlocked = append(p.unlocked, id)
		applyEffect(w, perk.Effect)
	}

	p.pending = nil
	if p.pendingLevels > 0 {
		p.makeOffer()
	}
	return nil
}

// ApplyUnlocked re-applies every unlocked perk to a freshly spawned player.
// Used when a new level builds a new world.
func (p *ProgressionSystem) ApplyUnlocked(w *ecs.World) {
	for _, id := range p.unlocked {
		for _, perk := range p.table.Perks {
			if perk.ID == id {
				applyEffect(w, perk.Effect)
				break
			}
		}
	}
}

// applyEffect is the pure stat transform of one perk. Transforms are
// additive, so applying a set of them is order-independent.
func applyEffect(w *ecs.World, effect prefabs.EffectSpec) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}

	stats := &player.Stats
	stats.ProjectileDamage += effect.ProjectileDamage
	stats.MeleeDamage += effect.MeleeDamage
	stats.MeleeRadius += effect.MeleeRadius
	stats.MoveSpeed += effect.MoveSpeed
	stats.FireFrames += effect.FireFrames
	if stats.FireFrames < 1 {
		stats.FireFrames = 1
	}
	stats.DashCooldownFrames += effect.DashCooldownFrames
	if stats.DashCooldownFrames < 1 {
		stats.DashCooldownFrames = 1
	}

	if effect.MaxHealth != 0 {
		if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			hp.Max += effect.MaxHealth
			hp.Current += effect.MaxHealth
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
			if hp.Current < 0 {
				hp.Current = 0
			}
		}
	}
}
