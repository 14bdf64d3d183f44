package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

func queueShot(t *testing.T, w *ecs.World, e ecs.Entity, dir cp.Vector, damage int) {
	t.Helper()
	queue, ok := ecs.Get(w, e, component.ShotQueueComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no shot queue", e)
	}
	queue.Shots = append(queue.Shots, component.Shot{DirX: dir.X, DirY: dir.Y, Speed: 6, Damage: damage, Radius: 4})
}

func TestProjectileHitsEnemy(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	chaser := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 320, Y: 300})

	queueShot(t, w, player, cp.Vector{X: 1, Y: 0}, 1)
	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, chaser); got != 1 {
		t.Fatalf("expected chaser at 1 health, got %d", got)
	}
	events := w.Events().Drain()
	if countEvents(events, ecs.EventDamage) != 1 {
		t.Fatalf("expected one damage event")
	}
	if ecs.Count(w, component.ProjectileComponent.Kind()) == 0 {
		t.Fatalf("projectile should exist until the end-of-tick sweep")
	}
	w.Flush()
	if ecs.Count(w, component.ProjectileComponent.Kind()) != 0 {
		t.Fatalf("spent projectile should be swept")
	}
}

func TestLethalHitClampsAndRemovesSameTick(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	chaser := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 320, Y: 300})

	// Overkill: 2 health, 5 damage.
	queueShot(t, w, player, cp.Vector{X: 1, Y: 0}, 5)
	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, chaser); got != 0 {
		t.Fatalf("health must clamp to 0, got %d", got)
	}
	if !ecs.Has(w, chaser, component.DeadComponent.Kind()) {
		t.Fatalf("chaser should be marked dead")
	}
	events := w.Events().Drain()
	if countEvents(events, ecs.EventKill) != 1 {
		t.Fatalf("expected exactly one kill event")
	}

	w.Flush()
	if ecs.IsAlive(w, chaser) {
		t.Fatalf("dead chaser must not survive into the next tick")
	}
}

func TestDashInvulnerabilityAbsorbsButRecords(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 305, Y: 300})
	ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 6})

	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, player); got != 8 {
		t.Fatalf("absorbed hit must not change health, got %d", got)
	}
	if got := posOf(t, w, player); got != (cp.Vector{X: 300, Y: 300}) {
		t.Fatalf("absorbed hit must not knock back, moved to %v", got)
	}

	events := w.Events().Drain()
	for _, evt := range events {
		if evt.Type != ecs.EventDamage {
			continue
		}
		dmg := evt.Data.(ecs.DamageEvent)
		if !dmg.Absorbed {
			t.Fatalf("damage event should be flagged absorbed")
		}
		return
	}
	t.Fatalf("absorbed damage must still be recorded")
}

func TestContactDamageKnocksBackOncePerTick(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 305, Y: 300})

	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, player); got != 7 {
		t.Fatalf("expected one point of contact damage, got health %d", got)
	}
	want := cp.Vector{X: 300 - knockbackDistance, Y: 300}
	if got := posOf(t, w, player); got.Distance(want) > 1e-9 {
		t.Fatalf("expected knockback to %v, got %v", want, got)
	}
	if countEvents(w.Events().Drain(), ecs.EventDamage) != 1 {
		t.Fatalf("contact damage must apply once per tick")
	}
}

func TestMeleeHitsConeMultiTarget(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})

	inFront := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 340, Y: 300})
	diagonal := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 330, Y: 330})
	behind := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 260, Y: 300})
	tooFar := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 380, Y: 300})

	intent, _ := ecs.Get(w, player, component.IntentComponent.Kind())
	intent.Attack = component.AttackMelee

	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, inFront); got != 0 {
		t.Fatalf("enemy in front should take the full swing, health %d", got)
	}
	if got := healthOf(t, w, diagonal); got != 0 {
		t.Fatalf("enemy inside the cone should be hit too, health %d", got)
	}
	if got := healthOf(t, w, behind); got != 2 {
		t.Fatalf("enemy behind the player should be untouched, health %d", got)
	}
	if got := healthOf(t, w, tooFar); got != 2 {
		t.Fatalf("enemy out of reach should be untouched, health %d", got)
	}
}

func TestDeadBomberDoesNotDetonate(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	bomber := spawnTestEnemy(t, w, "bomber", 0, cp.Vector{X: 320, Y: 300})

	// Bomber at 1 health with a live detonation intent; the player's shot
	// kills it in the projectile pass before detonations resolve.
	hp, _ := ecs.Get(w, bomber, component.HealthComponent.Kind())
	hp.Current = 1
	intent, _ := ecs.Get(w, bomber, component.IntentComponent.Kind())
	intent.Attack = component.AttackDetonate
	queueShot(t, w, player, cp.Vector{X: 1, Y: 0}, 1)

	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, player); got != 8 {
		t.Fatalf("a bomber killed mid-tick must not detonate, player health %d", got)
	}
	if countEvents(w.Events().Drain(), ecs.EventKill) != 1 {
		t.Fatalf("bomber should die exactly once")
	}
}

func TestDetonationDamagesAndStuns(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	bomber := spawnTestEnemy(t, w, "bomber", 0, cp.Vector{X: 320, Y: 300})
	intent, _ := ecs.Get(w, bomber, component.IntentComponent.Kind())
	intent.Attack = component.AttackDetonate

	sys := NewCombatSystem(testConfig())
	sys.Update(w)

	if got := healthOf(t, w, player); got != 6 {
		t.Fatalf("expected 2 detonation damage, player health %d", got)
	}
	if !ecs.Has(w, player, component.StunnedComponent.Kind()) {
		t.Fatalf("detonation should stun the player")
	}
	if !ecs.Has(w, bomber, component.DeadComponent.Kind()) {
		t.Fatalf("detonation consumes the bomber")
	}
}

func TestDuplicateKillDiscarded(t *testing.T) {
	w, _ := newPlayerWorld(t)
	chaser := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 100, Y: 100})

	sys := NewCombatSystem(testConfig())
	sys.damage(w, chaser, 10, component.KindPlayer)
	sys.damage(w, chaser, 10, component.KindPlayer)

	if sys.DuplicateKills != 1 {
		t.Fatalf("expected one recorded duplicate kill, got %d", sys.DuplicateKills)
	}
	if countEvents(w.Events().Drain(), ecs.EventKill) != 1 {
		t.Fatalf("a duplicate kill must not emit a second kill event")
	}
}

func TestDropOnEveryNthKill(t *testing.T) {
	w, _ := newPlayerWorld(t)
	sys := NewCombatSystem(testConfig())

	// Chasers drop on every second kill.
	first := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 100, Y: 100})
	sys.damage(w, first, 10, component.KindPlayer)
	if ecs.Count(w, component.PickupComponent.Kind()) != 0 {
		t.Fatalf("first kill should not drop")
	}

	second := spawnTestEnemy(t, w, "chaser", 0, cp.Vector{X: 120, Y: 100})
	sys.damage(w, second, 10, component.KindPlayer)
	if ecs.Count(w, component.PickupComponent.Kind()) != 1 {
		t.Fatalf("second kill should drop a pickup")
	}
}

func TestPickupHealsAndEmits(t *testing.T) {
	w, player := newPlayerWorld(t)
	placeAt(t, w, player, cp.Vector{X: 300, Y: 300})
	hp, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	hp.Current = 2

	heal := ecs.CreateEntity(w)
	ecs.Add(w, heal, component.UnitComponent.Kind(), &component.Unit{Kind: component.KindPickup, Wave: -1})
	ecs.Add(w, heal, component.TransformComponent.Kind(), &component.Transform{Pos: cp.Vector{X: 305, Y: 300}, Radius: 8})
	ecs.Add(w, heal, component.PickupComponent.Kind(), &component.Pickup{Kind: component.PickupHealth, Amount: 10})

	NewPickupSystem().Update(w)

	if hp.Current != 8 {
		t.Fatalf("heal should clamp to max health, got %d", hp.Current)
	}
	events := w.Events().Drain()
	if countEvents(events, ecs.EventPickup) != 1 {
		t.Fatalf("expected one pickup event")
	}
	if !ecs.Pending(w, heal) {
		t.Fatalf("consumed pickup should be queued for removal")
	}
}
