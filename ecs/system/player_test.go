package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
)

func setInput(t *testing.T, w *ecs.World, player ecs.Entity, frame component.Input) {
	t.Helper()
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("player has no input component")
	}
	*input = frame
}

func TestFireRespectsCooldown(t *testing.T) {
	w, player := newPlayerWorld(t)
	sys := NewPlayerControlSystem()
	queue, _ := ecs.Get(w, player, component.ShotQueueComponent.Kind())

	setInput(t, w, player, component.Input{Fire: true, Aim: cp.Vector{X: 1}})
	fired := 0
	// Cooldown is 4 frames, so 8 ticks of held fire yield 2 shots.
	for tick := 0; tick < 8; tick++ {
		sys.Update(w)
		fired += len(queue.Shots)
		queue.Shots = nil
	}
	if fired != 2 {
		t.Fatalf("expected 2 shots in 8 ticks at a 4 frame cooldown, got %d", fired)
	}
}

func TestMeleeSetsIntentAndCooldown(t *testing.T) {
	w, player := newPlayerWorld(t)
	sys := NewPlayerControlSystem()

	setInput(t, w, player, component.Input{MeleePressed: true})
	sys.Update(w)

	intent, _ := ecs.Get(w, player, component.IntentComponent.Kind())
	if intent.Attack != component.AttackMelee {
		t.Fatalf("melee press should raise a melee intent")
	}

	// Held across the cooldown: no second swing yet.
	sys.Update(w)
	if intent.Attack == component.AttackMelee {
		t.Fatalf("melee must respect its cooldown")
	}
}

func TestDashGrantsIFramesAndCooldown(t *testing.T) {
	w, player := newPlayerWorld(t)
	sys := NewPlayerControlSystem()

	setInput(t, w, player, component.Input{Move: cp.Vector{X: 1}, DashPressed: true})
	sys.Update(w)

	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if p.DashFrames != 3 {
		t.Fatalf("dash should run for 3 frames, got %d", p.DashFrames)
	}
	if p.DashCooldown != 20 {
		t.Fatalf("dash cooldown should arm at 20, got %d", p.DashCooldown)
	}
	if !ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("dash should grant i-frames")
	}
	vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
	if vel.V != (cp.Vector{X: 8}) {
		t.Fatalf("dash velocity should be dash speed along the dash direction, got %v", vel.V)
	}

	// A second press during the cooldown does nothing.
	setInput(t, w, player, component.Input{Move: cp.Vector{Y: 1}, DashPressed: true})
	for tick := 0; tick < 3; tick++ {
		sys.Update(w)
	}
	if p.DashDir != (cp.Vector{X: 1}) {
		t.Fatalf("dash direction must not change mid-cooldown, got %v", p.DashDir)
	}
}

func TestDashInvulnerabilityEndsWithDash(t *testing.T) {
	w, player := newPlayerWorld(t)
	control := NewPlayerControlSystem()
	status := NewStatusSystem()

	setInput(t, w, player, component.Input{Move: cp.Vector{X: 1}, DashPressed: true})
	control.Update(w)

	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	setInput(t, w, player, component.Input{})
	for tick := 0; tick < 10; tick++ {
		status.Update(w)
		control.Update(w)
		if p.DashFrames == 0 && ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
			t.Fatalf("i-frames must not outlive the dash, tick %d", tick)
		}
	}
	if ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("i-frames should have expired")
	}
}

func TestStunFreezesPlayer(t *testing.T) {
	w, player := newPlayerWorld(t)
	ecs.Add(w, player, component.StunnedComponent.Kind(), &component.Stunned{Frames: 5})

	setInput(t, w, player, component.Input{Move: cp.Vector{X: 1}, Fire: true})
	NewPlayerControlSystem().Update(w)

	vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
	if vel.V != (cp.Vector{}) {
		t.Fatalf("stunned player must not move, got %v", vel.V)
	}
	queue, _ := ecs.Get(w, player, component.ShotQueueComponent.Kind())
	if len(queue.Shots) != 0 {
		t.Fatalf("stunned player must not fire")
	}
}

func TestStatusTimersExpire(t *testing.T) {
	w, player := newPlayerWorld(t)
	ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 2})
	ecs.Add(w, player, component.StunnedComponent.Kind(), &component.Stunned{Frames: 1})

	sys := NewStatusSystem()
	sys.Update(w)
	if ecs.Has(w, player, component.StunnedComponent.Kind()) {
		t.Fatalf("stun should expire after one tick")
	}
	if !ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("i-frames should still be running")
	}
	sys.Update(w)
	if ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("i-frames should expire after two ticks")
	}
}

func TestTTLExpires(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 2})

	sys := NewTTLSystem()
	sys.Update(w)
	w.Flush()
	if !ecs.IsAlive(w, e) {
		t.Fatalf("entity should survive the first tick")
	}
	sys.Update(w)
	w.Flush()
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity should expire with its TTL")
	}
}

func TestProjectileLeavesArena(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.UnitComponent.Kind(), &component.Unit{Kind: component.KindProjectile, Wave: -1})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: cp.Vector{X: 2, Y: 300}, Radius: 4})
	ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{V: cp.Vector{X: -10}})

	NewMovementSystem().Update(w)
	w.Flush()
	if ecs.IsAlive(w, e) {
		t.Fatalf("projectile outside the arena should be removed")
	}
}
