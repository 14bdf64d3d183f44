package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
)

func testPlayerSpec() prefabs.PlayerSpec {
	return prefabs.PlayerSpec{
		MaxHealth: 8,
		MoveSpeed: 3,
		Radius:    10,
		Projectile: prefabs.ProjectileSpec{
			Speed: 6, Damage: 1, Radius: 4, CooldownFrames: 4,
		},
		Melee: prefabs.MeleeSpec{
			Radius: 40, Damage: 2, CooldownFrames: 5, ConeDeg: 120,
		},
		Dash: prefabs.DashSpec{
			Speed: 8, DurationFrames: 3, CooldownFrames: 20, IFrames: 3,
		},
	}
}

func testEnemySpecs() map[string]prefabs.EnemySpec {
	return map[string]prefabs.EnemySpec{
		"chaser": {
			Health: 2, Speed: 3, Radius: 8, ContactDamage: 1, Score: 10, XP: 2,
			Drop: prefabs.DropSpec{Every: 2, Kind: "xp", Amount: 3},
		},
		"shooter": {
			Health: 3, Speed: 2, Radius: 8, ContactDamage: 1, Score: 15, XP: 3,
			PreferredRange: 100, RangeBand: 20, FireFrames: 10,
			Projectile: prefabs.ProjectileSpec{Speed: 4, Damage: 1, Radius: 3},
		},
		"bomber": {
			Health: 2, Speed: 3, Radius: 8, Score: 20, XP: 4,
			DetonateRadius: 25, DetonateDamage: 2, StunFrames: 12,
		},
		"boss": {
			Health: 20, Speed: 1, Radius: 15, ContactDamage: 1, Score: 200, XP: 20,
			Phases: []prefabs.PhaseSpec{
				{Name: "approach", DurationFrames: 60, Move: "approach", Speed: 1},
				{Name: "volley", DurationFrames: 60, Move: "hold", Pattern: "aimed", CooldownFrames: 30},
			},
		},
		"giant_boss": {
			Health: 10, Speed: 1, Radius: 20, ContactDamage: 2, Score: 400, XP: 40,
			EscalateFraction: 0.5,
			Phases: []prefabs.PhaseSpec{
				{Name: "approach", DurationFrames: 60, Move: "approach", Speed: 1},
			},
			EscalatedPhases: []prefabs.PhaseSpec{
				{Name: "enraged", DurationFrames: 40, Move: "approach", Speed: 2},
			},
		},
	}
}

func testConfig() *prefabs.Config {
	return &prefabs.Config{
		Player:  testPlayerSpec(),
		Enemies: testEnemySpecs(),
		Levels: []prefabs.LevelSpec{{
			Name: "test", ScoreThreshold: 90, Boss: "boss",
			Waves: []prefabs.WaveSpec{{
				Composition:   map[string]int{"chaser": 3},
				CadenceFrames: 2,
				EnemyCap:      2,
			}},
		}},
		Perks: prefabs.PerkTable{
			XPThresholds: []int{5, 10},
			Perks: []prefabs.PerkSpec{
				{ID: "tough", Name: "Tough", Effect: prefabs.EffectSpec{MaxHealth: 2}},
				{ID: "sharp", Name: "Sharp", Effect: prefabs.EffectSpec{ProjectileDamage: 1}},
				{ID: "swift", Name: "Swift", Effect: prefabs.EffectSpec{MoveSpeed: 1}},
				{ID: "rapid", Name: "Rapid", Effect: prefabs.EffectSpec{FireFrames: -1}},
			},
		},
	}
}

func newPlayerWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	player := SpawnPlayer(w, testPlayerSpec())
	w.Events().Drain()
	return w, player
}

func placeAt(t *testing.T, w *ecs.World, e ecs.Entity, pos cp.Vector) {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	tr.Pos = pos
}

func spawnTestEnemy(t *testing.T, w *ecs.World, name string, wave int, pos cp.Vector) ecs.Entity {
	t.Helper()
	spec, ok := testEnemySpecs()[name]
	if !ok {
		t.Fatalf("unknown test enemy %q", name)
	}
	kind, ok := component.UnitKindByName(name)
	if !ok {
		t.Fatalf("unknown kind %q", name)
	}
	e := spawnUnit(w, kind, spec, wave, pos)
	w.Events().Drain()
	return e
}

func healthOf(t *testing.T, w *ecs.World, e ecs.Entity) int {
	t.Helper()
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no health", e)
	}
	return hp.Current
}

func posOf(t *testing.T, w *ecs.World, e ecs.Entity) cp.Vector {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr.Pos
}
