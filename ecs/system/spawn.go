package system

import (
	"math/rand"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/common"
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
)

// WaveSpawnSystem feeds one level's waves into the world. Spawns happen on
// the wave cadence while the live count is below the wave cap; enemies the
// cap holds back stay queued and spawn later, never dropped. A wave is
// cleared once its queue is empty and its last member is dead; the latch
// never resets.
type WaveSpawnSystem struct {
	level   prefabs.LevelSpec
	enemies map[string]prefabs.EnemySpec
	rng     *rand.Rand

	waveIndex int
	remaining []string
	cadence   int
	cleared   []bool
	edge      int
}

func NewWaveSpawnSystem(level prefabs.LevelSpec, enemies map[string]prefabs.EnemySpec, rng *rand.Rand) *WaveSpawnSystem {
	s := &WaveSpawnSystem{
		level:   level,
		enemies: enemies,
		rng:     rng,
		cleared: make([]bool, len(level.Waves)),
	}
	s.remaining = s.buildQueue(0)
	return s
}

// buildQueue flattens a wave composition into a spawn order. Sorting the
// kind names first keeps the order stable for a given seed.
func (s *WaveSpawnSystem) buildQueue(wave int) []string {
	if wave >= len(s.level.Waves) {
		return nil
	}
	comp := s.level.Waves[wave].Composition
	names := make([]string, 0, len(comp))
	for name := range comp {
		names = append(names, name)
	}
	sort.Strings(names)

	var queue []string
	for _, name := range names {
		for i := 0; i < comp[name]; i++ {
			queue = append(queue, name)
		}
	}
	s.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}

func (s *WaveSpawnSystem) Update(w *ecs.World) {
	if s.waveIndex >= len(s.level.Waves) {
		return
	}
	wave := s.level.Waves[s.waveIndex]

	live := 0
	ecs.ForEach(w, component.UnitComponent.Kind(), func(e ecs.Entity, unit *component.Unit) {
		if unit.Wave == s.waveIndex && unit.Kind.Enemy() && !ecs.Has(w, e, component.DeadComponent.Kind()) {
			live++
		}
	})

	if len(s.remaining) == 0 {
		if live == 0 {
			s.cleared[s.waveIndex] = true
		}
		return
	}

	if s.cadence > 0 {
		s.cadence--
		return
	}
	if live >= wave.EnemyCap {
		return
	}

	name := s.remaining[0]
	s.remaining = s.remaining[1:]
	s.spawnEnemy(w, name, s.waveIndex)
	s.cadence = wave.CadenceFrames
}

// WaveIndex returns the active wave.
func (s *WaveSpawnSystem) WaveIndex() int {
	return s.waveIndex
}

// WaveCleared reports whether the active wave's cleared latch is set.
func (s *WaveSpawnSystem) WaveCleared() bool {
	if s.waveIndex >= len(s.level.Waves) {
		return true
	}
	return s.cleared[s.waveIndex]
}

// WavesRemain reports whether standard waves remain after the active one.
func (s *WaveSpawnSystem) WavesRemain() bool {
	return s.waveIndex < len(s.level.Waves)-1
}

// AdvanceWave moves to the next wave. A no-op once all waves are done.
func (s *WaveSpawnSystem) AdvanceWave() {
	if s.waveIndex >= len(s.level.Waves) {
		return
	}
	s.waveIndex++
	s.remaining = s.buildQueue(s.waveIndex)
	s.cadence = 0
}

// SpawnBoss creates the level's boss immediately at the top of the arena.
func (s *WaveSpawnSystem) SpawnBoss(w *ecs.World) (ecs.Entity, bool) {
	spec, ok := s.enemies[s.level.Boss]
	if !ok {
		return 0, false
	}
	kind, ok := component.UnitKindByName(s.level.Boss)
	if !ok {
		return 0, false
	}
	pos := cp.Vector{X: common.ArenaWidth / 2, Y: spec.Radius + 10}
	return spawnUnit(w, kind, spec, -1, pos), true
}

func (s *WaveSpawnSystem) spawnEnemy(w *ecs.World, name string, wave int) {
	spec, ok := s.enemies[name]
	if !ok {
		return
	}
	kind, ok := component.UnitKindByName(name)
	if !ok {
		return
	}
	spawnUnit(w, kind, spec, wave, s.spawnPos(spec.Radius))
}

// spawnPos cycles the four arena edges with seeded jitter along each.
func (s *WaveSpawnSystem) spawnPos(radius float64) cp.Vector {
	t := s.rng.Float64()
	edge := s.edge % 4
	s.edge++
	switch edge {
	case 0:
		return cp.Vector{X: radius + t*(common.ArenaWidth-2*radius), Y: radius}
	case 1:
		return cp.Vector{X: common.ArenaWidth - radius, Y: radius + t*(common.ArenaHeight-2*radius)}
	case 2:
		return cp.Vector{X: radius + t*(common.ArenaWidth-2*radius), Y: common.ArenaHeight - radius}
	default:
		return cp.Vector{X: radius, Y: radius + t*(common.ArenaHeight-2*radius)}
	}
}

func spawnUnit(w *ecs.World, kind component.UnitKind, spec prefabs.EnemySpec, wave int, pos cp.Vector) ecs.Entity {
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.UnitComponent.Kind(), &component.Unit{Kind: kind, Wave: wave})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: pos, Facing: cp.Vector{X: 1}, Radius: spec.Radius})
	ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health})

	if spec.ContactDamage > 0 {
		ecs.Add(w, e, component.TouchComponent.Kind(), &component.Touch{Damage: spec.ContactDamage})
	}

	switch kind {
	case component.KindBoss, component.KindGiantBoss:
		ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{
			Phases:           convertPhases(spec.Phases),
			EscalateFraction: spec.EscalateFraction,
			EscalatedPhases:  convertPhases(spec.EscalatedPhases),
		})
		ecs.Add(w, e, component.BossRuntimeComponent.Kind(), &component.BossRuntime{})
		ecs.Add(w, e, component.ShotQueueComponent.Kind(), &component.ShotQueue{})
	default:
		ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{
			Speed:            spec.Speed,
			PreferredRange:   spec.PreferredRange,
			RangeBand:        spec.RangeBand,
			FireFrames:       spec.FireFrames,
			ProjectileSpeed:  spec.Projectile.Speed,
			ProjectileDamage: spec.Projectile.Damage,
			ProjectileRadius: spec.Projectile.Radius,
			DetonateRadius:   spec.DetonateRadius,
			DetonateDamage:   spec.DetonateDamage,
			StunFrames:       spec.StunFrames,
		})
		ecs.Add(w, e, component.IntentComponent.Kind(), &component.Intent{})
		if kind == component.KindShooter {
			ecs.Add(w, e, component.ShotQueueComponent.Kind(), &component.ShotQueue{})
		}
	}

	w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Data: ecs.SpawnEvent{Entity: e, Kind: kind, Pos: pos}})
	return e
}

func convertPhases(specs []prefabs.PhaseSpec) []component.BossPhase {
	if len(specs) == 0 {
		return nil
	}
	phases := make([]component.BossPhase, len(specs))
	for i, p := range specs {
		phases[i] = component.BossPhase{
			Name:           p.Name,
			DurationFrames: p.DurationFrames,
			Move:           p.Move,
			Speed:          p.Speed,
			Pattern:        p.Pattern,
			CooldownFrames: p.CooldownFrames,
		}
	}
	return phases
}

// SpawnPlayer creates the player at the arena center.
func SpawnPlayer(w *ecs.World, spec prefabs.PlayerSpec) ecs.Entity {
	pos := cp.Vector{X: common.ArenaWidth / 2, Y: common.ArenaHeight / 2}
	stats := component.PlayerStats{
		MoveSpeed:          spec.MoveSpeed,
		ProjectileSpeed:    spec.Projectile.Speed,
		ProjectileDamage:   spec.Projectile.Damage,
		ProjectileRadius:   spec.Projectile.Radius,
		FireFrames:         spec.Projectile.CooldownFrames,
		MeleeRadius:        spec.Melee.Radius,
		MeleeDamage:        spec.Melee.Damage,
		MeleeFrames:        spec.Melee.CooldownFrames,
		MeleeConeDeg:       spec.Melee.ConeDeg,
		DashSpeed:          spec.Dash.Speed,
		DashDurationFrames: spec.Dash.DurationFrames,
		DashCooldownFrames: spec.Dash.CooldownFrames,
		DashIFrames:        spec.Dash.IFrames,
	}

	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	ecs.Add(w, e, component.UnitComponent.Kind(), &component.Unit{Kind: component.KindPlayer, Wave: -1})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: pos, Facing: cp.Vector{X: 1}, Radius: spec.Radius})
	ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.MaxHealth, Max: spec.MaxHealth})
	ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Stats: stats})
	ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	ecs.Add(w, e, component.IntentComponent.Kind(), &component.Intent{})
	ecs.Add(w, e, component.ShotQueueComponent.Kind(), &component.ShotQueue{})
	w.Events().Push(ecs.Event{Type: ecs.EventSpawn, Data: ecs.SpawnEvent{Entity: e, Kind: component.KindPlayer, Pos: pos}})
	return e
}
