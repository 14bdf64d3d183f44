package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/milk9111/swarm/common"
	"github.com/milk9111/swarm/ecs"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/ecs/system"
	"github.com/milk9111/swarm/prefabs"
)

const (
	waveTransitionFrames = 2 * common.TickRate
	levelCompleteFrames  = 3 * common.TickRate
)

// Session owns one run: the live world, the per-level systems, the
// progression ledger, and the state machine that decides what a tick does.
// All methods run on the tick goroutine.
type Session struct {
	cfg  *prefabs.Config
	seed int64

	state       State
	returnState State
	levelIndex  int
	transition  int
	tick        uint64

	world     *ecs.World
	scheduler *ecs.Scheduler
	spawner   *system.WaveSpawnSystem
	combat    *system.CombatSystem
	progress  *system.ProgressionSystem

	player      ecs.Entity
	boss        ecs.Entity
	bossKind    component.UnitKind
	bossSpawned bool
	bossDead    bool
}

// NewSession builds a session in the menu state. Seed 0 picks one from the
// clock; any other seed reproduces the same run for the same inputs.
func NewSession(cfg *prefabs.Config, seed int64) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Session{cfg: cfg, seed: seed, state: StateMenu}
}

func (s *Session) State() State { return s.state }

// Level returns the 1-based ordinal of the active level.
func (s *Session) Level() int { return s.levelIndex + 1 }

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Progression() *system.ProgressionSystem { return s.progress }

func (s *Session) level() prefabs.LevelSpec {
	return s.cfg.Levels[s.levelIndex]
}

// StartRun leaves the menu for level 1 with a fresh progression ledger.
// Ignored outside the menu.
func (s *Session) StartRun() {
	if s.state != StateMenu {
		return
	}
	s.progress = system.NewProgressionSystem(s.cfg, rand.New(rand.NewSource(s.seed^0x9e3779b9)))
	s.levelIndex = 0
	s.tick = 0
	s.startLevel()
	s.state = StatePlaying
}

// startLevel builds a fresh world for the active level. Score resets; XP
// and perks carry over and are re-applied to the new player.
func (s *Session) startLevel() {
	rng := rand.New(rand.NewSource(s.seed + int64(s.levelIndex)))

	s.world = ecs.NewWorld()
	s.spawner = system.NewWaveSpawnSystem(s.level(), s.cfg.Enemies, rng)
	s.combat = system.NewCombatSystem(s.cfg)
	s.scheduler = ecs.NewScheduler(
		system.NewStatusSystem(),
		system.NewPlayerControlSystem(),
		system.NewAISystem(),
		system.NewBossSystem(system.NewScriptEngine()),
		system.NewMovementSystem(),
		s.combat,
		system.NewPickupSystem(),
		system.NewTTLSystem(),
		s.spawner,
	)

	s.player = system.SpawnPlayer(s.world, s.cfg.Player)
	s.progress.ApplyUnlocked(s.world)
	s.progress.ResetScore()

	s.boss = 0
	s.bossKind = 0
	s.bossSpawned = false
	s.bossDead = false
	s.transition = 0

	// The spawn events from setup don't concern progression.
	s.world.Events().Drain()
}

// Pause freezes simulation. Allowed while a perk offer is pending; the
// offer is still there on resume.
func (s *Session) Pause() {
	if s.state.Simulating() || s.state == StateWaveTransition {
		s.returnState = s.state
		s.state = StatePaused
	}
}

func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = s.returnState
	}
}

// Restart rebuilds the active level from wave 0 with a fresh score. XP and
// perks persist for the rest of the run. Valid from pause and defeat.
func (s *Session) Restart() {
	if s.state != StatePaused && s.state != StateDefeat {
		return
	}
	s.startLevel()
	s.state = StatePlaying
}

// ToMenu tears the run down.
func (s *Session) ToMenu() {
	switch s.state {
	case StatePaused, StateDefeat, StateVictory:
		s.world = nil
		s.scheduler = nil
		s.spawner = nil
		s.combat = nil
		s.progress = nil
		s.state = StateMenu
	}
}

// ChoosePerk resolves the pending offer.
func (s *Session) ChoosePerk(id string) error {
	if s.progress == nil || !s.progress.Blocked() {
		return system.ErrUnknownPerk
	}
	return s.progress.ChoosePerk(s.world, id)
}

// PerkOfferPending reports whether simulation is suspended on a choice.
func (s *Session) PerkOfferPending() bool {
	return s.progress != nil && s.progress.Blocked()
}

// Tick advances the session by one frame. A pending perk offer suspends
// everything, transition countdowns included.
func (s *Session) Tick(input InputFrame) {
	switch s.state {
	case StatePlaying, StateBossFight, StateWaveTransition, StateLevelComplete:
	default:
		return
	}
	if s.progress.Blocked() {
		return
	}

	switch s.state {
	case StateWaveTransition:
		s.transition--
		if s.transition <= 0 {
			s.spawner.AdvanceWave()
			s.state = StatePlaying
		}
		return
	case StateLevelComplete:
		s.transition--
		if s.transition <= 0 {
			if s.levelIndex >= len(s.cfg.Levels)-1 {
				s.state = StateVictory
				return
			}
			s.levelIndex++
			s.startLevel()
			s.state = StatePlaying
		}
		return
	}

	s.applyInput(input)
	s.scheduler.Update(s.world)
	s.world.Flush()
	s.progress.Apply(s.world.Events().Drain())
	s.tick++

	if !ecs.IsAlive(s.world, s.player) {
		s.state = StateDefeat
		return
	}

	switch s.state {
	case StatePlaying:
		if !s.spawner.WaveCleared() {
			return
		}
		if s.spawner.WavesRemain() {
			s.transition = waveTransitionFrames
			s.state = StateWaveTransition
			return
		}
		if boss, ok := s.spawner.SpawnBoss(s.world); ok {
			s.boss = boss
			s.bossSpawned = true
			if unit, ok := ecs.Get(s.world, boss, component.UnitComponent.Kind()); ok {
				s.bossKind = unit.Kind
			}
		}
		s.state = StateBossFight

	case StateBossFight:
		if s.bossSpawned && !ecs.IsAlive(s.world, s.boss) {
			s.bossDead = true
		}
		// Boss down but score short: hold in the fight until the
		// threshold is met or the player falls.
		if s.bossDead && s.progress.Score() >= s.level().ScoreThreshold {
			s.transition = levelCompleteFrames
			s.state = StateLevelComplete
		}
	}
}

func (s *Session) applyInput(frame InputFrame) {
	input, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind())
	if !ok {
		return
	}
	move := frame.Move
	if move.LengthSq() > 1 {
		move = move.Normalize()
	}
	aim := frame.Aim
	if aim.LengthSq() > 0 {
		aim = aim.Normalize()
	}
	*input = component.Input{
		Move:         move,
		Aim:          aim,
		Fire:         frame.Fire,
		MeleePressed: frame.Melee,
		DashPressed:  frame.Dash,
	}
}

// RunSummary renders the end-of-run report exported to the clipboard.
func (s *Session) RunSummary() string {
	outcome := "defeat"
	if s.state == StateVictory {
		outcome = "victory"
	}
	score, xp, perks := 0, 0, []string(nil)
	if s.progress != nil {
		score = s.progress.Score()
		xp = s.progress.XP()
		perks = s.progress.Perks()
	}
	perkList := "none"
	if len(perks) > 0 {
		perkList = ""
		for i, id := range perks {
			if i > 0 {
				perkList += ", "
			}
			perkList += id
		}
	}
	return fmt.Sprintf("swarm run: %s | level %d | score %d | xp %d | time %ds | perks: %s",
		outcome, s.Level(), score, xp, s.tick/common.TickRate, perkList)
}
