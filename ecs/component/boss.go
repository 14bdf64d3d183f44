package component

// BossPhase is one timed behavioral mode of a boss. Phases cycle in order;
// each transition happens unconditionally when the duration elapses.
type BossPhase struct {
	Name           string
	DurationFrames int

	// Move is one of "approach", "strafe", "hold".
	Move  string
	Speed float64

	// Pattern names a tengo script fired every CooldownFrames while the
	// phase is active. Empty means the phase doesn't attack.
	Pattern        string
	CooldownFrames int
}

// Boss holds the phase tables for a boss entity. EscalatedPhases is only
// set for the giant boss: when health falls to EscalateFraction of max the
// escalated table replaces the base one permanently.
type Boss struct {
	Phases           []BossPhase
	EscalateFraction float64
	EscalatedPhases  []BossPhase
}

var BossComponent = NewComponent[Boss]()

// BossRuntime is the live phase-cycle state. Escalated is a one-way latch.
type BossRuntime struct {
	PhaseIndex      int
	FrameInPhase    int
	PatternCooldown int
	Escalated       bool
}

var BossRuntimeComponent = NewComponent[BossRuntime]()

// Shot is a single projectile request produced by an attack pattern.
type Shot struct {
	DirX, DirY float64
	Speed      float64
	Damage     int
	Radius     float64
}

// ShotQueue buffers projectile requests until the combat resolver spawns
// them, keeping projectile creation in one place.
type ShotQueue struct {
	Shots []Shot
}

var ShotQueueComponent = NewComponent[ShotQueue]()
