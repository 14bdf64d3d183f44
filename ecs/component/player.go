package component

import "github.com/jakecoffman/cp"

// PlayerStats are the mutable combat stats of the player. Perks transform
// these in place; every transform is pure and order-independent.
type PlayerStats struct {
	MoveSpeed float64

	ProjectileSpeed  float64
	ProjectileDamage int
	ProjectileRadius float64
	FireFrames       int

	MeleeRadius  float64
	MeleeDamage  int
	MeleeFrames  int
	MeleeConeDeg float64

	DashSpeed          float64
	DashDurationFrames int
	DashCooldownFrames int
	DashIFrames        int
}

// Player holds the distinguished player entity's stats and weapon timers.
// All timers are frame countdowns decremented once per tick.
type Player struct {
	Stats PlayerStats

	FireCooldown  int
	MeleeCooldown int
	DashCooldown  int

	// DashFrames > 0 means a dash is in progress along DashDir.
	DashFrames int
	DashDir    cp.Vector
}

var PlayerComponent = NewComponent[Player]()

// Input is the per-tick intent bundle copied onto the player entity before
// the systems run. Move and Aim come in already normalized.
type Input struct {
	Move cp.Vector
	Aim  cp.Vector

	Fire         bool
	MeleePressed bool
	DashPressed  bool
}

var InputComponent = NewComponent[Input]()
