package component

import "github.com/jakecoffman/cp"

// AI holds the per-kind behavior parameters of a non-boss enemy, loaded
// from the enemy table at spawn time.
type AI struct {
	Speed float64

	// Shooter: orbit the player at PreferredRange +/- RangeBand and fire
	// every FireFrames while in the band. FireCooldown is the live counter.
	PreferredRange   float64
	RangeBand        float64
	FireFrames       int
	FireCooldown     int
	ProjectileSpeed  float64
	ProjectileDamage int
	ProjectileRadius float64

	// Bomber: detonate when within DetonateRadius of the player.
	DetonateRadius float64
	DetonateDamage int
	StunFrames     int
}

var AIComponent = NewComponent[AI]()

// AttackKind is the attack half of an intent. Shots are not an AttackKind;
// anything that shoots appends to its ShotQueue instead. Contact damage is
// implicit from overlap and needs no intent either.
type AttackKind int

const (
	AttackNone AttackKind = iota
	AttackMelee
	AttackDetonate
)

// Intent is the output of the control passes for one tick: a desired
// velocity and an optional attack. The movement system consumes Velocity;
// the combat resolver consumes Attack. Rewritten from scratch every tick.
type Intent struct {
	Velocity cp.Vector
	Attack   AttackKind
}

var IntentComponent = NewComponent[Intent]()
