package component

// Projectile is a live bullet. Owner is the kind that fired it; projectiles
// never damage their owner's side.
type Projectile struct {
	Damage int
	Owner  UnitKind
}

var ProjectileComponent = NewComponent[Projectile]()

// PickupKind discriminates collectible drops.
type PickupKind int

const (
	PickupHealth PickupKind = iota
	PickupXP
)

// Pickup is a collectible consumed on player overlap.
type Pickup struct {
	Kind   PickupKind
	Amount int
}

var PickupComponent = NewComponent[Pickup]()
