package component

// UnitKind discriminates every actor the registry can hold.
type UnitKind int

const (
	KindPlayer UnitKind = iota
	KindChaser
	KindShooter
	KindBomber
	KindBoss
	KindGiantBoss
	KindProjectile
	KindPickup
)

var unitKindNames = map[UnitKind]string{
	KindPlayer:     "player",
	KindChaser:     "chaser",
	KindShooter:    "shooter",
	KindBomber:     "bomber",
	KindBoss:       "boss",
	KindGiantBoss:  "giant_boss",
	KindProjectile: "projectile",
	KindPickup:     "pickup",
}

func (k UnitKind) String() string {
	if name, ok := unitKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// UnitKindByName resolves a configuration kind name.
func UnitKindByName(name string) (UnitKind, bool) {
	for k, n := range unitKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Enemy reports whether the kind is a hostile actor driven by the AI pass.
func (k UnitKind) Enemy() bool {
	switch k {
	case KindChaser, KindShooter, KindBomber, KindBoss, KindGiantBoss:
		return true
	}
	return false
}

// Unit identifies what an entity is and which wave spawned it. Wave is -1
// for entities that don't belong to a wave (player, projectiles, pickups).
type Unit struct {
	Kind UnitKind
	Wave int
}

var UnitComponent = NewComponent[Unit]()
