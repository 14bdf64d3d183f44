package component

// Invulnerable marks an entity as immune to damage for Frames ticks. The
// status system counts it down and removes it at zero.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()

// Stunned suppresses movement and attacks for Frames ticks.
type Stunned struct {
	Frames int
}

var StunnedComponent = NewComponent[Stunned]()

// TTL destroys the entity after Frames ticks.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
