package component

// Health tracks hit points. Current is clamped to [0, Max] by the combat
// resolver; an entity reaching 0 is marked Dead the same tick.
type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
