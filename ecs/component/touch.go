package component

// Touch deals contact damage to the player on overlap, applied at most
// once per attacker per tick.
type Touch struct {
	Damage int
}

var TouchComponent = NewComponent[Touch]()
