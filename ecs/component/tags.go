package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Dead marks an entity killed earlier in the current tick. Dead entities
// deal no further damage within the tick and are swept at end of tick.
type Dead struct{}

var DeadComponent = NewComponent[Dead]()
