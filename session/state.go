package session

// State is the top-level mode of a run. The session is the single source
// of truth for which logic runs each tick; inputs that don't apply to the
// current state are silently ignored.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateWaveTransition
	StateBossFight
	StateLevelComplete
	StateVictory
	StateDefeat
)

var stateNames = map[State]string{
	StateMenu:           "menu",
	StatePlaying:        "playing",
	StatePaused:         "paused",
	StateWaveTransition: "wave_transition",
	StateBossFight:      "boss_fight",
	StateLevelComplete:  "level_complete",
	StateVictory:        "victory",
	StateDefeat:         "defeat",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Simulating reports whether the world advances in this state.
func (s State) Simulating() bool {
	return s == StatePlaying || s == StateBossFight
}
