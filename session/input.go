package session

import "github.com/jakecoffman/cp"

// InputFrame is one tick of player intent, produced by the front end.
// Move and Aim need not be normalized; the session normalizes before the
// systems see them. Button fields are edge-triggered except Fire, which
// may be held.
type InputFrame struct {
	Move cp.Vector
	Aim  cp.Vector

	Fire  bool
	Melee bool
	Dash  bool
}
