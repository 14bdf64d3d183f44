package common

import "github.com/jakecoffman/cp"

const (
	TickRate = 60

	ArenaWidth  = 900.0
	ArenaHeight = 600.0
)

// ClampToArena keeps a circular actor fully inside the arena.
func ClampToArena(pos cp.Vector, radius float64) cp.Vector {
	return cp.Vector{
		X: cp.Clamp(pos.X, radius, ArenaWidth-radius),
		Y: cp.Clamp(pos.Y, radius, ArenaHeight-radius),
	}
}

// InArena reports whether any part of a circular actor is still inside.
func InArena(pos cp.Vector, radius float64) bool {
	return pos.X+radius >= 0 && pos.X-radius <= ArenaWidth &&
		pos.Y+radius >= 0 && pos.Y-radius <= ArenaHeight
}
