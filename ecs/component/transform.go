package component

import "github.com/jakecoffman/cp"

// Transform is the spatial state of an entity. Facing is a unit vector;
// Radius is the circular collision extent.
type Transform struct {
	Pos    cp.Vector
	Facing cp.Vector
	Radius float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is applied to Transform.Pos once per tick by the movement system.
type Velocity struct {
	V cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()
