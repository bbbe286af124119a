package component

import "github.com/go-gl/mathgl/mgl32"

// Movement carries the velocities integrated by the movement system.
type Movement struct {
	Linear  mgl32.Vec3 // units per second
	Angular mgl32.Vec3 // radians per second
}
