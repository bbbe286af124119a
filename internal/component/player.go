package component

import "github.com/go-gl/mathgl/mgl32"

// Player marks the keyboard-driven entity. There is at most one per world;
// systems use the first one they find.
type Player struct {
	Sensitivity mgl32.Vec3 // units per second on each axis while idle
	Spawn       mgl32.Vec3
}

// Camera marks the entity that follows the player at a reduced rate.
type Camera struct {
	Spawn mgl32.Vec3
}
