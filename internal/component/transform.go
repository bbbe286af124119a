package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is the mutable placement of an entity.
// Pure data; systems mutate it in place.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles, radians
	Scale    mgl32.Vec3

	// SelfRotation is the cosmetic tumble of hostiles. Identity for
	// everything else. Never read by collision or territory code.
	SelfRotation mgl32.Mat4
}

// NewTransform places an entity at pos with unit scale and no rotation.
func NewTransform(pos mgl32.Vec3) *Transform {
	return &Transform{
		Position:     pos,
		Scale:        mgl32.Vec3{1, 1, 1},
		SelfRotation: mgl32.Ident4(),
	}
}
