package component

import "github.com/go-gl/mathgl/mgl32"

// HostileKind selects how a hostile interacts with territory.
type HostileKind uint8

const (
	// Ball roams unclaimed ground and bounces off visible territory.
	Ball HostileKind = iota + 1
	// Mine roams claimed ground, bounces off the arena edge and off
	// unclaimed (hidden) territory, and respawns after killing the player.
	Mine
)

func (k HostileKind) String() string {
	switch k {
	case Ball:
		return "ball"
	case Mine:
		return "mine"
	}
	return "unknown"
}

// Hostile marks an adversarial mobile entity.
type Hostile struct {
	Kind  HostileKind
	Spawn mgl32.Vec3

	// Tumble is the accumulated roll angle of the cosmetic self-rotation.
	Tumble float32
}
