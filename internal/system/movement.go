package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/core/ecs"
	coresys "github.com/qixgo/arena/internal/core/system"
	"github.com/qixgo/arena/internal/world"
)

var up = mgl32.Vec3{0, 1, 0}

// MovementSystem integrates linear and angular velocities.
// Phase 4 (Movement). Keeps running while paused.
//
// Frames longer than maxDelta are dropped whole: after a stall the
// entities would otherwise jump through walls.
type MovementSystem struct {
	ws       *world.State
	maxDelta time.Duration
}

func NewMovementSystem(ws *world.State, maxDelta time.Duration) *MovementSystem {
	return &MovementSystem{ws: ws, maxDelta: maxDelta}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	if dt > s.maxDelta {
		return
	}
	secs := float32(dt.Seconds())
	s.ws.Movements.Each(func(id ecs.EntityID, mv *component.Movement) {
		tr, ok := s.ws.Transforms.Get(id)
		if !ok {
			return
		}
		tr.Position = tr.Position.Add(mv.Linear.Mul(secs))
		if h, ok := s.ws.Hostiles.Get(id); ok {
			tumble(h, tr, mv.Linear, secs)
			return
		}
		tr.Rotation = tr.Rotation.Add(mv.Angular.Mul(secs))
	})
}

// tumble rolls a hostile like a unit sphere along its heading. Cosmetic
// only; position and collision never read SelfRotation.
func tumble(h *component.Hostile, tr *component.Transform, v mgl32.Vec3, secs float32) {
	v[1] = 0
	speed := v.Len()
	if speed == 0 {
		return
	}
	h.Tumble = float32(math.Mod(float64(h.Tumble+speed*secs), 2*math.Pi))
	axis := up.Cross(v).Normalize()
	tr.SelfRotation = mgl32.HomogRotate3D(h.Tumble, axis)
}
