package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/ecs"
	coresys "github.com/qixgo/arena/internal/core/system"
	"github.com/qixgo/arena/internal/input"
	"github.com/qixgo/arena/internal/world"
)

// TrailState reports whether the player is drawing a trail.
type TrailState interface {
	IsBuilding() bool
}

const (
	axisX = 0
	axisZ = 2
)

// ControllerSystem maps held keys onto the player and the following camera.
// Phase 1 (Input). Frozen while paused.
//
// On claimed ground the keys nudge positions directly. Once a trail is in
// progress the player is pushed at a constant speed along the last held
// axis so trails cannot be left dangling.
type ControllerSystem struct {
	ws     *world.State
	keys   input.Source
	trail  TrailState
	length float32
	auto   float32
	follow float32
}

func NewControllerSystem(ws *world.State, keys input.Source, trail TrailState, arena config.ArenaConfig, player config.PlayerConfig) *ControllerSystem {
	return &ControllerSystem{
		ws:     ws,
		keys:   keys,
		trail:  trail,
		length: arena.Length,
		auto:   player.AutoSpeed,
		follow: player.CameraFollow,
	}
}

func (s *ControllerSystem) Phase() coresys.Phase { return coresys.PhaseInput }
func (s *ControllerSystem) Pausable() bool       { return true }

func (s *ControllerSystem) Update(dt time.Duration) {
	pid, pc, ptr, ok := s.ws.Player()
	if !ok {
		return
	}
	cid, _, ctr, ok := s.ws.Camera()
	if !ok {
		return
	}

	if s.trail.IsBuilding() {
		s.assist(pid, cid, ptr.Position)
		return
	}

	s.ws.StopLinear(pid)
	s.ws.StopLinear(cid)
	secs := float32(dt.Seconds())
	nudge := func(axis int, sign float32) {
		step := sign * secs * pc.Sensitivity[axis]
		before := ptr.Position[axis]
		ptr.Position[axis] = mgl32.Clamp(before+step, -s.length, s.length)
		ctr.Position[axis] += (ptr.Position[axis] - before) * s.follow
	}

	up, down := s.keys.Held(input.KeyUp), s.keys.Held(input.KeyDown)
	if up && ptr.Position[axisZ] >= -s.length {
		nudge(axisZ, -1)
	}
	if down && ptr.Position[axisZ] <= s.length {
		nudge(axisZ, 1)
	}
	if up || down {
		return
	}
	if s.keys.Held(input.KeyRight) && ptr.Position[axisX] <= s.length {
		nudge(axisX, 1)
	}
	if s.keys.Held(input.KeyLeft) && ptr.Position[axisX] >= -s.length {
		nudge(axisX, -1)
	}
}

// assist steers the constant trail velocity. Without a held key the current
// velocity is kept.
func (s *ControllerSystem) assist(pid, cid ecs.EntityID, pos mgl32.Vec3) {
	pm, ok := s.ws.Movements.Get(pid)
	if !ok {
		return
	}
	axis, sign := -1, float32(0)
	switch {
	case s.keys.Held(input.KeyUp):
		axis, sign = axisZ, -1
	case s.keys.Held(input.KeyDown):
		axis, sign = axisZ, 1
	case s.keys.Held(input.KeyRight):
		axis, sign = axisX, 1
	case s.keys.Held(input.KeyLeft):
		axis, sign = axisX, -1
	}
	if axis >= 0 {
		pm.Linear = mgl32.Vec3{}
		pm.Linear[axis] = sign * s.auto
	}
	for _, a := range [2]int{axisX, axisZ} {
		if (pos[a] >= s.length && pm.Linear[a] > 0) || (pos[a] <= -s.length && pm.Linear[a] < 0) {
			pm.Linear[a] = 0
		}
	}
	if cm, ok := s.ws.Movements.Get(cid); ok {
		cm.Linear = pm.Linear.Mul(s.follow)
	}
}
