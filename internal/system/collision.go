package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/ecs"
	"github.com/qixgo/arena/internal/core/event"
	coresys "github.com/qixgo/arena/internal/core/system"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/territory"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

// wallRule describes which territory cubes a hostile kind bounces off.
type wallRule struct {
	hitbox   float32 // squared horizontal distance
	solid    func(y float32) bool
	sound    string
	boundary bool // also reflect at the arena edge
}

// CollisionSystem resolves hostile interactions with each other, with
// territory, with the player and with the player's trail.
// Phase 3 (Collision). Keeps running while paused.
type CollisionSystem struct {
	ws      *world.State
	tracker *territory.Tracker
	bus     *event.Bus
	clock   world.Clock
	log     *zap.Logger

	enemyEnemy  float32
	enemyPlayer float32
	enemyLine   float32
	cooldown    time.Duration
	bound       float32
	rules       map[component.HostileKind]wallRule

	lastHit map[ecs.EntityID]time.Time    // hostile-hostile cooldown ledger
	latest  map[ecs.EntityID]ecs.EntityID // last cube each hostile bounced off
}

func NewCollisionSystem(
	ws *world.State,
	tracker *territory.Tracker,
	bus *event.Bus,
	clock world.Clock,
	arena config.ArenaConfig,
	hit config.HitboxConfig,
	log *zap.Logger,
) *CollisionSystem {
	return &CollisionSystem{
		ws:          ws,
		tracker:     tracker,
		bus:         bus,
		clock:       clock,
		log:         log,
		enemyEnemy:  hit.EnemyEnemy,
		enemyPlayer: hit.EnemyPlayer,
		enemyLine:   hit.EnemyLine,
		cooldown:    hit.CollisionCooldown,
		bound:       arena.Length + 0.5,
		rules: map[component.HostileKind]wallRule{
			component.Ball: {
				hitbox: hit.BallCube,
				solid:  func(y float32) bool { return y >= 0 },
				sound:  event.SoundBallReflect,
			},
			component.Mine: {
				hitbox:   hit.MineCube,
				solid:    func(y float32) bool { return y < -1 },
				sound:    event.SoundMineReflect,
				boundary: true,
			},
		},
		lastHit: make(map[ecs.EntityID]time.Time),
		latest:  make(map[ecs.EntityID]ecs.EntityID),
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

// Reset forgets the cooldown ledger and the last cube of every hostile.
func (s *CollisionSystem) Reset() {
	clear(s.lastHit)
	clear(s.latest)
}

func (s *CollisionSystem) Update(_ time.Duration) {
	now := s.clock.Now()
	s.ws.Hostiles.Each(func(id ecs.EntityID, h *component.Hostile) {
		tr, ok := s.ws.Transforms.Get(id)
		if !ok {
			return
		}
		mv, ok := s.ws.Movements.Get(id)
		if !ok {
			return
		}
		s.hostiles(now, id, tr.Position, mv)
		s.walls(id, h, tr.Position, mv)
		s.player(id, h, tr)
	})
}

// hostiles swaps velocities with every hostile in range. The ledger is read
// for the current entity only and written for both, so a touching pair
// swaps once per cooldown window.
func (s *CollisionSystem) hostiles(now time.Time, id ecs.EntityID, pos mgl32.Vec3, mv *component.Movement) {
	s.ws.Hostiles.Each(func(oid ecs.EntityID, _ *component.Hostile) {
		if oid == id {
			return
		}
		opos, ok := s.ws.Position(oid)
		if !ok || dist2(pos, opos) > s.enemyEnemy {
			return
		}
		omv, ok := s.ws.Movements.Get(oid)
		if !ok {
			return
		}
		if last, seen := s.lastHit[id]; seen && now.Sub(last) < s.cooldown {
			return
		}
		s.lastHit[id], s.lastHit[oid] = now, now
		mv.Linear, omv.Linear = omv.Linear, mv.Linear
		delete(s.latest, id)
		delete(s.latest, oid)
		event.Emit(s.bus, event.Sound{Name: event.SoundBallSelfCollide})
	})
}

func (s *CollisionSystem) walls(id ecs.EntityID, h *component.Hostile, pos mgl32.Vec3, mv *component.Movement) {
	rule, ok := s.rules[h.Kind]
	if !ok {
		return
	}
	if rule.boundary && s.edge(pos, mv) {
		delete(s.latest, id)
		event.Emit(s.bus, event.Sound{Name: rule.sound})
	}

	best := rule.hitbox
	var hit ecs.EntityID
	var cube *component.Cube
	var cpos mgl32.Vec3
	s.ws.Cubes.Each(func(cid ecs.EntityID, c *component.Cube) {
		p, ok := s.ws.Position(cid)
		if !ok || !rule.solid(p.Y()) {
			return
		}
		if d := dist2(pos, p); d < best {
			best, hit, cube, cpos = d, cid, c, p
		}
	})
	if hit.IsZero() {
		return
	}
	if prev, ok := s.latest[id]; ok {
		if pc, found := s.ws.Cubes.Get(prev); found && grid.Neighbors(cellOf(pc), cellOf(cube)) {
			return
		}
	}
	s.latest[id] = hit

	dx, dz := abs32(cpos.X()-pos.X()), abs32(cpos.Z()-pos.Z())
	switch {
	case dx > dz:
		mv.Linear[0] = -mv.Linear[0]
	case dx < dz:
		mv.Linear[2] = -mv.Linear[2]
	default:
		mv.Linear = mv.Linear.Mul(-1)
	}
	event.Emit(s.bus, event.Sound{Name: rule.sound})
}

// edge turns the velocity back inside the arena on each horizontal axis the
// hostile has crossed. Reports whether anything changed.
func (s *CollisionSystem) edge(pos mgl32.Vec3, mv *component.Movement) bool {
	hit := false
	for _, a := range [2]int{axisX, axisZ} {
		if (pos[a] > s.bound && mv.Linear[a] > 0) || (pos[a] < -s.bound && mv.Linear[a] < 0) {
			mv.Linear[a] = -mv.Linear[a]
			hit = true
		}
	}
	return hit
}

func (s *CollisionSystem) player(id ecs.EntityID, h *component.Hostile, tr *component.Transform) {
	_, _, ptr, ok := s.ws.Player()
	if !ok {
		return
	}
	if dist2(tr.Position, ptr.Position) <= s.enemyPlayer {
		if h.Kind == component.Mine {
			tr.Position = h.Spawn
		}
		s.kill(id, false)
		return
	}
	for _, m := range s.tracker.Markers() {
		mpos, ok := s.ws.Position(m)
		if !ok || mpos.Y() < 0 {
			continue
		}
		if dist2(tr.Position, mpos) <= s.enemyLine {
			s.kill(id, true)
			return
		}
	}
}

// kill sends the player and camera back to their spawns and aborts the
// trail.
func (s *CollisionSystem) kill(killer ecs.EntityID, byTrail bool) {
	if _, pc, ptr, ok := s.ws.Player(); ok {
		ptr.Position = pc.Spawn
	}
	if _, cc, ctr, ok := s.ws.Camera(); ok {
		ctr.Position = cc.Spawn
	}
	s.tracker.DieReset(s.ws)

	s.log.Info("player hit",
		zap.Uint64("killer", uint64(killer)),
		zap.Bool("trail", byTrail),
		zap.Int("lives", s.ws.Lives))
	event.Emit(s.bus, event.Sound{Name: event.SoundExplode})
	event.Emit(s.bus, event.Sound{Name: event.SoundDeathYell})
	event.Emit(s.bus, event.PlayerDied{Killer: killer, ByTrail: byTrail, LivesLeft: s.ws.Lives})
}

func cellOf(c *component.Cube) grid.Cell { return grid.Cell{X: c.X, Z: c.Z} }

// dist2 is the squared distance on the horizontal plane.
func dist2(a, b mgl32.Vec3) float32 {
	dx, dz := a.X()-b.X(), a.Z()-b.Z()
	return dx*dx + dz*dz
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
