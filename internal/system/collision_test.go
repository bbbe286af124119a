package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/core/event"
	"github.com/qixgo/arena/internal/grid"
)

func TestHostilesSwapOncePerCooldown(t *testing.T) {
	s := newTestState(t)
	a := s.hostile(component.Ball, mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{3, 0, 0})
	b := s.hostile(component.Ball, mgl32.Vec3{1, 1.5, 0}, mgl32.Vec3{-3, 0, 1})
	c := s.collision()

	c.Update(16 * time.Millisecond)
	if s.velocity(a) != (mgl32.Vec3{-3, 0, 1}) || s.velocity(b) != (mgl32.Vec3{3, 0, 0}) {
		t.Fatalf("first contact: a=%v b=%v", s.velocity(a), s.velocity(b))
	}

	for i := 0; i < 2; i++ {
		s.clock.advance(16 * time.Millisecond)
		c.Update(16 * time.Millisecond)
		if s.velocity(a) != (mgl32.Vec3{-3, 0, 1}) {
			t.Fatalf("swapped again inside the cooldown at frame %d", i)
		}
	}

	s.clock.advance(18 * time.Millisecond)
	c.Update(16 * time.Millisecond)
	if s.velocity(a) != (mgl32.Vec3{3, 0, 0}) || s.velocity(b) != (mgl32.Vec3{-3, 0, 1}) {
		t.Fatalf("no swap after cooldown: a=%v b=%v", s.velocity(a), s.velocity(b))
	}

	got := s.sounds()
	if len(got) != 2 || got[0] != event.SoundBallSelfCollide {
		t.Fatalf("sounds = %v", got)
	}
}

func TestMineReflectsAtArenaEdge(t *testing.T) {
	s := newTestState(t)
	m := s.hostile(component.Mine, mgl32.Vec3{19.6, 1.5, 0}, mgl32.Vec3{4, 0, 1})
	s.collision().Update(16 * time.Millisecond)

	if v := s.velocity(m); v != (mgl32.Vec3{-4, 0, 1}) {
		t.Fatalf("velocity = %v, want x reversed with magnitude kept", v)
	}
	if got := s.sounds(); len(got) != 1 || got[0] != event.SoundMineReflect {
		t.Fatalf("sounds = %v", got)
	}
}

func TestMineInsideArenaKeepsHeading(t *testing.T) {
	s := newTestState(t)
	m := s.hostile(component.Mine, mgl32.Vec3{19.6, 1.5, 0}, mgl32.Vec3{-4, 0, 0})
	s.collision().Update(16 * time.Millisecond)
	if v := s.velocity(m); v != (mgl32.Vec3{-4, 0, 0}) {
		t.Fatalf("velocity = %v", v)
	}
}

func TestMineBouncesOffHiddenTerritory(t *testing.T) {
	s := newTestState(t)
	// the hidden cube of cell (14,37) sits at (-5.5, 17.5)
	m := s.hostile(component.Mine, mgl32.Vec3{-5.5, 1.5, 18.3}, mgl32.Vec3{0, 0, -5})
	s.collision().Update(16 * time.Millisecond)
	if v := s.velocity(m); v != (mgl32.Vec3{0, 0, 5}) {
		t.Fatalf("velocity = %v", v)
	}
}

func TestBallReflectsOffTerritory(t *testing.T) {
	s := newTestState(t)
	ball := s.hostile(component.Ball, mgl32.Vec3{0.2, 1.5, 17.2}, mgl32.Vec3{1, 0, 5})
	c := s.collision()

	c.Update(16 * time.Millisecond)
	if v := s.velocity(ball); v != (mgl32.Vec3{1, 0, -5}) {
		t.Fatalf("velocity = %v, want z reflected", v)
	}

	// the same wall again is suppressed
	c.Update(16 * time.Millisecond)
	if v := s.velocity(ball); v != (mgl32.Vec3{1, 0, -5}) {
		t.Fatalf("neighbor bounce not suppressed: %v", v)
	}

	// a far wall reflects along x
	s.place(ball, mgl32.Vec3{-17.3, 1.5, 0.3})
	c.Update(16 * time.Millisecond)
	if v := s.velocity(ball); v != (mgl32.Vec3{-1, 0, -5}) {
		t.Fatalf("velocity = %v, want x reflected", v)
	}
}

func TestBallIgnoresHiddenCubes(t *testing.T) {
	s := newTestState(t)
	ball := s.hostile(component.Ball, mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{2, 0, 2})
	s.collision().Update(16 * time.Millisecond)
	if v := s.velocity(ball); v != (mgl32.Vec3{2, 0, 2}) {
		t.Fatalf("velocity = %v", v)
	}
}

func TestPlayerHitByHostile(t *testing.T) {
	s := newTestState(t)
	s.place(s.sc.Player, mgl32.Vec3{3, 3, 3})
	s.place(s.sc.Camera, mgl32.Vec3{3, 18, 9})
	s.hostile(component.Ball, mgl32.Vec3{3, 1.5, 3}, mgl32.Vec3{1, 0, 0})
	var died []event.PlayerDied
	event.Subscribe(s.bus, func(e event.PlayerDied) { died = append(died, e) })
	c := s.collision()

	c.Update(16 * time.Millisecond)
	if s.ws.Lives != s.cfg.Player.Lives-1 {
		t.Fatalf("lives = %d, want %d", s.ws.Lives, s.cfg.Player.Lives-1)
	}
	if p, _ := s.ws.Position(s.sc.Player); p != s.cfg.Player.Spawn {
		t.Fatalf("player at %v, want spawn", p)
	}
	if p, _ := s.ws.Position(s.sc.Camera); p != s.cfg.Player.CameraSpawn {
		t.Fatalf("camera at %v, want spawn", p)
	}

	c.Update(16 * time.Millisecond)
	if s.ws.Lives != s.cfg.Player.Lives-1 {
		t.Fatal("player died twice")
	}

	got := s.sounds()
	if len(got) != 2 || got[0] != event.SoundExplode || got[1] != event.SoundDeathYell {
		t.Fatalf("sounds = %v", got)
	}
	if len(died) != 1 || died[0].ByTrail || died[0].LivesLeft != s.cfg.Player.Lives-1 {
		t.Fatalf("died = %+v", died)
	}
}

func TestMineReturnsToSpawnAfterKill(t *testing.T) {
	s := newTestState(t)
	s.place(s.sc.Player, mgl32.Vec3{-4, 3, 2})
	m := s.hostile(component.Mine, mgl32.Vec3{-4, 1.5, 2.5}, mgl32.Vec3{3, 0, 0})
	s.collision().Update(16 * time.Millisecond)

	if p, _ := s.ws.Position(m); p != s.cfg.Player.MineSpawn {
		t.Fatalf("mine at %v, want %v", p, s.cfg.Player.MineSpawn)
	}
}

func TestHostileOnTrailKillsPlayer(t *testing.T) {
	s := newTestState(t)
	s.stand(grid.Cell{X: 20, Z: 1})
	for z := 2; z <= 10; z++ {
		s.stand(grid.Cell{X: 20, Z: z})
	}
	if !s.tracker.IsBuilding() {
		t.Fatal("trail not started")
	}

	x, z := s.tracker.Grid().Center(grid.Cell{X: 21, Z: 3})
	at := mgl32.Vec3{x, 1.5, z}
	ball := s.hostile(component.Ball, at, mgl32.Vec3{})
	s.collision().Update(16 * time.Millisecond)

	if s.ws.Lives != s.cfg.Player.Lives-1 {
		t.Fatalf("lives = %d", s.ws.Lives)
	}
	if s.tracker.IsBuilding() || s.tracker.Grid().Count(grid.Pending) != 0 {
		t.Fatal("trail survived the hit")
	}
	if p, _ := s.ws.Position(ball); p != at {
		t.Fatalf("ball moved to %v", p)
	}
	if p, _ := s.ws.Position(s.sc.Player); p != s.cfg.Player.Spawn {
		t.Fatalf("player at %v", p)
	}
}

func TestCollisionWithoutPlayer(t *testing.T) {
	s := newTestState(t)
	s.ws.Players.Remove(s.sc.Player)
	s.hostile(component.Ball, mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{1, 0, 0})
	s.collision().Update(16 * time.Millisecond)
	if s.ws.Lives != s.cfg.Player.Lives {
		t.Fatal("lives changed without a player")
	}
}

func TestSwapClearsWallCache(t *testing.T) {
	s := newTestState(t)
	a := s.hostile(component.Ball, mgl32.Vec3{0.2, 1.5, 17.2}, mgl32.Vec3{1, 0, 5})
	b := s.hostile(component.Ball, mgl32.Vec3{-10, 1.5, -10}, mgl32.Vec3{0, 0, 7})
	c := s.collision()

	c.Update(16 * time.Millisecond)
	if v := s.velocity(a); v != (mgl32.Vec3{1, 0, -5}) {
		t.Fatalf("first bounce: %v", v)
	}

	// b arrives next to a; the swap hands a a heading back into the wall
	s.place(b, mgl32.Vec3{1.2, 1.5, 15.5})
	s.clock.advance(60 * time.Millisecond)
	c.Update(16 * time.Millisecond)
	if v := s.velocity(a); v != (mgl32.Vec3{0, 0, -7}) {
		t.Fatalf("a = %v, want swapped then reflected off the same wall", v)
	}
	if v := s.velocity(b); v != (mgl32.Vec3{1, 0, -5}) {
		t.Fatalf("b = %v", v)
	}
}

func TestMineEdgeClearsWallCache(t *testing.T) {
	s := newTestState(t)
	// the hidden cube of cell (37,20) sits at (17.5, 0.5)
	by := mgl32.Vec3{18.3, 1.5, 0.5}
	m := s.hostile(component.Mine, by, mgl32.Vec3{5, 0, 0})
	c := s.collision()

	c.Update(16 * time.Millisecond)
	if v := s.velocity(m); v != (mgl32.Vec3{-5, 0, 0}) {
		t.Fatalf("first bounce: %v", v)
	}

	s.steer(m, mgl32.Vec3{5, 0, 0})
	c.Update(16 * time.Millisecond)
	if v := s.velocity(m); v != (mgl32.Vec3{5, 0, 0}) {
		t.Fatalf("same cube bounced twice: %v", v)
	}

	s.place(m, mgl32.Vec3{19.6, 1.5, 0.5})
	c.Update(16 * time.Millisecond)
	if v := s.velocity(m); v != (mgl32.Vec3{-5, 0, 0}) {
		t.Fatalf("edge: %v", v)
	}

	s.place(m, by)
	s.steer(m, mgl32.Vec3{5, 0, 0})
	c.Update(16 * time.Millisecond)
	if v := s.velocity(m); v != (mgl32.Vec3{-5, 0, 0}) {
		t.Fatalf("bounce after the edge suppressed: %v", v)
	}
}

func TestResetForgetsCaches(t *testing.T) {
	s := newTestState(t)
	a := s.hostile(component.Ball, mgl32.Vec3{0.2, 1.5, 17.2}, mgl32.Vec3{1, 0, 5})
	c := s.collision()

	c.Update(16 * time.Millisecond)
	if len(c.latest) != 1 {
		t.Fatalf("latest = %v", c.latest)
	}
	b := s.hostile(component.Ball, mgl32.Vec3{1.2, 1.5, 15.5}, mgl32.Vec3{})
	c.Update(16 * time.Millisecond)
	if len(c.lastHit) != 2 {
		t.Fatalf("lastHit = %v", c.lastHit)
	}

	c.Reset()
	if len(c.lastHit) != 0 || len(c.latest) != 0 {
		t.Fatalf("caches kept: lastHit=%v latest=%v", c.lastHit, c.latest)
	}
	// the clock has not moved, so only a cleared ledger lets the pair swap
	s.steer(a, mgl32.Vec3{1, 0, 5})
	c.Update(16 * time.Millisecond)
	if v := s.velocity(b); v != (mgl32.Vec3{1, 0, 5}) {
		t.Fatalf("b = %v, want a's velocity after a fresh swap", v)
	}
}
