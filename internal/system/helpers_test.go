package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/ecs"
	"github.com/qixgo/arena/internal/core/event"
	"github.com/qixgo/arena/internal/data"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/input"
	"github.com/qixgo/arena/internal/scene"
	"github.com/qixgo/arena/internal/territory"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type keys map[input.Key]bool

func (k keys) Held(key input.Key) bool        { return k[key] }
func (k keys) JustPressed(key input.Key) bool { return k[key] }

type building bool

func (b building) IsBuilding() bool { return bool(b) }

type testState struct {
	cfg     *config.Config
	ws      *world.State
	bus     *event.Bus
	tracker *territory.Tracker
	clock   *fakeClock
	sc      *scene.Scene
}

// newTestState builds the reference arena without hostiles.
func newTestState(t *testing.T) *testState {
	t.Helper()
	cfg := config.Default()
	s := &testState{
		cfg:   cfg,
		ws:    world.NewState(cfg.Player.Lives),
		bus:   event.NewBus(),
		clock: &fakeClock{now: time.Unix(1_000, 0)},
	}
	s.tracker = territory.New(cfg.Arena, s.bus, zap.NewNop())
	s.sc = scene.Build(s.ws, cfg, &data.Level{Name: "empty"})
	return s
}

func (s *testState) collision() *CollisionSystem {
	return NewCollisionSystem(s.ws, s.tracker, s.bus, s.clock, s.cfg.Arena, s.cfg.Hitbox, zap.NewNop())
}

func (s *testState) hostile(kind component.HostileKind, pos, vel mgl32.Vec3) ecs.EntityID {
	return scene.SpawnHostile(s.ws, data.HostileSpec{Kind: kind, Position: pos, Velocity: vel}, s.cfg.Player.MineSpawn)
}

func (s *testState) velocity(id ecs.EntityID) mgl32.Vec3 {
	mv, _ := s.ws.Movements.Get(id)
	return mv.Linear
}

func (s *testState) steer(id ecs.EntityID, v mgl32.Vec3) {
	mv, _ := s.ws.Movements.Get(id)
	mv.Linear = v
}

func (s *testState) place(id ecs.EntityID, pos mgl32.Vec3) {
	tr, _ := s.ws.Transforms.Get(id)
	tr.Position = pos
}

// stand puts the player on the center of c and advances the tracker.
func (s *testState) stand(c grid.Cell) {
	x, z := s.tracker.Grid().Center(c)
	s.place(s.sc.Player, mgl32.Vec3{x, 3, z})
	s.tracker.Update(s.ws)
}

func (s *testState) sounds() []string {
	var out []string
	event.Subscribe(s.bus, func(e event.Sound) { out = append(out, e.Name) })
	s.bus.Flush()
	return out
}

func near(a, b mgl32.Vec3) bool { return a.Sub(b).Len() < 1e-4 }
