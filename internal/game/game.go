// Package game wires one arena session: world state, territory tracker,
// event bus, sound sink and the phase-ordered systems.
package game

import (
	"time"

	"github.com/qixgo/arena/internal/audio"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/event"
	coresys "github.com/qixgo/arena/internal/core/system"
	"github.com/qixgo/arena/internal/data"
	"github.com/qixgo/arena/internal/input"
	"github.com/qixgo/arena/internal/scene"
	"github.com/qixgo/arena/internal/system"
	"github.com/qixgo/arena/internal/territory"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

// Result summarizes a session for persistence and the exit summary.
type Result struct {
	Level   string
	Outcome world.Outcome
	Lives   int
	Covered float64
	Frames  uint64
	Claims  int
	Deaths  int
	Digest  [32]byte
}

// Game owns a session. Frame and Exit must be called from one goroutine.
type Game struct {
	ws      *world.State
	bus     *event.Bus
	tracker *territory.Tracker
	runner  *coresys.Runner
	collide *system.CollisionSystem
	keys    input.Source
	scene   *scene.Scene
	level   string
	log     *zap.Logger

	claims int
	deaths int
	exited bool
	result Result
}

func New(cfg *config.Config, level *data.Level, keys input.Source, sink audio.Sink, clock world.Clock, log *zap.Logger) *Game {
	ws := world.NewState(cfg.Player.Lives)
	bus := event.NewBus()
	tracker := territory.New(cfg.Arena, bus, log.Named("territory"))

	g := &Game{
		ws:      ws,
		bus:     bus,
		tracker: tracker,
		runner:  coresys.NewRunner(),
		keys:    keys,
		scene:   scene.Build(ws, cfg, level),
		level:   level.Name,
		log:     log,
	}

	audio.Attach(bus, sink)
	event.Subscribe(bus, func(event.TerritoryClaimed) { g.claims++ })
	event.Subscribe(bus, func(event.PlayerDied) { g.deaths++ })

	g.runner.Register(system.NewDispatchSystem(bus))
	g.runner.Register(system.NewControllerSystem(ws, keys, tracker, cfg.Arena, cfg.Player))
	g.runner.Register(system.NewTerritorySystem(ws, tracker))
	g.collide = system.NewCollisionSystem(ws, tracker, bus, clock, cfg.Arena, cfg.Hitbox, log.Named("collision"))
	g.runner.Register(g.collide)
	g.runner.Register(system.NewMovementSystem(ws, cfg.Frame.MaxDelta))
	g.runner.Register(system.NewScoreSystem(ws, tracker, bus, cfg.Arena.FinishPercentage, log))
	g.runner.Register(system.NewCleanupSystem(ws.ECS))

	log.Info("session started",
		zap.String("level", level.Name),
		zap.Int("hostiles", len(g.scene.Hostiles)),
		zap.Int("cubes", g.scene.Cubes),
		zap.Int("markers", g.scene.Markers),
		zap.Int("lives", ws.Lives))
	return g
}

func (g *Game) State() *world.State         { return g.ws }
func (g *Game) Tracker() *territory.Tracker { return g.tracker }
func (g *Game) Bus() *event.Bus             { return g.bus }
func (g *Game) Scene() *scene.Scene         { return g.scene }
func (g *Game) Level() string               { return g.level }

// Frame runs one simulation step. Pause and escape are read here so they
// work while the gameplay systems are frozen.
func (g *Game) Frame(dt time.Duration) {
	if g.exited {
		return
	}
	if g.keys.JustPressed(input.KeyEscape) {
		g.ws.Exit = true
	}
	if g.keys.JustPressed(input.KeyPause) {
		g.ws.Paused = !g.ws.Paused
		g.log.Info("pause toggled", zap.Bool("paused", g.ws.Paused))
	}
	g.runner.SetPaused(g.ws.Paused)
	g.runner.Tick(dt)
	g.ws.Frame++
}

// Done reports whether the driver should stop calling Frame.
func (g *Game) Done() bool {
	return g.exited || g.ws.Exit || g.ws.Outcome != world.Playing
}

// Result returns the session summary. After Exit it is frozen.
func (g *Game) Result() Result {
	if g.exited {
		return g.result
	}
	return Result{
		Level:   g.level,
		Outcome: g.ws.Outcome,
		Lives:   g.ws.Lives,
		Covered: g.tracker.CoveredPercentage(),
		Frames:  g.ws.Frame,
		Claims:  g.claims,
		Deaths:  g.deaths,
		Digest:  g.tracker.Grid().Digest(),
	}
}

// Exit ends the session: the tracker is reset, pending events are
// delivered and every entity is destroyed. Safe to call more than once.
func (g *Game) Exit() {
	if g.exited {
		return
	}
	g.runner.TickPhase(coresys.PhaseDispatch, 0)
	g.result = g.Result()
	g.exited = true

	g.tracker.ExitReset()
	g.collide.Reset()
	g.ws.Teardown()
	g.runner.TickPhase(coresys.PhaseCleanup, 0)
	g.log.Info("session ended",
		zap.Stringer("outcome", g.result.Outcome),
		zap.Float64("covered", g.result.Covered),
		zap.Uint64("frames", g.result.Frames),
		zap.Int("claims", g.result.Claims),
		zap.Int("deaths", g.result.Deaths))
}
