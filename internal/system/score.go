package system

import (
	"time"

	"github.com/qixgo/arena/internal/core/event"
	coresys "github.com/qixgo/arena/internal/core/system"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

// Coverage reports the claimed share of the arena in percent.
type Coverage interface {
	CoveredPercentage() float64
}

// ScoreSystem publishes coverage and decides the session outcome.
// Phase 5 (PostUpdate). Frozen while paused.
type ScoreSystem struct {
	ws     *world.State
	cover  Coverage
	bus    *event.Bus
	finish float64
	log    *zap.Logger
}

func NewScoreSystem(ws *world.State, cover Coverage, bus *event.Bus, finish float64, log *zap.Logger) *ScoreSystem {
	return &ScoreSystem{ws: ws, cover: cover, bus: bus, finish: finish, log: log}
}

func (s *ScoreSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }
func (s *ScoreSystem) Pausable() bool       { return true }

func (s *ScoreSystem) Update(_ time.Duration) {
	s.ws.Covered = s.cover.CoveredPercentage()
	s.ws.Progress = min(s.ws.Covered/s.finish*100, 100)
	if s.ws.Outcome != world.Playing {
		return
	}

	switch {
	case s.ws.Covered >= s.finish:
		s.ws.Outcome = world.Won
		s.log.Info("level complete", zap.Float64("covered", s.ws.Covered), zap.Uint64("frame", s.ws.Frame))
		event.Emit(s.bus, event.LevelComplete{Covered: s.ws.Covered})
		event.Emit(s.bus, event.Sound{Name: event.SoundWinLaugh})
	case s.ws.Lives <= 0:
		s.ws.Outcome = world.Lost
		s.log.Info("game over", zap.Float64("covered", s.ws.Covered), zap.Uint64("frame", s.ws.Frame))
		event.Emit(s.bus, event.GameOver{Covered: s.ws.Covered})
	}
}
