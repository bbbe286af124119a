package system

import (
	"time"

	"github.com/qixgo/arena/internal/core/event"
	coresys "github.com/qixgo/arena/internal/core/system"
)

// DispatchSystem delivers the events emitted during the previous frame.
// Phase 0 (Dispatch). Runs while paused so queued sounds still play.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.Flush()
}
