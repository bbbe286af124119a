package system

import (
	"time"

	coresys "github.com/qixgo/arena/internal/core/system"
	"github.com/qixgo/arena/internal/territory"
	"github.com/qixgo/arena/internal/world"
)

// TerritorySystem advances the trail state machine once per frame.
// Phase 2 (Territory). Frozen while paused.
type TerritorySystem struct {
	ws      *world.State
	tracker *territory.Tracker
}

func NewTerritorySystem(ws *world.State, tracker *territory.Tracker) *TerritorySystem {
	return &TerritorySystem{ws: ws, tracker: tracker}
}

func (s *TerritorySystem) Phase() coresys.Phase { return coresys.PhaseTerritory }
func (s *TerritorySystem) Pausable() bool       { return true }

func (s *TerritorySystem) Update(_ time.Duration) {
	s.tracker.Update(s.ws)
}
