package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseDispatch   Phase = iota // 0: deliver last frame's events (sounds, logs)
	PhaseInput                   // 1: player controller
	PhaseTerritory               // 2: trail extension + enclosure
	PhaseCollision               // 3: hostile/territory/trail interactions
	PhaseMovement                // 4: integrate velocities
	PhasePostUpdate              // 5: coverage, win/lose
	PhaseCleanup                 // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseDispatch:
		return "dispatch"
	case PhaseInput:
		return "input"
	case PhaseTerritory:
		return "territory"
	case PhaseCollision:
		return "collision"
	case PhaseMovement:
		return "movement"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Pausable is implemented by systems that stop while gameplay is paused.
// Systems that do not implement it (collision, movement) keep running.
type Pausable interface {
	Pausable() bool
}
