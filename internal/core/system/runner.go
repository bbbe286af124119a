package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each frame.
type Runner struct {
	systems []System
	sorted  bool
	paused  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// SetPaused gates Pausable systems on subsequent ticks.
func (r *Runner) SetPaused(paused bool) { r.paused = paused }

func (r *Runner) Paused() bool { return r.paused }

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if r.paused && pausable(s) {
			continue
		}
		s.Update(dt)
	}
}

// TickPhase runs only the systems registered for phase, ignoring pause.
// Used to flush events once more at session exit.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func pausable(s System) bool {
	p, ok := s.(Pausable)
	return ok && p.Pausable()
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		// stable: systems sharing a phase run in registration order
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
