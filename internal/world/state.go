package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/core/ecs"
)

// Outcome is the session result so far.
type Outcome uint8

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "playing"
}

// State holds the session-scoped world: the ECS container with its component
// stores plus the gameplay counters. Frame loop goroutine only.
type State struct {
	ECS *ecs.World

	Transforms *ecs.PtrComponentStore[component.Transform]
	Movements  *ecs.PtrComponentStore[component.Movement]
	Players    *ecs.PtrComponentStore[component.Player]
	Cameras    *ecs.PtrComponentStore[component.Camera]
	Hostiles   *ecs.PtrComponentStore[component.Hostile]
	Markers    *ecs.PtrComponentStore[component.Marker]
	Cubes      *ecs.PtrComponentStore[component.Cube]

	Lives    int
	Paused   bool
	Covered  float64 // claimed share of the claimable area, percent
	Progress float64 // Covered relative to the finish percentage, percent
	Outcome  Outcome
	Frame    uint64
	Exit     bool // escape was pressed; the driver should end the session
}

func NewState(lives int) *State {
	s := &State{
		ECS:        ecs.NewWorld(),
		Transforms: ecs.NewPtrComponentStore[component.Transform](),
		Movements:  ecs.NewPtrComponentStore[component.Movement](),
		Players:    ecs.NewPtrComponentStore[component.Player](),
		Cameras:    ecs.NewPtrComponentStore[component.Camera](),
		Hostiles:   ecs.NewPtrComponentStore[component.Hostile](),
		Markers:    ecs.NewPtrComponentStore[component.Marker](),
		Cubes:      ecs.NewPtrComponentStore[component.Cube](),
		Lives:      lives,
	}
	s.ECS.Registry().Register(
		s.Transforms, s.Movements, s.Players, s.Cameras,
		s.Hostiles, s.Markers, s.Cubes,
	)
	return s
}

// Player returns the first entity carrying a Player component and a
// Transform. ok is false when the world has no player yet.
func (s *State) Player() (id ecs.EntityID, p *component.Player, t *component.Transform, ok bool) {
	s.Players.Each(func(eid ecs.EntityID, pc *component.Player) {
		if ok {
			return
		}
		if tr, found := s.Transforms.Get(eid); found {
			id, p, t, ok = eid, pc, tr, true
		}
	})
	return id, p, t, ok
}

// Camera returns the first camera entity with a Transform.
func (s *State) Camera() (id ecs.EntityID, c *component.Camera, t *component.Transform, ok bool) {
	s.Cameras.Each(func(eid ecs.EntityID, cc *component.Camera) {
		if ok {
			return
		}
		if tr, found := s.Transforms.Get(eid); found {
			id, c, t, ok = eid, cc, tr, true
		}
	})
	return id, c, t, ok
}

// Position returns the position of id, or false when it has no Transform.
func (s *State) Position(id ecs.EntityID) (mgl32.Vec3, bool) {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return t.Position, true
}

// StopLinear zeroes the linear velocity of id if it moves at all.
func (s *State) StopLinear(id ecs.EntityID) {
	if mv, ok := s.Movements.Get(id); ok {
		mv.Linear = mgl32.Vec3{}
	}
}

// Spawn creates an entity with a Transform at pos.
func (s *State) Spawn(pos mgl32.Vec3) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, component.NewTransform(pos))
	return id
}

// Teardown queues every entity for destruction. The next cleanup pass
// empties the stores.
func (s *State) Teardown() {
	for _, id := range s.Transforms.IDs() {
		s.ECS.MarkForDestruction(id)
	}
}
