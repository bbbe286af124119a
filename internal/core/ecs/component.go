package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore is a generic typed store for ECS components.
// Iteration follows insertion order so every system sees the same entity
// order within a frame and across frames.
type PtrComponentStore[T any] struct {
	data  map[EntityID]*T
	order []EntityID
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data:  make(map[EntityID]*T, 256),
		order: make([]EntityID, 0, 256),
	}
}

// Set attaches c to id. Replacing an existing component keeps its position.
func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	if _, ok := s.data[id]; !ok {
		s.order = append(s.order, id)
	}
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	if _, ok := s.data[id]; !ok {
		return
	}
	delete(s.data, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.order)
}

// First returns the earliest-inserted component, if any.
func (s *PtrComponentStore[T]) First() (EntityID, *T, bool) {
	if len(s.order) == 0 {
		return 0, nil, false
	}
	id := s.order[0]
	return id, s.data[id], true
}

// IDs returns a copy of the entity ids in iteration order.
func (s *PtrComponentStore[T]) IDs() []EntityID {
	out := make([]EntityID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.order {
		fn(id, s.data[id])
	}
}

// Clear drops every component without touching the entity pool.
func (s *PtrComponentStore[T]) Clear() {
	clear(s.data)
	s.order = s.order[:0]
}
