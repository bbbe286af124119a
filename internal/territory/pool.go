package territory

import "github.com/qixgo/arena/internal/core/ecs"

// MarkerPool hands out trail marker entities in order. Slots [0, used) are
// on the trail; the rest are parked. Exhaustion is not an error: the trail
// simply stops showing new markers.
type MarkerPool struct {
	ids  []ecs.EntityID
	used int
}

// Reset replaces the pool contents, keeping at most limit entities.
func (p *MarkerPool) Reset(ids []ecs.EntityID, limit int) {
	if len(ids) > limit {
		ids = ids[:limit]
	}
	p.ids = append(p.ids[:0], ids...)
	p.used = 0
}

// Acquire returns the next free marker.
func (p *MarkerPool) Acquire() (ecs.EntityID, bool) {
	if p.used >= len(p.ids) {
		return ecs.NoEntity, false
	}
	id := p.ids[p.used]
	p.used++
	return id, true
}

// Occupied returns the markers currently on the trail. The slice aliases
// the pool and is valid until the next Acquire or Release.
func (p *MarkerPool) Occupied() []ecs.EntityID { return p.ids[:p.used] }

// Release frees every occupied slot.
func (p *MarkerPool) Release() { p.used = 0 }

func (p *MarkerPool) Cap() int  { return len(p.ids) }
func (p *MarkerPool) Used() int { return p.used }
