package territory

import (
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/world"
)

// steps is the neighbor visit order of both traversals: +x, -x, +z, -z.
var steps = [4]grid.Cell{{X: 1}, {X: -1}, {Z: 1}, {Z: -1}}

// frame is one level of the explicit depth-first stack: the cell and the
// next neighbor to try.
type frame struct {
	c    grid.Cell
	next uint8
}

// markHostiles records the current cell of every hostile. Positions do not
// change during an enclosure pass, so one snapshot serves both seeds.
func (t *Tracker) markHostiles(ws *world.State) {
	clear(t.occupied)
	for _, id := range t.hostiles {
		pos, ok := ws.Position(id)
		if !ok {
			continue
		}
		t.occupied[t.index(t.grid.CellOf(pos.X(), pos.Z()))] = true
	}
}

// enter marks c visited if the dry run may step on it.
func (t *Tracker) enter(c grid.Cell) bool {
	if !t.grid.InBounds(c) {
		return false
	}
	i := t.index(c)
	if t.visited[i] || t.grid.At(c) != grid.Open {
		return false
	}
	t.visited[i] = true
	return true
}

// hostileIn explores the Open region around seed depth first and reports
// whether a hostile stands in it. It stops at the first hostile found.
//
// The visited set is shared by both seeds of one enclosure pass and only
// cleared when the pass starts, so cells seen from the first seed are not
// examined again from the second. The stack replays the recursive order
// (+x, -x, +z, -z, early exit) exactly, because which cells end up marked
// decides what the second seed can still reach.
func (t *Tracker) hostileIn(seed grid.Cell) bool {
	if !t.enter(seed) {
		return false
	}
	if t.occupied[t.index(seed)] {
		return true
	}
	t.stack = append(t.stack[:0], frame{c: seed})
	for len(t.stack) > 0 {
		top := &t.stack[len(t.stack)-1]
		if top.next == uint8(len(steps)) {
			t.stack = t.stack[:len(t.stack)-1]
			continue
		}
		d := steps[top.next]
		top.next++
		nb := grid.Cell{X: top.c.X + d.X, Z: top.c.Z + d.Z}
		if !t.enter(nb) {
			continue
		}
		if t.occupied[t.index(nb)] {
			return true
		}
		t.stack = append(t.stack, frame{c: nb})
	}
	return false
}

// fill claims the 4-connected Open region containing seed and returns the
// number of cells claimed.
func (t *Tracker) fill(ws *world.State, seed grid.Cell) int {
	if t.grid.At(seed) != grid.Open {
		return 0
	}
	n := 0
	claim := func(c grid.Cell) {
		t.grid.Set(c, grid.Filled)
		t.raiseCube(ws, c)
		t.queue = append(t.queue, c)
		n++
	}
	t.queue = t.queue[:0]
	claim(seed)
	for len(t.queue) > 0 {
		c := t.queue[len(t.queue)-1]
		t.queue = t.queue[:len(t.queue)-1]
		for _, d := range steps {
			nb := grid.Cell{X: c.X + d.X, Z: c.Z + d.Z}
			if t.grid.At(nb) == grid.Open {
				claim(nb)
			}
		}
	}
	return n
}
