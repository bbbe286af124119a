// Package territory tracks the player's trail across the arena grid and
// turns closed trails into claimed territory.
//
// A trail starts when the player steps from Filled onto an Open cell and
// grows while the player stays on Open or Pending cells. Stepping back onto
// Filled territory closes it: the trail is committed and the regions on
// either side are flood filled unless a hostile sits inside.
package territory

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/ecs"
	"github.com/qixgo/arena/internal/core/event"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

// Tracker owns the grid and all trail state of one session.
// Single-goroutine access only (frame loop).
type Tracker struct {
	grid *grid.Grid
	park mgl32.Vec3
	bus  *event.Bus
	log  *zap.Logger

	// filled lazily from the world on the first frame with a player
	populated bool
	cubes     []ecs.EntityID // index x*n+z, NoEntity where the scene has no cube
	hostiles  []ecs.EntityID
	pool      MarkerPool

	// enclosure scratch, shared by both seeds of one pass
	visited  []bool
	occupied []bool
	stack    []frame
	queue    []grid.Cell

	trail   []grid.Cell
	start   grid.Cell
	prev    grid.Cell // last Filled cell the player stood on
	end     grid.Cell // last trail cell
	seeds   [2]grid.Cell
	heading Direction
}

func New(cfg config.ArenaConfig, bus *event.Bus, log *zap.Logger) *Tracker {
	n := cfg.GridDimension
	t := &Tracker{
		grid:     grid.New(n, cfg.BorderWidth),
		park:     cfg.MarkerPark,
		bus:      bus,
		log:      log,
		cubes:    make([]ecs.EntityID, n*n),
		visited:  make([]bool, n*n),
		occupied: make([]bool, n*n),
	}
	t.clearTrail()
	t.prev = grid.None
	return t
}

func (t *Tracker) Grid() *grid.Grid { return t.grid }

// IsBuilding reports whether a trail is in progress.
func (t *Tracker) IsBuilding() bool { return !t.start.IsNone() }

// CoveredPercentage recomputes the claimed share from the grid.
func (t *Tracker) CoveredPercentage() float64 { return t.grid.Coverage() }

// Heading is the direction of the first step of the current trail.
func (t *Tracker) Heading() Direction { return t.heading }

// Trail returns the cells of the current trail in the order walked.
func (t *Tracker) Trail() []grid.Cell { return t.trail }

// Seeds returns the flood fill seeds chosen so far (grid.None if unset).
func (t *Tracker) Seeds() [2]grid.Cell { return t.seeds }

// Markers returns the marker entities currently standing on the trail.
func (t *Tracker) Markers() []ecs.EntityID { return t.pool.Occupied() }

// CubeAt returns the cube entity of c, or NoEntity.
func (t *Tracker) CubeAt(c grid.Cell) ecs.EntityID {
	if !t.grid.InBounds(c) {
		return ecs.NoEntity
	}
	return t.cubes[t.index(c)]
}

// Update advances the trail state machine by one frame. It does nothing
// until the world has a player.
func (t *Tracker) Update(ws *world.State) {
	_, _, tr, ok := ws.Player()
	if !ok {
		return
	}
	if !t.populated {
		t.populate(ws)
	}

	cur := t.grid.CellOf(tr.Position.X(), tr.Position.Z())
	if t.grid.At(cur) != grid.Filled {
		t.extend(ws, cur)
		return
	}

	t.prev = cur
	if t.IsBuilding() && t.start != cur {
		t.enclose(ws)
	}
}

func (t *Tracker) extend(ws *world.State, cur grid.Cell) {
	if !t.IsBuilding() {
		t.start = cur
		t.heading = Heading(t.prev, cur)
		t.log.Debug("trail started",
			zap.Int("x", cur.X), zap.Int("z", cur.Z), zap.Stringer("heading", t.heading))
		event.Emit(t.bus, event.TrailStarted{X: cur.X, Z: cur.Z, Heading: t.heading.String()})
	}

	if t.grid.At(cur) == grid.Open {
		t.trail = append(t.trail, cur)
		t.placeMarker(ws, cur)
	}

	// walking over a seed invalidates both; they are recomputed below
	if t.seeds[0] == cur || t.seeds[1] == cur {
		t.seeds = [2]grid.Cell{grid.None, grid.None}
	}
	if t.end.IsNone() {
		t.end = t.prev
	}
	t.setSeeds(Heading(t.end, cur), cur)
	t.end = cur
	t.grid.Set(cur, grid.Pending)
}

// setSeeds picks the Open cells on both sides of cur, perpendicular to dir.
// It only runs while at least one seed is unset.
func (t *Tracker) setSeeds(dir Direction, cur grid.Cell) {
	if !t.seeds[0].IsNone() && !t.seeds[1].IsNone() {
		return
	}
	a, b := grid.Cell{X: cur.X, Z: cur.Z + 1}, grid.Cell{X: cur.X, Z: cur.Z - 1}
	if dir.Vertical() {
		a, b = grid.Cell{X: cur.X + 1, Z: cur.Z}, grid.Cell{X: cur.X - 1, Z: cur.Z}
	}
	if t.grid.At(a) == grid.Open {
		t.seeds[0] = a
	}
	if t.grid.At(b) == grid.Open {
		t.seeds[1] = b
	}
}

func (t *Tracker) enclose(ws *world.State) {
	trailCells := t.commitTrail(ws)
	if t.seeds[0].IsNone() || t.seeds[1].IsNone() {
		t.setSeeds(Heading(t.end, t.prev), t.prev)
	}

	clear(t.visited)
	t.markHostiles(ws)
	filled, skipped := 0, 0
	for _, seed := range t.seeds {
		if seed.IsNone() {
			continue
		}
		if t.hostileIn(seed) {
			skipped++
			continue
		}
		filled += t.fill(ws, seed)
	}

	covered := t.grid.Coverage()
	t.log.Info("territory claimed",
		zap.Int("trail", trailCells),
		zap.Int("filled", filled),
		zap.Int("skipped_seeds", skipped),
		zap.Float64("covered", covered))
	event.Emit(t.bus, event.TerritoryClaimed{
		TrailCells:  trailCells,
		FilledCells: filled,
		SkippedSeed: skipped,
		Covered:     covered,
	})
	event.Emit(t.bus, event.Sound{Name: event.SoundDrawWall})
	t.clearTrail()
}

// commitTrail turns every Pending trail cell into Filled and parks the
// markers. Returns the number of committed cells.
func (t *Tracker) commitTrail(ws *world.State) int {
	n := 0
	for _, c := range t.trail {
		if t.grid.At(c) != grid.Pending {
			continue
		}
		t.grid.Set(c, grid.Filled)
		t.raiseCube(ws, c)
		n++
	}
	t.parkMarkers(ws)
	return n
}

// DieReset aborts the current trail after the player was hit: pending cells
// go back to Open, markers are parked, one life is taken and the player and
// camera stop moving.
func (t *Tracker) DieReset(ws *world.State) {
	for _, c := range t.trail {
		if t.grid.At(c) == grid.Pending {
			t.grid.Set(c, grid.Open)
		}
	}
	t.parkMarkers(ws)
	t.clearTrail()
	t.prev = grid.None
	ws.Lives--

	ws.Players.Each(func(id ecs.EntityID, _ *component.Player) { ws.StopLinear(id) })
	ws.Cameras.Each(func(id ecs.EntityID, _ *component.Camera) { ws.StopLinear(id) })
	t.log.Info("player died", zap.Int("lives", ws.Lives))
}

// ExitReset drops everything learned from the world and restores the
// bordered grid. Safe to call repeatedly and before the first Update.
func (t *Tracker) ExitReset() {
	t.populated = false
	clear(t.cubes)
	t.hostiles = t.hostiles[:0]
	t.pool.Reset(nil, 0)
	clear(t.visited)
	clear(t.occupied)
	t.grid.Reset()
	t.clearTrail()
	t.prev = grid.None
	t.heading = PosZ
}

func (t *Tracker) clearTrail() {
	t.trail = t.trail[:0]
	t.start = grid.None
	t.end = grid.None
	t.seeds = [2]grid.Cell{grid.None, grid.None}
}

func (t *Tracker) populate(ws *world.State) {
	clear(t.cubes)
	ws.Cubes.Each(func(id ecs.EntityID, c *component.Cube) {
		cell := grid.Cell{X: c.X, Z: c.Z}
		if t.grid.InBounds(cell) {
			t.cubes[t.index(cell)] = id
		}
	})

	var markers []ecs.EntityID
	ws.Markers.Each(func(id ecs.EntityID, _ *component.Marker) {
		if ws.Transforms.Has(id) {
			markers = append(markers, id)
		}
	})
	t.pool.Reset(markers, t.grid.ClaimableCells())

	t.hostiles = t.hostiles[:0]
	ws.Hostiles.Each(func(id ecs.EntityID, _ *component.Hostile) {
		t.hostiles = append(t.hostiles, id)
	})
	t.populated = true
	t.log.Debug("territory caches populated",
		zap.Int("markers", t.pool.Cap()), zap.Int("hostiles", len(t.hostiles)))
}

func (t *Tracker) placeMarker(ws *world.State, c grid.Cell) {
	id, ok := t.pool.Acquire()
	if !ok {
		return
	}
	if tr, found := ws.Transforms.Get(id); found {
		x, z := t.grid.Center(c)
		tr.Position = mgl32.Vec3{x, 0, z}
	}
}

func (t *Tracker) parkMarkers(ws *world.State) {
	for _, id := range t.pool.Occupied() {
		if tr, ok := ws.Transforms.Get(id); ok {
			tr.Position = t.park
		}
	}
	t.pool.Release()
}

func (t *Tracker) raiseCube(ws *world.State, c grid.Cell) {
	id := t.cubes[t.index(c)]
	if id.IsZero() {
		return
	}
	if tr, ok := ws.Transforms.Get(id); ok {
		tr.Position[1] = 0
	}
}

func (t *Tracker) index(c grid.Cell) int { return c.X*t.grid.Dimension() + c.Z }
