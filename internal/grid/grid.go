// Package grid discretizes the arena floor into a square matrix of cells.
//
// Each cell is Open (unclaimed), Pending (part of the player's unconfirmed
// trail) or Filled (claimed territory). A border band of fixed width is
// Filled from the start and never changes.
package grid

import (
	"math"

	"golang.org/x/crypto/blake2b"
)

// State is the claim state of a cell.
type State uint8

const (
	Open State = iota
	Filled
	Pending
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Filled:
		return "filled"
	case Pending:
		return "pending"
	}
	return "invalid"
}

// Cell addresses a grid position. X follows world x, Z follows world z.
type Cell struct {
	X, Z int
}

// None marks an unset cell (no trail start, no seed).
var None = Cell{X: -1, Z: -1}

func (c Cell) IsNone() bool { return c == None }

// Neighbors reports whether a and b are equal or 4-adjacent.
func Neighbors(a, b Cell) bool {
	return abs(a.X-b.X)+abs(a.Z-b.Z) <= 1
}

// Grid is owned by the frame loop; no locking.
type Grid struct {
	n      int
	border int
	offset float64
	cells  []State // row-major by X, then Z
}

func New(n, border int) *Grid {
	g := &Grid{
		n:      n,
		border: border,
		offset: float64(n-1) / 2,
		cells:  make([]State, n*n),
	}
	g.Reset()
	return g
}

// Reset restores the bordered-initial state: border band Filled, rest Open.
func (g *Grid) Reset() {
	for x := 0; x < g.n; x++ {
		for z := 0; z < g.n; z++ {
			s := Open
			if g.IsBorder(Cell{x, z}) {
				s = Filled
			}
			g.cells[x*g.n+z] = s
		}
	}
}

func (g *Grid) Dimension() int { return g.n }
func (g *Grid) Border() int    { return g.border }

// IsBorder reports whether c lies in the permanent border band.
func (g *Grid) IsBorder(c Cell) bool {
	lo, hi := g.border, g.n-g.border
	return c.X < lo || c.X >= hi || c.Z < lo || c.Z >= hi
}

func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.n && c.Z >= 0 && c.Z < g.n
}

// CellOf maps a horizontal world position to a cell. Positions outside the
// arena clamp to the nearest edge cell.
func (g *Grid) CellOf(x, z float32) Cell {
	return Cell{
		X: g.clamp(int(math.Round(float64(x) + g.offset))),
		Z: g.clamp(int(math.Round(float64(z) + g.offset))),
	}
}

// Center returns the world position of a cell center.
func (g *Grid) Center(c Cell) (x, z float32) {
	return float32(float64(c.X) - g.offset), float32(float64(c.Z) - g.offset)
}

func (g *Grid) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= g.n {
		return g.n - 1
	}
	return i
}

// At returns the state of c. Out-of-bounds cells read as Filled so flood
// fills and seed probes treat the outside as a wall.
func (g *Grid) At(c Cell) State {
	if !g.InBounds(c) {
		return Filled
	}
	return g.cells[c.X*g.n+c.Z]
}

// Set writes the state of c; out-of-bounds writes are dropped.
func (g *Grid) Set(c Cell, s State) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.X*g.n+c.Z] = s
}

// Count returns how many cells are in state s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, v := range g.cells {
		if v == s {
			n++
		}
	}
	return n
}

// BorderCells is the number of cells in the border band.
func (g *Grid) BorderCells() int {
	inner := g.n - 2*g.border
	return g.n*g.n - inner*inner
}

// ClaimableCells is the number of cells inside the border band.
func (g *Grid) ClaimableCells() int {
	inner := g.n - 2*g.border
	return inner * inner
}

// Coverage returns the claimed share of the claimable area in percent.
func (g *Grid) Coverage() float64 {
	claimed := g.Count(Filled) - g.BorderCells()
	return float64(claimed) / float64(g.ClaimableCells()) * 100
}

// Digest fingerprints the cell states, used to compare runs and to tag
// persisted session results.
func (g *Grid) Digest() [32]byte {
	buf := make([]byte, len(g.cells))
	for i, s := range g.cells {
		buf[i] = byte(s)
	}
	return blake2b.Sum256(buf)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
