package territory

import "github.com/qixgo/arena/internal/grid"

// Direction is the four-way heading of a single trail step.
type Direction uint8

const (
	PosZ Direction = iota
	NegZ
	NegX
	PosX
)

func (d Direction) String() string {
	switch d {
	case PosZ:
		return "+z"
	case NegZ:
		return "-z"
	case NegX:
		return "-x"
	case PosX:
		return "+x"
	}
	return "?"
}

// Vertical reports whether d runs along the z axis.
func (d Direction) Vertical() bool { return d == PosZ || d == NegZ }

// Heading classifies the step from -> to. Equal X is tested first, so a
// step that changes neither coordinate reads as PosZ and a diagonal step
// reads as an X step. Trail steps move one cell at a time, so neither case
// is expected; both are left as they fall out of the comparisons.
func Heading(from, to grid.Cell) Direction {
	if from.X == to.X {
		if from.Z > to.Z {
			return NegZ
		}
		return PosZ
	}
	if from.X > to.X {
		return NegX
	}
	return PosX
}
