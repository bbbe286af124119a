package component

// Marker is one reusable trail marker. Markers parked below the floor
// (negative height) are free; raised markers sit on pending trail cells.
type Marker struct{}

// Cube is the visual block standing for one grid cell. Its height tracks
// claim state: 0 when claimed, the configured hidden height otherwise.
type Cube struct {
	X, Z int
}
