// Package scene places a level into an empty world: player, camera, one
// cube per grid cell, the trail marker pool and the hostiles.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/ecs"
	"github.com/qixgo/arena/internal/data"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/world"
)

// Scene names the entities Build created.
type Scene struct {
	Player   ecs.EntityID
	Camera   ecs.EntityID
	Hostiles []ecs.EntityID
	Cubes    int
	Markers  int
}

// Build populates ws. Cubes are created x-major; border cubes stand at
// height 0 and the rest wait at the hidden height. The marker pool holds
// one marker per claimable cell.
func Build(ws *world.State, cfg *config.Config, level *data.Level) *Scene {
	sc := &Scene{}
	p := cfg.Player

	sc.Player = ws.Spawn(p.Spawn)
	ws.Players.Set(sc.Player, &component.Player{Sensitivity: p.Sensitivity, Spawn: p.Spawn})
	ws.Movements.Set(sc.Player, &component.Movement{})

	sc.Camera = ws.Spawn(p.CameraSpawn)
	ws.Cameras.Set(sc.Camera, &component.Camera{Spawn: p.CameraSpawn})
	ws.Movements.Set(sc.Camera, &component.Movement{})

	g := grid.New(cfg.Arena.GridDimension, cfg.Arena.BorderWidth)
	for x := 0; x < g.Dimension(); x++ {
		for z := 0; z < g.Dimension(); z++ {
			c := grid.Cell{X: x, Z: z}
			cx, cz := g.Center(c)
			y := cfg.Arena.HiddenHeight
			if g.IsBorder(c) {
				y = 0
			}
			id := ws.Spawn(mgl32.Vec3{cx, y, cz})
			ws.Cubes.Set(id, &component.Cube{X: x, Z: z})
			sc.Cubes++
		}
	}

	for i := 0; i < g.ClaimableCells(); i++ {
		id := ws.Spawn(cfg.Arena.MarkerPark)
		ws.Markers.Set(id, &component.Marker{})
		sc.Markers++
	}

	for _, h := range level.Hostiles {
		sc.Hostiles = append(sc.Hostiles, SpawnHostile(ws, h, p.MineSpawn))
	}
	return sc
}

// SpawnHostile adds one moving hostile. A mine without its own spawn point
// returns to mineSpawn after a kill; a ball keeps its start position.
func SpawnHostile(ws *world.State, h data.HostileSpec, mineSpawn mgl32.Vec3) ecs.EntityID {
	spawn := h.Position
	switch {
	case h.HasSpawn:
		spawn = h.Spawn
	case h.Kind == component.Mine:
		spawn = mineSpawn
	}
	id := ws.Spawn(h.Position)
	ws.Hostiles.Set(id, &component.Hostile{Kind: h.Kind, Spawn: spawn})
	ws.Movements.Set(id, &component.Movement{Linear: h.Velocity})
	return id
}
