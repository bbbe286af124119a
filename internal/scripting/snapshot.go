package scripting

import (
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/core/ecs"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/world"
)

// Snapshot packs the world into the bot's view. building reports whether a
// trail is in progress.
func Snapshot(ws *world.State, g *grid.Grid, building bool) BotContext {
	ctx := BotContext{
		Frame:    ws.Frame,
		Building: building,
		Paused:   ws.Paused,
		Covered:  ws.Covered,
		Lives:    ws.Lives,
	}
	if _, _, tr, ok := ws.Player(); ok {
		ctx.X, ctx.Z = tr.Position.X(), tr.Position.Z()
		c := g.CellOf(ctx.X, ctx.Z)
		ctx.CellX, ctx.CellZ = c.X, c.Z
	}
	ws.Hostiles.Each(func(id ecs.EntityID, h *component.Hostile) {
		if pos, ok := ws.Position(id); ok {
			ctx.Hostiles = append(ctx.Hostiles, HostileView{Kind: h.Kind.String(), X: pos.X(), Z: pos.Z()})
		}
	})
	return ctx
}
