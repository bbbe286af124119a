package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/input"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

const bot = `
function bot_keys(ctx)
  if ctx.paused then
    return {}
  end
  if ctx.building then
    return {"left"}
  end
  if #ctx.hostiles > 0 and ctx.hostiles[1].kind == "mine" then
    return {"escape"}
  end
  return {"up", "jump", "d"}
end
`

func TestBotKeys(t *testing.T) {
	e, err := NewEngineFromSource(bot, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	tests := []struct {
		name string
		ctx  BotContext
		want []input.Key
	}{
		{"idle", BotContext{}, []input.Key{input.KeyUp, input.KeyRight}},
		{"building", BotContext{Building: true}, []input.Key{input.KeyLeft}},
		{"paused", BotContext{Paused: true, Building: true}, nil},
		{"mine", BotContext{Hostiles: []HostileView{{Kind: "mine"}}}, []input.Key{input.KeyEscape}},
	}
	for _, tt := range tests {
		got := e.BotKeys(tt.ctx)
		if len(got) != len(tt.want) {
			t.Errorf("%s: keys = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: keys = %v, want %v", tt.name, got, tt.want)
			}
		}
	}
}

func TestBotKeysFallbacks(t *testing.T) {
	e, err := NewEngineFromSource(`x = 1`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if keys := e.BotKeys(BotContext{}); keys != nil {
		t.Fatalf("missing bot_keys returned %v", keys)
	}
	e.Close()

	e, err = NewEngineFromSource(`function bot_keys(ctx) error("boom") end`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if keys := e.BotKeys(BotContext{}); keys != nil {
		t.Fatalf("failing bot_keys returned %v", keys)
	}
}

func TestNewEngineFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bot.lua"), []byte(bot), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if len(e.BotKeys(BotContext{Building: true})) != 1 {
		t.Fatal("bot from directory not loaded")
	}

	if _, err := NewEngine(filepath.Join(dir, "missing.lua"), zap.NewNop()); err == nil {
		t.Fatal("missing script accepted")
	}
	if _, err := NewEngineFromSource("function (", zap.NewNop()); err == nil {
		t.Fatal("syntax error accepted")
	}
}

func TestSnapshot(t *testing.T) {
	ws := world.NewState(3)
	p := ws.Spawn(mgl32.Vec3{0.4, 3, -19})
	ws.Players.Set(p, &component.Player{})
	h := ws.Spawn(mgl32.Vec3{1, 1.5, 2})
	ws.Hostiles.Set(h, &component.Hostile{Kind: component.Mine})
	ws.Frame = 42

	ctx := Snapshot(ws, grid.New(40, 2), true)
	if ctx.Frame != 42 || !ctx.Building || ctx.Lives != 3 {
		t.Fatalf("ctx = %+v", ctx)
	}
	if ctx.CellX != 20 || ctx.CellZ != 1 {
		t.Fatalf("cell = %d,%d", ctx.CellX, ctx.CellZ)
	}
	if len(ctx.Hostiles) != 1 || ctx.Hostiles[0].Kind != "mine" {
		t.Fatalf("hostiles = %+v", ctx.Hostiles)
	}
}
