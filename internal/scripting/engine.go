package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qixgo/arena/internal/input"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM running a bot script.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine loads a bot script file, or every .lua file of a directory.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	info, err := os.Stat(path)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("bot script: %w", err)
	}
	if info.IsDir() {
		err = e.loadDir(path)
	} else {
		err = e.vm.DoFile(path)
	}
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load bot script %s: %w", path, err)
	}
	return e, nil
}

// NewEngineFromSource loads a bot from Lua source text.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.Close()
		return nil, fmt.Errorf("load bot source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// BotContext is the per-frame view handed to bot_keys.
type BotContext struct {
	Frame    uint64
	X, Z     float32 // player position
	CellX    int
	CellZ    int
	Building bool
	Paused   bool
	Covered  float64
	Lives    int
	Hostiles []HostileView
}

// HostileView is one hostile as the bot sees it.
type HostileView struct {
	Kind string
	X, Z float32
}

// BotKeys calls the Lua bot_keys(ctx) function and returns the keys it
// wants held this frame. A missing function, a script error or a non-table
// result all mean no keys.
func (e *Engine) BotKeys(ctx BotContext) []input.Key {
	fn := e.vm.GetGlobal("bot_keys")
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("z", lua.LNumber(ctx.Z))
	t.RawSetString("cell_x", lua.LNumber(ctx.CellX))
	t.RawSetString("cell_z", lua.LNumber(ctx.CellZ))
	t.RawSetString("building", lua.LBool(ctx.Building))
	t.RawSetString("paused", lua.LBool(ctx.Paused))
	t.RawSetString("covered", lua.LNumber(ctx.Covered))
	t.RawSetString("lives", lua.LNumber(ctx.Lives))

	hostiles := e.vm.NewTable()
	for i, h := range ctx.Hostiles {
		row := e.vm.NewTable()
		row.RawSetString("kind", lua.LString(h.Kind))
		row.RawSetString("x", lua.LNumber(h.X))
		row.RawSetString("z", lua.LNumber(h.Z))
		hostiles.RawSetInt(i+1, row)
	}
	t.RawSetString("hostiles", hostiles)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua bot_keys error", zap.Error(err), zap.Uint64("frame", ctx.Frame))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}
	var keys []input.Key
	rt.ForEach(func(_, v lua.LValue) {
		name := lua.LVAsString(v)
		k, ok := input.ParseKey(name)
		if !ok {
			e.log.Debug("bot returned unknown key", zap.String("key", name))
			return
		}
		keys = append(keys, k)
	})
	return keys
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
