// Package term runs the arena in a terminal: a tcell screen for drawing and
// a key pump feeding an input.State.
package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/qixgo/arena/internal/component"
	"github.com/qixgo/arena/internal/core/ecs"
	"github.com/qixgo/arena/internal/game"
	"github.com/qixgo/arena/internal/grid"
	"github.com/qixgo/arena/internal/input"
	"go.uber.org/zap"
)

var (
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFilled  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	stylePending = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleOpen    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBall    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMine    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Terminal owns a tcell screen and the goroutine reading its events.
type Terminal struct {
	screen tcell.Screen
	keys   *input.State
	log    *zap.Logger

	interrupt chan struct{}
	once      sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

// Open initializes the real terminal.
func Open(keys *input.State, log *zap.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return New(screen, keys, log), nil
}

// New wraps an initialized screen and starts the key pump.
func New(screen tcell.Screen, keys *input.State, log *zap.Logger) *Terminal {
	t := &Terminal{
		screen:    screen,
		keys:      keys,
		log:       log,
		interrupt: make(chan struct{}),
		done:      make(chan struct{}),
	}
	screen.HideCursor()
	go t.pump()
	return t
}

// Interrupted is closed when the user presses Ctrl-C.
func (t *Terminal) Interrupted() <-chan struct{} { return t.interrupt }

func (t *Terminal) pump() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				t.once.Do(func() { close(t.interrupt) })
				continue
			}
			if k, ok := KeyOf(ev); ok {
				t.keys.Press(k, ev.When())
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// KeyOf maps a terminal key event to the control vocabulary.
func KeyOf(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEscape:
		return input.KeyEscape, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return input.KeyPause, true
		}
		return input.ParseKey(string(ev.Rune()))
	}
	return 0, false
}

// Draw renders the grid two columns per cell with the player and hostiles
// on top, and a status line below.
func (t *Terminal) Draw(g *game.Game) {
	s := t.screen
	s.Clear()

	gr := g.Tracker().Grid()
	n := gr.Dimension()
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			c := grid.Cell{X: x, Z: z}
			r, st := cellGlyph(gr, c)
			s.SetContent(2*x, z, r, nil, st)
			s.SetContent(2*x+1, z, r, nil, st)
		}
	}

	ws := g.State()
	ws.Hostiles.Each(func(id ecs.EntityID, h *component.Hostile) {
		pos, ok := ws.Position(id)
		if !ok {
			return
		}
		c := gr.CellOf(pos.X(), pos.Z())
		r, st := 'o', styleBall
		if h.Kind == component.Mine {
			r, st = '*', styleMine
		}
		s.SetContent(2*c.X, c.Z, r, nil, st)
	})
	if _, _, tr, ok := ws.Player(); ok {
		c := gr.CellOf(tr.Position.X(), tr.Position.Z())
		s.SetContent(2*c.X, c.Z, '@', nil, stylePlayer)
	}

	status := fmt.Sprintf("covered %5.1f%%  progress %5.1f%%  lives %d  %s",
		ws.Covered, ws.Progress, ws.Lives, ws.Outcome)
	if ws.Paused {
		status += "  [paused]"
	}
	putString(s, 0, n, status, styleStatus)
	s.Show()
}

func cellGlyph(gr *grid.Grid, c grid.Cell) (rune, tcell.Style) {
	switch gr.At(c) {
	case grid.Filled:
		if gr.IsBorder(c) {
			return '█', styleBorder
		}
		return '▓', styleFilled
	case grid.Pending:
		return '░', stylePending
	}
	return '·', styleOpen
}

func putString(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

// Close restores the terminal and waits for the key pump to stop.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		t.screen.Fini()
		select {
		case <-t.done:
		case <-time.After(time.Second):
			t.log.Warn("terminal event pump did not stop")
		}
	})
}
