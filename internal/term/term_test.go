package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/qixgo/arena/internal/audio"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/data"
	"github.com/qixgo/arena/internal/game"
	"github.com/qixgo/arena/internal/input"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
)

func newSim(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("init sim screen: %v", err)
	}
	s.SetSize(80, 42)
	return s
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want input.Key
		ok   bool
	}{
		{tcell.KeyUp, 0, input.KeyUp, true},
		{tcell.KeyLeft, 0, input.KeyLeft, true},
		{tcell.KeyEscape, 0, input.KeyEscape, true},
		{tcell.KeyRune, 'd', input.KeyRight, true},
		{tcell.KeyRune, 'S', input.KeyDown, true},
		{tcell.KeyRune, ' ', input.KeyPause, true},
		{tcell.KeyRune, 'x', 0, false},
		{tcell.KeyTab, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := KeyOf(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone))
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyOf(%v, %q) = %v, %v; want %v, %v", tt.key, tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPumpFeedsInput(t *testing.T) {
	s := newSim(t)
	keys := input.NewState(time.Second)
	term := New(s, keys, zap.NewNop())
	defer term.Close()

	s.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	deadline := time.Now().Add(2 * time.Second)
	for !keys.Held(input.KeyUp) {
		if time.Now().After(deadline) {
			t.Fatal("key press never reached the input state")
		}
		time.Sleep(5 * time.Millisecond)
		keys.Poll(time.Now())
	}

	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	select {
	case <-term.Interrupted():
	case <-time.After(2 * time.Second):
		t.Fatal("ctrl-c did not interrupt")
	}
}

func TestDraw(t *testing.T) {
	s := newSim(t)
	keys := input.NewState(0)
	term := New(s, keys, zap.NewNop())
	defer term.Close()

	level, err := data.DefaultLevel()
	if err != nil {
		t.Fatal(err)
	}
	g := game.New(config.Default(), level, keys, audio.Nop{}, world.SystemClock{}, zap.NewNop())
	term.Draw(g)

	cells, w, _ := s.GetContents()
	at := func(x, y int) rune {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}

	if got := at(0, 0); got != '█' {
		t.Fatalf("corner = %q, want border", got)
	}
	if got := at(2*10, 10); got != '·' {
		t.Fatalf("interior = %q, want open", got)
	}

	_, _, tr, ok := g.State().Player()
	if !ok {
		t.Fatal("no player")
	}
	pc := g.Tracker().Grid().CellOf(tr.Position.X(), tr.Position.Z())
	if got := at(2*pc.X, pc.Z); got != '@' {
		t.Fatalf("player cell = %q, want @", got)
	}

	var status strings.Builder
	for x := 0; x < w; x++ {
		status.WriteRune(at(x, 40))
	}
	if !strings.Contains(status.String(), "lives 5") {
		t.Fatalf("status line = %q", status.String())
	}
}
