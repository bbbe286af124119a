// Package input turns raw key events into the per-frame held and
// just-pressed queries the gameplay systems read.
package input

import (
	"strings"
	"sync"
	"time"
)

// Key is one entry of the fixed control vocabulary.
type Key uint8

const (
	KeyUp Key = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyPause
)

var keyNames = map[Key]string{
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyEscape: "escape",
	KeyPause:  "pause",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "none"
}

// ParseKey maps a key name to a Key. WASD letters are accepted as aliases
// of the arrow keys. Unknown names return false.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "w":
		return KeyUp, true
	case "down", "s":
		return KeyDown, true
	case "left", "a":
		return KeyLeft, true
	case "right", "d":
		return KeyRight, true
	case "escape", "esc":
		return KeyEscape, true
	case "pause", "p", "space":
		return KeyPause, true
	}
	return 0, false
}

// Source answers the two questions systems ask about the keyboard.
type Source interface {
	Held(k Key) bool
	JustPressed(k Key) bool
}

// State collects key events between frames. Press and Release may be called
// from an event goroutine; Poll is called once per frame by the loop.
//
// Terminals report repeats instead of releases, so a key without an explicit
// Release counts as held until holdWindow passes without a new press.
type State struct {
	holdWindow time.Duration

	mu       sync.Mutex
	lastSeen map[Key]time.Time
	down     map[Key]bool // explicit press without release
	pressed  map[Key]bool // presses since the last Poll

	held map[Key]bool // frame view, written by Poll
	just map[Key]bool
}

func NewState(holdWindow time.Duration) *State {
	return &State{
		holdWindow: holdWindow,
		lastSeen:   make(map[Key]time.Time),
		down:       make(map[Key]bool),
		pressed:    make(map[Key]bool),
		held:       make(map[Key]bool),
		just:       make(map[Key]bool),
	}
}

// Press records a key-down or key-repeat event.
func (s *State) Press(k Key, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.down[k] && !s.recent(k, at) {
		s.pressed[k] = true
	}
	s.lastSeen[k] = at
	if s.holdWindow <= 0 {
		s.down[k] = true
	}
}

// Release records a key-up event.
func (s *State) Release(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.down, k)
	delete(s.lastSeen, k)
}

// Set replaces the held set wholesale. Used by scripted drivers that decide
// the full key state each frame.
func (s *State) Set(keys []Key, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[Key]bool, len(keys))
	for _, k := range keys {
		want[k] = true
		if !s.down[k] {
			s.pressed[k] = true
		}
	}
	for k := range s.down {
		if !want[k] {
			delete(s.down, k)
			delete(s.lastSeen, k)
		}
	}
	for k := range want {
		s.down[k] = true
		s.lastSeen[k] = at
	}
}

// Poll freezes the frame view at now.
func (s *State) Poll(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.held)
	clear(s.just)
	for k := range keyNames {
		if s.down[k] || s.recent(k, now) {
			s.held[k] = true
		}
	}
	for k := range s.pressed {
		s.just[k] = true
	}
	clear(s.pressed)
}

func (s *State) recent(k Key, now time.Time) bool {
	t, ok := s.lastSeen[k]
	return ok && s.holdWindow > 0 && now.Sub(t) < s.holdWindow
}

func (s *State) Held(k Key) bool        { return s.held[k] }
func (s *State) JustPressed(k Key) bool { return s.just[k] }
