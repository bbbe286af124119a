package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
)

func TestDefaultLevel(t *testing.T) {
	lv, err := DefaultLevel()
	if err != nil {
		t.Fatalf("DefaultLevel: %v", err)
	}
	if lv.Name != "default" || lv.Count() != 3 {
		t.Fatalf("level = %q with %d hostiles", lv.Name, lv.Count())
	}
	mines := 0
	for _, h := range lv.Hostiles {
		if h.Kind == component.Mine {
			mines++
		}
		if h.Velocity == (mgl32.Vec3{}) {
			t.Errorf("%s at %v does not move", h.Kind, h.Position)
		}
	}
	if mines != 1 {
		t.Fatalf("mines = %d", mines)
	}
}

func TestLoadLevelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.yaml")
	raw := []byte(`
name: two
hostiles:
  - kind: Ball
    position: [1, 1.5, 2]
    velocity: [3, 0, 4]
  - kind: mine
    position: [0, 1.5, -19]
    velocity: [5, 0, 0]
    spawn: [0, 1.5, 19]
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	lv, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lv.Count() != 2 {
		t.Fatalf("count = %d", lv.Count())
	}
	b, m := lv.Hostiles[0], lv.Hostiles[1]
	if b.Kind != component.Ball || b.Position != (mgl32.Vec3{1, 1.5, 2}) || b.HasSpawn {
		t.Fatalf("ball = %+v", b)
	}
	if m.Kind != component.Mine || !m.HasSpawn || m.Spawn != (mgl32.Vec3{0, 1.5, 19}) {
		t.Fatalf("mine = %+v", m)
	}
}

func TestParseLevelErrors(t *testing.T) {
	_, err := ParseLevel([]byte("hostiles:\n  - kind: comet\n    position: [0,0,0]\n    velocity: [0,0,0]\n"))
	if !errors.Is(err, ErrUnknownHostileKind) {
		t.Fatalf("unknown kind err = %v", err)
	}
	if _, err := ParseLevel([]byte("hostiles:\n  - kind: ball\n    position: [0,0]\n    velocity: [0,0,0]\n")); err == nil {
		t.Fatal("short position accepted")
	}
	if _, err := ParseLevel([]byte("hostiles: [")); err == nil {
		t.Fatal("broken yaml accepted")
	}
	if _, err := LoadLevel(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
