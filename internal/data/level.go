package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qixgo/arena/internal/component"
	"gopkg.in/yaml.v3"
)

// ErrUnknownHostileKind is returned for a hostile kind the simulation
// cannot run.
var ErrUnknownHostileKind = errors.New("unknown hostile kind")

//go:embed levels/default.yaml
var defaultLevel []byte

// HostileEntry is one hostile as written in a level file.
type HostileEntry struct {
	Kind     string    `yaml:"kind"`
	Position []float32 `yaml:"position"`
	Velocity []float32 `yaml:"velocity"`
	Spawn    []float32 `yaml:"spawn"` // optional; mines default to the configured mine spawn
}

type levelFile struct {
	Name     string         `yaml:"name"`
	Hostiles []HostileEntry `yaml:"hostiles"`
}

// HostileSpec is a validated hostile ready to be placed in the world.
type HostileSpec struct {
	Kind     component.HostileKind
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Spawn    mgl32.Vec3
	HasSpawn bool
}

// Level lists the hostiles of one arena layout.
type Level struct {
	Name     string
	Hostiles []HostileSpec
}

// LoadLevel reads a level YAML file. An empty path loads the built-in level.
func LoadLevel(path string) (*Level, error) {
	if path == "" {
		return DefaultLevel()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(raw)
}

// DefaultLevel returns the level compiled into the binary.
func DefaultLevel() (*Level, error) {
	return ParseLevel(defaultLevel)
}

func ParseLevel(raw []byte) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	lv := &Level{Name: f.Name, Hostiles: make([]HostileSpec, 0, len(f.Hostiles))}
	for i, e := range f.Hostiles {
		h, err := e.parse()
		if err != nil {
			return nil, fmt.Errorf("level %q hostile %d: %w", f.Name, i, err)
		}
		lv.Hostiles = append(lv.Hostiles, h)
	}
	return lv, nil
}

// Count returns the number of hostiles in the level.
func (l *Level) Count() int {
	return len(l.Hostiles)
}

func (e HostileEntry) parse() (HostileSpec, error) {
	var h HostileSpec
	kind, err := ParseHostileKind(e.Kind)
	if err != nil {
		return h, err
	}
	h.Kind = kind
	if h.Position, err = vec3("position", e.Position); err != nil {
		return h, err
	}
	if h.Velocity, err = vec3("velocity", e.Velocity); err != nil {
		return h, err
	}
	if e.Spawn != nil {
		if h.Spawn, err = vec3("spawn", e.Spawn); err != nil {
			return h, err
		}
		h.HasSpawn = true
	}
	return h, nil
}

// ParseHostileKind maps a level file kind name to its HostileKind.
func ParseHostileKind(s string) (component.HostileKind, error) {
	switch strings.ToLower(s) {
	case "ball":
		return component.Ball, nil
	case "mine":
		return component.Mine, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHostileKind, s)
}

func vec3(field string, v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%s needs 3 components, got %d", field, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}
