package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Arena    ArenaConfig    `toml:"arena"`
	Hitbox   HitboxConfig   `toml:"hitbox"`
	Player   PlayerConfig   `toml:"player"`
	Frame    FrameConfig    `toml:"frame"`
	Audio    AudioConfig    `toml:"audio"`
	Input    InputConfig    `toml:"input"`
	Level    LevelConfig    `toml:"level"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ArenaConfig struct {
	GridDimension    int        `toml:"grid_dimension"`
	BorderWidth      int        `toml:"border_width"`
	Length           float32    `toml:"length"`            // half-extent the player may move in
	FinishPercentage float64    `toml:"finish_percentage"` // covered % that wins the level
	HiddenHeight     float32    `toml:"hidden_height"`     // y of unclaimed territory cubes
	MarkerPark       mgl32.Vec3 `toml:"marker_park"`       // where retired trail markers wait
}

// HitboxConfig holds squared distances on the horizontal plane.
type HitboxConfig struct {
	EnemyEnemy        float32       `toml:"enemy_enemy"`
	EnemyPlayer       float32       `toml:"enemy_player"`
	EnemyLine         float32       `toml:"enemy_line"`
	BallCube          float32       `toml:"ball_cube"`
	MineCube          float32       `toml:"mine_cube"`
	CollisionCooldown time.Duration `toml:"collision_cooldown"`
}

type PlayerConfig struct {
	Spawn        mgl32.Vec3 `toml:"spawn"`
	CameraSpawn  mgl32.Vec3 `toml:"camera_spawn"`
	MineSpawn    mgl32.Vec3 `toml:"mine_spawn"`
	Lives        int        `toml:"lives"`
	Sensitivity  mgl32.Vec3 `toml:"sensitivity"`   // units per second while idle
	AutoSpeed    float32    `toml:"auto_speed"`    // assist speed while building a trail
	CameraFollow float32    `toml:"camera_follow"` // camera share of player motion
}

type FrameConfig struct {
	Rate     time.Duration `toml:"rate"`
	MaxDelta time.Duration `toml:"max_delta"`                     // larger frames are skipped by movement
	Limit    uint64        `toml:"limit" env:"ARENA_FRAME_LIMIT"` // 0 runs until the session ends
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled" env:"ARENA_AUDIO"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // beep effects.Volume base-2 exponent
}

type InputConfig struct {
	HoldWindow time.Duration `toml:"hold_window"` // terminals send no key-up events
	Script     string        `toml:"script" env:"ARENA_SCRIPT"`
	Headless   bool          `toml:"headless" env:"ARENA_HEADLESS"` // scripted runs without a screen
}

type LevelConfig struct {
	Path   string `toml:"path" env:"ARENA_LEVEL"`
	Player string `toml:"player" env:"ARENA_PLAYER"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn" env:"ARENA_DSN"` // empty disables persistence
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"ARENA_LOG_LEVEL"`
	Format string `toml:"format" env:"ARENA_LOG_FORMAT"` // "json" or "console"
	File   string `toml:"file" env:"ARENA_LOG_FILE"`     // terminal runs default to arena.log
}

// Load reads path over the defaults and applies ARENA_* overrides.
// A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	a := c.Arena
	if a.BorderWidth < 1 {
		return fmt.Errorf("%w: border_width %d < 1", ErrInvalid, a.BorderWidth)
	}
	if a.GridDimension < 2*a.BorderWidth+3 {
		return fmt.Errorf("%w: grid_dimension %d too small for border %d", ErrInvalid, a.GridDimension, a.BorderWidth)
	}
	if a.Length <= 0 {
		return fmt.Errorf("%w: arena length %v", ErrInvalid, a.Length)
	}
	if a.FinishPercentage <= 0 || a.FinishPercentage > 100 {
		return fmt.Errorf("%w: finish_percentage %v", ErrInvalid, a.FinishPercentage)
	}
	h := c.Hitbox
	for name, v := range map[string]float32{
		"enemy_enemy":  h.EnemyEnemy,
		"enemy_player": h.EnemyPlayer,
		"enemy_line":   h.EnemyLine,
		"ball_cube":    h.BallCube,
		"mine_cube":    h.MineCube,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: hitbox %s = %v", ErrInvalid, name, v)
		}
	}
	if c.Player.Lives < 1 {
		return fmt.Errorf("%w: lives %d", ErrInvalid, c.Player.Lives)
	}
	if c.Player.AutoSpeed < 0 {
		return fmt.Errorf("%w: auto_speed %v", ErrInvalid, c.Player.AutoSpeed)
	}
	if c.Player.CameraFollow < 0 {
		return fmt.Errorf("%w: camera_follow %v", ErrInvalid, c.Player.CameraFollow)
	}
	if c.Frame.Rate <= 0 {
		return fmt.Errorf("%w: frame rate %s", ErrInvalid, c.Frame.Rate)
	}
	if c.Frame.MaxDelta <= 0 {
		return fmt.Errorf("%w: max_delta %s", ErrInvalid, c.Frame.MaxDelta)
	}
	return nil
}

// Default returns the reference tuning of the arena.
func Default() *Config {
	return &Config{
		Arena: ArenaConfig{
			GridDimension:    40,
			BorderWidth:      2,
			Length:           19,
			FinishPercentage: 90,
			HiddenHeight:     -3,
			MarkerPark:       mgl32.Vec3{10, -3.05, 15},
		},
		Hitbox: HitboxConfig{
			EnemyEnemy:        5,
			EnemyPlayer:       1,
			EnemyLine:         2.5,
			BallCube:          3,
			MineCube:          1,
			CollisionCooldown: 50 * time.Millisecond,
		},
		Player: PlayerConfig{
			Spawn:        mgl32.Vec3{0, 3, 19},
			CameraSpawn:  mgl32.Vec3{0, 18, 25},
			MineSpawn:    mgl32.Vec3{0, 1.5, -19},
			Lives:        5,
			Sensitivity:  mgl32.Vec3{3, 3, 3},
			AutoSpeed:    20,
			CameraFollow: 0.5,
		},
		Frame: FrameConfig{
			Rate:     16 * time.Millisecond,
			MaxDelta: 100 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 48000,
			Volume:     -1,
		},
		Input: InputConfig{
			HoldWindow: 150 * time.Millisecond,
		},
		Level: LevelConfig{
			Player: "player",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
