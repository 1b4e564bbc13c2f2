// Package config holds the tunables of a terrain run. Values come from the
// defaults, an optional YAML file and flag-style key=value overrides, in that
// order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no config path is
// given.
const EnvPath = "TERRAIN_CONFIG"

// Session tunes one terrain session.
type Session struct {
	TickInterval     time.Duration `yaml:"tick_interval"`
	MaxTicksPerFrame int           `yaml:"max_ticks_per_frame"`
	ProtectRadius    float64       `yaml:"protect_radius"`
	Bounds           float64       `yaml:"bounds"`
	NoiseTimeScale   float64       `yaml:"noise_time_scale"`
}

// Physics tunes the collision collaborator.
type Physics struct {
	Gravity    float64 `yaml:"gravity"`
	PlayerSize float64 `yaml:"player_size"`
}

// Game tunes the level flow around sessions.
type Game struct {
	TimeLimit    time.Duration `yaml:"time_limit"`
	Intermission time.Duration `yaml:"intermission"`
}

// Metrics configures the Prometheus endpoint. An empty address disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Config is the root configuration.
type Config struct {
	Levels   []string `yaml:"levels"`
	LogLevel string   `yaml:"log_level"`
	Session  Session  `yaml:"session"`
	Physics  Physics  `yaml:"physics"`
	Game     Game     `yaml:"game"`
	Metrics  Metrics  `yaml:"metrics"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Session: Session{
			TickInterval:     200 * time.Millisecond,
			MaxTicksPerFrame: 1,
			ProtectRadius:    300,
			Bounds:           1300,
			NoiseTimeScale:   0.05,
		},
		Physics: Physics{
			Gravity:    9.81 * 50,
			PlayerSize: 20,
		},
		Game: Game{
			TimeLimit:    0,
			Intermission: 2 * time.Second,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. When path is
// empty the TERRAIN_CONFIG environment variable is tried; if that is unset
// too the defaults are returned.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// FromMap returns the defaults with the overrides in m applied.
func FromMap(m map[string]string) Config {
	c := DefaultConfig()
	c.Apply(m)
	return c
}

// Apply overrides fields from flag-style key/value pairs. Unknown keys and
// unparsable values are ignored.
func (c *Config) Apply(m map[string]string) {
	if m == nil {
		return
	}
	if v, ok := m["tick_interval"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			c.Session.TickInterval = parsed
		}
	}
	if v, ok := m["max_ticks_per_frame"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Session.MaxTicksPerFrame = parsed
		}
	}
	if v, ok := m["protect_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Session.ProtectRadius = parsed
		}
	}
	if v, ok := m["bounds"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Session.Bounds = parsed
		}
	}
	if v, ok := m["noise_time_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Session.NoiseTimeScale = parsed
		}
	}
	if v, ok := m["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Physics.Gravity = parsed
		}
	}
	if v, ok := m["player_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Physics.PlayerSize = parsed
		}
	}
	if v, ok := m["time_limit"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
			c.Game.TimeLimit = parsed
		}
	}
	if v, ok := m["intermission"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
			c.Game.Intermission = parsed
		}
	}
	if v, ok := m["metrics_addr"]; ok {
		c.Metrics.Addr = v
	}
	if v, ok := m["log_level"]; ok {
		c.LogLevel = v
	}
}

// Validation errors.
var (
	ErrTickInterval = errors.New("session.tick_interval must be positive")
	ErrBounds       = errors.New("session.bounds must be positive")
	ErrPlayerSize   = errors.New("physics.player_size must be positive")
)

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Session.TickInterval <= 0:
		return ErrTickInterval
	case c.Session.Bounds <= 0:
		return ErrBounds
	case c.Physics.PlayerSize <= 0:
		return ErrPlayerSize
	}
	return nil
}
