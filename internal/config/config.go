// Package config reads game settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/yendor/internal/fov"
	"github.com/samdwyer/yendor/internal/level"
	"github.com/samdwyer/yendor/internal/world"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"YENDOR_SEED" envDefault:"0"`

	MapWidth      int    `env:"YENDOR_MAP_WIDTH"       envDefault:"80"`
	MapHeight     int    `env:"YENDOR_MAP_HEIGHT"      envDefault:"21"`
	RoomBudget    int    `env:"YENDOR_ROOM_BUDGET"     envDefault:"9"`
	Layout        string `env:"YENDOR_LAYOUT"          envDefault:"grid"`
	RoomMinWidth  int    `env:"YENDOR_ROOM_MIN_WIDTH"  envDefault:"6"`
	RoomMaxWidth  int    `env:"YENDOR_ROOM_MAX_WIDTH"  envDefault:"9"`
	RoomMinHeight int    `env:"YENDOR_ROOM_MIN_HEIGHT" envDefault:"4"`
	RoomMaxHeight int    `env:"YENDOR_ROOM_MAX_HEIGHT" envDefault:"7"`

	FOVMode     string `env:"YENDOR_FOV_MODE"     envDefault:"rooms"`
	SightRadius int    `env:"YENDOR_SIGHT_RADIUS" envDefault:"7"`
	MaxDepth    int    `env:"YENDOR_MAX_DEPTH"    envDefault:"26"`

	LogFile   string `env:"YENDOR_LOG_FILE"  envDefault:"yendor.log"`
	Telemetry bool   `env:"YENDOR_TELEMETRY" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a level that can be generated.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.SightRadius < 0 {
		return fmt.Errorf("%w: sight radius %d", ErrInvalidConfig, c.SightRadius)
	}
	if c.MapWidth < 1 || c.MapHeight < 1 {
		return fmt.Errorf("%w: map %dx%d", ErrInvalidConfig, c.MapWidth, c.MapHeight)
	}
	if _, err := fov.ParseMode(c.FOVMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := world.NewGenerator(c.GenParams(), nil).Validate(c.MapWidth, c.MapHeight); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// GenParams returns the dungeon generation settings.
func (c Config) GenParams() world.GenParams {
	p := world.DefaultParams()
	p.Layout = world.Layout(c.Layout)
	p.RoomBudget = c.RoomBudget
	p.Size = world.SizeBounds{
		MinWidth:  c.RoomMinWidth,
		MaxWidth:  c.RoomMaxWidth,
		MinHeight: c.RoomMinHeight,
		MaxHeight: c.RoomMaxHeight,
	}
	return p
}

// SessionOptions returns the level session settings.
func (c Config) SessionOptions() level.Options {
	return level.Options{
		Width:       c.MapWidth,
		Height:      c.MapHeight,
		Gen:         c.GenParams(),
		FOVMode:     fov.Mode(c.FOVMode),
		SightRadius: c.SightRadius,
	}
}
