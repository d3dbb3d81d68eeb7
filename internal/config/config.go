// Package config provides YAML-based game configuration loading for the
// arcade platform, with environment variable overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// FlappyConfig contains all configuration for the Flappy game.
// Distances are world units (the original 400x500 playfield), not terminal cells.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world" envPrefix:"WORLD_"`
	Physics   FlappyPhysics   `yaml:"physics" envPrefix:"PHYSICS_"`
	Obstacles FlappyObstacles `yaml:"obstacles" envPrefix:"OBSTACLES_"`
	Player    FlappyPlayer    `yaml:"player" envPrefix:"PLAYER_"`
	Audio     AudioConfig     `yaml:"audio" envPrefix:"AUDIO_"`
}

// FlappyWorld defines the playfield dimensions.
type FlappyWorld struct {
	Width  float64 `yaml:"width" env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

// FlappyPhysics defines physics parameters for Flappy.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity" env:"GRAVITY"`           // Velocity added per tick
	JumpImpulse float64 `yaml:"jump_impulse" env:"JUMP_IMPULSE"` // Velocity set on jump (negative = up)
	PipeSpeed   float64 `yaml:"pipe_speed" env:"PIPE_SPEED"`     // Obstacle scroll per tick
}

// FlappyObstacles defines obstacle parameters for Flappy.
type FlappyObstacles struct {
	Width          float64 `yaml:"width" env:"WIDTH"`
	GapHeight      float64 `yaml:"gap_height" env:"GAP_HEIGHT"`
	SpawnThreshold float64 `yaml:"spawn_threshold" env:"SPAWN_THRESHOLD"` // Distance the newest obstacle travels before the next spawns
	GapMargin      float64 `yaml:"gap_margin" env:"GAP_MARGIN"`           // Minimum distance between the gap and either bound
}

// FlappyPlayer defines the body's initial pose and hitbox.
type FlappyPlayer struct {
	X      float64 `yaml:"x" env:"X"`
	Y      float64 `yaml:"y" env:"Y"`
	Width  float64 `yaml:"width" env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

// AudioConfig controls the cue player. Bindings map event names
// (flap, collision, score, game_over) to cue names; an empty or "none"
// cue silences that event.
type AudioConfig struct {
	Enabled    bool              `yaml:"enabled" env:"ENABLED"`
	Volume     float64           `yaml:"volume" env:"VOLUME"` // 0.0 - 1.0
	SampleRate int               `yaml:"sample_rate" env:"SAMPLE_RATE"`
	Bindings   map[string]string `yaml:"bindings" env:"BINDINGS"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid flappy config")

// Validate checks that the configuration can produce a playable round:
// positive dimensions and a gap that fits between the margins.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world must have positive size, got %vx%v", ErrInvalidConfig, c.World.Width, c.World.Height)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player hitbox must be positive", ErrInvalidConfig)
	case c.Player.Y <= 0 || c.Player.Y+c.Player.Height >= c.World.Height:
		return fmt.Errorf("%w: player must start inside the world", ErrInvalidConfig)
	case c.Obstacles.Width <= 0 || c.Obstacles.GapHeight <= 0:
		return fmt.Errorf("%w: obstacle width and gap must be positive", ErrInvalidConfig)
	case c.Obstacles.GapMargin < 0:
		return fmt.Errorf("%w: gap margin must not be negative", ErrInvalidConfig)
	case c.Obstacles.GapHeight+2*c.Obstacles.GapMargin > c.World.Height:
		return fmt.Errorf("%w: gap %v with margin %v does not fit in height %v",
			ErrInvalidConfig, c.Obstacles.GapHeight, c.Obstacles.GapMargin, c.World.Height)
	case c.Physics.PipeSpeed <= 0:
		return fmt.Errorf("%w: pipe speed must be positive", ErrInvalidConfig)
	case c.Obstacles.SpawnThreshold <= 0 || c.Obstacles.SpawnThreshold >= c.World.Width:
		return fmt.Errorf("%w: spawn threshold must be in (0, world width)", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be in [0, 1]", ErrInvalidConfig)
	}

	for event := range c.Audio.Bindings {
		if _, ok := core.ParseEventKind(event); !ok {
			return fmt.Errorf("%w: unknown audio binding event %q", ErrInvalidConfig, event)
		}
	}
	return nil
}
