package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy configuration.
// Values reproduce the original browser game on a 400x500 canvas.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:  400,
			Height: 500,
		},
		Physics: FlappyPhysics{
			Gravity:     0.5,
			JumpImpulse: -8,
			PipeSpeed:   2,
		},
		Obstacles: FlappyObstacles{
			Width:          50,
			GapHeight:      120,
			SpawnThreshold: 200,
			GapMargin:      20,
		},
		Player: FlappyPlayer{
			X:      50,
			Y:      150,
			Width:  34,
			Height: 24,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
			Bindings: map[string]string{
				"flap":      "chirp",
				"collision": "thud",
				"score":     "coin",
				"game_over": "knell",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}
