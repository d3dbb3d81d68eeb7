package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	flagConfig string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (flappy when omitted).

Controls:
  Space/Up/Click - Flap
  P/Esc          - Pause
  R/Click        - Restart (after game over)
  Ctrl+S         - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C       - Quit

Game settings are read from --config, ~/.arcade/configs/flappy.yaml or
./configs/flappy.yaml, then overridden by FLAPPY_* environment variables
(e.g. FLAPPY_PHYSICS_GRAVITY=0.4, FLAPPY_AUDIO_ENABLED=false).

Examples:
  arcade play
  arcade play flappy --seed 42
  arcade play --config ./my-flappy.yaml
  arcade play --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	}
}

// prepareGame applies the config flags and returns the loaded config.
// A broken config fails here, before the screen is taken over.
func prepareGame(gameID string) (config.FlappyConfig, error) {
	if !registry.Exists(gameID) {
		return config.FlappyConfig{}, fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	flappy.SetConfigPath(flagConfig)
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	return cfg, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := gameArg(args)

	gameCfg, err := prepareGame(gameID)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "arcade")
	if err != nil {
		return err
	}
	defer closeLog()
	flappy.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	deps, closeStore := openDeps(logger)
	defer closeStore()
	deps.Sink = audio.Open(gameCfg.Audio, logger)
	defer audio.Close(deps.Sink)

	if err := tui.Run(game, deps, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
