package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu [game]",
	Short: "Start the game with a menu and scoreboard",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a round ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, args []string) error {
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

	deps, closeStore := openDeps(logger)
	defer closeStore()
	deps.Sink = audio.Open(gameCfg.Audio, logger)
	defer audio.Close(deps.Sink)

	return tui.RunSession(gameID, deps, runtimeConfig())
}
