package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagConfigPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the Flappy configuration that a round would use, after the
config file search and FLAPPY_* environment overrides, as YAML.
The output is a valid config file.

Examples:
  arcade config > ~/.arcade/configs/flappy.yaml
  FLAPPY_PHYSICS_GRAVITY=0.3 arcade config
  arcade config --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFlappy(flagConfigPath)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
