/*
PURPOSE:
  Defines the root Cobra command for the epoch-viz CLI.
  Handles global flags and shared config/logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Logging flags apply to every subcommand, so they are persistent.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/epoch-viz/main.go
  - Calls: Child commands (render, summary, config)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - Cobra's own error printing is silenced; main.go prints once.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and loadConfig().

RELATED FILES:
  - cmd/epoch-viz/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/epoch-viz/internal/config"
	"github.com/daryltucker/epoch-viz/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	logLevelOverride  string
	logFormatOverride string

	rootCmd = &cobra.Command{
		Use:   "epoch-viz",
		Short: "Per-epoch charts and summaries for optimizer logs",
		Long: `Reads the epoch log written by a multi-objective optimizer run and reports,
for every epoch, the best time and the best profit found (plus averages on request).
Use 'render --help' for chart options and 'summary --help' for tabular output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file, applies global overrides and installs
// the logger. Subcommands apply their own flag overrides afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevelOverride != "" {
		cfg.LogLevel = logLevelOverride
	}
	if logFormatOverride != "" {
		cfg.LogFormat = logFormatOverride
	}
	if _, err := output.Setup(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./epoch_viz.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatOverride, "log-format", "", "log format: text, json, pretty")
}
