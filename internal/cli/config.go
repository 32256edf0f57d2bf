package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/epoch-viz/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and supported environment variables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# effective configuration\n%s\n", data)

		help, err := config.EnvHelp()
		if err != nil {
			return fmt.Errorf("failed to describe environment variables: %w", err)
		}
		fmt.Fprintln(out, help)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
