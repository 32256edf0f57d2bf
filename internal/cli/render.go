/*
PURPOSE:
  Defines the 'render' subcommand.
  Parses one log and writes the per-epoch charts.

REQUIREMENTS:
  User-specified:
  - One file-path argument; the default path comes from config.
  - Min-time and max-profit charts; averages optional.
  - Non-zero exit on malformed input; diagnostic on count mismatch.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load, parsing or rendering fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  epoch-viz render ./a280-n1395.txt -o charts

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/epoch-viz/internal/config"
	"github.com/daryltucker/epoch-viz/internal/engine"
)

var (
	outputOverride     string
	rendererOverride   string
	formatOverride     string
	ticksOverride      int
	averagesOverride   bool
	meanProfitOverride string
)

var renderCmd = &cobra.Command{
	Use:   "render [log-file]",
	Short: "Render per-epoch charts from an optimizer log",
	Long: `Parses the optimizer log and writes one line chart per metric:
1. minTimes:   the shortest time found in each epoch.
2. maxProfits: the highest profit found in each epoch.
3. aveTimes / aveProfits (with --averages).

Epochs with no candidates, or with only "no solution" sentinel values, are drawn
as "no data" markers. Existing chart files are never overwritten; a versioned
name (e.g. minTimes.1.png) is used instead.`,
	Example: `  # Render the log named in epoch_viz.yaml (or ./a280-n1395.txt)
  epoch-viz render

  # Render a specific log into ./charts as SVG
  epoch-viz render runs/a280-n279.txt -o ./charts --format svg

  # Include averages, using the corrected profit mean
  epoch-viz render runs/a280.txt --averages --mean-profit corrected`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// 2. Overrides
		applyLogFile(cfg, args)
		applyAnalysisOverrides(cmd, cfg)
		if outputOverride != "" {
			cfg.OutputDir = outputOverride
		}
		if rendererOverride != "" {
			cfg.Renderer = rendererOverride
		}
		if formatOverride != "" {
			cfg.Format = formatOverride
		}
		if ticksOverride > 0 {
			cfg.Ticks = ticksOverride
		}

		// 3. Execution
		paths, err := engine.Run(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func applyLogFile(cfg *config.Config, args []string) {
	if len(args) == 1 {
		cfg.LogFile = args[0]
	}
}

// applyAnalysisOverrides handles the flags shared by render and summary.
func applyAnalysisOverrides(cmd *cobra.Command, cfg *config.Config) {
	if meanProfitOverride != "" {
		cfg.MeanProfit = meanProfitOverride
	}
	if cmd.Flags().Changed("averages") {
		cfg.Averages = averagesOverride
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for charts")
	renderCmd.Flags().StringVar(&rendererOverride, "renderer", "", "Chart backend: plot or gochart")
	renderCmd.Flags().StringVar(&formatOverride, "format", "", "Chart format: png, svg or pdf (gochart: png, svg)")
	renderCmd.Flags().IntVar(&ticksOverride, "ticks", 0, "Approximate number of epoch axis ticks")
	renderCmd.Flags().BoolVar(&averagesOverride, "averages", false, "Also render mean time and mean profit charts")
	renderCmd.Flags().StringVar(&meanProfitOverride, "mean-profit", "", "Mean profit computation: legacy (averages times) or corrected")
}
