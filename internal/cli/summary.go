/*
PURPOSE:
  Defines the 'summary' subcommand.
  Prints the per-epoch statistics instead of drawing them.

REQUIREMENTS:
  User-specified:
  - Same parsing and aggregation rules as 'render'.

  Implementation-discovered:
  - Useful to check a log before rendering, and to diff runs.
  - Output to stdout by default so it pipes into other tools.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Analyze()
  - Uses: internal/output writers

ERROR HANDLING:
  - Malformed logs fail like 'render'; mismatch warnings go to stderr.

IMPLEMENTATION RULES:
  - Simple output to stdout unless --out is given.

USAGE:
  epoch-viz summary runs/a280.txt --format csv

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/table.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daryltucker/epoch-viz/internal/engine"
	"github.com/daryltucker/epoch-viz/internal/model"
	"github.com/daryltucker/epoch-viz/internal/output"
)

var (
	summaryFormat string
	summaryOut    string
)

var summaryCmd = &cobra.Command{
	Use:   "summary [log-file]",
	Short: "Print per-epoch best/mean statistics",
	Example: `  epoch-viz summary runs/a280.txt
  epoch-viz summary runs/a280.txt --format csv --out a280.csv
  epoch-viz summary runs/a280.txt --format json --mean-profit corrected | jq .max_profit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyLogFile(cfg, args)
		applyAnalysisOverrides(cmd, cfg)

		report, err := engine.Analyze(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if summaryOut == "" {
			sw, err := output.NewSummaryWriter(summaryFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return output.WriteSummaries(sw, report.Summaries)
		}

		// Reject a bad format before a versioned file is claimed for it.
		if _, err := output.NewSummaryWriter(summaryFormat, io.Discard); err != nil {
			return err
		}
		f, err := output.CreateVersioned(summaryOut)
		if err != nil {
			return err
		}
		output.Logger.Info("Writing summary", "path", f.Name(), "format", summaryFormat)
		return writeSummaryFile(f, summaryFormat, report.Summaries)
	},
}

// writeSummaryFile writes the summaries to f and closes it. A close error
// is returned unless an earlier error occurred.
func writeSummaryFile(f io.WriteCloser, format string, summaries []model.Summary) (err error) {
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close summary file: %w", cerr)
		}
	}()

	sw, err := output.NewSummaryWriter(format, f)
	if err != nil {
		return err
	}
	return output.WriteSummaries(sw, summaries)
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryFormat, "format", "table", "Output format: table, csv or json")
	summaryCmd.Flags().StringVar(&summaryOut, "out", "", "Write to this file instead of stdout (never overwritten)")
	summaryCmd.Flags().StringVar(&meanProfitOverride, "mean-profit", "", "Mean profit computation: legacy (averages times) or corrected")
}
