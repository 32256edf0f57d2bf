/*
PURPOSE:
  High-level pipeline: read the optimizer log, parse it, summarize each
  epoch and hand the series to a chart renderer.

REQUIREMENTS:
  User-specified:
  - Malformed markers/candidates stop the run with the line number.
  - A marker/group count mismatch is reported and the run continues on
    the partial data.
  - Empty epochs and sentinel-only epochs show up as "no data", not as
    crashes or zeros.
  - Min-time and max-profit charts always; averages on request.

  Implementation-discovered:
  - The mismatch is both logged and written as a plain diagnostic line,
    so it survives --log-level=error and JSON log pipelines.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/parser, internal/aggregate, internal/render,
    internal/output, internal/config

ERROR HANDLING:
  - Fatal: file I/O, malformed input, invalid config, render failures.
  - Non-fatal (Report.Warnings): count mismatch, empty epochs.

IMPLEMENTATION RULES:
  - Single sequential pass, no goroutines.
  - No state outside the Report; Analyze on an unchanged file is
    idempotent.

USAGE:
  report, err := engine.Analyze(cfg, os.Stderr)
  paths, err := engine.Render(cfg, report, renderer)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/parser/parser.go
  - internal/aggregate/aggregator.go
  - internal/render/render.go

MAINTENANCE:
  - Update Metrics() when new charts are added.
*/

package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/daryltucker/epoch-viz/internal/aggregate"
	"github.com/daryltucker/epoch-viz/internal/config"
	"github.com/daryltucker/epoch-viz/internal/model"
	"github.com/daryltucker/epoch-viz/internal/output"
	"github.com/daryltucker/epoch-viz/internal/parser"
	"github.com/daryltucker/epoch-viz/internal/render"
)

// Report is the outcome of one analysis pass.
type Report struct {
	Path       string
	Lines      int
	Epochs     []model.Epoch
	Summaries  []model.Summary
	Candidates int
	// Warnings holds recoverable conditions: *parser.CountMismatchError
	// and *aggregate.EmptyEpochError values.
	Warnings []error
}

// Mismatch reports whether the log had a marker/group count mismatch.
func (r *Report) Mismatch() bool {
	for _, w := range r.Warnings {
		if errors.Is(w, parser.ErrCountMismatch) {
			return true
		}
	}
	return false
}

// Analyze parses cfg.LogFile and summarizes every epoch.
// Diagnostics for recoverable problems are written to diag (may be nil).
func Analyze(cfg *config.Config, diag io.Writer) (*Report, error) {
	mode, err := aggregate.ParseMeanProfitMode(cfg.MeanProfit)
	if err != nil {
		return nil, err
	}

	output.Logger.Info("Reading log", "path", cfg.LogFile)
	res, err := parser.ParseFile(cfg.LogFile)
	report := &Report{Path: cfg.LogFile}
	switch {
	case err == nil:
	case errors.Is(err, parser.ErrCountMismatch):
		report.Warnings = append(report.Warnings, err)
		output.Logger.Warn("Epoch count mismatch, continuing with partial data", "path", cfg.LogFile, "error", err)
		if diag != nil {
			fmt.Fprintf(diag, "Warning: %s: the number of epochs and objective groups do not match (%v)\n", cfg.LogFile, err)
		}
	default:
		return nil, err
	}

	report.Lines = res.Lines
	report.Epochs = res.Epochs()
	report.Candidates = res.Candidates()
	output.Logger.Info("Parsed log",
		"epochs", len(report.Epochs),
		"candidates", report.Candidates,
		"lines", report.Lines,
	)

	summaries, warnings := aggregate.New(mode).Summarize(report.Epochs)
	for _, w := range warnings {
		output.Logger.Warn("Epoch has no candidates", "error", w)
	}
	for _, s := range summaries {
		if s.MinTime.State == model.NoSolution || s.MaxProfit.State == model.NoSolution {
			output.Logger.Debug("Epoch has only sentinel values", "epoch", s.EpochID, "status", output.Status(s))
		}
	}
	report.Summaries = summaries
	report.Warnings = append(report.Warnings, warnings...)
	output.Logger.Debug("Summarized epochs", "count", len(summaries), "mean_profit", mode)

	return report, nil
}

// Metrics returns the charts to draw for cfg.
func Metrics(cfg *config.Config) []aggregate.Metric {
	if cfg.Averages {
		return aggregate.Metrics
	}
	return []aggregate.Metric{aggregate.MinTime, aggregate.MaxProfit}
}

// NewRenderer builds the configured chart backend.
func NewRenderer(cfg *config.Config) (render.Renderer, error) {
	return render.New(cfg.Renderer, render.Options{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Ticks:     cfg.Ticks,
	})
}

// Render draws every configured metric of report and returns the files
// written, in metric order.
func Render(cfg *config.Config, report *Report, r render.Renderer) ([]string, error) {
	if len(report.Summaries) == 0 {
		return nil, fmt.Errorf("%s: no epochs to chart", report.Path)
	}

	var paths []string
	for _, m := range Metrics(cfg) {
		series := aggregate.Series(report.Summaries, m)
		path, err := r.Render(render.NewChart(series))
		if err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", m, err)
		}
		output.Logger.Info("Chart written", "metric", m.Label(), "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// Run is the full pipeline behind the render command.
func Run(cfg *config.Config, diag io.Writer) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	report, err := Analyze(cfg, diag)
	if err != nil {
		return nil, err
	}
	return Render(cfg, report, r)
}
