/*
PURPOSE:
  Draws one labeled line chart per metric: epochs on x, the metric on y.

REQUIREMENTS:
  User-specified:
  - Inputs are epoch identifiers, values, a y-axis label and a legend label.
  - Title "<metric>-Epoch Graph", x label "epoch", about 10 evenly spaced
    epoch ticks, legend shown.

  Implementation-discovered:
  - Epoch identifiers are opaque strings, so the x axis is the epoch
    index and ticks carry the identifier as label.
  - Plotting the 1.8e308 sentinel flattens every real point to zero.
    Epochs without a measurement are drawn as a separate "no data"
    marker series on the chart baseline instead.
  - Charts are written to files (headless friendly); existing files get a
    versioned sibling instead of being overwritten.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: model.Series via NewChart
  - Backends: gonum.org/v1/plot (plot.go), go-chart (gochart.go)

ERROR HANDLING:
  - Returns error for empty charts, unknown backends and I/O failures.

IMPLEMENTATION RULES:
  - Backends only draw. Tick choice, point splitting and file naming live
    here so both backends agree.

USAGE:
  r, err := render.New("plot", render.Options{OutputDir: "."})
  path, err := r.Render(render.NewChart(series))

SELF-HEALING INSTRUCTIONS:
  - If a backend misplaces ticks, check TickIndices first.

RELATED FILES:
  - internal/aggregate/series.go

MAINTENANCE:
  - Add new backends to New().
*/

package render

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/daryltucker/epoch-viz/internal/model"
	"github.com/daryltucker/epoch-viz/internal/output"
)

// ErrEmptyChart is returned when a chart has no epochs at all.
var ErrEmptyChart = errors.New("chart has no epochs")

// MissingLabel is the legend entry of the "no data" marker series.
const MissingLabel = "no data"

// Chart is everything a backend needs to draw one metric.
type Chart struct {
	Title       string
	XLabel      string
	YLabel      string
	SeriesLabel string
	X           []string
	Y           []model.Value
}

// NewChart builds the chart for a metric series.
func NewChart(s model.Series) Chart {
	return Chart{
		Title:       fmt.Sprintf("%s-Epoch Graph", s.Metric),
		XLabel:      "epoch",
		YLabel:      s.Metric,
		SeriesLabel: s.Label,
		X:           s.X(),
		Y:           s.Y(),
	}
}

// Renderer draws a chart and returns the path it wrote.
type Renderer interface {
	Render(c Chart) (string, error)
}

// Options are shared by all backends.
type Options struct {
	OutputDir string
	Format    string
	Width     int
	Height    int
	Ticks     int
}

// Backends lists the names accepted by New.
var Backends = []string{"plot", "gochart"}

// New returns the backend called name.
func New(name string, opts Options) (Renderer, error) {
	if opts.Format == "" {
		opts.Format = "png"
	}
	opts.Format = strings.ToLower(opts.Format)
	if opts.Ticks <= 0 {
		opts.Ticks = 10
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", opts.Width, opts.Height)
	}

	switch strings.ToLower(name) {
	case "", "plot":
		return &PlotRenderer{opts: opts}, nil
	case "gochart":
		if opts.Format != "png" && opts.Format != "svg" {
			return nil, fmt.Errorf("gochart cannot write %q", opts.Format)
		}
		return &GoChartRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (want one of %s)", name, strings.Join(Backends, ", "))
	}
}

// TickIndices returns evenly spaced indices 0, step, 2*step, ... below n,
// with step = max(1, n/want).
func TickIndices(n, want int) []int {
	if n <= 0 {
		return nil
	}
	if want <= 0 {
		want = 10
	}
	step := max(1, n/want)
	idx := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	return idx
}

// xy is one drawable point.
type xy struct {
	X, Y float64
}

// split separates measured points from epochs without a measurement.
// Missing epochs are placed on the baseline (lowest measured value, 0 if
// nothing was measured).
func split(c Chart) (measured, missing []xy) {
	baseline := math.Inf(1)
	for i, v := range c.Y {
		if v.Valid() {
			measured = append(measured, xy{X: float64(i), Y: v.V})
			baseline = math.Min(baseline, v.V)
		}
	}
	if math.IsInf(baseline, 1) {
		baseline = 0
	}
	for i, v := range c.Y {
		if !v.Valid() {
			missing = append(missing, xy{X: float64(i), Y: baseline})
		}
	}
	return measured, missing
}

// yRange returns bounds covering every drawn point, padded when flat.
func yRange(points ...[]xy) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, ps := range points {
		for _, p := range ps {
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.05, 1)
		return lo - pad, hi + pad
	}
	return lo, hi
}

func validate(c Chart) error {
	if len(c.X) == 0 {
		return fmt.Errorf("%s: %w", c.YLabel, ErrEmptyChart)
	}
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("%s: %d epochs but %d values", c.YLabel, len(c.X), len(c.Y))
	}
	return nil
}

// create opens a fresh file for the chart under opts.OutputDir.
func create(opts Options, c Chart) (*os.File, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.OutputDir, err)
	}
	path := filepath.Join(opts.OutputDir, c.YLabel+"."+opts.Format)
	f, err := output.CreateVersioned(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	return f, nil
}

// finish closes f and removes it if drawing failed.
func finish(f *os.File, drawErr error) (string, error) {
	closeErr := f.Close()
	if drawErr == nil {
		drawErr = closeErr
	}
	if drawErr != nil {
		os.Remove(f.Name())
		return "", drawErr
	}
	return f.Name(), nil
}
