package render

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
)

// GoChartRenderer draws charts with go-chart. Width and Height are pixels.
type GoChartRenderer struct {
	opts Options
}

func (r *GoChartRenderer) Render(c Chart) (string, error) {
	if err := validate(c); err != nil {
		return "", err
	}

	ch := r.build(c)
	provider := chart.PNG
	if r.opts.Format == "svg" {
		provider = chart.SVG
	}

	f, err := create(r.opts, c)
	if err != nil {
		return "", err
	}
	if err := ch.Render(provider, f); err != nil {
		return finish(f, fmt.Errorf("failed to render %s chart: %w", c.YLabel, err))
	}
	return finish(f, nil)
}

func (r *GoChartRenderer) build(c Chart) chart.Chart {
	// go-chart rejects zero-width ranges, so a single epoch gets one unit.
	xMax := float64(len(c.X) - 1)
	if xMax == 0 {
		xMax = 1
	}
	ticks := axisTicks(c.X, r.opts.Ticks, xMax)

	measured, missing := split(c)
	lo, hi := yRange(measured, missing)

	series := []chart.Series{}
	if len(measured) > 0 {
		xs, ys := columns(measured)
		series = append(series, chart.ContinuousSeries{
			Name:    c.SeriesLabel,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		})
	}
	if len(missing) > 0 {
		xs, ys := columns(missing)
		series = append(series, chart.ContinuousSeries{
			Name:    MissingLabel,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    chart.ColorRed,
			},
		})
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// axisTicks labels the evenly spaced epochs and adds an unlabeled tick at
// xMax when needed. go-chart takes the x range from the tick values when
// ticks are set, so the last tick must sit on xMax or the trailing epochs
// fall off the axis.
func axisTicks(labels []string, want int, xMax float64) []chart.Tick {
	ticks := []chart.Tick{}
	for _, i := range TickIndices(len(labels), want) {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	if len(ticks) == 0 || ticks[len(ticks)-1].Value < xMax {
		ticks = append(ticks, chart.Tick{Value: xMax})
	}
	return ticks
}

func columns(points []xy) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}
