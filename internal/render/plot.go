package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotRenderer draws charts with gonum/plot. Width and Height are points.
type PlotRenderer struct {
	opts Options
}

func (r *PlotRenderer) Render(c Chart) (string, error) {
	if err := validate(c); err != nil {
		return "", err
	}

	p, err := r.build(c)
	if err != nil {
		return "", err
	}

	wt, err := p.WriterTo(vg.Length(r.opts.Width), vg.Length(r.opts.Height), r.opts.Format)
	if err != nil {
		return "", fmt.Errorf("failed to prepare %s chart: %w", r.opts.Format, err)
	}

	f, err := create(r.opts, c)
	if err != nil {
		return "", err
	}
	_, err = wt.WriteTo(f)
	return finish(f, err)
}

func (r *PlotRenderer) build(c Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(15)
	p.X.Label.Text = c.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(10)
	p.Y.Label.Text = c.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(10)
	p.Legend.Top = true

	ticks := make([]plot.Tick, 0, r.opts.Ticks+1)
	for _, i := range TickIndices(len(c.X), r.opts.Ticks) {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: c.X[i]})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = 0
	p.X.Max = float64(len(c.X) - 1)

	measured, missing := split(c)
	p.Y.Min, p.Y.Max = yRange(measured, missing)

	if len(measured) > 0 {
		line, err := plotter.NewLine(toXYs(measured))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s line: %w", c.YLabel, err)
		}
		line.Color = plotutil.Color(0)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.SeriesLabel, line)
	}

	if len(missing) > 0 {
		marks, err := plotter.NewScatter(toXYs(missing))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s markers: %w", c.YLabel, err)
		}
		marks.GlyphStyle.Shape = draw.CrossGlyph{}
		marks.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		marks.GlyphStyle.Radius = vg.Points(3)
		p.Add(marks)
		p.Legend.Add(MissingLabel, marks)
	}

	return p, nil
}

func toXYs(points []xy) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}
