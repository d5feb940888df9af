// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visualize

import (
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/symbiflow/ftpvl/evaluation"
	"github.com/symbiflow/ftpvl/style"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartOptions configure BarChart.
type ChartOptions struct {
	// Column is the column to plot.
	Column string

	// Title defaults to Column.
	Title string

	// Format is an image format understood by gonum plot, such as
	// "png" or "svg". It defaults to "png".
	Format string

	// Width and Height default to 8 and 4 inches.
	Width, Height vg.Length

	// Colormap colors each bar by its value relative to the range
	// of the column. It defaults to style.DefaultDiverging.
	Colormap style.Colormap
}

// BarChart draws one bar per row of e for a numeric column. Bars are
// labeled by row label. Rows with missing values get no bar.
func BarChart(w io.Writer, e *evaluation.Evaluation, opts ChartOptions) error {
	t := e.Table()
	vals, err := t.Column(opts.Column)
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = opts.Column
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	if opts.Width == 0 {
		opts.Width = 8 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 4 * vg.Inch
	}
	if opts.Colormap == nil {
		opts.Colormap = style.DefaultDiverging
	}

	xs := make([]float64, len(vals))
	var present []float64
	for i, v := range vals {
		xs[i] = math.NaN()
		if v.IsNA() {
			continue
		}
		f, ok := v.Float()
		if !ok {
			return fmt.Errorf("column %q row %d: %v is not a number", opts.Column, i, v)
		}
		xs[i] = f
		present = append(present, f)
	}
	lo, hi := stats.Bounds(present)

	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = opts.Column
	p.Add(plotter.NewGrid())

	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = rowLabel(t, i)
		if math.IsNaN(x) {
			continue
		}
		bar, err := plotter.NewBarChart(plotter.Values{x}, vg.Points(20))
		if err != nil {
			return err
		}
		pos := 0.5
		if hi > lo {
			pos = (x - lo) / (hi - lo)
		}
		bar.Color = opts.Colormap.At(pos)
		bar.LineStyle.Width = vg.Length(0)
		bar.XMin = float64(i)
		p.Add(bar)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -math.Pi / 8
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.Label.XAlign = draw.XLeft

	wt, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
