// Package overlay renders fit-overlay figures: the raw trace, the
// fitted curve over its window, and an optional response template,
// drawn as a 1x2 panel and exported as EPS and PNG.
package overlay

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kelseymh/tracefit"
)

const (
	figWidth  = 8.4 * vg.Inch
	figHeight = 2.8 * vg.Inch
)

// panel describes one of the two overlay panels.
type panel struct {
	logY       bool
	xMin, xMax float64
}

// Save writes {title}-{sensor}_traceFit.eps and .png into dir, where
// title is detname or "Trace" when empty. The template may be nil; it
// is drawn scaled to the trace peak when present.
func Save(dir, detname string, res *tracefit.Result, bins, trc, template []float64) error {
	title := detname
	if title == "" {
		title = "Trace"
	}

	panels := panelsFor(res.Sensor, bins)
	plots := make([]*plot.Plot, len(panels))
	for i, pn := range panels {
		p, err := buildPanel(pn, title, res, bins, trc, template)
		if err != nil {
			return err
		}
		plots[i] = p
	}

	base := filepath.Join(dir, fmt.Sprintf("%s-%s_traceFit", title, res.Sensor))
	if err := writeEPS(base+".eps", plots); err != nil {
		return err
	}
	return writePNG(base+".png", plots)
}

// panelsFor returns the per-sensor panel layout: TES gets a log/linear
// pair over wide and zoomed time ranges, FET a linear/linear pair.
func panelsFor(sensor tracefit.Sensor, bins []float64) [2]panel {
	lo, hi := bins[0], bins[len(bins)-1]
	wide := 3000.0
	if sensor == tracefit.FET {
		wide = 1000
	}
	return [2]panel{
		{logY: sensor == tracefit.TES, xMin: math.Max(-100, lo), xMax: math.Min(wide, hi)},
		{logY: false, xMin: math.Max(-10, lo), xMax: math.Min(300, hi)},
	}
}

func buildPanel(pn panel, title string, res *tracefit.Result, bins, trc, template []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time [us]"
	if res.Sensor == tracefit.FET {
		p.Y.Label.Text = "Amplitude [mV]"
	} else {
		p.Y.Label.Text = "Amplitude [uA]"
	}
	p.X.Min, p.X.Max = pn.xMin, pn.xMax
	if pn.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	if template != nil {
		scale := peak(trc)
		tl, err := line(bins, scaled(template, scale), pn.logY)
		if err != nil {
			return nil, err
		}
		tl.Color = color.Black
		tl.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(tl)
		p.Legend.Add("Template", tl)
	}

	rl, err := line(bins, trc, pn.logY)
	if err != nil {
		return nil, err
	}
	rl.Color = color.RGBA{R: 0xcc, A: 0xff}
	p.Add(rl)
	p.Legend.Add("Simulation", rl)

	w := res.Window
	fit := res.FittedCurve(bins[w.Start:w.End])
	fl, err := line(bins[w.Start:w.End], fit, pn.logY)
	if err != nil {
		return nil, err
	}
	fl.Color = color.RGBA{B: 0xcc, A: 0xff}
	p.Add(fl)
	p.Legend.Add("Fit", fl)

	return p, nil
}

// line builds a plotted line from parallel x/y slices. On a log panel
// non-positive samples are dropped; a log axis cannot place them.
func line(xs, ys []float64, logY bool) (*plotter.Line, error) {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if logY && ys[i] <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	l.Width = vg.Points(1)
	return l, nil
}

func scaled(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * f
	}
	return out
}

func peak(v []float64) float64 {
	m := math.Inf(-1)
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}

func writePNG(path string, plots []*plot.Plot) error {
	img := vgimg.NewWith(vgimg.UseWH(figWidth, figHeight), vgimg.UseDPI(200))
	drawTiled(img, plots)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}

func writeEPS(path string, plots []*plot.Plot) error {
	eps := vgeps.New(figWidth, figHeight)
	drawTiled(eps, plots)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	defer f.Close()

	if _, err := eps.WriteTo(f); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}

// drawTiled lays the panels out side by side on one canvas.
func drawTiled(c vg.CanvasSizer, plots []*plot.Plot) {
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(plots),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	row := make([][]*plot.Plot, 1)
	row[0] = plots
	canvases := plot.Align(row, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}
}
