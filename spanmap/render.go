package spanmap

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
)

// StepTicks is a custom tick marker with fixed step intervals.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

func setPlotFonts(p *plot.Plot) {
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}

// renderToImage draws p into an in-memory image of wPx x hPx pixels.
// A "virtual" size in vg units is mapped to pixels via DPI.
func renderToImage(p *plot.Plot, wPx, hPx float64) image.Image {
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := vgdraw.New(c)
	p.Draw(dc)

	return c.Image()
}

var namedColors = map[string]color.RGBA{
	"red":   {R: 255, A: 255},
	"green": {G: 255, A: 255},
	"blue":  {B: 255, A: 255},
}

// RenderSpectrum plots a 1D spectrum signal (the navigator) as a line
// plot, with each span drawn as a translucent colored band. The band color
// comes from the span's widget attached to sig, falling back to the fixed
// palette by index.
func RenderSpectrum(sig *hyperspec.Signal, spans []*SpanROI, wPx, hPx float64) (image.Image, error) {
	if sig.Axes.SignalDimension() != 1 || sig.Axes.NavigationDimension() != 0 {
		return nil, fmt.Errorf("spectrum rendering requires a 1D signal, have %d signal and %d navigation dimensions",
			sig.Axes.SignalDimension(), sig.Axes.NavigationDimension())
	}

	ax := sig.SignalAxis(0)

	p := plot.New()
	setPlotFonts(p)
	p.Title.Text = sig.Title
	p.X.Label.Text = axisLabel(ax)
	p.Y.Label.Text = "summed counts"
	p.X.Tick.Marker = StepTicks{Step: ax.Extent() / 10, Format: "%.0f"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(sig.Data))
	for i, v := range sig.Data {
		pts[i].X = ax.Coords[i]
		if math.IsNaN(v) {
			v = 0
		}
		pts[i].Y = v
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{A: 255} // black
	p.Add(line)

	// Shade the span ranges.
	yLo, yHi := nanRange(sig.Data)
	for i, span := range spans {
		name := spanColors[i%len(spanColors)]
		for _, w := range span.Widgets() {
			if w.Target == sig {
				name = w.Color
				break
			}
		}
		fill := namedColors[name]
		fill.A = 70

		lo, hi := span.Range()
		band, err := plotter.NewPolygon(plotter.XYs{
			{X: lo, Y: yLo}, {X: hi, Y: yLo}, {X: hi, Y: yHi}, {X: lo, Y: yHi},
		})
		if err != nil {
			return nil, err
		}
		band.Color = fill
		band.LineStyle.Color = namedColors[name]
		band.LineStyle.Width = vg.Points(1)
		p.Add(band)
	}

	return renderToImage(p, wPx, hPx), nil
}

// signalGrid adapts a 2D image signal to the plotter.GridXYZ interface.
// The backing matrix is a zero-copy Dense view over the signal's data.
type signalGrid struct {
	m    *mat.Dense
	x, y *hyperspec.Axis
}

func newSignalGrid(sig *hyperspec.Signal) (*signalGrid, error) {
	if sig.Axes.SignalDimension() != 2 || sig.Axes.NavigationDimension() != 0 {
		return nil, fmt.Errorf("heat map rendering requires a 2D image signal, have %d signal and %d navigation dimensions",
			sig.Axes.SignalDimension(), sig.Axes.NavigationDimension())
	}
	rows := sig.SignalAxis(0)
	cols := sig.SignalAxis(1)
	return &signalGrid{
		m: mat.NewDense(rows.Size(), cols.Size(), sig.Data),
		x: cols,
		y: rows,
	}, nil
}

func (g *signalGrid) Dims() (c, r int) { return g.x.Size(), g.y.Size() }
func (g *signalGrid) X(c int) float64  { return g.x.Coords[c] }
func (g *signalGrid) Y(r int) float64  { return g.y.Coords[r] }

func (g *signalGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// monoPalette ramps from white to a single full-intensity color. It backs
// the Reds/Greens/Blues colormaps of the span images.
type monoPalette struct {
	full color.RGBA
	n    int
}

func (p monoPalette) Colors() []color.Color {
	cols := make([]color.Color, p.n)
	for i := range cols {
		t := float64(i) / float64(p.n-1)
		cols[i] = color.RGBA{
			R: rampChannel(p.full.R, t),
			G: rampChannel(p.full.G, t),
			B: rampChannel(p.full.B, t),
			A: 255,
		}
	}
	return cols
}

func rampChannel(full uint8, t float64) uint8 {
	// Channels at full intensity stay at 255; the others fade from white.
	return uint8(math.Round(255 - t*(255-float64(full))))
}

// paletteByName returns the palette for a colormap name ("Reds", "Greens",
// "Blues"). Unknown names fall back to a grayscale ramp.
func paletteByName(name string) palette.Palette {
	switch name {
	case "Reds":
		return monoPalette{full: namedColors["red"], n: 255}
	case "Greens":
		return monoPalette{full: namedColors["green"], n: 255}
	case "Blues":
		return monoPalette{full: namedColors["blue"], n: 255}
	default:
		return monoPalette{full: color.RGBA{A: 255}, n: 255}
	}
}

// RenderHeatMap plots a 2D image signal as a heat map using the named
// colormap. The display range is a robust percentile stretch over the
// finite values, so hot pixels do not wash out the image.
func RenderHeatMap(sig *hyperspec.Signal, cmap string, wPx, hPx float64) (image.Image, error) {
	grid, err := newSignalGrid(sig)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	setPlotFonts(p)
	p.Title.Text = sig.Title
	p.X.Label.Text = axisLabel(sig.SignalAxis(1))
	p.Y.Label.Text = axisLabel(sig.SignalAxis(0))

	hm := plotter.NewHeatMap(grid, paletteByName(cmap))
	lo, hi, err := percentileStretch(sig.Data, 1.0, 99.0)
	if err == nil {
		hm.Min = lo
		hm.Max = hi
	}
	p.Add(hm)

	return renderToImage(p, wPx, hPx), nil
}

func axisLabel(ax *hyperspec.Axis) string {
	if ax.Units == "" {
		return ax.Name
	}
	return fmt.Sprintf("%s (%s)", ax.Name, ax.Units)
}

// percentileStretch maps pLow and pHigh percentiles of the finite values
// to the display range, clamping outliers.
func percentileStretch(values []float64, pLow, pHigh float64) (lo, hi float64, err error) {
	if !(0 <= pLow && pLow < pHigh && pHigh <= 100) {
		return 0, 0, fmt.Errorf("percentiles must satisfy 0 <= pLow < pHigh <= 100")
	}

	// Collect finite values for percentile computation.
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0, fmt.Errorf("no finite values to stretch")
	}
	sort.Float64s(finite)

	lo = stat.Quantile(pLow/100.0, stat.Empirical, finite, nil)
	hi = stat.Quantile(pHigh/100.0, stat.Empirical, finite, nil)
	if hi == lo {
		hi = lo + 1 // avoid divide-by-zero; image becomes mostly constant
	}
	return lo, hi, nil
}

// nanRange returns the min and max of the finite values, or (0, 1) when
// there are none.
func nanRange(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// ImagePlotter is a headless Plotter that renders every plotted signal to
// an in-memory image, keyed by the signal. It is used by tests and the
// example program; the GUI viewer implements Plotter itself.
type ImagePlotter struct {
	WidthPx, HeightPx float64

	images map[*hyperspec.Signal]image.Image
}

// NewImagePlotter returns an ImagePlotter rendering at the given pixel size.
func NewImagePlotter(wPx, hPx float64) *ImagePlotter {
	return &ImagePlotter{
		WidthPx:  wPx,
		HeightPx: hPx,
		images:   make(map[*hyperspec.Signal]image.Image),
	}
}

// Plot renders sig: spectra as line plots, 2D images as heat maps.
func (ip *ImagePlotter) Plot(sig *hyperspec.Signal, cmap string) error {
	var img image.Image
	var err error
	if sig.Axes.SignalDimension() == 1 && sig.Axes.NavigationDimension() == 0 {
		img, err = RenderSpectrum(sig, nil, ip.WidthPx, ip.HeightPx)
	} else {
		img, err = RenderHeatMap(sig, cmap, ip.WidthPx, ip.HeightPx)
	}
	if err != nil {
		return err
	}
	ip.images[sig] = img
	return nil
}

// Image returns the last rendered image for sig, or nil.
func (ip *ImagePlotter) Image(sig *hyperspec.Signal) image.Image { return ip.images[sig] }

// Count returns the number of signals rendered so far.
func (ip *ImagePlotter) Count() int { return len(ip.images) }
