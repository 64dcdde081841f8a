package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/rs/zerolog"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
	"github.com/bob-anderson-ok/SpanMapViewer/spanmap"
)

// viewer implements spanmap.Plotter on Fyne windows: the navigator
// spectrum gets one window carrying the draggable span overlays, and each
// span sum gets its own heat map window that refreshes in place whenever
// the span is moved.
type viewer struct {
	app   fyne.App
	log   zerolog.Logger
	title string

	navW, navH float32
	sumSize    float32

	navWindow fyne.Window
	navImage  *canvas.Image
	navSignal *hyperspec.Signal
	sumCount  int
}

func newViewer(a fyne.App, log zerolog.Logger, p ViewerParams) *viewer {
	size := float32(p.WindowSizePixels)
	return &viewer{
		app:     a,
		log:     log,
		title:   p.Title,
		navW:    2 * size,
		navH:    size,
		sumSize: size,
	}
}

// Plot satisfies spanmap.Plotter: 1D spectra become the navigator window,
// 2D images become span-sum windows.
func (v *viewer) Plot(sig *hyperspec.Signal, cmap string) error {
	if sig.Axes.SignalDimension() == 1 && sig.Axes.NavigationDimension() == 0 {
		return v.plotNavigator(sig)
	}
	return v.plotSpanSum(sig, cmap)
}

func (v *viewer) plotNavigator(sig *hyperspec.Signal) error {
	// Spans are drawn by the draggable overlays, not baked into the plot.
	img, err := spanmap.RenderSpectrum(sig, nil, float64(v.navW), float64(v.navH))
	if err != nil {
		return err
	}

	v.navSignal = sig
	v.navImage = canvas.NewImageFromImage(img)
	v.navImage.FillMode = canvas.ImageFillContain

	w := v.app.NewWindow(v.title + " - navigator")
	w.SetPadded(false)
	w.Resize(fyne.Size{Width: v.navW, Height: v.navH})
	w.CenterOnScreen()
	w.SetContent(container.NewStack(v.navImage))
	v.navWindow = w

	v.log.Info().Int("channels", len(sig.Data)).Msg("navigator window created")
	return nil
}

func (v *viewer) plotSpanSum(sig *hyperspec.Signal, cmap string) error {
	img, err := spanmap.RenderHeatMap(sig, cmap, float64(v.sumSize), float64(v.sumSize))
	if err != nil {
		return err
	}
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain

	v.sumCount++
	w := v.app.NewWindow(fmt.Sprintf("%s - span %d (%s)", v.title, v.sumCount-1, cmap))
	w.Resize(fyne.Size{Width: v.sumSize, Height: v.sumSize})
	w.SetContent(container.NewStack(ci))
	w.Show()

	// Refresh the existing canvas whenever the span sum is rewritten in
	// place; drags arrive on the UI goroutine, so this is safe.
	sig.Events.DataChanged.Connect(func() {
		img, err := spanmap.RenderHeatMap(sig, cmap, float64(v.sumSize), float64(v.sumSize))
		if err != nil {
			v.log.Error().Err(err).Msg("span sum re-render failed")
			return
		}
		ci.Image = img
		ci.Refresh()
	})

	v.log.Info().Str("cmap", cmap).Msg("span sum window created")
	return nil
}

// AttachSpans overlays one draggable colored band per span on the
// navigator window. Must be called after PlotSpanMap has plotted the
// navigator.
func (v *viewer) AttachSpans(spans []*spanmap.SpanROI) {
	if v.navWindow == nil || v.navSignal == nil {
		return
	}

	ax := v.navSignal.SignalAxis(0)

	v.navImage.Resize(fyne.Size{Width: v.navW, Height: v.navH})
	objects := []fyne.CanvasObject{v.navImage}
	for _, span := range spans {
		color := "red"
		for _, wdg := range span.Widgets() {
			if wdg.Target == v.navSignal {
				color = wdg.Color
				break
			}
		}
		overlay := newSpanOverlay(span, color, ax.Min(), ax.Extent(), v.navW, v.navH, v.log)
		overlay.reposition()
		objects = append(objects, overlay)
	}

	v.navWindow.SetContent(container.NewWithoutLayout(objects...))
	v.navWindow.Show()
}

// Run hands control to the Fyne event loop.
func (v *viewer) Run() {
	if v.navWindow == nil {
		return
	}
	v.navWindow.ShowAndRun()
}
