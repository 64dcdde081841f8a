package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/bob-anderson-ok/SpanMapViewer/spanmap"
)

var overlayColors = map[string]color.NRGBA{
	"red":   {R: 0xff, A: 0x50},
	"green": {G: 0xc0, A: 0x50},
	"blue":  {B: 0xff, A: 0x50},
}

// spanOverlay is a translucent draggable band over the navigator plot.
// Horizontal drags translate linearly from pixels to signal-axis units
// and move the underlying span, which in turn drives the span-sum
// recomputation through the span's change event.
//
// The pixel mapping assumes the plot area fills the window width; the
// plot frame margins make it slightly coarse, which is acceptable for
// interactive exploration.
type spanOverlay struct {
	widget.BaseWidget
	rect *canvas.Rectangle
	span *spanmap.SpanROI
	log  zerolog.Logger

	axMin, axExtent float64
	areaW, areaH    float32
}

func newSpanOverlay(span *spanmap.SpanROI, colorName string,
	axMin, axExtent float64, areaW, areaH float32, log zerolog.Logger) *spanOverlay {

	fill, ok := overlayColors[colorName]
	if !ok {
		fill = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x50}
	}
	o := &spanOverlay{
		rect:     canvas.NewRectangle(fill),
		span:     span,
		log:      log,
		axMin:    axMin,
		axExtent: axExtent,
		areaW:    areaW,
		areaH:    areaH,
	}
	o.ExtendBaseWidget(o)
	return o
}

func (o *spanOverlay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(o.rect)
}

func (o *spanOverlay) toPixels(coord float64) float32 {
	return float32((coord-o.axMin)/o.axExtent) * o.areaW
}

// reposition places the overlay at the span's current axis range.
func (o *spanOverlay) reposition() {
	lo, hi := o.span.Range()
	left := o.toPixels(lo)
	o.Move(fyne.Position{X: left, Y: 0})
	o.Resize(fyne.Size{Width: o.toPixels(hi) - left, Height: o.areaH})
}

// Dragged implements fyne.Draggable.
func (o *spanOverlay) Dragged(e *fyne.DragEvent) {
	lo, hi := o.span.Range()
	delta := float64(e.Dragged.DX) / float64(o.areaW) * o.axExtent

	// Keep the whole span on the axis.
	if lo+delta < o.axMin {
		delta = o.axMin - lo
	}
	if hi+delta > o.axMin+o.axExtent {
		delta = o.axMin + o.axExtent - hi
	}
	if delta == 0 {
		return
	}

	if err := o.span.SetRange(lo+delta, hi+delta); err != nil {
		o.log.Error().Err(err).Msg("span move rejected")
		return
	}
	o.reposition()
}

// DragEnd implements fyne.Draggable.
func (o *spanOverlay) DragEnd() {
	lo, hi := o.span.Range()
	o.log.Info().Float64("left", lo).Float64("right", hi).Msg("span moved")
}
