package spanmap

import (
	"fmt"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
)

// SpanROI is a movable half-open interval [Left, Right) over a spectral
// axis. Moving it fires the Changed event, which drives any bindings that
// were built over it.
type SpanROI struct {
	left, right float64

	// Events holds the ROI's notification sources.
	Events *ROIEvents

	widgets []*SpanWidget
}

// ROIEvents holds the events a SpanROI exposes.
type ROIEvents struct {
	// Changed fires after every successful SetRange call.
	Changed *hyperspec.Event
}

// NewSpanROI builds a span covering [left, right).
func NewSpanROI(left, right float64) (*SpanROI, error) {
	if !(left < right) {
		return nil, fmt.Errorf("invalid span range: left (%g) must be less than right (%g)", left, right)
	}
	return &SpanROI{
		left:   left,
		right:  right,
		Events: &ROIEvents{Changed: hyperspec.NewEvent()},
	}, nil
}

// Range returns the current [left, right) interval.
func (r *SpanROI) Range() (left, right float64) { return r.left, r.right }

// Width returns right - left.
func (r *SpanROI) Width() float64 { return r.right - r.left }

// SetRange moves the span and fires Changed. Only the owning span may
// mutate its range; delivery to subscribers is synchronous and in
// registration order.
func (r *SpanROI) SetRange(left, right float64) error {
	if !(left < right) {
		return fmt.Errorf("invalid span range: left (%g) must be less than right (%g)", left, right)
	}
	r.left = left
	r.right = right
	r.Events.Changed.Trigger()
	return nil
}

// SpanWidget is the overlay attachment of a span to a displayed signal.
// The display layer draws it; removing it closes the bindings registered
// through it, stopping the span's recomputation chain.
type SpanWidget struct {
	ROI    *SpanROI
	Target *hyperspec.Signal
	Color  string

	bindings []*Binding
	removed  bool
}

// AddWidget attaches the span as an interactive overlay on target, drawn
// in the given color. Several spans may overlay the same target.
func (r *SpanROI) AddWidget(target *hyperspec.Signal, color string) *SpanWidget {
	w := &SpanWidget{ROI: r, Target: target, Color: color}
	r.widgets = append(r.widgets, w)
	return w
}

// Widgets returns the widgets attached to this span.
func (r *SpanROI) Widgets() []*SpanWidget { return r.widgets }

// own records a binding whose lifetime follows the widget.
func (w *SpanWidget) own(b *Binding) { w.bindings = append(w.bindings, b) }

// Remove detaches the widget from its span and closes every binding it
// owns. After Remove, moving the span no longer recomputes anything.
func (w *SpanWidget) Remove() {
	if w.removed {
		return
	}
	w.removed = true
	for _, b := range w.bindings {
		b.Close()
	}
	for i, other := range w.ROI.widgets {
		if other == w {
			w.ROI.widgets = append(w.ROI.widgets[:i], w.ROI.widgets[i+1:]...)
			break
		}
	}
}
