// Package spanmap builds interactive span maps over hyperspectral signals:
// a navigator spectrum (the sum over all spatial positions) carrying up to
// three movable spectral-range selectors, each wired to a live 2D image of
// the counts integrated over its current range. Moving a span recomputes
// its image through an explicit, synchronous subscription graph.
package spanmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
)

// MaxSpans is the largest span count PlotSpanMap accepts.
const MaxSpans = 3

// ErrTooManySpans is returned when more than MaxSpans spans are requested.
var ErrTooManySpans = errors.New("maximum number of spans allowed is 3")

// ErrWrongDimensions is returned when the input signal does not have
// exactly 1 signal and 2 navigation dimensions.
var ErrWrongDimensions = errors.New("signal must have 1 signal and 2 navigation dimensions")

// spanColors is the fixed palette, cycled by span index.
var spanColors = []string{"red", "green", "blue"}

// Plotter renders a signal. PlotSpanMap calls it once for the navigator
// (empty cmap) and once per span sum (with the span's colormap name); the
// display layer is expected to subscribe to the signal's events for live
// refresh. A nil Plotter runs the orchestration headless.
type Plotter interface {
	Plot(sig *hyperspec.Signal, cmap string) error
}

// CmapName converts a span color into its colormap name, e.g. "red" to
// "Reds".
func CmapName(color string) string {
	if color == "" {
		return ""
	}
	return strings.ToUpper(color[:1]) + color[1:] + "s"
}

// PlotSpanMap plots a span map of sig.
//
// It computes the navigator allSum (NaN-safe sum over all spatial
// positions), overlays nspans movable spans on it, and wires each span to
// a live 2D image of the counts integrated over the span's current range.
// The initial spans tile adjacent equal-width blocks of extent/(2*nspans)
// starting at the spectral axis minimum. The returned slices are aligned:
// index i in spans, spanSigs and spanSums refers to the same span.
//
// sig must have exactly 1 signal and 2 navigation dimensions; at most
// MaxSpans spans may be requested. Both conditions are checked, in that
// order, before any plotting side effect.
func PlotSpanMap(sig *hyperspec.Signal, nspans int, plt Plotter) (allSum *hyperspec.Signal, spans []*SpanROI, spanSigs, spanSums []*hyperspec.Signal, err error) {
	if nspans > MaxSpans {
		return nil, nil, nil, nil, ErrTooManySpans
	}

	if sig.Axes.SignalDimension() != 1 || sig.Axes.NavigationDimension() != 2 {
		return nil, nil, nil, nil, fmt.Errorf(
			"%w, not %d and %d respectively",
			ErrWrongDimensions, sig.Axes.SignalDimension(), sig.Axes.NavigationDimension())
	}

	axSig := sig.SignalAxis(0)
	spanWidth := axSig.Extent() / (2.0 * float64(nspans))

	allSum = sig.NaNSumNavigation()
	if plt != nil {
		if err := plt.Plot(allSum, ""); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	for i := 0; i < nspans; i++ {
		// Each span gets its own adjacent block of the spectral axis.
		span, err := NewSpanROI(axSig.Min()+float64(i)*spanWidth, axSig.Min()+float64(i+1)*spanWidth)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		spans = append(spans, span)

		color := spanColors[i%len(spanColors)]
		widget := span.AddWidget(allSum, color)

		// spanSig is the live spectral slice of sig under the span.
		slice, err := Bind(func() (*hyperspec.Signal, error) {
			lo, hi := span.Range()
			return sig.SliceSignalRange(lo, hi)
		}, span.Events.Changed)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		widget.own(slice)
		spanSig := slice.Out
		spanSigs = append(spanSigs, spanSig)

		// spanSum is the integral of spanSig over the spectral axis,
		// materialized as a 2D image indexed by the two spatial axes.
		spanSum, err := spanSig.NaNSumSignal().AsSignal2D()
		if err != nil {
			return nil, nil, nil, nil, err
		}
		spanSums = append(spanSums, spanSum)

		if plt != nil {
			if err := plt.Plot(spanSum, CmapName(color)); err != nil {
				return nil, nil, nil, nil, err
			}
		}

		// Whenever any axis of spanSig changes (range edit or underlying
		// data change), recompute the sum in place into spanSum so the
		// displayed image updates without being replaced.
		sum, err := BindInPlace(func() (*hyperspec.Signal, error) {
			flat := spanSig.NaNSumSignal()
			return flat.AsSignal2D()
		}, spanSig.Axes.Events.AnyAxisChanged, spanSum)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		widget.own(sum)
	}

	return allSum, spans, spanSigs, spanSums, nil
}
