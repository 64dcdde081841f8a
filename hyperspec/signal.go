// Package hyperspec provides an in-memory model for hyperspectral data:
// N-dimensional signals with a declared split between navigation (spatial)
// and signal (spectral) axes, NaN-safe reductions along either group,
// half-open spectral slicing, and the change events that derived signals
// subscribe to.
package hyperspec

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyRange is returned when a spectral slice selects no channels.
var ErrEmptyRange = errors.New("spectral range selects no channels")

// Axis is a single named axis with its coordinate array. Coordinates are
// assumed to be strictly increasing.
type Axis struct {
	Name   string
	Units  string
	Coords []float64
}

// NewLinearAxis builds an axis with n evenly spaced coordinates from min to
// max inclusive.
func NewLinearAxis(name, units string, min, max float64, n int) *Axis {
	coords := make([]float64, n)
	if n == 1 {
		coords[0] = min
	} else {
		floats.Span(coords, min, max)
	}
	return &Axis{Name: name, Units: units, Coords: coords}
}

// Size returns the number of coordinates on the axis.
func (a *Axis) Size() int { return len(a.Coords) }

// Min returns the first coordinate on the axis.
func (a *Axis) Min() float64 { return a.Coords[0] }

// Max returns the last coordinate on the axis.
func (a *Axis) Max() float64 { return a.Coords[len(a.Coords)-1] }

// Extent returns Max - Min.
func (a *Axis) Extent() float64 { return a.Max() - a.Min() }

func (a *Axis) clone() *Axis {
	coords := make([]float64, len(a.Coords))
	copy(coords, a.Coords)
	return &Axis{Name: a.Name, Units: a.Units, Coords: coords}
}

// AxesManager holds the axis decomposition of a signal: navigation axes are
// the slow (outer) dimensions of the flat data array, signal axes the fast
// (inner) ones.
type AxesManager struct {
	NavigationAxes []*Axis
	SignalAxes     []*Axis
	Events         *AxesEvents
}

// NewAxesManager builds an axes manager over the given axes.
func NewAxesManager(navAxes, sigAxes []*Axis) *AxesManager {
	return &AxesManager{
		NavigationAxes: navAxes,
		SignalAxes:     sigAxes,
		Events:         newAxesEvents(),
	}
}

// SignalDimension returns the number of signal axes.
func (m *AxesManager) SignalDimension() int { return len(m.SignalAxes) }

// NavigationDimension returns the number of navigation axes.
func (m *AxesManager) NavigationDimension() int { return len(m.NavigationAxes) }

// NavigationSize returns the product of the navigation axis sizes.
func (m *AxesManager) NavigationSize() int { return axesSize(m.NavigationAxes) }

// SignalSize returns the product of the signal axis sizes.
func (m *AxesManager) SignalSize() int { return axesSize(m.SignalAxes) }

func axesSize(axes []*Axis) int {
	size := 1
	for _, ax := range axes {
		size *= ax.Size()
	}
	return size
}

func cloneAxes(axes []*Axis) []*Axis {
	out := make([]*Axis, len(axes))
	for i, ax := range axes {
		out[i] = ax.clone()
	}
	return out
}

// Signal is an N-dimensional array with an axes manager. Data is stored
// flat, row-major, navigation axes first. For a hyperspectral cube with
// navigation axes (row, col) and one signal axis of nch channels the
// element at (r, c, k) lives at (r*cols+c)*nch + k.
type Signal struct {
	Title  string
	Data   []float64
	Axes   *AxesManager
	Events *SignalEvents
}

// NewSignal builds a signal over the given flat data and axes. The data
// length must equal the product of all axis sizes.
func NewSignal(title string, data []float64, navAxes, sigAxes []*Axis) (*Signal, error) {
	want := axesSize(navAxes) * axesSize(sigAxes)
	if len(data) != want {
		return nil, fmt.Errorf("data size mismatch: have %d values, axes require %d", len(data), want)
	}
	return &Signal{
		Title:  title,
		Data:   data,
		Axes:   NewAxesManager(navAxes, sigAxes),
		Events: newSignalEvents(),
	}, nil
}

// SignalAxis returns signal axis i.
func (s *Signal) SignalAxis(i int) *Axis { return s.Axes.SignalAxes[i] }

// NaNSumNavigation sums the signal over all navigation positions, returning
// a signal-shaped result (the navigator). NaN samples contribute 0.
func (s *Signal) NaNSumNavigation() *Signal {
	sigSize := s.Axes.SignalSize()
	out := make([]float64, sigSize)
	for i, v := range s.Data {
		if math.IsNaN(v) {
			continue
		}
		out[i%sigSize] += v
	}
	return &Signal{
		Title:  s.Title,
		Data:   out,
		Axes:   NewAxesManager(nil, cloneAxes(s.Axes.SignalAxes)),
		Events: newSignalEvents(),
	}
}

// NaNSumSignal sums the signal over all signal axes, returning one value
// per navigation position. NaN samples contribute 0.
func (s *Signal) NaNSumSignal() *Signal {
	sigSize := s.Axes.SignalSize()
	navSize := s.Axes.NavigationSize()
	out := make([]float64, navSize)
	for i, v := range s.Data {
		if math.IsNaN(v) {
			continue
		}
		out[i/sigSize] += v
	}
	return &Signal{
		Title:  s.Title,
		Data:   out,
		Axes:   NewAxesManager(cloneAxes(s.Axes.NavigationAxes), nil),
		Events: newSignalEvents(),
	}
}

// AsSignal2D reinterprets a signal holding one value per navigation
// position as a 2D image indexed by the two former navigation axes. The
// backing array is shared, so in-place updates write through.
func (s *Signal) AsSignal2D() (*Signal, error) {
	if s.Axes.NavigationDimension() != 2 || s.Axes.SignalDimension() != 0 {
		return nil, fmt.Errorf("cannot reinterpret as 2D image: have %d navigation and %d signal dimensions",
			s.Axes.NavigationDimension(), s.Axes.SignalDimension())
	}
	return &Signal{
		Title:  s.Title,
		Data:   s.Data,
		Axes:   NewAxesManager(nil, cloneAxes(s.Axes.NavigationAxes)),
		Events: newSignalEvents(),
	}, nil
}

// SliceSignalRange returns a copy of the signal restricted to spectral
// coordinates c with lo <= c < hi. The range is half-open; an empty
// selection is an error.
func (s *Signal) SliceSignalRange(lo, hi float64) (*Signal, error) {
	if s.Axes.SignalDimension() != 1 {
		return nil, fmt.Errorf("spectral slicing requires 1 signal dimension, have %d", s.Axes.SignalDimension())
	}
	ax := s.Axes.SignalAxes[0]
	i0, i1 := coordRange(ax.Coords, lo, hi)
	if i0 >= i1 {
		return nil, fmt.Errorf("%w: [%g, %g) on axis %q", ErrEmptyRange, lo, hi, ax.Name)
	}

	nch := ax.Size()
	navSize := s.Axes.NavigationSize()
	width := i1 - i0
	out := make([]float64, navSize*width)
	for n := 0; n < navSize; n++ {
		copy(out[n*width:(n+1)*width], s.Data[n*nch+i0:n*nch+i1])
	}

	subAxis := &Axis{Name: ax.Name, Units: ax.Units, Coords: append([]float64(nil), ax.Coords[i0:i1]...)}
	return &Signal{
		Title:  s.Title,
		Data:   out,
		Axes:   NewAxesManager(cloneAxes(s.Axes.NavigationAxes), []*Axis{subAxis}),
		Events: newSignalEvents(),
	}, nil
}

// coordRange finds the half-open index range [i0, i1) selecting coordinates
// in [lo, hi). Coordinates are assumed strictly increasing.
func coordRange(coords []float64, lo, hi float64) (int, int) {
	i0 := len(coords)
	for i, c := range coords {
		if c >= lo {
			i0 = i
			break
		}
	}
	i1 := len(coords)
	for i := i0; i < len(coords); i++ {
		if coords[i] >= hi {
			i1 = i
			break
		}
	}
	return i0, i1
}

// ReplaceFrom swaps in the data and axes of src, then fires the axes
// manager's AnyAxisChanged event followed by DataChanged. Used by bindings
// that rebuild a derived signal whose shape may change.
func (s *Signal) ReplaceFrom(src *Signal) {
	s.Data = src.Data
	s.Axes.NavigationAxes = cloneAxes(src.Axes.NavigationAxes)
	s.Axes.SignalAxes = cloneAxes(src.Axes.SignalAxes)
	s.Axes.Events.AnyAxisChanged.Trigger()
	s.Events.DataChanged.Trigger()
}

// UpdateInPlace copies the data of src into the existing backing array and
// fires DataChanged. The shapes must match; the array identity is
// preserved so views over it keep seeing the live values.
func (s *Signal) UpdateInPlace(src *Signal) error {
	if len(src.Data) != len(s.Data) {
		return fmt.Errorf("in-place update size mismatch: have %d values, want %d", len(src.Data), len(s.Data))
	}
	copy(s.Data, src.Data)
	s.Events.DataChanged.Trigger()
	return nil
}
