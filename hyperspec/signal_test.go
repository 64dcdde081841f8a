package hyperspec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCube builds a rows x cols x nch cube with a deterministic value at
// every element and a couple of NaN holes.
func testCube(t *testing.T, rows, cols, nch int) *Signal {
	t.Helper()

	data := make([]float64, rows*cols*nch)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for k := 0; k < nch; k++ {
				data[(r*cols+c)*nch+k] = float64(r*100+c*10) + 0.5*float64(k)
			}
		}
	}
	// NaN holes: must behave as zero under the NaN-safe sums.
	data[0] = math.NaN()
	data[len(data)-1] = math.NaN()

	sig, err := NewSignal("test cube",
		data,
		[]*Axis{
			NewLinearAxis("y", "px", 0, float64(rows-1), rows),
			NewLinearAxis("x", "px", 0, float64(cols-1), cols),
		},
		[]*Axis{NewLinearAxis("wavelength", "nm", 400, 700, nch)},
	)
	require.NoError(t, err)
	return sig
}

func TestNewSignalSizeMismatch(t *testing.T) {
	_, err := NewSignal("bad", make([]float64, 7),
		[]*Axis{NewLinearAxis("y", "", 0, 1, 2)},
		[]*Axis{NewLinearAxis("wavelength", "", 0, 1, 3)},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")
}

func TestLinearAxis(t *testing.T) {
	ax := NewLinearAxis("wavelength", "nm", 400, 700, 31)
	assert.Equal(t, 31, ax.Size())
	assert.Equal(t, 400.0, ax.Min())
	assert.Equal(t, 700.0, ax.Max())
	assert.InDelta(t, 300.0, ax.Extent(), 1e-12)
	assert.InDelta(t, 410.0, ax.Coords[1], 1e-12)
}

func TestNaNSumNavigation(t *testing.T) {
	sig := testCube(t, 3, 4, 8)

	nav := sig.NaNSumNavigation()
	assert.Equal(t, 1, nav.Axes.SignalDimension())
	assert.Equal(t, 0, nav.Axes.NavigationDimension())
	require.Len(t, nav.Data, 8)

	// Independent check per channel, NaN contributing zero.
	nch := 8
	for k := 0; k < nch; k++ {
		want := 0.0
		for n := 0; n < 3*4; n++ {
			v := sig.Data[n*nch+k]
			if !math.IsNaN(v) {
				want += v
			}
		}
		assert.InDelta(t, want, nav.Data[k], 1e-9, "channel %d", k)
	}
}

func TestNaNSumSignal(t *testing.T) {
	sig := testCube(t, 3, 4, 8)

	img := sig.NaNSumSignal()
	assert.Equal(t, 2, img.Axes.NavigationDimension())
	assert.Equal(t, 0, img.Axes.SignalDimension())
	require.Len(t, img.Data, 12)

	nch := 8
	for n := 0; n < 12; n++ {
		want := 0.0
		for k := 0; k < nch; k++ {
			v := sig.Data[n*nch+k]
			if !math.IsNaN(v) {
				want += v
			}
		}
		assert.InDelta(t, want, img.Data[n], 1e-9, "position %d", n)
	}
}

func TestAsSignal2D(t *testing.T) {
	sig := testCube(t, 3, 4, 8)

	img, err := sig.NaNSumSignal().AsSignal2D()
	require.NoError(t, err)
	assert.Equal(t, 2, img.Axes.SignalDimension())
	assert.Equal(t, 0, img.Axes.NavigationDimension())
	assert.Equal(t, 3, img.SignalAxis(0).Size())
	assert.Equal(t, 4, img.SignalAxis(1).Size())

	// Reinterpretation only: the cube itself cannot be viewed as 2D.
	_, err = sig.AsSignal2D()
	require.Error(t, err)
}

func TestAsSignal2DSharesBacking(t *testing.T) {
	sig := testCube(t, 2, 2, 4)
	flat := sig.NaNSumSignal()
	img, err := flat.AsSignal2D()
	require.NoError(t, err)

	flat.Data[0] = 12345
	assert.Equal(t, 12345.0, img.Data[0])
}

func TestSliceSignalRange(t *testing.T) {
	sig := testCube(t, 2, 2, 11) // wavelength coords 400, 430, ..., 700

	sub, err := sig.SliceSignalRange(430, 520)
	require.NoError(t, err)

	// Half-open: 430, 460, 490 selected; 520 excluded.
	ax := sub.SignalAxis(0)
	require.Equal(t, 3, ax.Size())
	assert.InDelta(t, 430.0, ax.Min(), 1e-9)
	assert.InDelta(t, 490.0, ax.Max(), 1e-9)

	// Values line up with channels 1..3 of the source.
	for n := 0; n < 4; n++ {
		for k := 0; k < 3; k++ {
			want := sig.Data[n*11+1+k]
			got := sub.Data[n*3+k]
			if math.IsNaN(want) {
				assert.True(t, math.IsNaN(got))
			} else {
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestSliceSignalRangeEmpty(t *testing.T) {
	sig := testCube(t, 2, 2, 11)

	_, err := sig.SliceSignalRange(431, 432) // between coords
	require.ErrorIs(t, err, ErrEmptyRange)

	_, err = sig.SliceSignalRange(9000, 9100) // past the axis
	require.ErrorIs(t, err, ErrEmptyRange)
}

func TestReplaceFromFiresEvents(t *testing.T) {
	sig := testCube(t, 2, 2, 11)
	sub, err := sig.SliceSignalRange(400, 550)
	require.NoError(t, err)

	var axisFired, dataFired int
	sub.Axes.Events.AnyAxisChanged.Connect(func() { axisFired++ })
	sub.Events.DataChanged.Connect(func() { dataFired++ })

	next, err := sig.SliceSignalRange(550, 701)
	require.NoError(t, err)
	sub.ReplaceFrom(next)

	assert.Equal(t, 1, axisFired)
	assert.Equal(t, 1, dataFired)
	assert.Equal(t, next.Data, sub.Data)
	assert.InDelta(t, 550.0, sub.SignalAxis(0).Min(), 1e-9)
}

func TestUpdateInPlace(t *testing.T) {
	sig := testCube(t, 2, 2, 4)
	img := sig.NaNSumSignal()

	backing := &img.Data[0]
	var fired int
	img.Events.DataChanged.Connect(func() { fired++ })

	src, err := NewSignal("src", []float64{1, 2, 3, 4}, nil,
		[]*Axis{NewLinearAxis("y", "", 0, 1, 2), NewLinearAxis("x", "", 0, 1, 2)})
	require.NoError(t, err)

	require.NoError(t, img.UpdateInPlace(src))
	assert.Equal(t, 1, fired)
	assert.Equal(t, []float64{1, 2, 3, 4}, img.Data)
	assert.Same(t, backing, &img.Data[0], "backing array identity must be preserved")

	short, err := NewSignal("short", []float64{1}, nil,
		[]*Axis{NewLinearAxis("x", "", 0, 0, 1)})
	require.NoError(t, err)
	require.Error(t, img.UpdateInPlace(short))
	assert.Equal(t, 1, fired, "failed update must not fire DataChanged")
}
