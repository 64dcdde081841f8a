package spanmap

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSpectrumSize(t *testing.T) {
	sig := smallCube(t)
	nav := sig.NaNSumNavigation()

	span, err := NewSpanROI(2, 6)
	require.NoError(t, err)
	span.AddWidget(nav, "green")

	img, err := RenderSpectrum(nav, []*SpanROI{span}, 640, 480)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestRenderSpectrumRejectsImages(t *testing.T) {
	sig := smallCube(t)
	img2d, err := sig.NaNSumSignal().AsSignal2D()
	require.NoError(t, err)

	_, err = RenderSpectrum(img2d, nil, 100, 100)
	require.Error(t, err)
}

func TestRenderHeatMapSize(t *testing.T) {
	sig := smallCube(t)
	img2d, err := sig.NaNSumSignal().AsSignal2D()
	require.NoError(t, err)

	for _, cmap := range []string{"Reds", "Greens", "Blues", ""} {
		img, err := RenderHeatMap(img2d, cmap, 300, 200)
		require.NoError(t, err, "cmap %q", cmap)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	}
}

func TestRenderHeatMapRejectsSpectra(t *testing.T) {
	sig := smallCube(t)
	nav := sig.NaNSumNavigation()

	_, err := RenderHeatMap(nav, "Reds", 100, 100)
	require.Error(t, err)
}

func TestMonoPaletteRamp(t *testing.T) {
	p := paletteByName("Reds")
	cols := p.Colors()
	require.Len(t, cols, 255)

	first := cols[0].(color.RGBA)
	last := cols[len(cols)-1].(color.RGBA)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, first, "ramp starts at white")
	assert.Equal(t, color.RGBA{R: 255, A: 255}, last, "ramp ends at the full color")

	// Unknown names fall back to grayscale.
	g := paletteByName("Magentas").Colors()
	gLast := g[len(g)-1].(color.RGBA)
	assert.Equal(t, color.RGBA{A: 255}, gLast)
}

func TestPercentileStretch(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, math.NaN(), math.Inf(1)}
	lo, hi, err := percentileStretch(values, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 9.0, hi)

	_, _, err = percentileStretch(values, 90, 10)
	require.Error(t, err)

	_, _, err = percentileStretch([]float64{math.NaN()}, 1, 99)
	require.Error(t, err)

	// A constant image must not collapse the display range to zero.
	lo, hi, err = percentileStretch([]float64{5, 5, 5}, 1, 99)
	require.NoError(t, err)
	assert.Greater(t, hi, lo)
}
