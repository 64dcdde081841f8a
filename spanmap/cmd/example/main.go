// Example program demonstrating how to use the spanmap package to:
// 1. Build a synthetic hyperspectral cube (two Gaussian emission peaks
//    whose relative strength varies across the map)
// 2. Create a span map with three spectral-range selectors
// 3. Move a span programmatically and watch its image update in place
// 4. Render the navigator and the span images to PNG files
//
// Usage:
//
//	go run main.go
//
// The program writes navigator.png and span_sum_0.png .. span_sum_2.png
// to the current directory.
package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
	"github.com/bob-anderson-ok/SpanMapViewer/spanmap"
)

const (
	rows = 64
	cols = 64
	nch  = 128
)

func main() {
	fmt.Println("Span Map Example")
	fmt.Println("================")

	sig := buildDemoCube()

	plt := spanmap.NewImagePlotter(800, 600)
	allSum, spans, spanSigs, spanSums, err := spanmap.PlotSpanMap(sig, 3, plt)
	if err != nil {
		log.Fatalf("Failed to build span map: %v", err)
	}

	fmt.Printf("Navigator has %d spectral channels\n", len(allSum.Data))
	for i, span := range spans {
		lo, hi := span.Range()
		fmt.Printf("Span %d (%s): [%.1f, %.1f) nm, %d channels\n",
			i, span.Widgets()[0].Color, lo, hi, spanSigs[i].SignalAxis(0).Size())
	}

	// Move span 0 onto the second emission peak; its image recomputes in
	// place and the plotter can re-render it.
	if err := spans[0].SetRange(600, 660); err != nil {
		log.Fatalf("Failed to move span: %v", err)
	}
	fmt.Println("Moved span 0 to [600.0, 660.0) nm")

	if err := savePNG("navigator.png", mustRender(
		func() (image.Image, error) { return spanmap.RenderSpectrum(allSum, spans, 800, 600) })); err != nil {
		log.Fatalf("Failed to save navigator: %v", err)
	}
	fmt.Println("Saved navigator.png")

	colors := []string{"red", "green", "blue"}
	for i, sum := range spanSums {
		name := fmt.Sprintf("span_sum_%d.png", i)
		img := mustRender(func() (image.Image, error) {
			return spanmap.RenderHeatMap(sum, spanmap.CmapName(colors[i]), 600, 600)
		})
		if err := savePNG(name, img); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
		fmt.Printf("Saved %s\n", name)
	}
}

// buildDemoCube creates a cube with two Gaussian peaks, at 500 nm and
// 630 nm, whose relative intensity varies across the spatial map.
func buildDemoCube() *hyperspec.Signal {
	ax := hyperspec.NewLinearAxis("wavelength", "nm", 400, 700, nch)

	data := make([]float64, rows*cols*nch)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			// Left side of the map favors the 500 nm peak, right side
			// the 630 nm peak.
			wRight := float64(c) / float64(cols-1)
			for k := 0; k < nch; k++ {
				wl := ax.Coords[k]
				v := (1-wRight)*gauss(wl, 500, 18) + wRight*gauss(wl, 630, 25)
				data[(r*cols+c)*nch+k] = 1000 * v
			}
		}
	}

	sig, err := hyperspec.NewSignal("demo cube",
		data,
		[]*hyperspec.Axis{
			hyperspec.NewLinearAxis("y", "px", 0, rows-1, rows),
			hyperspec.NewLinearAxis("x", "px", 0, cols-1, cols),
		},
		[]*hyperspec.Axis{ax},
	)
	if err != nil {
		log.Fatalf("Failed to build demo cube: %v", err)
	}
	return sig
}

func gauss(x, mu, sigma float64) float64 {
	d := (x - mu) / sigma
	return math.Exp(-0.5 * d * d)
}

func mustRender(f func() (image.Image, error)) image.Image {
	img, err := f()
	if err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}
	return img
}

func savePNG(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
