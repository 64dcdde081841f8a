package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
)

// loadRawCube reads a band-interleaved-by-pixel cube of little-endian
// float32 values: for each spatial position, all spectral channels in
// order, rows before columns.
func loadRawCube(p ViewerParams) (sig *hyperspec.Signal, err error) {
	f, err := os.Open(p.PathToCubeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.PathToCubeFile, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n := p.CubeRows * p.CubeCols * p.CubeChannels
	raw := make([]float32, n)
	if err := binary.Read(f, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("failed to read %d float32 values from %s: %w", n, p.PathToCubeFile, err)
	}

	data := make([]float64, n)
	for i, v := range raw {
		data[i] = float64(v)
	}

	return hyperspec.NewSignal(p.Title,
		data,
		[]*hyperspec.Axis{
			hyperspec.NewLinearAxis("y", "px", 0, float64(p.CubeRows-1), p.CubeRows),
			hyperspec.NewLinearAxis("x", "px", 0, float64(p.CubeCols-1), p.CubeCols),
		},
		[]*hyperspec.Axis{hyperspec.NewLinearAxis(p.AxisName, p.AxisUnits, p.AxisMin, p.AxisMax, p.CubeChannels)},
	)
}

// buildSyntheticCube creates a demo cube with two Gaussian emission peaks
// whose relative strength varies across the map, so each span picks out a
// visibly different spatial pattern.
func buildSyntheticCube(p ViewerParams) (*hyperspec.Signal, error) {
	ax := hyperspec.NewLinearAxis(p.AxisName, p.AxisUnits, p.AxisMin, p.AxisMax, p.CubeChannels)
	extent := ax.Extent()
	muA := ax.Min() + extent/3
	muB := ax.Min() + 2*extent/3
	sigma := extent / 16

	data := make([]float64, p.CubeRows*p.CubeCols*p.CubeChannels)
	for r := 0; r < p.CubeRows; r++ {
		for c := 0; c < p.CubeCols; c++ {
			wRight := float64(c) / float64(p.CubeCols-1)
			for k := 0; k < p.CubeChannels; k++ {
				wl := ax.Coords[k]
				d1 := (wl - muA) / sigma
				d2 := (wl - muB) / sigma
				v := (1-wRight)*math.Exp(-0.5*d1*d1) + wRight*math.Exp(-0.5*d2*d2)
				data[(r*p.CubeCols+c)*p.CubeChannels+k] = 1000 * v
			}
		}
	}

	return hyperspec.NewSignal(p.Title,
		data,
		[]*hyperspec.Axis{
			hyperspec.NewLinearAxis("y", "px", 0, float64(p.CubeRows-1), p.CubeRows),
			hyperspec.NewLinearAxis("x", "px", 0, float64(p.CubeCols-1), p.CubeCols),
		},
		[]*hyperspec.Axis{ax},
	)
}
