package main

import json "github.com/KevinWang15/go-json5"

// ViewerParams holds everything the parameter file can specify.
type ViewerParams struct {
	Title            string
	ShowInput        bool
	WindowSizePixels int
	NumberOfSpans    int

	// Cube source: a raw float32 cube file, or a synthetic demo cube
	// when no path is given.
	PathToCubeFile string
	CubeRows       int
	CubeCols       int
	CubeChannels   int

	// Spectral axis calibration.
	AxisName  string
	AxisUnits string
	AxisMin   float64
	AxisMax   float64
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func parseParams(data []byte) (map[string]interface{}, error) {
	var jsonTable map[string]interface{}
	err := json.Unmarshal(data, &jsonTable)
	return jsonTable, err
}

func validateJsonFileAndFillParams(jsonTable map[string]interface{}, params *ViewerParams) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	showInput, ok := getLeafValue(jsonTable, "show_input_bool")
	if !ok {
		params.ShowInput = false // default to false if this field is missing
	} else {
		params.ShowInput, ok = showInput.(bool)
		if !ok {
			msg = "show_input_bool: is not a bool"
			return msg, false
		}
	}

	title, ok := getLeafValue(jsonTable, "title")
	if !ok {
		params.Title = "Span map viewer"
	} else {
		params.Title, ok = title.(string)
		if !ok {
			msg = "title: is not a string"
			return msg, false
		}
	}

	windowSize, ok := getLeafValue(jsonTable, "window_size_pixels")
	if !ok {
		params.WindowSizePixels = 500 // Default to 500 pixels if this field is missing
	} else {
		wSize, ok := windowSize.(float64)
		if !ok {
			msg = "window_size_pixels: is not a number"
			return msg, false
		}
		params.WindowSizePixels = int(wSize)
	}

	nspans, ok := getLeafValue(jsonTable, "number_of_spans")
	if !ok {
		params.NumberOfSpans = 1 // Default is a single span
	} else {
		n, ok := nspans.(float64)
		if !ok {
			msg = "number_of_spans: is not a number"
			return msg, false
		}
		params.NumberOfSpans = int(n)
	}

	filePath, ok := getLeafValue(jsonTable, "path_to_cube_file")
	if ok {
		params.PathToCubeFile, ok = filePath.(string)
		if !ok {
			msg = "path_to_cube_file: is not a string"
			return msg, false
		}
	}

	// Cube dimensions are required when a cube file is given; the
	// synthetic demo cube supplies its own.
	dims := []struct {
		key string
		dst *int
		def int
	}{
		{"cube_rows", &params.CubeRows, 64},
		{"cube_cols", &params.CubeCols, 64},
		{"cube_channels", &params.CubeChannels, 128},
	}
	for _, d := range dims {
		raw, ok := getLeafValue(jsonTable, d.key)
		if !ok {
			if params.PathToCubeFile != "" {
				msg = d.key + ": not found (required with path_to_cube_file)"
				return msg, false
			}
			*d.dst = d.def
			continue
		}
		v, ok := raw.(float64)
		if !ok {
			msg = d.key + ": is not a number"
			return msg, false
		}
		*d.dst = int(v)
	}

	axisName, ok := getLeafValue(jsonTable, "axis_name")
	if !ok {
		params.AxisName = "wavelength"
	} else {
		params.AxisName, ok = axisName.(string)
		if !ok {
			msg = "axis_name: is not a string"
			return msg, false
		}
	}

	axisUnits, ok := getLeafValue(jsonTable, "axis_units")
	if !ok {
		params.AxisUnits = "nm"
	} else {
		params.AxisUnits, ok = axisUnits.(string)
		if !ok {
			msg = "axis_units: is not a string"
			return msg, false
		}
	}

	axisMin, ok := getLeafValue(jsonTable, "axis_min")
	if !ok {
		params.AxisMin = 400.0
	} else {
		params.AxisMin, ok = axisMin.(float64)
		if !ok {
			msg = "axis_min: is not a number"
			return msg, false
		}
	}

	axisMax, ok := getLeafValue(jsonTable, "axis_max")
	if !ok {
		params.AxisMax = 700.0
	} else {
		params.AxisMax, ok = axisMax.(float64)
		if !ok {
			msg = "axis_max: is not a number"
			return msg, false
		}
	}

	if params.AxisMax <= params.AxisMin {
		msg = "axis_max: must be greater than axis_min"
		return msg, false
	}

	return msg, true
}
