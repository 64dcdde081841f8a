package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
	"github.com/bob-anderson-ok/SpanMapViewer/spanmap"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_2"

// !!!!! This MUST match the app name given in the run configuration !!!!!

func main() {

	programStart := time.Now()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.spanmap")

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: SpanMapViewer <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	jsonTable, err := parseParams(data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var params ViewerParams
	msg, ok := validateJsonFileAndFillParams(jsonTable, &params)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of complete jsonTable
	if params.ShowInput {
		fmt.Printf("%s", "\nPrintout of complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	var cube *hyperspec.Signal
	if params.PathToCubeFile != "" {
		start := time.Now()
		cube, err = loadRawCube(params)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tAttempt to read cube file %q failed: %w\n", params.PathToCubeFile, err))
			os.Exit(5)
		}
		log.Info().
			Str("file", params.PathToCubeFile).
			Int("rows", params.CubeRows).
			Int("cols", params.CubeCols).
			Int("channels", params.CubeChannels).
			Dur("elapsed", time.Since(start)).
			Msg("cube loaded")
	} else {
		cube, err = buildSyntheticCube(params)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tSynthetic cube construction failed: %w\n", err))
			os.Exit(5)
		}
		log.Info().
			Int("rows", params.CubeRows).
			Int("cols", params.CubeCols).
			Int("channels", params.CubeChannels).
			Msg("no cube file given, built synthetic demonstration cube")
	}

	v := newViewer(myApp, log, params)

	start := time.Now()
	_, spans, _, _, err := spanmap.PlotSpanMap(cube, params.NumberOfSpans, v)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tSpan map setup failed: %w\n", err))
		os.Exit(6)
	}
	log.Info().
		Int("spans", len(spans)).
		Dur("elapsed", time.Since(start)).
		Msg("span map ready")

	v.AttachSpans(spans)

	fmt.Printf("\nStartup time was %s\n", time.Since(programStart))

	v.Run()
}
