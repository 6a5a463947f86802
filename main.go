package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"cascade/cmd"
	"cascade/internal/config"
	"cascade/internal/controller"
	"cascade/internal/dsp"
	applog "cascade/internal/log"
	"cascade/internal/pipeline"
	"cascade/internal/render"
	"cascade/internal/transport"
	"cascade/internal/tui"
	"cascade/internal/ui"
	"cascade/pkg/bitint"
	"cascade/pkg/build"
)

// main wires the visualizer together. The program flow has three phases:
//
// 1. Startup:
//   - Initialize build information
//   - Parse command line arguments and load configuration
//   - Execute one-off commands if requested
//   - Construct the analysis chain and the pipeline factory
//
// 2. Run:
//   - Hand control to the render loop, which owns the frame clock,
//     dispatches key commands and drains one spectral frame per tick
//
// 3. Shutdown:
//   - Close the frame channel, stop the pipeline, flush the recording
func main() {
	if err := run(); err != nil {
		applog.Errorf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	build.Initialize()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		return err
	}

	if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	}

	// One-off commands run without a window.
	if cfg.Command == "list" {
		return tui.ListDevices()
	}

	if cfg.File == "" && !cfg.Audio.LiveInput {
		fmt.Println("No audio file given. Run with --file <path>, or --live for device capture.")
		return nil
	}

	// The capture subsystem outlives individual pipelines, so live mode
	// initializes it once for the whole session.
	if cfg.Audio.LiveInput {
		if err := pipeline.Initialize(); err != nil {
			return err
		}
		defer pipeline.Terminate()
	}

	windowFn, err := dsp.ParseWindowFunc(cfg.Audio.WindowFunc)
	if err != nil {
		return err
	}

	frames := dsp.NewFrameChannel(bitint.NextPowerOfTwo(cfg.Audio.FrameCapacity))

	analyzer, err := dsp.NewAnalyzer(frames, windowFn, cfg.Audio.SampleRate)
	if err != nil {
		return err
	}

	// The pipeline feeds the analyzer, optionally through a recording tee.
	var sink pipeline.SampleSink = analyzer
	if cfg.Recording.Enabled {
		recorder, err := pipeline.NewRecorder(cfg.Recording.OutputFile, analyzer, cfg.Audio.SampleRate)
		if err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				applog.Errorf("could not finalize recording: %v", err)
			} else {
				applog.Infof("recording saved to %s", cfg.Recording.OutputFile)
			}
		}()
		sink = recorder
	}

	factory := func(source string) (pipeline.Pipeline, error) {
		if cfg.Audio.LiveInput {
			return pipeline.NewCapturePipeline(cfg.Audio.DeviceID, sink, cfg.Audio.SampleRate)
		}
		return pipeline.NewFilePipeline(source, sink, cfg.Audio.SampleRate)
	}

	ctrl := controller.New(factory, cfg.File, cfg.Audio.FallbackFile)
	defer func() {
		// The channel closes first: stopping the pipeline joins its
		// delivery goroutine, which may be parked in a blocking Send.
		frames.Close()
		ctrl.Shutdown()
	}()

	var frameSink ui.FrameSink
	if cfg.Transport.WSEnabled {
		broadcaster := transport.NewBroadcaster(cfg.Transport.WSPort, cfg.SendInterval())
		defer broadcaster.Close()
		frameSink = broadcaster
	}

	waterfall := render.NewWaterfall(config.HistoryRows, config.BinCount)
	game := ui.New(ctrl, frames, waterfall, cfg.Render.Width, cfg.Render.Height, frameSink)

	// Playback starts as soon as the window is up.
	ctrl.Handle(controller.CmdPlay)

	ebiten.SetWindowSize(cfg.Render.Width, cfg.Render.Height)
	ebiten.SetWindowTitle(build.GetBuildFlags().Name)
	ebiten.SetFullscreen(cfg.Render.FullScreen)

	return ebiten.RunGame(game)
}
