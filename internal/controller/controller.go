// Package controller holds the playback state machine and the key command
// dispatch. All of it runs on the render/main goroutine; the pipeline it
// drives does its own work elsewhere.
package controller

import (
	applog "cascade/internal/log"
	"cascade/internal/pipeline"
	"cascade/internal/render"
)

// State is the playback lifecycle state. A pipeline handle exists exactly
// when the state is not Stopped; the transition functions below are the only
// code that touches the handle, which keeps "Playing with no pipeline"
// unrepresentable.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Mode selects the presentation path. Purely render-side; switching it never
// touches playback.
type Mode int

const (
	ModeWaterfall Mode = iota
	ModeKaleidoscope
)

func (m Mode) String() string {
	if m == ModeKaleidoscope {
		return "kaleidoscope"
	}
	return "waterfall"
}

// Factory constructs a pipeline for a source path. Injected so tests drive
// the state machine without touching audio hardware.
type Factory func(source string) (pipeline.Pipeline, error)

// Controller coordinates pipeline lifecycle, visualization mode and render
// options in response to commands.
type Controller struct {
	factory  Factory
	source   string // The file given on the command line, may be empty.
	fallback string // Started by Play when no source is configured.

	state State
	mode  Mode
	pipe  pipeline.Pipeline
	opts  render.Options
	quit  bool
}

// New creates a Controller in the Stopped state, presenting in
// kaleidoscope mode until a mode command says otherwise.
func New(factory Factory, source, fallback string) *Controller {
	return &Controller{
		factory:  factory,
		source:   source,
		fallback: fallback,
		mode:     ModeKaleidoscope,
	}
}

// Handle applies one command. Commands invalid for the current state are
// no-ops; pipeline failures are reported and resolved by falling back to
// Stopped with no retained handle.
func (c *Controller) Handle(cmd Command) {
	switch cmd {
	case CmdNone:
	case CmdQuit:
		c.quit = true
	case CmdPlay:
		c.play()
	case CmdPause:
		c.pause()
	case CmdStop:
		c.stop()
	case CmdModeWaterfall:
		c.mode = ModeWaterfall
	case CmdModeKaleidoscope:
		c.mode = ModeKaleidoscope
	case CmdBinsAscending:
		c.opts.Bins = render.BinsAscending
	case CmdBinsDescending:
		c.opts.Bins = render.BinsDescending
	case CmdScrollDown:
		c.opts.Scroll = render.ScrollDown
	case CmdScrollUp:
		c.opts.Scroll = render.ScrollUp
	}
}

// play starts a new pipeline, or resumes a paused one.
func (c *Controller) play() {
	if c.state == Playing {
		return
	}

	if c.pipe == nil {
		source := c.source
		if source == "" {
			source = c.fallback
		}
		pipe, err := c.factory(source)
		if err != nil {
			applog.Errorf("Controller: could not create pipeline: %v", err)
			c.state = Stopped
			return
		}
		if err := pipe.Play(); err != nil {
			applog.Errorf("Controller: could not play: %v", err)
			c.state = Stopped
			return
		}
		c.pipe = pipe
		c.state = Playing
		applog.Infof("Controller: playing %s", source)
		return
	}

	// Paused with a live pipeline: resume in place.
	if err := c.pipe.Play(); err != nil {
		applog.Errorf("Controller: could not resume: %v", err)
		c.dropPipeline()
		return
	}
	c.state = Playing
}

// pause suspends a playing pipeline. A failed pause means the handle can no
// longer be trusted, so it is dropped rather than retained half-paused.
func (c *Controller) pause() {
	if c.state != Playing || c.pipe == nil {
		return
	}
	if err := c.pipe.Pause(); err != nil {
		applog.Errorf("Controller: could not pause: %v", err)
		c.dropPipeline()
		return
	}
	c.state = Paused
}

// stop destroys the pipeline. Destruction failure is reported but the
// state still becomes Stopped; a pipeline that cannot be stopped is not one
// worth keeping.
func (c *Controller) stop() {
	if c.pipe == nil {
		c.state = Stopped
		return
	}
	if err := c.pipe.Stop(); err != nil {
		applog.Errorf("Controller: could not stop: %v", err)
	}
	c.pipe = nil
	c.state = Stopped
}

// dropPipeline force-stops and forgets the handle after a failed lifecycle
// call.
func (c *Controller) dropPipeline() {
	if c.pipe != nil {
		if err := c.pipe.Stop(); err != nil {
			applog.Warnf("Controller: stop after failure also failed: %v", err)
		}
		c.pipe = nil
	}
	c.state = Stopped
}

// Shutdown stops any active pipeline. Called when the render loop exits.
func (c *Controller) Shutdown() {
	c.stop()
}

// State returns the current playback state.
func (c *Controller) State() State { return c.state }

// Mode returns the current visualization mode.
func (c *Controller) Mode() Mode { return c.mode }

// Options returns the render options to apply to the next frame.
func (c *Controller) Options() render.Options { return c.opts }

// QuitRequested reports whether a quit command has been handled.
func (c *Controller) QuitRequested() bool { return c.quit }
