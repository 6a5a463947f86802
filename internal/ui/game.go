// Package ui owns the window and the frame-locked render loop. Each tick
// drains at most one spectrum frame, so display time advances in lockstep
// with analysis time and the waterfall scrolls at a steady rate.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cascade/internal/controller"
	"cascade/internal/dsp"
	"cascade/internal/render"
)

// FrameSink receives a copy of each frame consumed by the render loop.
// Used to mirror the display stream to external consumers.
type FrameSink interface {
	Send(frame []float64) error
}

// keyBindings maps the window backend's keys onto controller keys. Only
// keys listed here generate commands; when several bound keys land in the
// same tick they dispatch in table order.
var keyBindings = []struct {
	source ebiten.Key
	key    controller.Key
}{
	{ebiten.KeyQ, controller.KeyQ},
	{ebiten.KeyA, controller.KeyA},
	{ebiten.KeyS, controller.KeyS},
	{ebiten.KeyD, controller.KeyD},
	{ebiten.KeyK, controller.KeyK},
	{ebiten.KeyW, controller.KeyW},
	{ebiten.KeyDigit0, controller.Key0},
	{ebiten.KeyDigit1, controller.Key1},
}

// Game drives one visualizer window.
type Game struct {
	ctrl       *controller.Controller
	frames     *dsp.FrameChannel
	waterfall  *render.Waterfall
	dispatcher controller.Dispatcher
	sink       FrameSink

	spectrum      *ebiten.Image
	width, height int
}

// New builds the render loop around an existing controller and frame
// channel. sink may be nil.
func New(ctrl *controller.Controller, frames *dsp.FrameChannel, waterfall *render.Waterfall, width, height int, sink FrameSink) *Game {
	cols, rows := waterfall.Size()
	return &Game{
		ctrl:      ctrl,
		frames:    frames,
		waterfall: waterfall,
		sink:      sink,
		spectrum:  ebiten.NewImage(cols, rows),
		width:     width,
		height:    height,
	}
}

// Update runs once per tick: dispatch pending key presses, then consume at
// most one frame. Ticks with no pending frame redraw the existing history,
// ticks where frames queued up leave the surplus for later ticks.
func (g *Game) Update() error {
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	g.dispatcher.SetShift(shift)

	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.source) {
			g.ctrl.Handle(g.dispatcher.Map(b.key))
		}
	}

	if g.ctrl.QuitRequested() {
		return ebiten.Termination
	}

	if frame, ok := g.frames.TryReceive(); ok {
		g.waterfall.PushRow(frame)
		if g.sink != nil {
			g.sink.Send(frame)
		}
	}

	return nil
}

// Draw uploads the waterfall snapshot and presents it in the active mode.
func (g *Game) Draw(screen *ebiten.Image) {
	g.spectrum.WritePixels(g.waterfall.Snapshot(g.ctrl.Options()))

	switch g.ctrl.Mode() {
	case controller.ModeKaleidoscope:
		drawKaleidoscope(screen, g.spectrum)
	default:
		drawStretched(screen, g.spectrum)
	}
}

// Layout fixes the logical resolution regardless of the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// drawStretched scales the spectrum image to fill the whole screen.
func drawStretched(screen, spectrum *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := spectrum.Bounds().Dx(), spectrum.Bounds().Dy()

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(sw)/float64(iw), float64(sh)/float64(ih))
	screen.DrawImage(spectrum, &op)
}
