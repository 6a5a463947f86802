package controller

// Command is one controller action. Each key event maps to exactly one
// command, or CmdNone.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdPlay
	CmdPause
	CmdStop
	CmdModeWaterfall
	CmdModeKaleidoscope
	CmdBinsAscending
	CmdBinsDescending
	CmdScrollDown
	CmdScrollUp
)

// Key identifies the keyboard keys the visualizer reacts to, decoupled from
// the windowing backend's key type.
type Key int

const (
	KeyUnknown Key = iota
	KeyQ
	KeyA
	KeyS
	KeyD
	KeyK
	KeyW
	Key0
	Key1
)

// Dispatcher maps key presses to commands. Its only state is the current
// shift-modifier flag, which disambiguates the two render option keys.
type Dispatcher struct {
	shiftHeld bool
}

// SetShift records the modifier state as it changes.
func (d *Dispatcher) SetShift(held bool) {
	d.shiftHeld = held
}

// ShiftHeld returns the tracked modifier state.
func (d *Dispatcher) ShiftHeld() bool {
	return d.shiftHeld
}

// Map translates one key press into a command. Unrecognized keys map to
// CmdNone.
func (d *Dispatcher) Map(key Key) Command {
	switch key {
	case KeyQ:
		return CmdQuit
	case KeyA:
		return CmdStop
	case KeyS:
		return CmdPlay
	case KeyD:
		return CmdPause
	case KeyK:
		return CmdModeKaleidoscope
	case KeyW:
		return CmdModeWaterfall
	case Key0:
		if d.shiftHeld {
			return CmdBinsAscending
		}
		return CmdBinsDescending
	case Key1:
		if d.shiftHeld {
			return CmdScrollDown
		}
		return CmdScrollUp
	default:
		return CmdNone
	}
}
