package render

// ScrollDirection selects which edge of the image new rows appear at.
type ScrollDirection int

const (
	// ScrollDown places the newest row at the top, history flowing down.
	ScrollDown ScrollDirection = iota
	// ScrollUp places the newest row at the bottom, history flowing up.
	ScrollUp
)

// BinOrder selects which direction the frequency axis runs. The spectrum
// halves are mirror images, so flipping the column order is equivalent to
// displaying the other half.
type BinOrder int

const (
	BinsAscending BinOrder = iota
	BinsDescending
)

// Options are the mutable presentation toggles. They are owned by the
// controller, mutated by key commands, and passed into Snapshot each frame;
// nothing reads them ambiently.
type Options struct {
	Scroll ScrollDirection
	Bins   BinOrder
}
